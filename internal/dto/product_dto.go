package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Code     string          `json:"code" validate:"required,len=2|len=3,alpha"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"min=0"`
	Unit     string          `json:"unit,omitempty"`
	Category string          `json:"category,omitempty"`
}

type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Unit     *string          `json:"unit,omitempty"`
	Category *string          `json:"category,omitempty"`
}

type ProductResponse struct {
	ID       string          `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"`
	Category string          `json:"category,omitempty"`
	Active   bool            `json:"active"`
}

type ProductFilter struct {
	Name     string `form:"name"`
	Code     string `form:"code"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type CreateBarRequest struct {
	EventID string `json:"eventId" validate:"required,uuid"`
	Name    string `json:"name" validate:"required"`
	Printer string `json:"printer,omitempty"`
}

type BarResponse struct {
	ID      string  `json:"id"`
	EventID string  `json:"eventId"`
	Name    string  `json:"name"`
	Printer *string `json:"printer,omitempty"`
	Status  string  `json:"status"`
}
