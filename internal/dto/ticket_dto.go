package dto

import "github.com/shopspring/decimal"

type TicketItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ProductCode string          `json:"productCode,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

type TicketResponse struct {
	ID            string               `json:"id"`
	Number        int                  `json:"number"`
	EventID       string               `json:"eventId"`
	BarID         string               `json:"barId"`
	EmployeeID    string               `json:"employeeId"`
	CustomerName  *string              `json:"customerName,omitempty"`
	Items         []TicketItemResponse `json:"items"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Tax           decimal.Decimal      `json:"tax"`
	Total         decimal.Decimal      `json:"total"`
	PaymentMethod string               `json:"paymentMethod"`
	Notes         *string              `json:"notes,omitempty"`
	Printed       bool                 `json:"printed"`
	PrintedAt     *string              `json:"printedAt,omitempty"`
	CreatedAt     string               `json:"createdAt"`
}

// PatchTicketRequest may only touch the annotation fields; financial fields
// of a ticket are immutable.
type PatchTicketRequest struct {
	CustomerName *string `json:"customerName,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type PrintedResponse struct {
	ID        string `json:"id"`
	Printed   bool   `json:"printed"`
	PrintedAt string `json:"printedAt"`
}

type TicketSearchFilter struct {
	EventID    string `form:"eventId"`
	EmployeeID string `form:"employeeId"`
}
