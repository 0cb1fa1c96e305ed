package dto

import "github.com/shopspring/decimal"

// SalesSummaryResponse is the dashboard projection over a bar's tickets.
type SalesSummaryResponse struct {
	Bar                         BarResponse                `json:"bar"`
	TotalSales                  int                        `json:"totalSales"`
	TotalTickets                int                        `json:"totalTickets"`
	TotalRevenue                decimal.Decimal            `json:"totalRevenue"`
	AverageTicketValue          decimal.Decimal            `json:"averageTicketValue"`
	ProductsSold                []ProductSales             `json:"productsSold"`
	ProductsSoldByPaymentMethod map[string][]ProductSales  `json:"productsSoldByPaymentMethod"`
	SalesByUser                 []UserSales                `json:"salesByUser"`
	SalesByPaymentMethod        map[string]decimal.Decimal `json:"salesByPaymentMethod"`
	HourlyDistribution          []HourlyBucket             `json:"hourlyDistribution"`
}

type ProductSales struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
	// Percentage of total revenue, 0 when there is no revenue yet.
	Percentage float64 `json:"percentage"`
}

type UserSales struct {
	UserID      string          `json:"userId"`
	UserName    string          `json:"userName"`
	TicketCount int             `json:"ticketCount"`
	TotalSales  decimal.Decimal `json:"totalSales"`
}

// HourlyBucket aggregates by hour-of-day across all days in range.
type HourlyBucket struct {
	Hour        string          `json:"hour"` // "HH:00"
	TicketCount int             `json:"ticketCount"`
	Revenue     decimal.Decimal `json:"revenue"`
}
