package dto

import "github.com/shopspring/decimal"

// InputRequest carries one bartender keyboard token, e.g. "CCC2".
type InputRequest struct {
	Input   string `json:"input" validate:"required"`
	EventID string `json:"eventId" validate:"required,uuid"`
}

// CartItemDTO is one cart line as rendered by the bartender screen.
type CartItemDTO struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ProductCode string          `json:"productCode"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
	Unit        string          `json:"unit,omitempty"`
}

// CartSummaryDTO is recomputed after every cart mutation.
type CartSummaryDTO struct {
	TotalItems    int             `json:"totalItems"`
	TotalQuantity int             `json:"totalQuantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Items         []CartItemDTO   `json:"items"`
}

// TouchedProduct echoes the line the input token resolved to.
type TouchedProduct struct {
	Name     string          `json:"name"`
	Code     string          `json:"code"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

type InputResponse struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message"`
	Product     TouchedProduct `json:"product"`
	CartSummary CartSummaryDTO `json:"cartSummary"`
}

// CartResponse is the full cart snapshot returned by GET /bartender/cart.
type CartResponse struct {
	CartSummaryDTO
	ID            string `json:"id,omitempty"`
	BartenderID   string `json:"bartenderId,omitempty"`
	BartenderName string `json:"bartenderName,omitempty"`
	EventID       string `json:"eventId,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

type RemoveItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
}

type RemoveItemResponse struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message"`
	CartSummary CartSummaryDTO `json:"cartSummary"`
}

type ClearCartResponse struct {
	Message string `json:"message"`
}

// ConfirmRequest turns the current cart into a ticket at the given bar.
type ConfirmRequest struct {
	BarID         string `json:"barId" validate:"required,uuid"`
	CustomerName  string `json:"customerName,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Notes         string `json:"notes,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty" validate:"omitempty,email"`
}

type ConfirmResponse struct {
	Success     bool        `json:"success"`
	TicketID    string      `json:"ticketId"`
	Message     string      `json:"message"`
	PrintFormat PrintFormat `json:"printFormat"`
}

// PrintFormat is the denormalized receipt payload the client renders and
// sends to the thermal printer. Shape is owned by the bartender frontend.
type PrintFormat struct {
	Header struct {
		BusinessName    string `json:"businessName"`
		BusinessAddress string `json:"businessAddress"`
		BusinessPhone   string `json:"businessPhone"`
		BusinessTaxID   string `json:"businessTaxId"`
		BusinessEmail   string `json:"businessEmail"`
	} `json:"header"`
	Ticket struct {
		TicketNumber string `json:"ticketNumber"`
		UserName     string `json:"userName"`
		BarName      string `json:"barName"`
		EventName    string `json:"eventName"`
		Date         string `json:"date"`
		Time         string `json:"time"`
		Currency     string `json:"currency"`
	} `json:"ticket"`
	Items []PrintItem `json:"items"`
	Totals struct {
		Subtotal decimal.Decimal `json:"subtotal"`
		Tax      decimal.Decimal `json:"tax"`
		Total    decimal.Decimal `json:"total"`
		Currency string          `json:"currency"`
	} `json:"totals"`
	Payment struct {
		Method       string          `json:"method"`
		PaidAmount   decimal.Decimal `json:"paidAmount"`
		ChangeAmount decimal.Decimal `json:"changeAmount"`
		Currency     string          `json:"currency"`
	} `json:"payment"`
	Footer struct {
		ThankYouMessage string `json:"thankYouMessage"`
		BusinessWebsite string `json:"businessWebsite"`
		ReceiptFooter   string `json:"receiptFooter"`
	} `json:"footer"`
	PrinterSettings struct {
		PaperWidth int    `json:"paperWidth"`
		FontSize   int    `json:"fontSize"`
		FontFamily string `json:"fontFamily"`
	} `json:"printerSettings"`
}

type PrintItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	Tax       decimal.Decimal `json:"tax"`
}
