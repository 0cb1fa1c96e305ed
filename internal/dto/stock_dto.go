package dto

// AssignRequest credits quantity of a product to a bar.
type AssignRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	BarID     string `json:"barId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes,omitempty"`
}

type AssignmentResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	BarID     string `json:"barId"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// MoveRequest transfers quantity between two bars atomically.
type MoveRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	FromBarID string `json:"fromBarId" validate:"required,uuid"`
	ToBarID   string `json:"toBarId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes,omitempty"`
}

type MoveResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	FromBarID    string `json:"fromBarId"`
	ToBarID      string `json:"toBarId"`
	Quantity     int    `json:"quantity"`
	FromQuantity int    `json:"fromQuantity"`
	ToQuantity   int    `json:"toQuantity"`
	Notes        string `json:"notes,omitempty"`
}

// BulkOperation is one entry of a POST /stock/bulk batch.
// Type: "assign" | "move".
type BulkOperation struct {
	Type      string `json:"type" validate:"required,oneof=assign move"`
	ProductID string `json:"productId" validate:"required"`
	BarID     string `json:"barId,omitempty"`
	FromBarID string `json:"fromBarId,omitempty"`
	ToBarID   string `json:"toBarId,omitempty"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes,omitempty"`
}

type BulkRequest struct {
	Operations []BulkOperation `json:"operations" validate:"required,min=1,dive"`
}

// BulkResult reports one operation's outcome. Operations are independent:
// one failure never aborts siblings.
type BulkResult struct {
	Operation string `json:"operation"`
	ID        string `json:"id,omitempty"`
	Status    string `json:"status"` // "success" | "error"
	Message   string `json:"message,omitempty"`
}

type BulkResponse struct {
	Processed  int          `json:"processed"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Results    []BulkResult `json:"results"`
}

// StockRow is one ledger row returned by GET /stock.
type StockRow struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	ProductCode string `json:"productCode,omitempty"`
	BarID       string `json:"barId"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
	UpdatedAt   string `json:"updatedAt"`
}

type StockQuery struct {
	BarID     string `form:"barId"`
	ProductID string `form:"productId"`
}

type MovementsQuery struct {
	ProductID string `form:"productId"`
	Limit     int    `form:"limit"`
}

// MovementRow is one entry of the append-only movement history,
// newest first. Quantity is signed: positive = credit, negative = debit.
type MovementRow struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	BarID       string `json:"barId"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
	ReferenceID string `json:"referenceId,omitempty"`
	CreatedAt   string `json:"createdAt"`
}
