package model

import (
	"time"

	"github.com/google/uuid"
)

// StockAssignment is the current allocation of a product at a bar.
// One row per (product, bar); quantity is adjusted through conditional
// updates only and can never go negative.
type StockAssignment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_bar" json:"productId"`
	BarID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_bar" json:"barId"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
	Bar     *Bar     `gorm:"foreignKey:BarID" json:"-"`
}

// StockMovement records every quantity change on an assignment.
// Movements are append-only — cancellations create inverse entries.
/// Type: "assign" | "move_in" | "move_out" | "sale" | "rollback"
type StockMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	BarID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(20);not null"`
	/// Quantity is signed: positive = credit, negative = debit.
	Quantity int `gorm:"not null"`
	Notes    string
	// ReferenceID links to the originating ticket or peer assignment.
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}
