package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Code is the short alphabetic token bartenders
// type (2-3 uppercase letters, catalog-unique). Stock is never mutated
// through this model directly; all quantity changes go through the stock
// ledger (StockAssignment + StockMovement).
type Product struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code     string          `gorm:"uniqueIndex;not null" json:"code"`
	Name     string          `gorm:"index;not null" json:"name"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Unit     string          `gorm:"not null;default:'unit'" json:"unit"`
	Category string          `json:"category"`
	Active   bool            `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
