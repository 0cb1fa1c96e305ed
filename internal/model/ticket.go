package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket is the immutable receipt created when a cart is confirmed.
// Financial fields are frozen at creation; only CustomerName, Notes and the
// printed annotation are patchable afterwards.
type Ticket struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number        int             `gorm:"uniqueIndex;not null"`
	EventID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	BarID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName  *string         `gorm:"type:varchar(120)"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	Notes         *string
	Printed       bool `gorm:"not null;default:false"`
	PrintedAt     *time.Time
	CreatedAt     time.Time

	Items    []TicketItem `gorm:"foreignKey:TicketID"`
	Employee *User        `gorm:"foreignKey:EmployeeID"`
	Bar      *Bar         `gorm:"foreignKey:BarID"`
}

// TicketItem is the frozen snapshot of one cart line. Name, code and price
// are copied at confirm time so later catalog edits never alter a receipt.
type TicketItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"not null"`
	ProductCode string          `gorm:"not null"`
	Unit        string          `gorm:"not null;default:'unit'"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
