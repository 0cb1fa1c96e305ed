package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the server-side shopping cart of one bartender session. It is not
// persisted: carts live in the in-process store, owned exclusively by the
// session that created them, and exist only between first add and confirm
// or clear.
type Cart struct {
	ID          uuid.UUID
	BartenderID uuid.UUID
	EventID     uuid.UUID
	Items       []CartItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CartItem is one accumulated line. Price is captured at first add so a
// catalog price change never retroactively alters an open cart.
type CartItem struct {
	ProductID   uuid.UUID
	ProductName string
	ProductCode string
	Unit        string
	Price       decimal.Decimal
	Quantity    int
	Total       decimal.Decimal
}

// FindItem returns a pointer into Items for productID, or nil.
func (c *Cart) FindItem(productID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// QuantityOf returns the accumulated quantity of productID already in the cart.
func (c *Cart) QuantityOf(productID uuid.UUID) int {
	if it := c.FindItem(productID); it != nil {
		return it.Quantity
	}
	return 0
}
