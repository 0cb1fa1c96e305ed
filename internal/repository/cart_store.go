package repository

import (
	"sync"
	"time"

	"barpos/internal/model"

	"github.com/google/uuid"
)

// CartStore holds the live carts, one per bartender. Carts are deliberately
// not persisted: they exist only between first add and confirm/clear, and a
// cart is owned by exactly one session. Each entry carries its own mutex so
// rapid requests from the same session are serialized without blocking other
// bartenders.
type CartStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*cartEntry
}

type cartEntry struct {
	mu   sync.Mutex
	cart *model.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{entries: make(map[uuid.UUID]*cartEntry)}
}

// Snapshot returns a deep copy of the bartender's cart, or found=false when
// the cart was never created. Callers get a copy so they can read it without
// holding the entry lock.
func (s *CartStore) Snapshot(bartenderID uuid.UUID) (model.Cart, bool) {
	s.mu.RLock()
	entry, ok := s.entries[bartenderID]
	s.mu.RUnlock()
	if !ok {
		return model.Cart{}, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return copyCart(entry.cart), true
}

// Mutate runs fn with exclusive access to the bartender's cart. When create
// is true a missing cart is lazily initialized first; otherwise fn receives
// nil for a cart that does not exist. The entry lock is held for the whole
// call, which is what serializes two rapid add-item requests from the same
// session.
func (s *CartStore) Mutate(bartenderID uuid.UUID, create bool, fn func(cart *model.Cart) error) error {
	s.mu.Lock()
	entry, ok := s.entries[bartenderID]
	if !ok {
		if !create {
			s.mu.Unlock()
			return fn(nil)
		}
		entry = &cartEntry{}
		s.entries[bartenderID] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.cart == nil && create {
		now := time.Now()
		entry.cart = &model.Cart{
			ID:          uuid.New(),
			BartenderID: bartenderID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}
	if entry.cart != nil {
		defer func() { entry.cart.UpdatedAt = time.Now() }()
	}
	return fn(entry.cart)
}

func copyCart(c *model.Cart) model.Cart {
	out := *c
	out.Items = make([]model.CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}
