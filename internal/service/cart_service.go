package service

import (
	"context"
	"fmt"
	"time"

	"barpos/internal/apierror"
	"barpos/internal/config"
	"barpos/internal/dto"
	"barpos/internal/model"
	"barpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CartService is the bartender cart engine. Carts live in process memory,
// one per bartender session; every mutation returns a fresh summary so the
// screen never has to recompute totals.
type CartService interface {
	// AddInput resolves one keyboard token and merges the resulting line
	// into the bartender's cart, creating the cart on first use.
	AddInput(ctx context.Context, bartenderID uuid.UUID, req dto.InputRequest) (*dto.InputResponse, error)
	// Get fails NotFound until the cart has been created; a cleared cart
	// still exists and reads as empty.
	Get(ctx context.Context, bartenderID uuid.UUID, bartenderName string) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, bartenderID uuid.UUID, req dto.RemoveItemRequest) (*dto.RemoveItemResponse, error)
	// Clear empties the cart. Clearing an absent or already empty cart is a
	// no-op, not an error.
	Clear(ctx context.Context, bartenderID uuid.UUID) (*dto.ClearCartResponse, error)
}

type cartService struct {
	store     *repository.CartStore
	catalog   CatalogService
	stockRepo repository.StockRepository
	cfg       *config.Config
	logger    zerolog.Logger
}

func NewCartService(
	store *repository.CartStore,
	catalog CatalogService,
	stockRepo repository.StockRepository,
	cfg *config.Config,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		store:     store,
		catalog:   catalog,
		stockRepo: stockRepo,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *cartService) AddInput(ctx context.Context, bartenderID uuid.UUID, req dto.InputRequest) (*dto.InputResponse, error) {
	product, quantity, err := s.catalog.Resolve(ctx, req.Input, req.EventID)
	if err != nil {
		return nil, err
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, apierror.Validation("eventId is not a valid UUID")
	}

	resp := &dto.InputResponse{Success: true}
	err = s.store.Mutate(bartenderID, true, func(cart *model.Cart) error {
		if cart.EventID == uuid.Nil {
			cart.EventID = eventID
		}

		// Advisory availability check against the product's total allocation
		// across bars. The bar is unknown until confirm, so this only catches
		// the obvious oversell; the authoritative check is the conditional
		// decrement at confirm time. Untracked products are never blocked.
		needed := cart.QuantityOf(product.ID) + quantity
		if err := s.checkAvailability(ctx, product, needed); err != nil {
			return err
		}

		item := cart.FindItem(product.ID)
		if item == nil {
			cart.Items = append(cart.Items, model.CartItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				ProductCode: product.Code,
				Unit:        product.Unit,
				Price:       product.Price,
			})
			item = &cart.Items[len(cart.Items)-1]
		}
		item.Quantity += quantity
		item.Total = item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))

		resp.Message = fmt.Sprintf("%d x %s added", quantity, product.Name)
		resp.Product = dto.TouchedProduct{
			Name:     product.Name,
			Code:     product.Code,
			Price:    product.Price,
			Quantity: item.Quantity,
			Total:    item.Total,
		}
		resp.CartSummary = s.summarize(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("bartender_id", bartenderID.String()).
		Str("code", product.Code).
		Int("quantity", quantity).
		Msg("cart item added")

	return resp, nil
}

func (s *cartService) checkAvailability(ctx context.Context, product *model.Product, needed int) error {
	tracked, err := s.stockRepo.HasAssignments(ctx, product.ID)
	if err != nil || !tracked {
		// A ledger read failure must not block sales; confirm still enforces.
		return nil
	}
	total, err := s.stockRepo.TotalQuantity(ctx, product.ID)
	if err != nil {
		return nil
	}
	if total < needed {
		return apierror.InsufficientStock(fmt.Sprintf(
			"Insufficient stock of %s: %d available, %d requested", product.Name, total, needed))
	}
	return nil
}

func (s *cartService) Get(ctx context.Context, bartenderID uuid.UUID, bartenderName string) (*dto.CartResponse, error) {
	cart, found := s.store.Snapshot(bartenderID)
	if !found {
		// Never created and cleared are distinct: a cleared cart still
		// exists and reads as empty.
		return nil, apierror.NotFound("No cart for this bartender")
	}
	resp := &dto.CartResponse{
		CartSummaryDTO: s.summarize(&cart),
		ID:             cart.ID.String(),
		BartenderID:    cart.BartenderID.String(),
		BartenderName:  bartenderName,
		CreatedAt:      cart.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      cart.UpdatedAt.Format(time.RFC3339),
	}
	if cart.EventID != uuid.Nil {
		resp.EventID = cart.EventID.String()
	}
	return resp, nil
}

func (s *cartService) RemoveItem(ctx context.Context, bartenderID uuid.UUID, req dto.RemoveItemRequest) (*dto.RemoveItemResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation("productId is not a valid UUID")
	}

	resp := &dto.RemoveItemResponse{Success: true}
	err = s.store.Mutate(bartenderID, false, func(cart *model.Cart) error {
		if cart == nil {
			return apierror.NotFound("Cart is empty")
		}
		idx := -1
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apierror.NotFound("Product is not in the cart")
		}
		removed := cart.Items[idx]
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		resp.Message = removed.ProductName + " removed"
		resp.CartSummary = s.summarize(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *cartService) Clear(ctx context.Context, bartenderID uuid.UUID) (*dto.ClearCartResponse, error) {
	err := s.store.Mutate(bartenderID, false, func(cart *model.Cart) error {
		if cart != nil {
			cart.Items = nil
			cart.EventID = uuid.Nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.ClearCartResponse{Message: "Cart cleared"}, nil
}

// summarize recomputes totals from scratch on every call: line totals are
// already frozen, subtotal is their sum, tax is derived from the configured
// rate and rounded to cents.
func (s *cartService) summarize(cart *model.Cart) dto.CartSummaryDTO {
	summary := emptySummary()
	for _, it := range cart.Items {
		summary.Items = append(summary.Items, dto.CartItemDTO{
			ProductID:   it.ProductID.String(),
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Total:       it.Total,
			Unit:        it.Unit,
		})
		summary.TotalItems++
		summary.TotalQuantity += it.Quantity
		summary.Subtotal = summary.Subtotal.Add(it.Total)
	}
	summary.Tax = summary.Subtotal.Mul(s.cfg.Tax()).Round(2)
	summary.Total = summary.Subtotal.Add(summary.Tax)
	return summary
}

func emptySummary() dto.CartSummaryDTO {
	return dto.CartSummaryDTO{
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
		Items:    []dto.CartItemDTO{},
	}
}
