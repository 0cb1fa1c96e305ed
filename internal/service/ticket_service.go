package service

import (
	"context"
	"errors"
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
	"gorm.io/gorm"
)

// ReceiptQueue enqueues background receipt rendering after a confirm.
// Implemented by the worker dispatcher; nil disables background receipts.
type ReceiptQueue interface {
	EnqueueReceipt(ctx context.Context, ticketID uuid.UUID, customerEmail string) error
}

// TicketService is the ticket factory: it turns a cart into an immutable
// ticket while debiting the confirm bar's stock, all inside one transaction.
type TicketService interface {
	Confirm(ctx context.Context, bartenderID uuid.UUID, bartenderName string, req dto.ConfirmRequest) (*dto.ConfirmResponse, error)
	Get(ctx context.Context, id string) (*dto.TicketResponse, error)
	// Patch may only touch annotations; financial fields are immutable.
	Patch(ctx context.Context, id string, req dto.PatchTicketRequest) (*dto.TicketResponse, error)
	// MarkPrinted is idempotent: re-marking overwrites the timestamp.
	MarkPrinted(ctx context.Context, id string) (*dto.PrintedResponse, error)
	// Delete removes the ticket and restores its quantities to the bar's
	// ledger with rollback movements.
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter dto.TicketSearchFilter) ([]dto.TicketResponse, error)
}

type ticketService struct {
	store      *repository.CartStore
	ticketRepo repository.TicketRepository
	stockRepo  repository.StockRepository
	barRepo    repository.BarRepository
	queue      ReceiptQueue
	cfg        *config.Config
	logger     zerolog.Logger
}

func NewTicketService(
	store *repository.CartStore,
	ticketRepo repository.TicketRepository,
	stockRepo repository.StockRepository,
	barRepo repository.BarRepository,
	queue ReceiptQueue,
	cfg *config.Config,
	logger zerolog.Logger,
) TicketService {
	return &ticketService{
		store:      store,
		ticketRepo: ticketRepo,
		stockRepo:  stockRepo,
		barRepo:    barRepo,
		queue:      queue,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *ticketService) Confirm(ctx context.Context, bartenderID uuid.UUID, bartenderName string, req dto.ConfirmRequest) (*dto.ConfirmResponse, error) {
	barID, err := uuid.Parse(req.BarID)
	if err != nil {
		return nil, apierror.Validation("barId is not a valid UUID")
	}
	payment := req.PaymentMethod
	if payment == "" {
		payment = "cash"
	}
	if !s.cfg.AcceptsPaymentMethod(payment) {
		return nil, apierror.Validation("Unsupported payment method: " + payment)
	}

	cart, found := s.store.Snapshot(bartenderID)
	if !found || len(cart.Items) == 0 {
		return nil, apierror.EmptyCart("Cart is empty")
	}

	bar, err := s.barRepo.FindByID(ctx, barID)
	if err != nil {
		return nil, apierror.NotFound("Bar not found: " + req.BarID)
	}

	ticket := s.buildTicket(&cart, bar, bartenderID, req, payment)

	// Stock debit and ticket persistence commit together. The pre-check
	// pass locks every line's assignment row and rejects insufficiency
	// before anything mutates; once decrements begin, any later failure is
	// a consistency fault and the outcome is reported as unknown.
	mutated := false
	err = runTx(ctx, s.ticketRepo.DB(), func(tx *gorm.DB) error {
		type line struct {
			item    model.CartItem
			tracked bool
		}
		lines := make([]line, 0, len(cart.Items))
		for _, it := range cart.Items {
			qty, tracked, err := s.stockRepo.QuantityTx(tx, it.ProductID, barID)
			if err != nil {
				return err
			}
			if tracked && qty < it.Quantity {
				return apierror.InsufficientStock(fmt.Sprintf(
					"Insufficient stock of %s at this bar: %d available, %d requested",
					it.ProductName, qty, it.Quantity))
			}
			lines = append(lines, line{item: it, tracked: tracked})
		}

		for _, l := range lines {
			if !l.tracked {
				continue
			}
			mutated = true
			if _, err := s.stockRepo.DecrementTx(tx, l.item.ProductID, barID, l.item.Quantity); err != nil {
				return err
			}
			err := s.stockRepo.CreateMovementTx(tx, &model.StockMovement{
				ProductID:   l.item.ProductID,
				BarID:       barID,
				Type:        "sale",
				Quantity:    -l.item.Quantity,
				ReferenceID: &ticket.ID,
			})
			if err != nil {
				return err
			}
		}

		number, err := s.ticketRepo.NextNumber(ctx, tx)
		if err != nil {
			return err
		}
		ticket.Number = number
		mutated = true
		return s.ticketRepo.CreateTx(ctx, tx, ticket)
	})
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			// Lost a race between pre-check and decrement.
			return nil, apierror.InsufficientStock("Insufficient stock at this bar")
		}
		var tagged *apierror.Error
		if errors.As(err, &tagged) && !mutated {
			return nil, err
		}
		if mutated {
			s.logger.Error().Err(err).
				Str("bartender_id", bartenderID.String()).
				Str("bar_id", req.BarID).
				Str("ticket_id", ticket.ID.String()).
				Msg("confirm failed after stock mutation, outcome unknown to client")
			return nil, apierror.Consistency(err.Error())
		}
		s.logger.Error().Err(err).
			Str("bartender_id", bartenderID.String()).
			Str("bar_id", req.BarID).
			Msg("confirm failed")
		return nil, apierror.Internal("Could not confirm sale")
	}

	// The cart is consumed only after the transaction committed.
	_ = s.store.Mutate(bartenderID, false, func(c *model.Cart) error {
		if c != nil {
			c.Items = nil
			c.EventID = uuid.Nil
		}
		return nil
	})

	if s.queue != nil {
		if err := s.queue.EnqueueReceipt(ctx, ticket.ID, req.CustomerEmail); err != nil {
			s.logger.Warn().Err(err).Str("ticket_id", ticket.ID.String()).Msg("receipt job enqueue failed")
		}
	}

	s.logger.Info().
		Str("ticket_id", ticket.ID.String()).
		Int("number", ticket.Number).
		Str("bar_id", req.BarID).
		Str("payment_method", payment).
		Str("total", ticket.Total.String()).
		Msg("sale confirmed")

	return &dto.ConfirmResponse{
		Success:     true,
		TicketID:    ticket.ID.String(),
		Message:     fmt.Sprintf("Ticket #%06d created", ticket.Number),
		PrintFormat: s.buildPrintFormat(ticket, bar, bartenderName),
	}, nil
}

// buildTicket freezes the cart into a ticket: line names, codes and prices
// are snapshots, totals are recomputed from the frozen lines.
func (s *ticketService) buildTicket(cart *model.Cart, bar *model.Bar, bartenderID uuid.UUID, req dto.ConfirmRequest, payment string) *model.Ticket {
	subtotal := decimal.Zero
	items := make([]model.TicketItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, model.TicketItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Unit:        it.Unit,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Total:       it.Total,
		})
		subtotal = subtotal.Add(it.Total)
	}
	tax := subtotal.Mul(s.cfg.Tax()).Round(2)

	t := &model.Ticket{
		ID:            uuid.New(),
		EventID:       cart.EventID,
		BarID:         bar.ID,
		EmployeeID:    bartenderID,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         subtotal.Add(tax),
		PaymentMethod: payment,
		CreatedAt:     time.Now(),
		Items:         items,
	}
	if req.CustomerName != "" {
		t.CustomerName = &req.CustomerName
	}
	if req.Notes != "" {
		t.Notes = &req.Notes
	}
	for i := range t.Items {
		t.Items[i].TicketID = t.ID
	}
	return t
}

func (s *ticketService) buildPrintFormat(t *model.Ticket, bar *model.Bar, bartenderName string) dto.PrintFormat {
	var pf dto.PrintFormat

	pf.Header.BusinessName = s.cfg.BusinessName
	pf.Header.BusinessAddress = s.cfg.BusinessAddress
	pf.Header.BusinessPhone = s.cfg.BusinessPhone
	pf.Header.BusinessTaxID = s.cfg.BusinessTaxID
	pf.Header.BusinessEmail = s.cfg.BusinessEmail

	pf.Ticket.TicketNumber = fmt.Sprintf("%06d", t.Number)
	pf.Ticket.UserName = bartenderName
	pf.Ticket.BarName = bar.Name
	if bar.Event != nil {
		pf.Ticket.EventName = bar.Event.Name
	}
	pf.Ticket.Date = t.CreatedAt.Format("02/01/2006")
	pf.Ticket.Time = t.CreatedAt.Format("15:04")
	pf.Ticket.Currency = s.cfg.Currency

	rate := s.cfg.Tax()
	for _, it := range t.Items {
		pf.Items = append(pf.Items, dto.PrintItem{
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Subtotal:  it.Total,
			TaxRate:   rate,
			Tax:       it.Total.Mul(rate).Round(2),
		})
	}

	pf.Totals.Subtotal = t.Subtotal
	pf.Totals.Tax = t.Tax
	pf.Totals.Total = t.Total
	pf.Totals.Currency = s.cfg.Currency

	pf.Payment.Method = t.PaymentMethod
	pf.Payment.PaidAmount = t.Total
	pf.Payment.ChangeAmount = decimal.Zero
	pf.Payment.Currency = s.cfg.Currency

	pf.Footer.ThankYouMessage = s.cfg.ReceiptFooter
	pf.Footer.BusinessWebsite = s.cfg.BusinessWebsite
	pf.Footer.ReceiptFooter = s.cfg.ReceiptFooter

	pf.PrinterSettings.PaperWidth = s.cfg.PrinterPaperMM
	pf.PrinterSettings.FontSize = 12
	pf.PrinterSettings.FontFamily = "monospace"

	return pf
}

func (s *ticketService) Get(ctx context.Context, id string) (*dto.TicketResponse, error) {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierror.Validation("Ticket id is not a valid UUID")
	}
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, apierror.NotFound("Ticket not found: " + id)
	}
	return ticketResponse(t), nil
}

func (s *ticketService) Patch(ctx context.Context, id string, req dto.PatchTicketRequest) (*dto.TicketResponse, error) {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierror.Validation("Ticket id is not a valid UUID")
	}
	err = s.ticketRepo.PatchAnnotations(ctx, ticketID, req.CustomerName, req.Notes)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Ticket not found: " + id)
	}
	if err != nil {
		return nil, apierror.Internal("Could not update ticket")
	}
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, apierror.NotFound("Ticket not found: " + id)
	}
	return ticketResponse(t), nil
}

func (s *ticketService) MarkPrinted(ctx context.Context, id string) (*dto.PrintedResponse, error) {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierror.Validation("Ticket id is not a valid UUID")
	}
	now := time.Now()
	err = s.ticketRepo.SetPrinted(ctx, ticketID, now)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Ticket not found: " + id)
	}
	if err != nil {
		return nil, apierror.Internal("Could not mark ticket as printed")
	}
	return &dto.PrintedResponse{
		ID:        id,
		Printed:   true,
		PrintedAt: now.Format(time.RFC3339),
	}, nil
}

func (s *ticketService) Delete(ctx context.Context, id string) error {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return apierror.Validation("Ticket id is not a valid UUID")
	}
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return apierror.NotFound("Ticket not found: " + id)
	}

	err = runTx(ctx, s.ticketRepo.DB(), func(tx *gorm.DB) error {
		for _, it := range t.Items {
			// Restore only ledger-tracked lines; creating an assignment row
			// for a product that was never stocked here would corrupt the
			// ledger.
			_, tracked, err := s.stockRepo.QuantityTx(tx, it.ProductID, t.BarID)
			if err != nil {
				return err
			}
			if !tracked {
				continue
			}
			if _, err := s.stockRepo.IncrementTx(tx, it.ProductID, t.BarID, it.Quantity, "ticket deleted"); err != nil {
				return err
			}
			err = s.stockRepo.CreateMovementTx(tx, &model.StockMovement{
				ProductID:   it.ProductID,
				BarID:       t.BarID,
				Type:        "rollback",
				Quantity:    it.Quantity,
				ReferenceID: &t.ID,
			})
			if err != nil {
				return err
			}
		}
		return s.ticketRepo.DeleteTx(ctx, tx, ticketID)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound("Ticket not found: " + id)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("ticket_id", id).Msg("ticket delete failed")
		return apierror.Internal("Could not delete ticket")
	}

	s.logger.Info().Str("ticket_id", id).Int("number", t.Number).Msg("ticket deleted, stock restored")
	return nil
}

func (s *ticketService) Search(ctx context.Context, filter dto.TicketSearchFilter) ([]dto.TicketResponse, error) {
	if filter.EventID != "" {
		if _, err := uuid.Parse(filter.EventID); err != nil {
			return nil, apierror.Validation("eventId is not a valid UUID")
		}
	}
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, apierror.Validation("employeeId is not a valid UUID")
		}
	}
	tickets, err := s.ticketRepo.Search(ctx, filter)
	if err != nil {
		return nil, apierror.Internal("Could not search tickets")
	}
	out := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, *ticketResponse(&tickets[i]))
	}
	return out, nil
}

func ticketResponse(t *model.Ticket) *dto.TicketResponse {
	resp := &dto.TicketResponse{
		ID:            t.ID.String(),
		Number:        t.Number,
		EventID:       t.EventID.String(),
		BarID:         t.BarID.String(),
		EmployeeID:    t.EmployeeID.String(),
		CustomerName:  t.CustomerName,
		Subtotal:      t.Subtotal,
		Tax:           t.Tax,
		Total:         t.Total,
		PaymentMethod: t.PaymentMethod,
		Notes:         t.Notes,
		Printed:       t.Printed,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		Items:         make([]dto.TicketItemResponse, 0, len(t.Items)),
	}
	if t.PrintedAt != nil {
		printedAt := t.PrintedAt.Format(time.RFC3339)
		resp.PrintedAt = &printedAt
	}
	for _, it := range t.Items {
		resp.Items = append(resp.Items, dto.TicketItemResponse{
			ProductID:   it.ProductID.String(),
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Total:       it.Total,
		})
	}
	return resp
}
