package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"barpos/internal/config"
	"barpos/internal/dto"
	"barpos/internal/model"
	"barpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		TaxRate:        "0.21",
		Currency:       "ARS",
		PaymentMethods: "cash,card,mixed",
		BusinessName:   "Groove Barras",
		ReceiptFooter:  "Gracias por su compra",
		PrinterPaperMM: 80,
	}
}

// ── Product repository stub ──────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) seed(code, name string, price float64) *model.Product {
	p := &model.Product{
		ID:     uuid.New(),
		Code:   strings.ToUpper(code),
		Name:   name,
		Price:  decimal.NewFromFloat(price),
		Unit:   "unit",
		Active: true,
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Code == code && p.Active {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Active = false
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Stock repository stub ────────────────────────────────────────────────────

type stockKey struct{ product, bar uuid.UUID }

type stubStockRepo struct {
	quantities map[stockKey]int
	movements  []model.StockMovement
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{quantities: make(map[stockKey]int)}
}

func (r *stubStockRepo) seed(productID, barID uuid.UUID, quantity int) {
	r.quantities[stockKey{productID, barID}] = quantity
}

func (r *stubStockRepo) quantity(productID, barID uuid.UUID) int {
	return r.quantities[stockKey{productID, barID}]
}

func (r *stubStockRepo) Query(_ context.Context, barID, productID *uuid.UUID) ([]model.StockAssignment, error) {
	var out []model.StockAssignment
	for k, q := range r.quantities {
		if barID != nil && k.bar != *barID {
			continue
		}
		if productID != nil && k.product != *productID {
			continue
		}
		out = append(out, model.StockAssignment{ID: uuid.New(), ProductID: k.product, BarID: k.bar, Quantity: q})
	}
	return out, nil
}

func (r *stubStockRepo) TotalQuantity(_ context.Context, productID uuid.UUID) (int, error) {
	total := 0
	for k, q := range r.quantities {
		if k.product == productID {
			total += q
		}
	}
	return total, nil
}

func (r *stubStockRepo) HasAssignments(_ context.Context, productID uuid.UUID) (bool, error) {
	for k := range r.quantities {
		if k.product == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubStockRepo) QuantityTx(_ *gorm.DB, productID, barID uuid.UUID) (int, bool, error) {
	q, ok := r.quantities[stockKey{productID, barID}]
	return q, ok, nil
}

func (r *stubStockRepo) IncrementTx(_ *gorm.DB, productID, barID uuid.UUID, quantity int, notes string) (*model.StockAssignment, error) {
	k := stockKey{productID, barID}
	r.quantities[k] += quantity
	return &model.StockAssignment{
		ID:        uuid.New(),
		ProductID: productID,
		BarID:     barID,
		Quantity:  r.quantities[k],
		Notes:     notes,
	}, nil
}

func (r *stubStockRepo) DecrementTx(_ *gorm.DB, productID, barID uuid.UUID, quantity int) (int, error) {
	k := stockKey{productID, barID}
	q, ok := r.quantities[k]
	if !ok || q < quantity {
		return 0, repository.ErrInsufficientStock
	}
	r.quantities[k] = q - quantity
	return r.quantities[k], nil
}

func (r *stubStockRepo) CreateMovementTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubStockRepo) ListMovements(_ context.Context, productID *uuid.UUID, limit int) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for i := len(r.movements) - 1; i >= 0; i-- {
		m := r.movements[i]
		if productID != nil && m.ProductID != *productID {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

var _ repository.StockRepository = (*stubStockRepo)(nil)

// ── Ticket repository stub ───────────────────────────────────────────────────

type stubTicketRepo struct {
	tickets    map[uuid.UUID]*model.Ticket
	seq        int
	failCreate bool
}

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{tickets: make(map[uuid.UUID]*model.Ticket)}
}

func (r *stubTicketRepo) CreateTx(_ context.Context, _ *gorm.DB, t *model.Ticket) error {
	if r.failCreate {
		return errors.New("connection reset during insert")
	}
	r.tickets[t.ID] = t
	return nil
}

func (r *stubTicketRepo) NextNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubTicketRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubTicketRepo) PatchAnnotations(_ context.Context, id uuid.UUID, customerName, notes *string) error {
	t, ok := r.tickets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if customerName != nil {
		t.CustomerName = customerName
	}
	if notes != nil {
		t.Notes = notes
	}
	return nil
}

func (r *stubTicketRepo) SetPrinted(_ context.Context, id uuid.UUID, printedAt time.Time) error {
	t, ok := r.tickets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Printed = true
	t.PrintedAt = &printedAt
	return nil
}

func (r *stubTicketRepo) DeleteTx(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.tickets[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.tickets, id)
	return nil
}

func (r *stubTicketRepo) Search(_ context.Context, filter dto.TicketSearchFilter) ([]model.Ticket, error) {
	var out []model.Ticket
	for _, t := range r.tickets {
		if filter.EventID != "" && t.EventID.String() != filter.EventID {
			continue
		}
		if filter.EmployeeID != "" && t.EmployeeID.String() != filter.EmployeeID {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTicketRepo) ListByBar(_ context.Context, barID uuid.UUID) ([]model.Ticket, error) {
	var out []model.Ticket
	for _, t := range r.tickets {
		if t.BarID == barID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTicketRepo) DB() *gorm.DB { return nil }

var _ repository.TicketRepository = (*stubTicketRepo)(nil)

// ── Bar repository stub ──────────────────────────────────────────────────────

type stubBarRepo struct {
	bars map[uuid.UUID]*model.Bar
}

func newStubBarRepo() *stubBarRepo {
	return &stubBarRepo{bars: make(map[uuid.UUID]*model.Bar)}
}

func (r *stubBarRepo) seed(name string) *model.Bar {
	b := &model.Bar{
		ID:      uuid.New(),
		EventID: uuid.New(),
		Name:    name,
		Status:  "active",
		Event:   &model.Event{Name: "Test Event"},
	}
	b.Event.ID = b.EventID
	r.bars[b.ID] = b
	return b
}

func (r *stubBarRepo) Create(_ context.Context, b *model.Bar) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.bars[b.ID] = b
	return nil
}

func (r *stubBarRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Bar, error) {
	b, ok := r.bars[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (r *stubBarRepo) List(_ context.Context, eventID *uuid.UUID) ([]model.Bar, error) {
	var out []model.Bar
	for _, b := range r.bars {
		if eventID != nil && b.EventID != *eventID {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

var _ repository.BarRepository = (*stubBarRepo)(nil)
