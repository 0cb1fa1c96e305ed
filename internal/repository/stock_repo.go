package repository

import (
	"context"
	"errors"

	"barpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientStock is returned by conditional debits when the assignment
// does not hold the requested quantity. Services translate it into the
// client-facing taxonomy with product context.
var ErrInsufficientStock = errors.New("insufficient stock")

// StockRepository is the per-bar stock ledger. All quantity changes are
// conditional updates (quantity can never go negative) and every change
// appends a StockMovement row. Multi-row operations run inside a caller
// transaction: callers must pass the tx instance.
type StockRepository interface {
	Query(ctx context.Context, barID, productID *uuid.UUID) ([]model.StockAssignment, error)
	// TotalQuantity sums a product's assignments across all bars.
	TotalQuantity(ctx context.Context, productID uuid.UUID) (int, error)
	// HasAssignments reports whether the product is stock-tracked at all.
	HasAssignments(ctx context.Context, productID uuid.UUID) (bool, error)

	// QuantityTx reads the current quantity with a row lock (SELECT ... FOR
	// UPDATE). found=false means no assignment row exists.
	QuantityTx(tx *gorm.DB, productID, barID uuid.UUID) (quantity int, found bool, err error)
	// IncrementTx credits quantity, creating the assignment row on first use.
	IncrementTx(tx *gorm.DB, productID, barID uuid.UUID, quantity int, notes string) (*model.StockAssignment, error)
	// DecrementTx debits quantity via a conditional update; returns
	// ErrInsufficientStock (and applies nothing) when the row would go
	// negative. Safe under concurrent callers.
	DecrementTx(tx *gorm.DB, productID, barID uuid.UUID, quantity int) (newQuantity int, err error)
	CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error

	// ListMovements returns the newest movement rows first, optionally
	// filtered by product. limit <= 0 falls back to a default page size.
	ListMovements(ctx context.Context, productID *uuid.UUID, limit int) ([]model.StockMovement, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) Query(ctx context.Context, barID, productID *uuid.UUID) ([]model.StockAssignment, error) {
	var rows []model.StockAssignment
	q := r.db.WithContext(ctx).Preload("Product")
	if barID != nil {
		q = q.Where("bar_id = ?", *barID)
	}
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	err := q.Order("updated_at DESC").Find(&rows).Error
	return rows, err
}

func (r *stockRepo) TotalQuantity(ctx context.Context, productID uuid.UUID) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&model.StockAssignment{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *stockRepo) HasAssignments(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.StockAssignment{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count > 0, err
}

func (r *stockRepo) QuantityTx(tx *gorm.DB, productID, barID uuid.UUID) (int, bool, error) {
	var a model.StockAssignment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND bar_id = ?", productID, barID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return a.Quantity, true, nil
}

func (r *stockRepo) IncrementTx(tx *gorm.DB, productID, barID uuid.UUID, quantity int, notes string) (*model.StockAssignment, error) {
	a := model.StockAssignment{
		ProductID: productID,
		BarID:     barID,
		Quantity:  quantity,
		Notes:     notes,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "bar_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("stock_assignments.quantity + ?", quantity),
			"updated_at": gorm.Expr("NOW()"),
		}),
	}).Create(&a).Error
	if err != nil {
		return nil, err
	}
	// Re-read: the upsert path does not populate the merged quantity.
	var out model.StockAssignment
	if err := tx.Where("product_id = ? AND bar_id = ?", productID, barID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *stockRepo) DecrementTx(tx *gorm.DB, productID, barID uuid.UUID, quantity int) (int, error) {
	res := tx.Model(&model.StockAssignment{}).
		Where("product_id = ? AND bar_id = ? AND quantity >= ?", productID, barID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrInsufficientStock
	}
	var a model.StockAssignment
	if err := tx.Where("product_id = ? AND bar_id = ?", productID, barID).First(&a).Error; err != nil {
		return 0, err
	}
	return a.Quantity, nil
}

func (r *stockRepo) CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockRepo) ListMovements(ctx context.Context, productID *uuid.UUID, limit int) ([]model.StockMovement, error) {
	var movs []model.StockMovement
	q := r.db.WithContext(ctx)
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	if limit <= 0 {
		limit = 100
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&movs).Error
	return movs, err
}

func (r *stockRepo) DB() *gorm.DB { return r.db }
