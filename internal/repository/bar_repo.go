package repository

import (
	"context"

	"barpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BarRepository interface {
	Create(ctx context.Context, b *model.Bar) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bar, error)
	List(ctx context.Context, eventID *uuid.UUID) ([]model.Bar, error)
}

type barRepo struct{ db *gorm.DB }

func NewBarRepository(db *gorm.DB) BarRepository { return &barRepo{db: db} }

func (r *barRepo) Create(ctx context.Context, b *model.Bar) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *barRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Bar, error) {
	var b model.Bar
	err := r.db.WithContext(ctx).Preload("Event").First(&b, id).Error
	return &b, err
}

func (r *barRepo) List(ctx context.Context, eventID *uuid.UUID) ([]model.Bar, error) {
	var bars []model.Bar
	q := r.db.WithContext(ctx)
	if eventID != nil {
		q = q.Where("event_id = ?", *eventID)
	}
	err := q.Order("name ASC").Find(&bars).Error
	return bars, err
}
