package repository

import (
	"context"
	"time"

	"barpos/internal/dto"
	"barpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketRepository interface {
	// CreateTx persists the ticket and its items inside the confirm
	// transaction — callers must pass the tx instance.
	CreateTx(ctx context.Context, tx *gorm.DB, t *model.Ticket) error
	NextNumber(ctx context.Context, tx *gorm.DB) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	// PatchAnnotations updates only the mutable annotation fields.
	PatchAnnotations(ctx context.Context, id uuid.UUID, customerName, notes *string) error
	SetPrinted(ctx context.Context, id uuid.UUID, printedAt time.Time) error
	// DeleteTx removes the ticket and its items inside the caller's
	// transaction so stock restoration and deletion commit together.
	DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Search(ctx context.Context, filter dto.TicketSearchFilter) ([]model.Ticket, error)
	ListByBar(ctx context.Context, barID uuid.UUID) ([]model.Ticket, error)
	DB() *gorm.DB
}

type ticketRepo struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) TicketRepository { return &ticketRepo{db: db} }

func (r *ticketRepo) CreateTx(ctx context.Context, tx *gorm.DB, t *model.Ticket) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *ticketRepo) NextNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// PostgreSQL sequence keeps numbering atomic across server instances.
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('tickets_number_seq')").Scan(&num).Error
	return num, err
}

func (r *ticketRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).Preload("Items").Preload("Employee").Preload("Bar").First(&t, id).Error
	return &t, err
}

func (r *ticketRepo) PatchAnnotations(ctx context.Context, id uuid.UUID, customerName, notes *string) error {
	updates := map[string]interface{}{}
	if customerName != nil {
		updates["customer_name"] = *customerName
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.Ticket{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ticketRepo) SetPrinted(ctx context.Context, id uuid.UUID, printedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Ticket{}).Where("id = ?", id).Updates(map[string]interface{}{
		"printed":    true,
		"printed_at": printedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ticketRepo) DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if err := tx.WithContext(ctx).Where("ticket_id = ?", id).Delete(&model.TicketItem{}).Error; err != nil {
		return err
	}
	res := tx.WithContext(ctx).Delete(&model.Ticket{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ticketRepo) Search(ctx context.Context, filter dto.TicketSearchFilter) ([]model.Ticket, error) {
	var tickets []model.Ticket
	q := r.db.WithContext(ctx).Preload("Items")
	if filter.EventID != "" {
		q = q.Where("event_id = ?", filter.EventID)
	}
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	err := q.Order("created_at DESC").Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepo) ListByBar(ctx context.Context, barID uuid.UUID) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := r.db.WithContext(ctx).Preload("Items").Preload("Employee").
		Where("bar_id = ?", barID).
		Order("created_at ASC").
		Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepo) DB() *gorm.DB { return r.db }
