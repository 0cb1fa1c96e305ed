package service

import (
	"context"

	"barpos/internal/apierror"
	"barpos/internal/dto"
	"barpos/internal/model"
	"barpos/internal/repository"

	"github.com/google/uuid"
)

type BarService interface {
	Create(ctx context.Context, req dto.CreateBarRequest) (*dto.BarResponse, error)
	Get(ctx context.Context, id string) (*dto.BarResponse, error)
	List(ctx context.Context, eventID string) ([]dto.BarResponse, error)
}

type barService struct {
	repo repository.BarRepository
}

func NewBarService(repo repository.BarRepository) BarService {
	return &barService{repo: repo}
}

func (s *barService) Create(ctx context.Context, req dto.CreateBarRequest) (*dto.BarResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, apierror.Validation("eventId is not a valid UUID")
	}
	b := &model.Bar{
		EventID: eventID,
		Name:    req.Name,
		Status:  "active",
	}
	if req.Printer != "" {
		b.Printer = &req.Printer
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, apierror.Internal("Could not create bar")
	}
	return barResponse(b), nil
}

func (s *barService) Get(ctx context.Context, id string) (*dto.BarResponse, error) {
	barID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierror.Validation("Bar id is not a valid UUID")
	}
	b, err := s.repo.FindByID(ctx, barID)
	if err != nil {
		return nil, apierror.NotFound("Bar not found: " + id)
	}
	return barResponse(b), nil
}

func (s *barService) List(ctx context.Context, eventID string) ([]dto.BarResponse, error) {
	var filter *uuid.UUID
	if eventID != "" {
		id, err := uuid.Parse(eventID)
		if err != nil {
			return nil, apierror.Validation("eventId is not a valid UUID")
		}
		filter = &id
	}
	bars, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal("Could not list bars")
	}
	out := make([]dto.BarResponse, 0, len(bars))
	for i := range bars {
		out = append(out, *barResponse(&bars[i]))
	}
	return out, nil
}

func barResponse(b *model.Bar) *dto.BarResponse {
	return &dto.BarResponse{
		ID:      b.ID.String(),
		EventID: b.EventID.String(),
		Name:    b.Name,
		Printer: b.Printer,
		Status:  b.Status,
	}
}
