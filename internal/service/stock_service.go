package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barpos/internal/apierror"
	"barpos/internal/dto"
	"barpos/internal/model"
	"barpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// StockService manages the per-bar stock ledger. Every quantity change is a
// conditional update paired with an append-only movement row, so the ledger
// can always be reconciled against the movement history.
type StockService interface {
	Assign(ctx context.Context, req dto.AssignRequest) (*dto.AssignmentResponse, error)
	Move(ctx context.Context, req dto.MoveRequest) (*dto.MoveResponse, error)
	Query(ctx context.Context, q dto.StockQuery) ([]dto.StockRow, error)
	// Movements lists the newest ledger history rows, optionally filtered
	// by product.
	Movements(ctx context.Context, q dto.MovementsQuery) ([]dto.MovementRow, error)
	// Bulk applies operations independently: one failure never aborts the
	// siblings, and the response reports each outcome in order.
	Bulk(ctx context.Context, req dto.BulkRequest) (*dto.BulkResponse, error)
}

type stockService struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	barRepo     repository.BarRepository
	logger      zerolog.Logger
}

func NewStockService(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	barRepo repository.BarRepository,
	logger zerolog.Logger,
) StockService {
	return &stockService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
		barRepo:     barRepo,
		logger:      logger,
	}
}

func (s *stockService) Assign(ctx context.Context, req dto.AssignRequest) (*dto.AssignmentResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation("productId is not a valid UUID")
	}
	barID, err := uuid.Parse(req.BarID)
	if err != nil {
		return nil, apierror.Validation("barId is not a valid UUID")
	}
	if req.Quantity <= 0 {
		return nil, apierror.Validation("quantity must be greater than zero")
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, apierror.NotFound("Product not found: " + req.ProductID)
	}
	if _, err := s.barRepo.FindByID(ctx, barID); err != nil {
		return nil, apierror.NotFound("Bar not found: " + req.BarID)
	}

	var assignment *model.StockAssignment
	err = runTx(ctx, s.stockRepo.DB(), func(tx *gorm.DB) error {
		a, err := s.stockRepo.IncrementTx(tx, productID, barID, req.Quantity, req.Notes)
		if err != nil {
			return err
		}
		assignment = a
		return s.stockRepo.CreateMovementTx(tx, &model.StockMovement{
			ProductID:   productID,
			BarID:       barID,
			Type:        "assign",
			Quantity:    req.Quantity,
			Notes:       req.Notes,
			ReferenceID: &a.ID,
		})
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("product_id", req.ProductID).
			Str("bar_id", req.BarID).
			Int("quantity", req.Quantity).
			Msg("stock assign failed")
		return nil, apierror.Internal("Could not assign stock")
	}

	s.logger.Info().
		Str("product_id", req.ProductID).
		Str("bar_id", req.BarID).
		Int("quantity", req.Quantity).
		Int("new_quantity", assignment.Quantity).
		Msg("stock assigned")

	return assignmentResponse(assignment), nil
}

func (s *stockService) Move(ctx context.Context, req dto.MoveRequest) (*dto.MoveResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation("productId is not a valid UUID")
	}
	fromBarID, err := uuid.Parse(req.FromBarID)
	if err != nil {
		return nil, apierror.Validation("fromBarId is not a valid UUID")
	}
	toBarID, err := uuid.Parse(req.ToBarID)
	if err != nil {
		return nil, apierror.Validation("toBarId is not a valid UUID")
	}
	if fromBarID == toBarID {
		return nil, apierror.Validation("Source and destination bar are the same")
	}
	if req.Quantity <= 0 {
		return nil, apierror.Validation("quantity must be greater than zero")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, apierror.NotFound("Product not found: " + req.ProductID)
	}
	if _, err := s.barRepo.FindByID(ctx, fromBarID); err != nil {
		return nil, apierror.NotFound("Bar not found: " + req.FromBarID)
	}
	if _, err := s.barRepo.FindByID(ctx, toBarID); err != nil {
		return nil, apierror.NotFound("Bar not found: " + req.ToBarID)
	}

	resp := &dto.MoveResponse{
		ProductID: req.ProductID,
		FromBarID: req.FromBarID,
		ToBarID:   req.ToBarID,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	}
	err = runTx(ctx, s.stockRepo.DB(), func(tx *gorm.DB) error {
		// Debit first: a conditional update keeps the source from going
		// negative under concurrent moves.
		fromQty, err := s.stockRepo.DecrementTx(tx, productID, fromBarID, req.Quantity)
		if err != nil {
			return err
		}
		dest, err := s.stockRepo.IncrementTx(tx, productID, toBarID, req.Quantity, req.Notes)
		if err != nil {
			return err
		}
		resp.ID = dest.ID.String()
		resp.FromQuantity = fromQty
		resp.ToQuantity = dest.Quantity

		out := &model.StockMovement{
			ProductID:   productID,
			BarID:       fromBarID,
			Type:        "move_out",
			Quantity:    -req.Quantity,
			Notes:       req.Notes,
			ReferenceID: &dest.ID,
		}
		if err := s.stockRepo.CreateMovementTx(tx, out); err != nil {
			return err
		}
		return s.stockRepo.CreateMovementTx(tx, &model.StockMovement{
			ProductID:   productID,
			BarID:       toBarID,
			Type:        "move_in",
			Quantity:    req.Quantity,
			Notes:       req.Notes,
			ReferenceID: &out.ID,
		})
	})
	if errors.Is(err, repository.ErrInsufficientStock) {
		return nil, apierror.InsufficientStock(fmt.Sprintf(
			"Insufficient stock of %s at source bar to move %d", product.Name, req.Quantity))
	}
	if err != nil {
		s.logger.Error().Err(err).
			Str("product_id", req.ProductID).
			Str("from_bar_id", req.FromBarID).
			Str("to_bar_id", req.ToBarID).
			Msg("stock move failed")
		return nil, apierror.Internal("Could not move stock")
	}

	s.logger.Info().
		Str("product_id", req.ProductID).
		Str("from_bar_id", req.FromBarID).
		Str("to_bar_id", req.ToBarID).
		Int("quantity", req.Quantity).
		Msg("stock moved")

	return resp, nil
}

func (s *stockService) Query(ctx context.Context, q dto.StockQuery) ([]dto.StockRow, error) {
	var barID, productID *uuid.UUID
	if q.BarID != "" {
		id, err := uuid.Parse(q.BarID)
		if err != nil {
			return nil, apierror.Validation("barId is not a valid UUID")
		}
		barID = &id
	}
	if q.ProductID != "" {
		id, err := uuid.Parse(q.ProductID)
		if err != nil {
			return nil, apierror.Validation("productId is not a valid UUID")
		}
		productID = &id
	}

	assignments, err := s.stockRepo.Query(ctx, barID, productID)
	if err != nil {
		return nil, apierror.Internal("Could not query stock")
	}

	rows := make([]dto.StockRow, 0, len(assignments))
	for _, a := range assignments {
		row := dto.StockRow{
			ID:        a.ID.String(),
			ProductID: a.ProductID.String(),
			BarID:     a.BarID.String(),
			Quantity:  a.Quantity,
			Notes:     a.Notes,
			UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
		}
		if a.Product != nil {
			row.ProductName = a.Product.Name
			row.ProductCode = a.Product.Code
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *stockService) Movements(ctx context.Context, q dto.MovementsQuery) ([]dto.MovementRow, error) {
	var productID *uuid.UUID
	if q.ProductID != "" {
		id, err := uuid.Parse(q.ProductID)
		if err != nil {
			return nil, apierror.Validation("productId is not a valid UUID")
		}
		productID = &id
	}

	movements, err := s.stockRepo.ListMovements(ctx, productID, q.Limit)
	if err != nil {
		return nil, apierror.Internal("Could not list stock movements")
	}

	rows := make([]dto.MovementRow, 0, len(movements))
	for _, m := range movements {
		row := dto.MovementRow{
			ID:        m.ID.String(),
			ProductID: m.ProductID.String(),
			BarID:     m.BarID.String(),
			Type:      m.Type,
			Quantity:  m.Quantity,
			Notes:     m.Notes,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		}
		if m.ReferenceID != nil {
			row.ReferenceID = m.ReferenceID.String()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *stockService) Bulk(ctx context.Context, req dto.BulkRequest) (*dto.BulkResponse, error) {
	resp := &dto.BulkResponse{Results: make([]dto.BulkResult, 0, len(req.Operations))}

	for i, op := range req.Operations {
		resp.Processed++
		result := dto.BulkResult{Operation: fmt.Sprintf("%s #%d", op.Type, i+1)}

		var id string
		var err error
		switch op.Type {
		case "assign":
			var out *dto.AssignmentResponse
			out, err = s.Assign(ctx, dto.AssignRequest{
				ProductID: op.ProductID,
				BarID:     op.BarID,
				Quantity:  op.Quantity,
				Notes:     op.Notes,
			})
			if out != nil {
				id = out.ID
			}
		case "move":
			var out *dto.MoveResponse
			out, err = s.Move(ctx, dto.MoveRequest{
				ProductID: op.ProductID,
				FromBarID: op.FromBarID,
				ToBarID:   op.ToBarID,
				Quantity:  op.Quantity,
				Notes:     op.Notes,
			})
			if out != nil {
				id = out.ID
			}
		default:
			err = apierror.Validation("Unknown operation type: " + op.Type)
		}

		if err != nil {
			result.Status = "error"
			result.Message = err.Error()
			resp.Failed++
		} else {
			result.Status = "success"
			result.ID = id
			resp.Successful++
		}
		resp.Results = append(resp.Results, result)
	}
	return resp, nil
}

func assignmentResponse(a *model.StockAssignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:        a.ID.String(),
		ProductID: a.ProductID.String(),
		BarID:     a.BarID.String(),
		Quantity:  a.Quantity,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
