package service

import (
	"context"
	"strings"

	"barpos/internal/apierror"
	"barpos/internal/dto"
	"barpos/internal/model"
	"barpos/internal/repository"

	"github.com/google/uuid"
)

// ProductService manages the catalog. Products are soft-deleted so old
// tickets keep resolving their snapshots against a real row.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if _, err := s.repo.FindByCode(ctx, code); err == nil {
		return nil, apierror.Validation("Code already in use: " + code)
	}

	unit := req.Unit
	if unit == "" {
		unit = "unit"
	}
	p := &model.Product{
		Code:     code,
		Name:     req.Name,
		Price:    req.Price,
		Unit:     unit,
		Category: req.Category,
		Active:   true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apierror.Internal("Could not create product")
	}
	return productResponse(p), nil
}

func (s *productService) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierror.Validation("Product id is not a valid UUID")
	}
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, apierror.NotFound("Product not found: " + id)
	}
	return productResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal("Could not list products")
	}
	resp := &dto.ProductListResponse{
		Data:  make([]dto.ProductResponse, 0, len(products)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range products {
		resp.Data = append(resp.Data, *productResponse(&products[i]))
	}
	return resp, nil
}

func (s *productService) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierror.Validation("Product id is not a valid UUID")
	}
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, apierror.NotFound("Product not found: " + id)
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.Internal("Could not update product")
	}
	return productResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return apierror.Validation("Product id is not a valid UUID")
	}
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		return apierror.NotFound("Product not found: " + id)
	}
	if err := s.repo.SoftDelete(ctx, productID); err != nil {
		return apierror.Internal("Could not delete product")
	}
	return nil
}

func productResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:       p.ID.String(),
		Code:     p.Code,
		Name:     p.Name,
		Price:    p.Price,
		Unit:     p.Unit,
		Category: p.Category,
		Active:   p.Active,
	}
}
