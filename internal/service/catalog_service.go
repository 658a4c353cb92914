package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-api/internal/auth"
	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/mapper"
	"github.com/cotizaplus/cotiza-api/internal/repository"
)

// CatalogService manages reusable catalog entries. Entries live in the
// products table with no quotation attached.
type CatalogService struct {
	productRepo *repository.ProductRepository
	logger      *zap.Logger
}

func NewCatalogService(productRepo *repository.ProductRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *CatalogService) Create(ctx context.Context, req *domain.SaveCatalogProductRequest) (*domain.CatalogProductDTO, error) {
	userCtx := auth.MustFromContext(ctx)

	product := &domain.Product{
		UserID:       userCtx.UserID,
		Description:  req.Description,
		UnitPrice:    req.UnitPrice,
		Quantity:     1,
		Availability: req.Availability,
		Warranty:     req.Warranty,
		ImageURL:     req.ImageURL,
	}
	if req.IVAPercentage != nil {
		product.IVAPercentage = *req.IVAPercentage
	} else {
		product.IVAPercentage = domain.DefaultIVAPercentage
	}
	ComputeLineAmounts(product)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create catalog product: %w", err)
	}

	dto := mapper.ToCatalogProductDTO(product)
	return &dto, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogProductDTO, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get catalog product: %w", err)
	}
	if !product.IsCatalogEntry() {
		return nil, ErrNotFound
	}

	dto := mapper.ToCatalogProductDTO(product)
	return &dto, nil
}

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req *domain.SaveCatalogProductRequest) (*domain.CatalogProductDTO, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get catalog product: %w", err)
	}
	if !product.IsCatalogEntry() {
		return nil, ErrNotFound
	}

	product.Description = req.Description
	product.UnitPrice = req.UnitPrice
	product.Availability = req.Availability
	product.Warranty = req.Warranty
	product.ImageURL = req.ImageURL
	if req.IVAPercentage != nil {
		product.IVAPercentage = *req.IVAPercentage
	}
	ComputeLineAmounts(product)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update catalog product: %w", err)
	}

	dto := mapper.ToCatalogProductDTO(product)
	return &dto, nil
}

// Delete removes a catalog entry. Line items are untouched; the
// repository refuses rows attached to a quotation.
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get catalog product: %w", err)
	}
	if !product.IsCatalogEntry() {
		return ErrNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete catalog product: %w", err)
	}

	return nil
}

func (s *CatalogService) List(ctx context.Context, page, pageSize int, search string) (*domain.PaginatedResponse, error) {
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	if page < 1 {
		page = 1
	}

	products, total, err := s.productRepo.ListCatalog(ctx, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog products: %w", err)
	}

	dtos := make([]domain.CatalogProductDTO, len(products))
	for i := range products {
		dtos[i] = mapper.ToCatalogProductDTO(&products[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
