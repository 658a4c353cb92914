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

type CustomerService struct {
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

func NewCustomerService(customerRepo *repository.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (s *CustomerService) Create(ctx context.Context, req *domain.SaveCustomerRequest) (*domain.CustomerDTO, error) {
	userCtx := auth.MustFromContext(ctx)

	customer := &domain.Customer{
		UserID:   userCtx.UserID,
		Name:     req.Name,
		Company:  req.Company,
		Document: req.Document,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	dto := mapper.ToCustomerDTO(customer)
	return &dto, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerDTO, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	dto := mapper.ToCustomerDTO(customer)
	return &dto, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *domain.SaveCustomerRequest) (*domain.CustomerDTO, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	customer.Name = req.Name
	customer.Company = req.Company
	customer.Document = req.Document
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	dto := mapper.ToCustomerDTO(customer)
	return &dto, nil
}

// Delete removes the customer. Quotations that reference it keep their
// snapshot of the customer data already rendered into them.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get customer: %w", err)
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}

func (s *CustomerService) List(ctx context.Context, page, pageSize int, search string) (*domain.PaginatedResponse, error) {
	// Clamp page size
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	if page < 1 {
		page = 1
	}

	customers, total, err := s.customerRepo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	dtos := make([]domain.CustomerDTO, len(customers))
	for i := range customers {
		dtos[i] = mapper.ToCustomerDTO(&customers[i])
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
