package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-api/internal/auth"
	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/mapper"
	"github.com/cotizaplus/cotiza-api/internal/repository"
)

// DefaultPrimaryColor is applied when a saved profile omits the accent color.
const DefaultPrimaryColor = "#2563eb"

type CompanyService struct {
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

func NewCompanyService(companyRepo *repository.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// Get returns the current user's company profile, or ErrNotFound when
// none has been saved yet.
func (s *CompanyService) Get(ctx context.Context) (*domain.CompanyDTO, error) {
	company, err := s.companyRepo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

// Save upserts the user's company profile. The first save creates the
// profile; later saves overwrite it in place.
func (s *CompanyService) Save(ctx context.Context, req *domain.SaveCompanyRequest) (*domain.CompanyDTO, error) {
	userCtx := auth.MustFromContext(ctx)

	primaryColor := req.PrimaryColor
	if primaryColor == "" {
		primaryColor = DefaultPrimaryColor
	}

	company, err := s.companyRepo.GetCurrent(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get company: %w", err)
		}
		company = &domain.Company{
			UserID:       userCtx.UserID,
			Name:         req.Name,
			NIT:          req.NIT,
			Address:      req.Address,
			City:         req.City,
			Phone:        req.Phone,
			Email:        req.Email,
			LogoURL:      req.LogoURL,
			PrimaryColor: primaryColor,
		}
		if err := s.companyRepo.Create(ctx, company); err != nil {
			return nil, fmt.Errorf("failed to create company: %w", err)
		}
		s.logger.Info("company profile created", zap.String("company_id", company.ID.String()))
	} else {
		company.Name = req.Name
		company.NIT = req.NIT
		company.Address = req.Address
		company.City = req.City
		company.Phone = req.Phone
		company.Email = req.Email
		company.LogoURL = req.LogoURL
		company.PrimaryColor = primaryColor

		if err := s.companyRepo.Update(ctx, company); err != nil {
			return nil, fmt.Errorf("failed to update company: %w", err)
		}
	}

	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}
