package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-api/internal/domain"
)

// CompanyRepository handles the issuing company profile. Each user has
// at most one profile; reads return the most recent row.
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyUserFilter(ctx, query)
	if err := query.First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// GetCurrent returns the user's company profile, or gorm.ErrRecordNotFound
// when none has been saved yet.
func (r *CompanyRepository) GetCurrent(ctx context.Context) (*domain.Company, error) {
	var company domain.Company
	query := ApplyUserFilter(ctx, r.db.WithContext(ctx))
	if err := query.Order("created_at DESC").First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}
