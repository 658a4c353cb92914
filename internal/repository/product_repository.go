package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-api/internal/domain"
)

// ProductRepository handles the products table. Rows with a nil
// quotation_id are reusable catalog entries; rows with one set are line
// items owned by their quotation and managed through QuotationRepository.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// CreateBatch inserts catalog entries in one statement. Used by bulk import.
func (r *ProductRepository) CreateBatch(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&products).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyUserFilter(ctx, query)
	err := query.First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := ApplyUserFilter(ctx, r.db.WithContext(ctx))
	return query.Where("quotation_id IS NULL").Delete(&domain.Product{}, "id = ?", id).Error
}

// ListCatalog returns the user's reusable catalog entries, newest first.
func (r *ProductRepository) ListCatalog(ctx context.Context, page, pageSize int, search string) ([]domain.Product, int64, error) {
	var products []domain.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Product{}).Where("quotation_id IS NULL")
	query = ApplyUserFilter(ctx, query)

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(description) LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&products).Error

	return products, total, err
}

func (r *ProductRepository) CountCatalog(ctx context.Context) (int, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Product{}).Where("quotation_id IS NULL")
	query = ApplyUserFilter(ctx, query)
	err := query.Count(&count).Error
	return int(count), err
}
