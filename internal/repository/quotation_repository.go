package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-api/internal/domain"
)

type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

func (r *QuotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	var quotation domain.Quotation
	query := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_number ASC")
		}).
		Where("id = ?", id)
	query = ApplyUserFilter(ctx, query)
	if err := query.First(&quotation).Error; err != nil {
		return nil, err
	}
	return &quotation, nil
}

func (r *QuotationRepository) List(ctx context.Context, page, pageSize int, search string, status domain.QuotationStatus) ([]domain.Quotation, int64, error) {
	var quotations []domain.Quotation
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Quotation{})
	query = ApplyUserFilter(ctx, query)

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(quotation_number) LIKE ?", searchPattern)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Customer").
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&quotations).Error

	return quotations, total, err
}

// SaveWithItems persists the quotation and its full line-item set in one
// transaction. The quotation's stored items are deleted and the
// submitted set inserted as fresh rows, so the stored items always
// mirror the editor state (replace-all semantics). Item identities are
// never taken from the caller; catalog entries stay untouched when a
// quotation adopts their values.
func (r *QuotationRepository) SaveWithItems(ctx context.Context, quotation *domain.Quotation, items []domain.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if quotation.ID == uuid.Nil {
			if err := tx.Create(quotation).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Omit("Company", "Customer", "Items").Save(quotation).Error; err != nil {
				return err
			}
			if err := tx.Where("quotation_id = ?", quotation.ID).
				Delete(&domain.Product{}).Error; err != nil {
				return err
			}
		}

		for i := range items {
			items[i].ID = uuid.Nil
			items[i].QuotationID = &quotation.ID
			items[i].UserID = quotation.UserID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}

		quotation.Items = items
		return nil
	})
}

// Delete removes the quotation and its line items.
func (r *QuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itemQuery := ApplyUserFilter(ctx, tx)
		if err := itemQuery.Where("quotation_id = ?", id).Delete(&domain.Product{}).Error; err != nil {
			return err
		}
		query := ApplyUserFilter(ctx, tx)
		return query.Delete(&domain.Quotation{}, "id = ?", id).Error
	})
}

func (r *QuotationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuotationStatus) error {
	query := ApplyUserFilter(ctx, r.db.WithContext(ctx).Model(&domain.Quotation{}))
	return query.Where("id = ?", id).Update("status", status).Error
}

// FindExpired returns sent quotations whose date fell outside the
// validity window before the cutoff. Not user-scoped; the expiry job
// sweeps all users.
func (r *QuotationRepository) FindExpired(ctx context.Context, cutoff time.Time) ([]domain.Quotation, error) {
	var quotations []domain.Quotation
	err := r.db.WithContext(ctx).
		Where("status = ? AND quotation_date < ?", domain.QuotationStatusSent, cutoff).
		Find(&quotations).Error
	return quotations, err
}

// MarkExpired transitions the given quotations to expired.
func (r *QuotationRepository) MarkExpired(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&domain.Quotation{}).
		Where("id IN ? AND status = ?", ids, domain.QuotationStatusSent).
		Update("status", domain.QuotationStatusExpired)
	return result.RowsAffected, result.Error
}

func (r *QuotationRepository) Count(ctx context.Context) (int, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Quotation{})
	query = ApplyUserFilter(ctx, query)
	err := query.Count(&count).Error
	return int(count), err
}
