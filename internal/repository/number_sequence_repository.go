package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cotizaplus/cotiza-api/internal/domain"
)

// NumberSequenceRepository handles database operations for quotation
// number sequences. One counter per user/year.
type NumberSequenceRepository struct {
	db *gorm.DB
}

// NewNumberSequenceRepository creates a new NumberSequenceRepository
func NewNumberSequenceRepository(db *gorm.DB) *NumberSequenceRepository {
	return &NumberSequenceRepository{db: db}
}

// GetNextNumber atomically retrieves and increments the sequence for a
// user/year. Uses SELECT FOR UPDATE to prevent race conditions. If no
// sequence exists for the user/year, it creates one starting at 1.
func (r *NumberSequenceRepository) GetNextNumber(ctx context.Context, userID uuid.UUID, year int) (int, error) {
	var seq domain.NumberSequence
	var nextSeq int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND year = ?", userID, year).
			First(&seq)

		if result.Error == gorm.ErrRecordNotFound {
			seq = domain.NumberSequence{
				UserID:       userID,
				Year:         year,
				LastSequence: 1,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			}
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to create number sequence: %w", err)
			}
			nextSeq = 1
		} else if result.Error != nil {
			return fmt.Errorf("failed to get number sequence: %w", result.Error)
		} else {
			nextSeq = seq.LastSequence + 1
			if err := tx.Model(&seq).Updates(map[string]interface{}{
				"last_sequence": nextSeq,
				"updated_at":    time.Now(),
			}).Error; err != nil {
				return fmt.Errorf("failed to update number sequence: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return nextSeq, nil
}

// GetCurrentSequence retrieves the current sequence value without
// incrementing. Returns 0 if no sequence exists for the user/year.
func (r *NumberSequenceRepository) GetCurrentSequence(ctx context.Context, userID uuid.UUID, year int) (int, error) {
	var seq domain.NumberSequence
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ?", userID, year).
		First(&seq)

	if result.Error == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if result.Error != nil {
		return 0, fmt.Errorf("failed to get number sequence: %w", result.Error)
	}

	return seq.LastSequence, nil
}
