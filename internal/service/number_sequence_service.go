package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/auth"
	"github.com/cotizaplus/cotiza-api/internal/repository"
)

// NumberSequenceService generates quotation numbers of the form
// COT-YYYY-NNN. Sequences restart at 1 each year, per user.
type NumberSequenceService struct {
	sequenceRepo *repository.NumberSequenceRepository
	prefix       string
	logger       *zap.Logger
}

func NewNumberSequenceService(sequenceRepo *repository.NumberSequenceRepository, prefix string, logger *zap.Logger) *NumberSequenceService {
	if prefix == "" {
		prefix = "COT"
	}
	return &NumberSequenceService{
		sequenceRepo: sequenceRepo,
		prefix:       prefix,
		logger:       logger,
	}
}

// NextQuotationNumber allocates the next number for the current user
// and year. The underlying counter increment is atomic, so concurrent
// saves never produce duplicates.
func (s *NumberSequenceService) NextQuotationNumber(ctx context.Context) (string, error) {
	userCtx := auth.MustFromContext(ctx)
	year := time.Now().Year()

	seq, err := s.sequenceRepo.GetNextNumber(ctx, userCtx.UserID, year)
	if err != nil {
		return "", fmt.Errorf("failed to allocate quotation number: %w", err)
	}

	number := fmt.Sprintf("%s-%d-%03d", s.prefix, year, seq)

	s.logger.Debug("quotation number allocated",
		zap.String("number", number),
		zap.String("user_id", userCtx.UserID.String()),
	)

	return number, nil
}

// PeekCurrentSequence returns the last used sequence for the current
// user and year without incrementing it.
func (s *NumberSequenceService) PeekCurrentSequence(ctx context.Context) (int, error) {
	userCtx := auth.MustFromContext(ctx)
	return s.sequenceRepo.GetCurrentSequence(ctx, userCtx.UserID, time.Now().Year())
}
