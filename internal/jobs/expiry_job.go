package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/domain"
)

// ExpiryJobName is the name of the quotation expiry sweep job
const ExpiryJobName = "quotation_expiry"

// DefaultExpiryTimeout bounds a single sweep run
const DefaultExpiryTimeout = 2 * time.Minute

// ExpiryRepository is the slice of the quotation repository the sweep
// needs. The sweep runs across all users, outside any request scope.
type ExpiryRepository interface {
	FindExpired(ctx context.Context, cutoff time.Time) ([]domain.Quotation, error)
	MarkExpired(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// ExpiryJob marks sent quotations as expired once their validity
// window has passed.
type ExpiryJob struct {
	repo         ExpiryRepository
	validityDays int
	logger       *zap.Logger
	timeout      time.Duration
}

// NewExpiryJob creates a new quotation expiry job. validityDays is how
// long a sent quotation stays valid from its quotation date.
func NewExpiryJob(repo ExpiryRepository, validityDays int, logger *zap.Logger) *ExpiryJob {
	return &ExpiryJob{
		repo:         repo,
		validityDays: validityDays,
		logger:       logger,
		timeout:      DefaultExpiryTimeout,
	}
}

// Run executes one expiry sweep. Called by the scheduler according to
// the configured cron expression.
func (j *ExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.Sweep(ctx); err != nil {
		j.logger.Error("quotation expiry sweep failed", zap.Error(err))
	}
}

// Sweep finds sent quotations older than the validity window and marks
// them expired. Returns how many were updated.
func (j *ExpiryJob) Sweep(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -j.validityDays)

	expired, err := j.repo.FindExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(expired))
	for _, q := range expired {
		ids = append(ids, q.ID)
	}

	updated, err := j.repo.MarkExpired(ctx, ids)
	if err != nil {
		return 0, err
	}

	j.logger.Info("quotation expiry sweep completed",
		zap.Int64("expired", updated),
		zap.Time("cutoff", cutoff))

	return updated, nil
}
