package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/jobs"
	"github.com/cotizaplus/cotiza-api/internal/repository"
	"github.com/cotizaplus/cotiza-api/internal/testutil"
)

func seedQuotation(t *testing.T, db *gorm.DB, userID uuid.UUID, number string, status domain.QuotationStatus, daysAgo int) *domain.Quotation {
	t.Helper()

	quotation := &domain.Quotation{
		UserID:          userID,
		QuotationNumber: number,
		QuotationDate:   time.Now().UTC().AddDate(0, 0, -daysAgo),
		Format:          domain.FormatStandard,
		Status:          status,
	}
	require.NoError(t, db.Create(quotation).Error)
	return quotation
}

func TestExpiryJob_Sweep(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewQuotationRepository(db)
	job := jobs.NewExpiryJob(repo, 30, zap.NewNop())

	userA := uuid.New()
	userB := uuid.New()

	stale := seedQuotation(t, db, userA, "COT-2026-001", domain.QuotationStatusSent, 45)
	fresh := seedQuotation(t, db, userA, "COT-2026-002", domain.QuotationStatusSent, 10)
	draft := seedQuotation(t, db, userA, "COT-2026-003", domain.QuotationStatusDraft, 90)
	otherStale := seedQuotation(t, db, userB, "COT-2026-001", domain.QuotationStatusSent, 60)

	updated, err := job.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	status := func(id uuid.UUID) domain.QuotationStatus {
		var q domain.Quotation
		require.NoError(t, db.First(&q, "id = ?", id).Error)
		return q.Status
	}

	// The sweep crosses user boundaries but only touches sent quotations
	assert.Equal(t, domain.QuotationStatusExpired, status(stale.ID))
	assert.Equal(t, domain.QuotationStatusExpired, status(otherStale.ID))
	assert.Equal(t, domain.QuotationStatusSent, status(fresh.ID))
	assert.Equal(t, domain.QuotationStatusDraft, status(draft.ID))
}

func TestExpiryJob_SweepNothingToDo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewQuotationRepository(db)
	job := jobs.NewExpiryJob(repo, 30, zap.NewNop())

	seedQuotation(t, db, uuid.New(), "COT-2026-001", domain.QuotationStatusSent, 5)

	updated, err := job.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}
