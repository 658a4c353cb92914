package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/repository"
	"github.com/cotizaplus/cotiza-api/internal/service"
	"github.com/cotizaplus/cotiza-api/internal/testutil"
)

func TestNumberSequenceService_NextQuotationNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewNumberSequenceService(repository.NewNumberSequenceRepository(db), "COT", zap.NewNop())
	ctx, _ := testutil.UserContext(t)

	year := time.Now().Year()

	first, err := svc.NextQuotationNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("COT-%d-001", year), first)

	second, err := svc.NextQuotationNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("COT-%d-002", year), second)

	current, err := svc.PeekCurrentSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, current)
}

func TestNumberSequenceService_PerUserCounters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewNumberSequenceService(repository.NewNumberSequenceRepository(db), "COT", zap.NewNop())

	ctxA, _ := testutil.UserContext(t)
	ctxB, _ := testutil.UserContext(t)

	year := time.Now().Year()

	_, err := svc.NextQuotationNumber(ctxA)
	require.NoError(t, err)
	_, err = svc.NextQuotationNumber(ctxA)
	require.NoError(t, err)

	got, err := svc.NextQuotationNumber(ctxB)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("COT-%d-001", year), got)
}

func TestNumberSequenceService_PadsBeyondThreeDigits(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNumberSequenceRepository(db)
	svc := service.NewNumberSequenceService(repo, "COT", zap.NewNop())
	ctx, userID := testutil.UserContext(t)

	// Seed the counter just below the padding limit
	year := time.Now().Year()
	for i := 0; i < 999; i++ {
		_, err := repo.GetNextNumber(ctx, userID, year)
		require.NoError(t, err)
	}

	got, err := svc.NextQuotationNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("COT-%d-1000", year), got)
}
