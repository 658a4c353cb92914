package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/repository"
	"github.com/cotizaplus/cotiza-api/internal/service"
	"github.com/cotizaplus/cotiza-api/internal/testutil"
)

func TestCompanyService_SaveAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewCompanyService(repository.NewCompanyRepository(db), zap.NewNop())
	ctx, _ := testutil.UserContext(t)

	t.Run("get before save is not found", func(t *testing.T) {
		_, err := svc.Get(ctx)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("first save creates the profile", func(t *testing.T) {
		dto, err := svc.Save(ctx, &domain.SaveCompanyRequest{
			Name: "Acme S.A.S.",
			NIT:  "900123456-7",
			City: "Medellín",
		})
		require.NoError(t, err)
		assert.Equal(t, "Acme S.A.S.", dto.Name)
		// Unset color falls back to the default
		assert.Equal(t, service.DefaultPrimaryColor, dto.PrimaryColor)
	})

	t.Run("second save updates in place", func(t *testing.T) {
		before, err := svc.Get(ctx)
		require.NoError(t, err)

		dto, err := svc.Save(ctx, &domain.SaveCompanyRequest{
			Name:         "Acme Renovada S.A.S.",
			PrimaryColor: "#ff5500",
		})
		require.NoError(t, err)

		assert.Equal(t, before.ID, dto.ID)
		assert.Equal(t, "Acme Renovada S.A.S.", dto.Name)
		assert.Equal(t, "#ff5500", dto.PrimaryColor)
	})

	t.Run("profiles are per user", func(t *testing.T) {
		otherCtx, _ := testutil.UserContext(t)
		_, err := svc.Get(otherCtx)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
