package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/repository"
	"github.com/cotizaplus/cotiza-api/internal/service"
	"github.com/cotizaplus/cotiza-api/internal/testutil"
)

func TestCatalogService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewCatalogService(repository.NewProductRepository(db), zap.NewNop())
	ctx, _ := testutil.UserContext(t)

	t.Run("computes amounts for a unit quantity", func(t *testing.T) {
		dto, err := svc.Create(ctx, &domain.SaveCatalogProductRequest{
			Description: "Portátil Dell Inspiron 15",
			UnitPrice:   2500000,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.DefaultIVAPercentage, dto.IVAPercentage)
		assert.Equal(t, 2500000.0, dto.UnitPrice)
	})

	t.Run("explicit IVA is honored", func(t *testing.T) {
		iva := 5.0
		dto, err := svc.Create(ctx, &domain.SaveCatalogProductRequest{
			Description:   "Producto con IVA reducido",
			UnitPrice:     1000,
			IVAPercentage: &iva,
		})
		require.NoError(t, err)
		assert.Equal(t, 5.0, dto.IVAPercentage)
	})
}

func TestCatalogService_LineItemsAreInvisible(t *testing.T) {
	db := testutil.SetupTestDB(t)
	productRepo := repository.NewProductRepository(db)
	svc := service.NewCatalogService(productRepo, zap.NewNop())
	ctx, userID := testutil.UserContext(t)

	catalogDTO, err := svc.Create(ctx, &domain.SaveCatalogProductRequest{
		Description: "Entrada de catálogo",
		UnitPrice:   1000,
	})
	require.NoError(t, err)

	// A line item attached to a quotation shares the products table but
	// must never surface through the catalog API.
	quotation := &domain.Quotation{
		UserID:          userID,
		QuotationNumber: "COT-2026-001",
		Status:          domain.QuotationStatusDraft,
		Format:          domain.FormatStandard,
	}
	require.NoError(t, db.Create(quotation).Error)

	lineItem := &domain.Product{
		UserID:      userID,
		QuotationID: &quotation.ID,
		Description: "Ítem de cotización",
		Quantity:    1,
		UnitPrice:   500,
	}
	require.NoError(t, db.Create(lineItem).Error)

	t.Run("list shows catalog entries only", func(t *testing.T) {
		result, err := svc.List(ctx, 1, 20, "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)

		dtos, ok := result.Data.([]domain.CatalogProductDTO)
		require.True(t, ok)
		require.Len(t, dtos, 1)
		assert.Equal(t, catalogDTO.ID, dtos[0].ID)
	})

	t.Run("get refuses a line item", func(t *testing.T) {
		_, err := svc.GetByID(ctx, lineItem.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("update refuses a line item", func(t *testing.T) {
		_, err := svc.Update(ctx, lineItem.ID, &domain.SaveCatalogProductRequest{
			Description: "x", UnitPrice: 1,
		})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("delete refuses a line item", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, lineItem.ID), service.ErrNotFound)
	})
}

func TestCatalogService_UpdateRecomputesAmounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewCatalogService(repository.NewProductRepository(db), zap.NewNop())
	ctx, _ := testutil.UserContext(t)

	created, err := svc.Create(ctx, &domain.SaveCatalogProductRequest{
		Description: "Monitor",
		UnitPrice:   800000,
	})
	require.NoError(t, err)

	zero := 0.0
	updated, err := svc.Update(ctx, created.ID, &domain.SaveCatalogProductRequest{
		Description:   "Monitor Samsung 24 pulgadas",
		UnitPrice:     850000,
		IVAPercentage: &zero,
	})
	require.NoError(t, err)

	assert.Equal(t, "Monitor Samsung 24 pulgadas", updated.Description)
	assert.Equal(t, 850000.0, updated.UnitPrice)
	assert.Equal(t, 0.0, updated.IVAPercentage)
}

func TestCatalogService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewCatalogService(repository.NewProductRepository(db), zap.NewNop())
	ctx, _ := testutil.UserContext(t)

	created, err := svc.Create(ctx, &domain.SaveCatalogProductRequest{
		Description: "Efímero",
		UnitPrice:   100,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), service.ErrNotFound)
}
