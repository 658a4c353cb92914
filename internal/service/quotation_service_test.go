package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/repository"
	"github.com/cotizaplus/cotiza-api/internal/service"
	"github.com/cotizaplus/cotiza-api/internal/testutil"
)

func newQuotationService(t *testing.T, db *gorm.DB) *service.QuotationService {
	t.Helper()
	return service.NewQuotationService(
		repository.NewQuotationRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewCustomerRepository(db),
		service.NewNumberSequenceService(repository.NewNumberSequenceRepository(db), "COT", zap.NewNop()),
		30,
		zap.NewNop(),
	)
}

func TestQuotationService_Create(t *testing.T) {
	t.Run("generates sequential numbers per user and year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newQuotationService(t, db)
		ctx, _ := testutil.UserContext(t)

		year := time.Now().Year()

		first, err := svc.Create(ctx, &domain.SaveQuotationRequest{})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("COT-%d-001", year), first.QuotationNumber)

		second, err := svc.Create(ctx, &domain.SaveQuotationRequest{})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("COT-%d-002", year), second.QuotationNumber)

		// A different user starts its own counter
		otherCtx, _ := testutil.UserContext(t)
		other, err := svc.Create(otherCtx, &domain.SaveQuotationRequest{})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("COT-%d-001", year), other.QuotationNumber)
	})

	t.Run("keeps an explicit number", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newQuotationService(t, db)
		ctx, _ := testutil.UserContext(t)

		dto, err := svc.Create(ctx, &domain.SaveQuotationRequest{QuotationNumber: "COT-2024-099"})
		require.NoError(t, err)
		assert.Equal(t, "COT-2024-099", dto.QuotationNumber)
	})

	t.Run("applies defaults and computes totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newQuotationService(t, db)
		ctx, _ := testutil.UserContext(t)

		dto, err := svc.Create(ctx, &domain.SaveQuotationRequest{
			Items: []domain.LineItemInput{
				{Description: "Portátil", Quantity: 2, UnitPrice: 100000},
				{Description: "Mouse", Quantity: 1, UnitPrice: 50000},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.FormatStandard, dto.Format)
		assert.Equal(t, domain.QuotationStatusDraft, dto.Status)
		assert.Equal(t, domain.FormatDate(time.Now().UTC()), dto.QuotationDate)

		assert.Equal(t, 250000.0, dto.Subtotal)
		assert.Equal(t, 47500.0, dto.TotalIVA)
		assert.Equal(t, 297500.0, dto.Total)

		require.Len(t, dto.Items, 2)
		assert.Equal(t, 1, dto.Items[0].ItemNumber)
		assert.Equal(t, 238000.0, dto.Items[0].Total)
		assert.Equal(t, 2, dto.Items[1].ItemNumber)
	})

	t.Run("rejects unknown customer reference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newQuotationService(t, db)
		ctx, _ := testutil.UserContext(t)

		missing := uuid.New()
		_, err := svc.Create(ctx, &domain.SaveQuotationRequest{CustomerID: &missing})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newQuotationService(t, db)
		ctx, _ := testutil.UserContext(t)

		_, err := svc.Create(ctx, &domain.SaveQuotationRequest{QuotationDate: "20-2024-01"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestQuotationService_Update(t *testing.T) {
	t.Run("replaces the item set and recomputes totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newQuotationService(t, db)
		ctx, _ := testutil.UserContext(t)

		created, err := svc.Create(ctx, &domain.SaveQuotationRequest{
			Items: []domain.LineItemInput{
				{Description: "Portátil", Quantity: 2, UnitPrice: 100000},
				{Description: "Mouse", Quantity: 1, UnitPrice: 50000},
			},
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID, &domain.SaveQuotationRequest{
			Observations: "Precios válidos por 30 días",
			Items: []domain.LineItemInput{
				{Description: "Monitor", Quantity: 1, UnitPrice: 800000},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "Precios válidos por 30 días", updated.Observations)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, "Monitor", updated.Items[0].Description)
		assert.Equal(t, 800000.0, updated.Subtotal)
		assert.Equal(t, 152000.0, updated.TotalIVA)
		assert.Equal(t, 952000.0, updated.Total)
	})

	t.Run("replaced items are deleted, not left behind", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newQuotationService(t, db)
		catalog := service.NewCatalogService(repository.NewProductRepository(db), zap.NewNop())
		ctx, _ := testutil.UserContext(t)

		created, err := svc.Create(ctx, &domain.SaveQuotationRequest{
			Items: []domain.LineItemInput{
				{Description: "Portátil", Quantity: 2, UnitPrice: 100000},
				{Description: "Mouse", Quantity: 1, UnitPrice: 50000},
			},
		})
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID, &domain.SaveQuotationRequest{
			Items: []domain.LineItemInput{
				{Description: "Monitor", Quantity: 1, UnitPrice: 800000},
			},
		})
		require.NoError(t, err)

		// Exactly the current item set remains in the products table;
		// nothing surfaces as a catalog entry.
		var count int64
		require.NoError(t, db.Model(&domain.Product{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		listed, err := catalog.List(ctx, 1, 20, "")
		require.NoError(t, err)
		assert.Equal(t, int64(0), listed.Total)
	})

	t.Run("submitted item IDs cannot repoint existing rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newQuotationService(t, db)
		ctx, _ := testutil.UserContext(t)

		ownerCtx, ownerID := testutil.UserContext(t)
		ownerCatalog := service.NewCatalogService(repository.NewProductRepository(db), zap.NewNop())
		entry, err := ownerCatalog.Create(ownerCtx, &domain.SaveCatalogProductRequest{
			Description: "Producto ajeno",
			UnitPrice:   999999,
		})
		require.NoError(t, err)

		// Another user references the owner's row by ID
		dto, err := svc.Create(ctx, &domain.SaveQuotationRequest{
			Items: []domain.LineItemInput{
				{ID: &entry.ID, Description: "Copia", Quantity: 1, UnitPrice: 1000},
			},
		})
		require.NoError(t, err)

		var original domain.Product
		require.NoError(t, db.First(&original, "id = ?", entry.ID).Error)
		assert.Equal(t, ownerID, original.UserID)
		assert.Nil(t, original.QuotationID)
		assert.Equal(t, "Producto ajeno", original.Description)

		// The quotation got its own fresh row instead
		require.Len(t, dto.Items, 1)
		assert.NotEqual(t, entry.ID, dto.Items[0].ID)
	})

	t.Run("format switch preserves data and totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newQuotationService(t, db)
		ctx, _ := testutil.UserContext(t)

		created, err := svc.Create(ctx, &domain.SaveQuotationRequest{
			Items: []domain.LineItemInput{
				{Description: "Portátil", Quantity: 2, UnitPrice: 100000},
			},
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID, &domain.SaveQuotationRequest{
			Format: domain.FormatDetailed,
			Items: []domain.LineItemInput{
				{Description: "Portátil", Quantity: 2, UnitPrice: 100000},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.FormatDetailed, updated.Format)
		assert.Equal(t, created.Subtotal, updated.Subtotal)
		assert.Equal(t, created.TotalIVA, updated.TotalIVA)
		assert.Equal(t, created.Total, updated.Total)
	})

	t.Run("not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newQuotationService(t, db)
		ctx, _ := testutil.UserContext(t)

		_, err := svc.Update(ctx, uuid.New(), &domain.SaveQuotationRequest{})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestQuotationService_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newQuotationService(t, db)
	ctx, _ := testutil.UserContext(t)

	created, err := svc.Create(ctx, &domain.SaveQuotationRequest{})
	require.NoError(t, err)

	t.Run("draft to sent", func(t *testing.T) {
		dto, err := svc.UpdateStatus(ctx, created.ID, domain.QuotationStatusSent)
		require.NoError(t, err)
		assert.Equal(t, domain.QuotationStatusSent, dto.Status)
	})

	t.Run("sent to accepted", func(t *testing.T) {
		dto, err := svc.UpdateStatus(ctx, created.ID, domain.QuotationStatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, domain.QuotationStatusAccepted, dto.Status)
	})

	t.Run("accepted is terminal", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, created.ID, domain.QuotationStatusSent)
		assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		dto, err := svc.UpdateStatus(ctx, created.ID, domain.QuotationStatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, domain.QuotationStatusAccepted, dto.Status)
	})

	t.Run("expired can be re-sent", func(t *testing.T) {
		q, err := svc.Create(ctx, &domain.SaveQuotationRequest{})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, q.ID, domain.QuotationStatusSent)
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, q.ID, domain.QuotationStatusExpired)
		require.NoError(t, err)

		dto, err := svc.UpdateStatus(ctx, q.ID, domain.QuotationStatusSent)
		require.NoError(t, err)
		assert.Equal(t, domain.QuotationStatusSent, dto.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, created.ID, domain.QuotationStatus("archived"))
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestQuotationService_ListAndScoping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newQuotationService(t, db)
	ctx, _ := testutil.UserContext(t)
	otherCtx, _ := testutil.UserContext(t)

	_, err := svc.Create(ctx, &domain.SaveQuotationRequest{QuotationNumber: "COT-2026-001"})
	require.NoError(t, err)
	mine, err := svc.Create(ctx, &domain.SaveQuotationRequest{QuotationNumber: "COT-2026-002"})
	require.NoError(t, err)
	theirs, err := svc.Create(otherCtx, &domain.SaveQuotationRequest{QuotationNumber: "COT-2026-003"})
	require.NoError(t, err)

	t.Run("lists only own quotations", func(t *testing.T) {
		result, err := svc.List(ctx, 1, 20, "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Total)
	})

	t.Run("search by number", func(t *testing.T) {
		result, err := svc.List(ctx, 1, 20, "002", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
	})

	t.Run("status filter", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, mine.ID, domain.QuotationStatusSent)
		require.NoError(t, err)

		result, err := svc.List(ctx, 1, 20, "", domain.QuotationStatusSent)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
	})

	t.Run("cannot read another user's quotation", func(t *testing.T) {
		_, err := svc.GetByID(ctx, theirs.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("cannot delete another user's quotation", func(t *testing.T) {
		err := svc.Delete(ctx, theirs.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestQuotationService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newQuotationService(t, db)
	ctx, userID := testutil.UserContext(t)

	created, err := svc.Create(ctx, &domain.SaveQuotationRequest{
		Items: []domain.LineItemInput{
			{Description: "Portátil", Quantity: 1, UnitPrice: 100000},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	// Items are removed together with the quotation
	var count int64
	require.NoError(t, db.Model(&domain.Product{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestQuotationService_ExportPDF(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newQuotationService(t, db)
	ctx, userID := testutil.UserContext(t)

	t.Run("requires a company profile", func(t *testing.T) {
		created, err := svc.Create(ctx, &domain.SaveQuotationRequest{})
		require.NoError(t, err)

		_, _, err = svc.ExportPDF(ctx, created.ID, "")
		assert.ErrorIs(t, err, service.ErrCompanyNotConfigured)
	})

	t.Run("renders with the current profile", func(t *testing.T) {
		testutil.CreateTestCompany(t, db, userID, "Acme S.A.S.")
		customer := testutil.CreateTestCustomer(t, db, userID, "Cliente Uno")

		created, err := svc.Create(ctx, &domain.SaveQuotationRequest{
			QuotationNumber: "COT-2026-010",
			CustomerID:      &customer.ID,
			Items: []domain.LineItemInput{
				{Description: "Portátil Dell", Quantity: 2, UnitPrice: 2500000},
			},
		})
		require.NoError(t, err)

		pdf, fileName, err := svc.ExportPDF(ctx, created.ID, "")
		require.NoError(t, err)

		assert.Equal(t, "Cotizacion-COT-2026-010.pdf", fileName)
		require.NotEmpty(t, pdf)
		assert.Equal(t, "%PDF", string(pdf[:4]))
	})

	t.Run("format override", func(t *testing.T) {
		created, err := svc.Create(ctx, &domain.SaveQuotationRequest{
			Items: []domain.LineItemInput{
				{Description: "Mouse", Quantity: 1, UnitPrice: 50000},
			},
		})
		require.NoError(t, err)

		pdf, _, err := svc.ExportPDF(ctx, created.ID, domain.FormatCompact)
		require.NoError(t, err)
		assert.NotEmpty(t, pdf)

		_, _, err = svc.ExportPDF(ctx, created.ID, domain.QuotationFormat("fancy"))
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}
