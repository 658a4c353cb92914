package service_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/repository"
	"github.com/cotizaplus/cotiza-api/internal/service"
	"github.com/cotizaplus/cotiza-api/internal/testutil"
)

func TestImportService_ImportCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	productRepo := repository.NewProductRepository(db)
	svc := service.NewImportService(productRepo, zap.NewNop())
	ctx, userID := testutil.UserContext(t)

	t.Run("accepts valid rows", func(t *testing.T) {
		csvData := strings.Join([]string{
			"numero_item;descripcion;precio_unitario;iva_porcentaje;disponibilidad;garantia;url_imagen",
			"1;Portátil Dell Inspiron 15;2500000;19;Entrega inmediata;12 meses;",
			"2;Mouse inalámbrico Logitech;350000;19;;;",
		}, "\n")

		result, err := svc.Import(ctx, strings.NewReader(csvData), "productos.csv")
		require.NoError(t, err)

		assert.Equal(t, 2, result.TotalRows)
		assert.Equal(t, 2, result.Accepted)
		assert.Empty(t, result.Errors)

		var products []domain.Product
		require.NoError(t, db.Where("user_id = ?", userID).Order("description").Find(&products).Error)
		require.Len(t, products, 2)

		// Blank optional fields get defaults, amounts are computed
		mouse := products[0]
		assert.Equal(t, "Mouse inalámbrico Logitech", mouse.Description)
		assert.Equal(t, service.DefaultAvailability, mouse.Availability)
		assert.Equal(t, service.DefaultWarranty, mouse.Warranty)
		assert.Equal(t, 350000.0, mouse.Subtotal)
		assert.Equal(t, 66500.0, mouse.IVAAmount)
		assert.Nil(t, mouse.QuotationID)
	})

	t.Run("reports row errors and keeps valid rows", func(t *testing.T) {
		csvData := strings.Join([]string{
			"numero_item;descripcion;precio_unitario;iva_porcentaje;disponibilidad;garantia;url_imagen",
			"1;;100;19;;;",
			"2;Producto válido;5000;19;;;",
			"3;Precio malo;abc;19;;;",
			"4;IVA malo;100;250;;;",
		}, "\n")

		result, err := svc.Import(ctx, strings.NewReader(csvData), "productos.csv")
		require.NoError(t, err)

		assert.Equal(t, 4, result.TotalRows)
		assert.Equal(t, 1, result.Accepted)
		require.Len(t, result.Errors, 3)
		assert.Equal(t, "Fila 2: la descripción es obligatoria", result.Errors[0])
		assert.Equal(t, "Fila 4: el precio unitario debe ser un número mayor que cero", result.Errors[1])
		assert.Equal(t, "Fila 5: el porcentaje de IVA debe estar entre 0 y 100", result.Errors[2])
	})

	t.Run("accepts comma decimal separator", func(t *testing.T) {
		csvData := strings.Join([]string{
			"numero_item;descripcion;precio_unitario;iva_porcentaje;disponibilidad;garantia;url_imagen",
			"1;Decimal con coma;1500,50;19;;;",
		}, "\n")

		result, err := svc.Import(ctx, strings.NewReader(csvData), "productos.csv")
		require.NoError(t, err)
		require.Equal(t, 1, result.Accepted)

		var product domain.Product
		require.NoError(t, db.Where("description = ?", "Decimal con coma").First(&product).Error)
		assert.Equal(t, 1500.5, product.UnitPrice)
	})

	t.Run("rejects a file where every row is invalid", func(t *testing.T) {
		csvData := strings.Join([]string{
			"numero_item;descripcion;precio_unitario;iva_porcentaje;disponibilidad;garantia;url_imagen",
			"1;;100;19;;;",
			"2;Precio malo;abc;19;;;",
		}, "\n")

		_, err := svc.Import(ctx, strings.NewReader(csvData), "productos.csv")
		require.ErrorIs(t, err, service.ErrImportRejected)
		assert.Contains(t, err.Error(), "Fila 2")
		assert.Contains(t, err.Error(), "Fila 3")
	})

	t.Run("rejects unsupported extension", func(t *testing.T) {
		_, err := svc.Import(ctx, strings.NewReader("x"), "productos.pdf")
		assert.ErrorIs(t, err, service.ErrUnsupportedFileType)
	})

	t.Run("rejects file without data rows", func(t *testing.T) {
		header := "numero_item;descripcion;precio_unitario;iva_porcentaje;disponibilidad;garantia;url_imagen"
		_, err := svc.Import(ctx, strings.NewReader(header), "productos.csv")
		assert.ErrorIs(t, err, service.ErrEmptyImport)
	})
}

func TestImportService_AllRowsInvalidPersistsNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewImportService(repository.NewProductRepository(db), zap.NewNop())
	ctx, _ := testutil.UserContext(t)

	csvData := strings.Join([]string{
		"numero_item;descripcion;precio_unitario;iva_porcentaje;disponibilidad;garantia;url_imagen",
		"1;;100;19;;;",
		"2;;200;19;;;",
	}, "\n")

	_, err := svc.Import(ctx, strings.NewReader(csvData), "productos.csv")
	require.ErrorIs(t, err, service.ErrImportRejected)

	var count int64
	require.NoError(t, db.Model(&domain.Product{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestImportService_ImportExcelRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	productRepo := repository.NewProductRepository(db)
	svc := service.NewImportService(productRepo, zap.NewNop())
	ctx, _ := testutil.UserContext(t)

	// The generated xlsx template must itself import cleanly
	template, err := svc.GenerateExcelTemplate()
	require.NoError(t, err)

	result, err := svc.Import(ctx, bytes.NewReader(template), "plantilla_productos.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 5, result.Accepted)
	assert.Empty(t, result.Errors)
}

func TestImportService_GenerateCSVTemplate(t *testing.T) {
	svc := service.NewImportService(nil, zap.NewNop())

	data, err := svc.GenerateCSVTemplate()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "numero_item;descripcion;precio_unitario;iva_porcentaje;disponibilidad;garantia;url_imagen", lines[0])
	assert.Contains(t, lines[1], "Portátil Dell Inspiron 15")
	assert.Contains(t, lines[1], "2500000")
}

func TestImportService_CSVTemplateRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	productRepo := repository.NewProductRepository(db)
	svc := service.NewImportService(productRepo, zap.NewNop())
	ctx, _ := testutil.UserContext(t)

	template, err := svc.GenerateCSVTemplate()
	require.NoError(t, err)

	result, err := svc.Import(ctx, bytes.NewReader(template), "plantilla_productos.csv")
	require.NoError(t, err)

	assert.Equal(t, 5, result.Accepted)
	assert.Empty(t, result.Errors)
}
