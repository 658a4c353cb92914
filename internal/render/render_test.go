package render

import (
	"context"
	"testing"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotizaplus/cotiza-api/internal/domain"
)

func TestFormatCOP(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$ 0"},
		{500, "$ 500"},
		{1234, "$ 1.234"},
		{1234567, "$ 1.234.567"},
		{1234567.89, "$ 1.234.567,89"},
		{1000000, "$ 1.000.000"},
		{99.5, "$ 99,50"},
		{-2500, "-$ 2.500"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCOP(tc.amount), "amount %v", tc.amount)
	}
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "2", FormatQty(2))
	assert.Equal(t, "2.50", FormatQty(2.5))
	assert.Equal(t, "0", FormatQty(0))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "19%", FormatPercent(19))
	assert.Equal(t, "19.5%", FormatPercent(19.5))
	assert.Equal(t, "0%", FormatPercent(0))
}

func TestParseHexColor(t *testing.T) {
	blue := props.Color{Red: 37, Green: 99, Blue: 235}

	assert.Equal(t, props.Color{Red: 255, Green: 85, Blue: 0}, parseHexColor("#ff5500"))
	assert.Equal(t, props.Color{Red: 37, Green: 99, Blue: 235}, parseHexColor("#2563eb"))

	// Anything unparseable falls back to the default accent
	assert.Equal(t, blue, parseHexColor(""))
	assert.Equal(t, blue, parseHexColor("#fff"))
	assert.Equal(t, blue, parseHexColor("#zzzzzz"))
}

func testQuotation() (*domain.Quotation, *domain.Company) {
	company := &domain.Company{
		Name:         "Acme S.A.S.",
		NIT:          "900123456-7",
		Address:      "Calle 10 # 20-30",
		City:         "Bogotá",
		PrimaryColor: "#2563eb",
	}

	quotation := &domain.Quotation{
		QuotationNumber: "COT-2026-001",
		QuotationDate:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Observations:    "Precios sujetos a cambio",
		Format:          domain.FormatStandard,
		Status:          domain.QuotationStatusDraft,
		Customer: &domain.Customer{
			Name:    "Cliente Uno",
			Company: "Cliente Uno S.A.",
			Email:   "contacto@clienteuno.co",
		},
		Subtotal: 250000,
		TotalIVA: 47500,
		Total:    297500,
		Items: []domain.Product{
			{
				ItemNumber:    1,
				Description:   "Portátil Dell",
				Quantity:      2,
				UnitPrice:     100000,
				Subtotal:      200000,
				IVAPercentage: 19,
				IVAAmount:     38000,
				Total:         238000,
				Availability:  "Entrega inmediata",
				Warranty:      "12 meses",
			},
			{
				ItemNumber:    2,
				Description:   "Mouse",
				Quantity:      1,
				UnitPrice:     50000,
				Subtotal:      50000,
				IVAPercentage: 19,
				IVAAmount:     9500,
				Total:         59500,
			},
		},
	}
	return quotation, company
}

func TestBuildRenderData(t *testing.T) {
	quotation, company := testQuotation()

	data := BuildRenderData(quotation, company, domain.FormatCompact, 30)

	assert.Equal(t, "Acme S.A.S.", data.CompanyName)
	assert.Equal(t, "900123456-7", data.CompanyNIT)
	// Blank company fields are dropped from the header lines
	assert.Equal(t, []string{"Calle 10 # 20-30", "Bogotá"}, data.CompanyLines)

	assert.Equal(t, "Cliente Uno", data.CustomerName)
	assert.Equal(t, []string{"Cliente Uno S.A.", "contacto@clienteuno.co"}, data.CustomerLines)

	assert.Equal(t, "COT-2026-001", data.Number)
	assert.Equal(t, "2026-08-15", data.Date)
	assert.Equal(t, domain.FormatCompact, data.Format)
	assert.Equal(t, 30, data.ValidityDays)

	require.Len(t, data.Items, 2)
	assert.Equal(t, 238000.0, data.Items[0].Total)
	assert.Equal(t, 297500.0, data.Total)
}

func TestGeneratePDFAllFormats(t *testing.T) {
	quotation, company := testQuotation()

	for _, format := range []domain.QuotationFormat{
		domain.FormatStandard,
		domain.FormatCompact,
		domain.FormatDetailed,
	} {
		t.Run(string(format), func(t *testing.T) {
			data := BuildRenderData(quotation, company, format, 30)

			pdf, err := GeneratePDF(context.Background(), data)
			require.NoError(t, err)
			require.NotEmpty(t, pdf)
			assert.Equal(t, "%PDF", string(pdf[:4]))
		})
	}
}

func TestGeneratePDFWithoutItems(t *testing.T) {
	quotation, company := testQuotation()
	quotation.Items = nil
	quotation.Customer = nil

	data := BuildRenderData(quotation, company, domain.FormatStandard, 30)

	pdf, err := GeneratePDF(context.Background(), data)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
