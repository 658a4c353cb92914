package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/cotizaplus/cotiza-api/internal/domain"
)

// RenderData is everything a layout needs to draw a quotation. It is a
// flat snapshot; renderers never touch the database.
type RenderData struct {
	CompanyName  string
	CompanyNIT   string
	CompanyLines []string
	LogoURL      string
	PrimaryColor props.Color

	CustomerName  string
	CustomerLines []string

	Number       string
	Date         string
	Observations string
	Format       domain.QuotationFormat
	ValidityDays int

	Items    []RenderItem
	Subtotal float64
	TotalIVA float64
	Total    float64
}

// RenderItem is one table row of the document.
type RenderItem struct {
	ItemNumber    int
	Description   string
	ImageURL      string
	Quantity      float64
	UnitPrice     float64
	Subtotal      float64
	IVAPercentage float64
	IVAAmount     float64
	Total         float64
	Availability  string
	Warranty      string
}

// BuildRenderData flattens a quotation and its company profile into the
// snapshot the layouts consume.
func BuildRenderData(quotation *domain.Quotation, company *domain.Company, format domain.QuotationFormat, validityDays int) *RenderData {
	data := &RenderData{
		CompanyName:  company.Name,
		CompanyNIT:   company.NIT,
		LogoURL:      company.LogoURL,
		PrimaryColor: parseHexColor(company.PrimaryColor),

		Number:       quotation.QuotationNumber,
		Date:         domain.FormatDate(quotation.QuotationDate),
		Observations: quotation.Observations,
		Format:       format,
		ValidityDays: validityDays,

		Subtotal: quotation.Subtotal,
		TotalIVA: quotation.TotalIVA,
		Total:    quotation.Total,
	}

	for _, line := range []string{company.Address, company.City, company.Phone, company.Email} {
		if line != "" {
			data.CompanyLines = append(data.CompanyLines, line)
		}
	}

	if quotation.Customer != nil {
		c := quotation.Customer
		data.CustomerName = c.Name
		for _, line := range []string{c.Company, c.Document, c.Email, c.Phone, c.Address} {
			if line != "" {
				data.CustomerLines = append(data.CustomerLines, line)
			}
		}
	}

	data.Items = make([]RenderItem, len(quotation.Items))
	for i, item := range quotation.Items {
		data.Items[i] = RenderItem{
			ItemNumber:    item.ItemNumber,
			Description:   item.Description,
			ImageURL:      item.ImageURL,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Subtotal:      item.Subtotal,
			IVAPercentage: item.IVAPercentage,
			IVAAmount:     item.IVAAmount,
			Total:         item.Total,
			Availability:  item.Availability,
			Warranty:      item.Warranty,
		}
	}

	return data
}

// FormatCOP renders an amount as Colombian pesos: dot thousand
// separators, comma decimals, decimals only when the amount has cents.
func FormatCOP(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	whole := int64(amount)
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := strconv.FormatInt(whole, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	result := "$ " + strings.Join(groups, ".")
	if cents > 0 {
		result += fmt.Sprintf(",%02d", cents)
	}
	if negative {
		result = "-" + result
	}
	return result
}

// FormatQty drops trailing zeros from quantities (2 instead of 2.00).
func FormatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return strconv.FormatInt(int64(qty), 10)
	}
	return strconv.FormatFloat(qty, 'f', 2, 64)
}

// FormatPercent renders an IVA rate as "19%" or "19.5%".
func FormatPercent(pct float64) string {
	if pct == math.Trunc(pct) {
		return fmt.Sprintf("%.0f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// parseHexColor converts "#RRGGBB" into a maroto color. Invalid values
// fall back to the default accent blue.
func parseHexColor(hex string) props.Color {
	fallback := props.Color{Red: 37, Green: 99, Blue: 235}

	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return fallback
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}

	return props.Color{
		Red:   int(value >> 16 & 0xFF),
		Green: int(value >> 8 & 0xFF),
		Blue:  int(value & 0xFF),
	}
}
