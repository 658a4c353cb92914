package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/cotizaplus/cotiza-api/internal/domain"
)

const imageFetchTimeout = 5 * time.Second

var grayText = props.Color{Red: 100, Green: 100, Blue: 100}
var white = props.Color{Red: 255, Green: 255, Blue: 255}

// Renderer draws one visual format of a quotation onto a document.
type Renderer interface {
	Render(ctx context.Context, m core.Maroto, data *RenderData)
}

// ForFormat returns the layout for a visual format. Unknown values get
// the standard layout.
func ForFormat(format domain.QuotationFormat) Renderer {
	switch format {
	case domain.FormatCompact:
		return &compactRenderer{}
	case domain.FormatDetailed:
		return &detailedRenderer{}
	default:
		return &standardRenderer{}
	}
}

// GeneratePDF renders the quotation as an A4 portrait PDF in the format
// carried by the render data.
func GeneratePDF(ctx context.Context, data *RenderData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	ForFormat(data.Format).Render(ctx, m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quotation PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader draws the company identity on the left and the document
// title, number and date on the right.
func addHeader(m core.Maroto, data *RenderData) {
	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(
				text.New(data.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &data.PrimaryColor,
				}),
			),
			col.New(5).Add(
				text.New("COTIZACIÓN", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &data.PrimaryColor,
				}),
			),
		),
	)

	companyLine := strings.Join(data.CompanyLines, " | ")
	if data.CompanyNIT != "" {
		companyLine = "NIT: " + data.CompanyNIT + " | " + companyLine
	}

	m.AddRows(
		row.New(6).Add(
			col.New(7).Add(
				text.New(companyLine, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &grayText,
				}),
			),
			col.New(5).Add(
				text.New(fmt.Sprintf("No. %s", data.Number), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(7),
			col.New(5).Add(
				text.New(fmt.Sprintf("Fecha: %s", data.Date), props.Text{
					Size:  8,
					Align: align.Right,
					Color: &grayText,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addCustomerBlock draws the recipient section.
func addCustomerBlock(m core.Maroto, data *RenderData) {
	if data.CustomerName == "" {
		return
	}

	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New("CLIENTE", props.Text{
				Size:  7,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: &grayText,
			})).WithStyle(headerCell),
		),
	)

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New(data.CustomerName, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
		),
	)

	if len(data.CustomerLines) > 0 {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New(strings.Join(data.CustomerLines, " | "), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &grayText,
				})),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addTotals draws the right-aligned summary rows.
func addTotals(m core.Maroto, data *RenderData) {
	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 8, Align: align.Right}

	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New("Subtotal", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatCOP(data.Subtotal), valueStyle)).WithStyle(summaryCell),
		),
		row.New(7).Add(
			col.New(9).Add(text.New("IVA", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatCOP(data.TotalIVA), valueStyle)).WithStyle(summaryCell),
		),
	)

	grandCell := &props.Cell{BackgroundColor: &data.PrimaryColor}
	grandStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: &white}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("TOTAL", grandStyle)).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatCOP(data.Total), grandStyle)).WithStyle(grandCell),
		),
	)

	m.AddRows(row.New(3))
}

// addObservations draws the free-text notes when present.
func addObservations(m core.Maroto, data *RenderData) {
	if data.Observations == "" {
		return
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("OBSERVACIONES", props.Text{
				Size:  7,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: &grayText,
			})),
		),
		row.New(8).Add(
			col.New(12).Add(text.New(data.Observations, props.Text{
				Size:  8,
				Align: align.Left,
			})),
		),
	)

	m.AddRows(row.New(3))
}

// addValidityFooter draws the validity note at the end of the document.
func addValidityFooter(m core.Maroto, data *RenderData) {
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New(
				fmt.Sprintf("Esta cotización tiene una validez de %d días a partir de la fecha de emisión.", data.ValidityDays),
				props.Text{
					Size:  7,
					Align: align.Center,
					Color: &grayText,
				},
			)),
		),
	)
}

// fetchImage downloads a product or logo image. Failures return nil;
// the document renders without the image.
func fetchImage(ctx context.Context, url string) ([]byte, extension.Type) {
	if url == "" {
		return nil, ""
	}

	ctx, cancel := context.WithTimeout(ctx, imageFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ""
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return nil, ""
	}

	ext := imageExtension(resp.Header.Get("Content-Type"), url)
	if ext == "" {
		return nil, ""
	}

	return body, ext
}

func imageExtension(contentType, url string) extension.Type {
	switch {
	case strings.Contains(contentType, "png"):
		return extension.Png
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return extension.Jpg
	}

	lower := strings.ToLower(url)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return extension.Png
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return extension.Jpg
	}
	return ""
}
