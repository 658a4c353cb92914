package render

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// detailedRenderer shows everything: product images, availability and
// warranty per item, plus the full pricing breakdown. Each item gets
// its own block instead of a single table row.
type detailedRenderer struct{}

func (r *detailedRenderer) Render(ctx context.Context, m core.Maroto, data *RenderData) {
	addHeader(m, data)
	addCustomerBlock(m, data)
	r.addItems(ctx, m, data)
	addTotals(m, data)
	addObservations(m, data)
	addValidityFooter(m, data)
}

func (r *detailedRenderer) addItems(ctx context.Context, m core.Maroto, data *RenderData) {
	titleCell := &props.Cell{BackgroundColor: &data.PrimaryColor}
	labelStyle := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: &grayText}
	valueStyle := props.Text{Size: 8, Align: align.Left}
	amountStyle := props.Text{Size: 8, Align: align.Right}

	for _, item := range data.Items {
		// Item title bar
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New(
					fmt.Sprintf("Ítem %d — %s", item.ItemNumber, item.Description),
					props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left, Color: &white},
				)).WithStyle(titleCell),
			),
		)

		imgBytes, imgExt := fetchImage(ctx, item.ImageURL)
		if imgBytes != nil {
			m.AddRows(
				row.New(24).Add(
					col.New(3).Add(image.NewFromBytes(imgBytes, imgExt, props.Rect{
						Center:  true,
						Percent: 90,
					})),
					col.New(9),
				),
			)
		}

		detailRows := []core.Row{
			row.New(6).Add(
				col.New(3).Add(text.New("Cantidad", labelStyle)),
				col.New(3).Add(text.New(FormatQty(item.Quantity), valueStyle)),
				col.New(3).Add(text.New("Precio unitario", labelStyle)),
				col.New(3).Add(text.New(FormatCOP(item.UnitPrice), amountStyle)),
			),
			row.New(6).Add(
				col.New(3).Add(text.New("Subtotal", labelStyle)),
				col.New(3).Add(text.New(FormatCOP(item.Subtotal), valueStyle)),
				col.New(3).Add(text.New(fmt.Sprintf("IVA (%s)", FormatPercent(item.IVAPercentage)), labelStyle)),
				col.New(3).Add(text.New(FormatCOP(item.IVAAmount), amountStyle)),
			),
			row.New(6).Add(
				col.New(3).Add(text.New("Disponibilidad", labelStyle)),
				col.New(3).Add(text.New(item.Availability, valueStyle)),
				col.New(3).Add(text.New("Garantía", labelStyle)),
				col.New(3).Add(text.New(item.Warranty, valueStyle)),
			),
			row.New(6).Add(
				col.New(9).Add(text.New("Total del ítem", props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Right,
				})),
				col.New(3).Add(text.New(FormatCOP(item.Total), props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Right,
				})),
			),
		}

		m.AddRows(detailRows...)
		m.AddRows(row.New(2))
	}

	m.AddRows(row.New(1))
}
