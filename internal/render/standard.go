package render

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// standardRenderer is the default layout: a full pricing table with the
// IVA breakdown per line, no images.
type standardRenderer struct{}

func (r *standardRenderer) Render(ctx context.Context, m core.Maroto, data *RenderData) {
	addHeader(m, data)
	addCustomerBlock(m, data)
	r.addItemsTable(m, data)
	addTotals(m, data)
	addObservations(m, data)
	addValidityFooter(m, data)
}

func (r *standardRenderer) addItemsTable(m core.Maroto, data *RenderData) {
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &white,
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: &data.PrimaryColor}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("Ítem", headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Descripción", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Cant.", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Precio Unit.", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("IVA", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("IVA $", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, item := range data.Items {
		bodyText := props.Text{Size: 7, Align: align.Center}
		bodyTextLeft := props.Text{Size: 7, Align: align.Left}
		bodyTextRight := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		cols := []core.Col{
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.ItemNumber), bodyText)),
			col.New(4).Add(text.New(item.Description, bodyTextLeft)),
			col.New(1).Add(text.New(FormatQty(item.Quantity), bodyTextRight)),
			col.New(2).Add(text.New(FormatCOP(item.UnitPrice), bodyTextRight)),
			col.New(1).Add(text.New(FormatPercent(item.IVAPercentage), bodyText)),
			col.New(1).Add(text.New(FormatCOP(item.IVAAmount), bodyTextRight)),
			col.New(2).Add(text.New(FormatCOP(item.Total), bodyTextRight)),
		}
		if cellStyle != nil {
			for j := range cols {
				cols[j] = cols[j].WithStyle(cellStyle)
			}
		}

		m.AddRows(row.New(7).Add(cols...))
	}

	m.AddRows(row.New(2))
}
