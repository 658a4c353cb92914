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

// compactRenderer condenses the table to description, quantity, unit
// price and line total. The IVA breakdown appears only in the summary.
type compactRenderer struct{}

func (r *compactRenderer) Render(ctx context.Context, m core.Maroto, data *RenderData) {
	addHeader(m, data)
	addCustomerBlock(m, data)
	r.addItemsTable(m, data)
	addTotals(m, data)
	addObservations(m, data)
	addValidityFooter(m, data)
}

func (r *compactRenderer) addItemsTable(m core.Maroto, data *RenderData) {
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
		row.New(7).Add(
			col.New(1).Add(text.New("Ítem", headerText)).WithStyle(&headerCell),
			col.New(6).Add(text.New("Descripción", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Cant.", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Precio Unit.", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)

	for _, item := range data.Items {
		m.AddRows(
			row.New(6).Add(
				col.New(1).Add(text.New(fmt.Sprintf("%d", item.ItemNumber), props.Text{Size: 7, Align: align.Center})),
				col.New(6).Add(text.New(item.Description, props.Text{Size: 7, Align: align.Left})),
				col.New(1).Add(text.New(FormatQty(item.Quantity), props.Text{Size: 7, Align: align.Right})),
				col.New(2).Add(text.New(FormatCOP(item.UnitPrice), props.Text{Size: 7, Align: align.Right})),
				col.New(2).Add(text.New(FormatCOP(item.Total), props.Text{Size: 7, Align: align.Right})),
			),
		)
	}

	m.AddRows(row.New(2))
}
