package service

import (
	"math"

	"github.com/cotizaplus/cotiza-api/internal/domain"
)

// Pricing arithmetic for quotation line items. All derived amounts are
// computed here and nowhere else; handlers and repositories never do
// money math.

// round2 rounds to 2 decimal places (cents)
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeLineAmounts fills in the derived fields of a line item from its
// quantity, unit price and IVA percentage.
func ComputeLineAmounts(item *domain.Product) {
	item.Subtotal = round2(item.Quantity * item.UnitPrice)
	item.IVAAmount = round2(item.Subtotal * item.IVAPercentage / 100)
	item.Total = round2(item.Subtotal + item.IVAAmount)
}

// ComputeTotals sums line-item amounts into quotation totals. The grand
// total is the sum of line totals, so it always equals subtotal plus IVA.
func ComputeTotals(items []domain.Product) domain.Totals {
	var totals domain.Totals
	for i := range items {
		totals.Subtotal += items[i].Subtotal
		totals.TotalIVA += items[i].IVAAmount
		totals.Total += items[i].Total
	}
	totals.Subtotal = round2(totals.Subtotal)
	totals.TotalIVA = round2(totals.TotalIVA)
	totals.Total = round2(totals.Total)
	return totals
}
