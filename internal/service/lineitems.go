package service

import (
	"github.com/cotizaplus/cotiza-api/internal/domain"
)

// Line-item editor operations. These are pure functions over an item
// slice; persistence happens only when the quotation is saved.

// DefaultAvailability and DefaultWarranty fill fields the user left
// blank when adopting a catalog entry or importing rows.
const (
	DefaultAvailability = "Consultar"
	DefaultWarranty     = "Garantía estándar"
)

// NewLineItem returns a blank item appended at the end of the set, with
// quantity 1 and the default IVA rate.
func NewLineItem(itemNumber int) domain.Product {
	item := domain.Product{
		ItemNumber:    itemNumber,
		Quantity:      1,
		IVAPercentage: domain.DefaultIVAPercentage,
	}
	ComputeLineAmounts(&item)
	return item
}

// AddLineItem appends a blank item numbered after the last one.
func AddLineItem(items []domain.Product) []domain.Product {
	return append(items, NewLineItem(len(items)+1))
}

// RemoveLineItem deletes the item at index and renumbers the remainder
// so item numbers stay contiguous from 1.
func RemoveLineItem(items []domain.Product, index int) []domain.Product {
	if index < 0 || index >= len(items) {
		return items
	}
	items = append(items[:index], items[index+1:]...)
	return Renumber(items)
}

// Renumber rewrites item numbers as the 1-based position in the slice.
func Renumber(items []domain.Product) []domain.Product {
	for i := range items {
		items[i].ItemNumber = i + 1
	}
	return items
}

// AdoptFromCatalog turns a catalog entry into a line item at the given
// position. The entry's pricing fields carry over into an independent
// copy with its own identity; quantity starts at 1 and blank
// availability/warranty get the defaults. The catalog row itself is
// never modified.
func AdoptFromCatalog(entry *domain.Product, itemNumber int) domain.Product {
	item := domain.Product{
		UserID:        entry.UserID,
		ItemNumber:    itemNumber,
		Description:   entry.Description,
		ImageURL:      entry.ImageURL,
		Quantity:      1,
		UnitPrice:     entry.UnitPrice,
		IVAPercentage: entry.IVAPercentage,
		Availability:  entry.Availability,
		Warranty:      entry.Warranty,
	}
	if item.Availability == "" {
		item.Availability = DefaultAvailability
	}
	if item.Warranty == "" {
		item.Warranty = DefaultWarranty
	}
	ComputeLineAmounts(&item)
	return item
}

// NormalizeItems converts submitted inputs into a clean item set:
// contiguous numbering, default IVA where omitted, and all derived
// amounts recomputed. Client-sent amounts and IDs are never trusted;
// every item gets a fresh identity when the quotation is saved, so a
// submitted ID can never repoint an existing row.
func NormalizeItems(inputs []domain.LineItemInput) []domain.Product {
	items := make([]domain.Product, len(inputs))
	for i, input := range inputs {
		item := domain.Product{
			ItemNumber:   i + 1,
			Description:  input.Description,
			ImageURL:     input.ImageURL,
			Quantity:     input.Quantity,
			UnitPrice:    input.UnitPrice,
			Availability: input.Availability,
			Warranty:     input.Warranty,
		}
		if input.IVAPercentage != nil {
			item.IVAPercentage = *input.IVAPercentage
		} else {
			item.IVAPercentage = domain.DefaultIVAPercentage
		}
		ComputeLineAmounts(&item)
		items[i] = item
	}
	return items
}
