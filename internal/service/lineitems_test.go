package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotizaplus/cotiza-api/internal/domain"
)

func TestAddLineItem(t *testing.T) {
	items := AddLineItem(nil)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ItemNumber)
	assert.Equal(t, 1.0, items[0].Quantity)
	assert.Equal(t, domain.DefaultIVAPercentage, items[0].IVAPercentage)

	items = AddLineItem(items)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[1].ItemNumber)
}

func TestRemoveLineItem(t *testing.T) {
	t.Run("renumbers remaining items", func(t *testing.T) {
		items := []domain.Product{
			{ItemNumber: 1, Description: "uno"},
			{ItemNumber: 2, Description: "dos"},
			{ItemNumber: 3, Description: "tres"},
		}

		items = RemoveLineItem(items, 1)

		require.Len(t, items, 2)
		assert.Equal(t, "uno", items[0].Description)
		assert.Equal(t, 1, items[0].ItemNumber)
		assert.Equal(t, "tres", items[1].Description)
		assert.Equal(t, 2, items[1].ItemNumber)
	})

	t.Run("out of range index is a no-op", func(t *testing.T) {
		items := []domain.Product{{ItemNumber: 1}}

		assert.Len(t, RemoveLineItem(items, -1), 1)
		assert.Len(t, RemoveLineItem(items, 5), 1)
	})
}

func TestAdoptFromCatalog(t *testing.T) {
	entry := &domain.Product{
		BaseModel:     domain.BaseModel{ID: uuid.New()},
		UserID:        uuid.New(),
		Description:   "Monitor Samsung 24 pulgadas",
		UnitPrice:     800000,
		IVAPercentage: 19,
		ImageURL:      "https://example.com/monitor.png",
	}

	item := AdoptFromCatalog(entry, 3)

	// The line item is an independent copy, not the catalog row itself
	assert.Equal(t, uuid.Nil, item.ID)
	assert.Equal(t, 3, item.ItemNumber)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, entry.Description, item.Description)
	assert.Equal(t, DefaultAvailability, item.Availability)
	assert.Equal(t, DefaultWarranty, item.Warranty)
	assert.Equal(t, 800000.0, item.Subtotal)
	assert.Equal(t, 152000.0, item.IVAAmount)
	assert.Equal(t, 952000.0, item.Total)
}

func TestNormalizeItems(t *testing.T) {
	t.Run("recomputes derived amounts and renumbers", func(t *testing.T) {
		iva := 19.0
		submittedID := uuid.New()
		inputs := []domain.LineItemInput{
			{ID: &submittedID, Description: "a", Quantity: 2, UnitPrice: 100000, IVAPercentage: &iva},
			{Description: "b", Quantity: 1, UnitPrice: 50000},
		}

		items := NormalizeItems(inputs)

		require.Len(t, items, 2)
		// Client-sent IDs are discarded; persistence assigns identities
		assert.Equal(t, uuid.Nil, items[0].ID)
		assert.Equal(t, 1, items[0].ItemNumber)
		assert.Equal(t, 200000.0, items[0].Subtotal)
		assert.Equal(t, 38000.0, items[0].IVAAmount)
		assert.Equal(t, 238000.0, items[0].Total)

		// Omitted IVA falls back to the default rate
		assert.Equal(t, uuid.Nil, items[1].ID)
		assert.Equal(t, 2, items[1].ItemNumber)
		assert.Equal(t, domain.DefaultIVAPercentage, items[1].IVAPercentage)
	})

	t.Run("explicit zero IVA is preserved", func(t *testing.T) {
		zero := 0.0
		items := NormalizeItems([]domain.LineItemInput{
			{Description: "exento", Quantity: 1, UnitPrice: 1000, IVAPercentage: &zero},
		})

		require.Len(t, items, 1)
		assert.Equal(t, 0.0, items[0].IVAPercentage)
		assert.Equal(t, 0.0, items[0].IVAAmount)
		assert.Equal(t, 1000.0, items[0].Total)
	})
}
