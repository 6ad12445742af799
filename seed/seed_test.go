package seed

import (
	"testing"
	"time"

	"github.com/princinho/tradecatalog/models"
	"github.com/princinho/tradecatalog/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoCatalog(t *testing.T) {
	d, err := Demo()
	require.NoError(t, err)

	require.Len(t, d.Manufactured, 6)
	require.Len(t, d.Trading, 8)
	require.Len(t, d.Enquiries, 2)

	first := d.Manufactured[0]
	assert.Equal(t, "mfg-001", first.ID)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), first.CreatedAt.UTC())
	require.NotEmpty(t, first.Specifications)
	assert.Equal(t, "Input Voltage", first.Specifications[0].Label)
	assert.Equal(t, "Certifications", first.Specifications[len(first.Specifications)-1].Label)

	assert.Equal(t, "Omron", d.Trading[0].Brand)
	assert.Equal(t, "Electromechanical", d.Trading[0].Type)

	assert.True(t, d.Enquiries[0].CreatedAt.After(d.Enquiries[1].CreatedAt))
}

func TestLoadIntoStores(t *testing.T) {
	d, err := Demo()
	require.NoError(t, err)

	products := store.NewMemoryProductStore()
	enquiries := store.NewMemoryEnquiryStore()
	Load(d, products, enquiries)

	assert.Len(t, products.FeaturedManufactured(), 3)
	assert.Len(t, products.FeaturedTrading(), 3)
	p, ok := products.GetTradingByID("trd-002")
	require.True(t, ok)
	assert.Equal(t, "Sick", p.Brand)

	cats := products.Categories(models.ProductTypeTrading)
	require.NotEmpty(t, cats)
	assert.Equal(t, models.Category{Name: "Relays & Switches", Line: models.ProductTypeTrading, Count: 2}, cats[0])

	assert.Len(t, enquiries.Enquiries(), 2)
}

func TestParseRejectsBadStatus(t *testing.T) {
	_, err := Parse([]byte("enquiries:\n  - id: enq-1\n    status: Archived\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("manufactured:\n  - name: no id\n"))
	assert.Error(t, err)
}
