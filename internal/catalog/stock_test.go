package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karstlund/vendhub/internal/catalog"
)

func TestTotalStock(t *testing.T) {
	rows := []catalog.VariantRow{
		{Stock: 3},
		{Stock: 0},
		{Stock: 7},
	}

	assert.Equal(t, int32(10), catalog.TotalStock(0, rows))
	assert.Equal(t, int32(15), catalog.TotalStock(5, rows))
	assert.Equal(t, int32(0), catalog.TotalStock(0, nil))
}

func TestSynthesizeBase(t *testing.T) {
	tests := []struct {
		name            string
		baseStock       int32
		variantsEnabled bool
		want            bool
	}{
		{name: "variants disabled", baseStock: 5, variantsEnabled: false, want: false},
		{name: "zero base stock", baseStock: 0, variantsEnabled: true, want: false},
		{name: "enabled with stock", baseStock: 5, variantsEnabled: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := catalog.SynthesizeBase(productID, "Premium Tee", 1000, tt.baseStock, tt.variantsEnabled)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestSynthesizeBase_Row(t *testing.T) {
	row, ok := catalog.SynthesizeBase(productID, "Premium Tee", 1200, 4, true)
	require.True(t, ok)

	assert.Equal(t, "0f8fad5b-PREMI-BASE", row.SKU)
	assert.Equal(t, "-", row.Option1, "base variant carries no attribute values")
	assert.Equal(t, "-", row.Option2)
	assert.Equal(t, int64(1200), row.PriceCents)
	assert.Equal(t, int32(4), row.Stock)
	assert.Equal(t, "Base", row.VariantName)
}

func TestSynthesizeBase_CountsTowardTotal(t *testing.T) {
	base, ok := catalog.SynthesizeBase(productID, "Tee", 1000, 6, true)
	require.True(t, ok)

	rows := []catalog.VariantRow{base, {Stock: 2}, {Stock: 2}}
	assert.Equal(t, int32(10), catalog.TotalStock(0, rows),
		"total stock is a pure sum over variant rows, base included")
}
