package pos_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karstlund/vendhub/internal/pos"
	"github.com/karstlund/vendhub/internal/tax"
)

func tee(stock int32) pos.AddLineParams {
	return pos.AddLineParams{
		ProductID:      "p1",
		VariantID:      "v1",
		Name:           "Premium Tee",
		HasVariants:    true,
		Color:          "Red",
		Size:           "M",
		UnitPriceCents: 1500,
		Stock:          stock,
	}
}

func TestLineKey(t *testing.T) {
	tests := []struct {
		name        string
		hasVariants bool
		color       string
		size        string
		want        string
	}{
		{name: "no variants keys on product id", hasVariants: false, color: "Red", size: "M", want: "p1"},
		{name: "full combo", hasVariants: true, color: "Red", size: "M", want: "p1-Red-M"},
		{name: "missing size collapses to none", hasVariants: true, color: "Red", want: "p1-Red-none"},
		{name: "missing both", hasVariants: true, want: "p1-none-none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pos.LineKey("p1", tt.hasVariants, tt.color, tt.size))
		})
	}
}

func TestCartEngine_AddLine(t *testing.T) {
	cart := pos.NewCartEngine()

	line, err := cart.AddLine(tee(5))
	require.NoError(t, err)
	assert.Equal(t, int32(1), line.Quantity)
	assert.Equal(t, int32(5), line.MaxStock, "stock is snapshotted at add time")

	// Re-adding the same selection increments the existing line.
	line, err = cart.AddLine(tee(5))
	require.NoError(t, err)
	assert.Equal(t, int32(2), line.Quantity)
	assert.Len(t, cart.Lines(), 1)
}

func TestCartEngine_AddLineStopsAtSnapshot(t *testing.T) {
	cart := pos.NewCartEngine()

	for i := 0; i < 5; i++ {
		_, err := cart.AddLine(tee(5))
		require.NoError(t, err)
	}

	_, err := cart.AddLine(tee(5))
	assert.True(t, errors.Is(err, pos.ErrStockLimit), "sixth add at stock 5 must be rejected")

	// The rejection leaves the cart unchanged.
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int32(5), lines[0].Quantity)
}

func TestCartEngine_AddLineOutOfStock(t *testing.T) {
	cart := pos.NewCartEngine()

	_, err := cart.AddLine(tee(0))
	assert.True(t, errors.Is(err, pos.ErrStockLimit))
	assert.Empty(t, cart.Lines())
}

func TestCartEngine_UpdateQuantity(t *testing.T) {
	cart := pos.NewCartEngine()
	added, err := cart.AddLine(tee(5))
	require.NoError(t, err)

	line, err := cart.UpdateQuantity(added.Key, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(4), line.Quantity)

	// A delta past the snapshot clamps instead of failing.
	line, err = cart.UpdateQuantity(added.Key, 10)
	require.NoError(t, err)
	assert.Equal(t, int32(5), line.Quantity)
}

func TestCartEngine_UpdateQuantityToZeroRemoves(t *testing.T) {
	cart := pos.NewCartEngine()
	added, err := cart.AddLine(tee(5))
	require.NoError(t, err)

	line, err := cart.UpdateQuantity(added.Key, -1)
	require.NoError(t, err)
	assert.Nil(t, line, "reaching zero removes the line")
	assert.Empty(t, cart.Lines())

	_, err = cart.UpdateQuantity(added.Key, 1)
	assert.True(t, errors.Is(err, pos.ErrLineNotFound))
}

func TestCartEngine_RemoveLine(t *testing.T) {
	cart := pos.NewCartEngine()
	added, err := cart.AddLine(tee(5))
	require.NoError(t, err)

	require.NoError(t, cart.RemoveLine(added.Key))
	assert.Empty(t, cart.Lines())
	assert.True(t, errors.Is(cart.RemoveLine(added.Key), pos.ErrLineNotFound))
}

func TestCartEngine_DerivedTotals(t *testing.T) {
	cart := pos.NewCartEngine()

	_, err := cart.AddLine(tee(5))
	require.NoError(t, err)
	_, err = cart.AddLine(tee(5))
	require.NoError(t, err)
	_, err = cart.AddLine(pos.AddLineParams{
		ProductID:      "p2",
		Name:           "Sticker",
		UnitPriceCents: 250,
		Stock:          100,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(3), cart.ItemCount())
	assert.Equal(t, int64(3250), cart.SubtotalCents(), "2x1500 + 250")
}

func TestCartEngine_TotalsReflectSettingsChange(t *testing.T) {
	cart := pos.NewCartEngine()
	_, err := cart.AddLine(tee(5))
	require.NoError(t, err)

	calc := tax.NewPercentageCalculator()

	disabled, err := cart.Totals(context.Background(), calc, tax.Config{})
	require.NoError(t, err)
	assert.True(t, disabled.Tax.IsZero())

	// Nothing is cached on the cart: flipping the settings changes the very
	// next read.
	enabled, err := cart.Totals(context.Background(), calc, tax.Config{
		EnableTax: true,
		Rate:      decimal.RequireFromString("10"),
	})
	require.NoError(t, err)
	assert.True(t, enabled.Tax.Equal(decimal.RequireFromString("1.5")), "got %s", enabled.Tax)
	assert.True(t, enabled.Total.Equal(decimal.RequireFromString("16.5")))
}

func TestCartEngine_CompleteSaleClearsOnSuccess(t *testing.T) {
	cart := pos.NewCartEngine()
	_, err := cart.AddLine(tee(5))
	require.NoError(t, err)

	var handed []pos.CartLine
	err = cart.CompleteSale(context.Background(), func(_ context.Context, lines []pos.CartLine) error {
		handed = lines
		return nil
	})

	require.NoError(t, err)
	assert.Len(t, handed, 1)
	assert.Empty(t, cart.Lines(), "cart clears after the order flow confirms")
}

func TestCartEngine_CompleteSaleKeepsCartOnFailure(t *testing.T) {
	cart := pos.NewCartEngine()
	_, err := cart.AddLine(tee(5))
	require.NoError(t, err)

	boom := errors.New("order service down")
	err = cart.CompleteSale(context.Background(), func(context.Context, []pos.CartLine) error {
		return boom
	})

	assert.True(t, errors.Is(err, boom))
	assert.Len(t, cart.Lines(), 1, "a failed completion must not lose the cart")
}

func TestCartEngine_CompleteSaleEmptyCart(t *testing.T) {
	cart := pos.NewCartEngine()

	err := cart.CompleteSale(context.Background(), func(context.Context, []pos.CartLine) error {
		t.Fatal("complete must not be called for an empty cart")
		return nil
	})

	assert.True(t, errors.Is(err, pos.ErrCartEmpty))
}
