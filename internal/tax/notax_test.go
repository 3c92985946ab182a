package tax_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karstlund/vendhub/internal/tax"
)

func TestNoTaxCalculator_AlwaysZero(t *testing.T) {
	calc := tax.NewNoTaxCalculator()

	// Config is ignored entirely, even with tax nominally enabled.
	result, err := calc.Calculate(context.Background(), tax.Params{
		Subtotal: decimal.RequireFromString("249.99"),
		Config: tax.Config{
			EnableTax: true,
			Rate:      decimal.RequireFromString("25"),
		},
	})

	require.NoError(t, err)
	assert.True(t, result.Tax.IsZero(), "NoTaxCalculator should always return zero tax")
	assert.True(t, result.Total.Equal(result.Subtotal))
}

func TestNoTaxCalculator_ZeroSubtotal(t *testing.T) {
	calc := tax.NewNoTaxCalculator()

	result, err := calc.Calculate(context.Background(), tax.Params{Subtotal: decimal.Zero})

	require.NoError(t, err)
	assert.True(t, result.Tax.IsZero())
	assert.True(t, result.Total.IsZero())
}
