package tax

import (
	"context"

	"github.com/shopspring/decimal"
)

// Calculator defines the interface for tax calculation.
// Implementations: PercentageCalculator, NoTaxCalculator.
type Calculator interface {
	// Calculate computes tax and total from a subtotal and the seller's tax
	// configuration. Pure: no I/O, no stored state.
	Calculate(ctx context.Context, params Params) (*Result, error)
}

// Config is the seller tax configuration the POS settings provider supplies.
type Config struct {
	EnableTax          bool
	Rate               decimal.Decimal // percentage, e.g. 12 for 12%
	TaxIncludedInPrice bool
}

// Params contains all information needed for one calculation.
type Params struct {
	Subtotal decimal.Decimal
	Config   Config
}

// Result contains the calculated amounts. Values are unrounded; rounding is
// applied once, at the display boundary, never inside intermediate
// arithmetic, to avoid compounding error across many line items.
type Result struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// RoundDisplay rounds a monetary amount for display or reporting (2 decimal
// places, half away from zero). Callers apply it exactly once, on final
// figures only.
func RoundDisplay(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
