package tax

import (
	"context"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// PercentageCalculator computes tax from the configured percentage rate.
//
// Three branches:
//   - tax disabled: tax 0, total = subtotal.
//   - tax included in price: net = subtotal / (1 + rate/100); tax is
//     back-derived for display/reporting, total stays the subtotal.
//   - tax exclusive: tax = subtotal * rate/100, total = subtotal + tax.
type PercentageCalculator struct{}

// NewPercentageCalculator creates a percentage-based tax calculator.
func NewPercentageCalculator() Calculator {
	return &PercentageCalculator{}
}

// Calculate implements Calculator.
func (c *PercentageCalculator) Calculate(_ context.Context, params Params) (*Result, error) {
	subtotal := params.Subtotal
	cfg := params.Config

	if !cfg.EnableTax || cfg.Rate.IsZero() {
		return &Result{Subtotal: subtotal, Tax: decimal.Zero, Total: subtotal}, nil
	}

	rate := cfg.Rate.Div(hundred)

	if cfg.TaxIncludedInPrice {
		net := subtotal.Div(one.Add(rate))
		return &Result{
			Subtotal: subtotal,
			Tax:      subtotal.Sub(net),
			Total:    subtotal,
		}, nil
	}

	taxAmount := subtotal.Mul(rate)
	return &Result{
		Subtotal: subtotal,
		Tax:      taxAmount,
		Total:    subtotal.Add(taxAmount),
	}, nil
}
