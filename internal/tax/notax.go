package tax

import (
	"context"

	"github.com/shopspring/decimal"
)

// NoTaxCalculator always returns zero tax. Used for sellers in jurisdictions
// the marketplace does not collect for.
type NoTaxCalculator struct{}

// NewNoTaxCalculator creates a calculator that never charges tax.
func NewNoTaxCalculator() Calculator {
	return &NoTaxCalculator{}
}

// Calculate implements Calculator.
func (c *NoTaxCalculator) Calculate(_ context.Context, params Params) (*Result, error) {
	return &Result{
		Subtotal: params.Subtotal,
		Tax:      decimal.Zero,
		Total:    params.Subtotal,
	}, nil
}
