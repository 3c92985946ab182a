package pos

import (
	"context"
	"fmt"

	"github.com/karstlund/vendhub/internal/domain"
	"github.com/karstlund/vendhub/internal/tax"
	"github.com/shopspring/decimal"
)

// Cart-specific errors.
var (
	// ErrStockLimit signals that an add or increment would exceed the line's
	// snapshotted stock. Non-fatal: the cart is left unchanged.
	ErrStockLimit = &domain.Error{Code: domain.EINVALID, Message: "Stock limit reached for this item"}

	ErrLineNotFound = &domain.Error{Code: domain.ENOTFOUND, Message: "Cart line not found"}
	ErrCartEmpty    = &domain.Error{Code: domain.EINVALID, Message: "Cart is empty"}
)

// CartLine is an ephemeral POS cart entry. MaxStock is snapshotted at
// add-time and not live-refreshed mid-session.
type CartLine struct {
	Key            string
	ProductID      string
	VariantID      string
	Name           string
	Color          string
	Size           string
	Quantity       int32
	UnitPriceCents int64
	MaxStock       int32
}

// AddLineParams describes the product (and optionally variant) being added.
type AddLineParams struct {
	ProductID      string
	VariantID      string
	Name           string
	HasVariants    bool
	Color          string
	Size           string
	UnitPriceCents int64
	Stock          int32
}

// LineKey derives the cart key for a product selection. Products without
// variant dimensions key on the bare product id; otherwise missing dimensions
// collapse to "none" so the key stays a pure function of (product, color,
// size).
func LineKey(productID string, hasVariants bool, color, size string) string {
	if !hasVariants {
		return productID
	}
	if color == "" {
		color = "none"
	}
	if size == "" {
		size = "none"
	}
	return fmt.Sprintf("%s-%s-%s", productID, color, size)
}

// CartEngine maintains the in-memory POS cart for one sale session. It is
// invoked synchronously by its caller and does no internal background work.
type CartEngine struct {
	lines []*CartLine
	index map[string]*CartLine
}

// NewCartEngine creates an empty cart.
func NewCartEngine() *CartEngine {
	return &CartEngine{index: make(map[string]*CartLine)}
}

// AddLine adds the selection to the cart. An existing line increments by one
// unless that would exceed its stock snapshot, in which case the cart is
// unchanged and ErrStockLimit is returned. A new selection appends a line at
// quantity 1.
func (e *CartEngine) AddLine(params AddLineParams) (*CartLine, error) {
	key := LineKey(params.ProductID, params.HasVariants, params.Color, params.Size)

	if line, ok := e.index[key]; ok {
		if line.Quantity+1 > line.MaxStock {
			return line, ErrStockLimit
		}
		line.Quantity++
		return line, nil
	}

	if params.Stock < 1 {
		return nil, ErrStockLimit
	}

	line := &CartLine{
		Key:            key,
		ProductID:      params.ProductID,
		VariantID:      params.VariantID,
		Name:           params.Name,
		Color:          params.Color,
		Size:           params.Size,
		Quantity:       1,
		UnitPriceCents: params.UnitPriceCents,
		MaxStock:       params.Stock,
	}
	e.lines = append(e.lines, line)
	e.index[key] = line
	return line, nil
}

// UpdateQuantity applies a delta to a line's quantity, clamped to
// [1, MaxStock]. A delta that would reach zero or below removes the line.
func (e *CartEngine) UpdateQuantity(key string, delta int32) (*CartLine, error) {
	line, ok := e.index[key]
	if !ok {
		return nil, ErrLineNotFound
	}

	next := line.Quantity + delta
	if next <= 0 {
		e.remove(key)
		return nil, nil
	}
	if next > line.MaxStock {
		next = line.MaxStock
	}
	line.Quantity = next
	return line, nil
}

// RemoveLine deletes a line outright.
func (e *CartEngine) RemoveLine(key string) error {
	if _, ok := e.index[key]; !ok {
		return ErrLineNotFound
	}
	e.remove(key)
	return nil
}

func (e *CartEngine) remove(key string) {
	delete(e.index, key)
	for i, line := range e.lines {
		if line.Key == key {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (e *CartEngine) Lines() []CartLine {
	out := make([]CartLine, len(e.lines))
	for i, line := range e.lines {
		out[i] = *line
	}
	return out
}

// ItemCount returns the summed quantity across lines.
func (e *CartEngine) ItemCount() int32 {
	var n int32
	for _, line := range e.lines {
		n += line.Quantity
	}
	return n
}

// SubtotalCents derives the subtotal. Totals are never stored on the cart;
// recomputing from lines keeps a mid-session settings change reflected
// immediately.
func (e *CartEngine) SubtotalCents() int64 {
	var subtotal int64
	for _, line := range e.lines {
		subtotal += line.UnitPriceCents * int64(line.Quantity)
	}
	return subtotal
}

// Totals computes subtotal/tax/total using the current seller tax settings.
func (e *CartEngine) Totals(ctx context.Context, calc tax.Calculator, cfg tax.Config) (*tax.Result, error) {
	subtotal := decimal.NewFromInt(e.SubtotalCents()).Shift(-2)
	return calc.Calculate(ctx, tax.Params{Subtotal: subtotal, Config: cfg})
}

// CompleteSale hands the cart lines to the external order flow. All-or-nothing
// from the engine's perspective: the cart clears only when complete returns
// nil; on failure it is left untouched so an uncommitted sale is never lost.
func (e *CartEngine) CompleteSale(ctx context.Context, complete func(ctx context.Context, lines []CartLine) error) error {
	if len(e.lines) == 0 {
		return ErrCartEmpty
	}

	if err := complete(ctx, e.Lines()); err != nil {
		return err
	}

	e.Clear()
	return nil
}

// Clear empties the cart.
func (e *CartEngine) Clear() {
	e.lines = nil
	e.index = make(map[string]*CartLine)
}
