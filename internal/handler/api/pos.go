package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/google/uuid"

	"github.com/karstlund/vendhub/internal/domain"
	"github.com/karstlund/vendhub/internal/pos"
	"github.com/karstlund/vendhub/internal/tax"
	"github.com/karstlund/vendhub/internal/telemetry"
)

// POSHandler serves the point-of-sale flow: barcode scans, cart mutation, and
// sale completion.
type POSHandler struct {
	resolver  pos.BarcodeResolver
	carts     *pos.CartStore
	settings  *pos.SettingsProvider
	calc      tax.Calculator
	completer pos.SaleCompleter
	metrics   *telemetry.Metrics
	logger    *slog.Logger
}

// NewPOSHandler creates a new POS handler.
func NewPOSHandler(
	resolver pos.BarcodeResolver,
	carts *pos.CartStore,
	settings *pos.SettingsProvider,
	calc tax.Calculator,
	completer pos.SaleCompleter,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *POSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &POSHandler{
		resolver:  resolver,
		carts:     carts,
		settings:  settings,
		calc:      calc,
		completer: completer,
		metrics:   metrics,
		logger:    logger,
	}
}

type scanResponse struct {
	Found   bool            `json:"found"`
	Added   bool            `json:"added"`
	Warning string          `json:"warning,omitempty"`
	Line    *cartLineView   `json:"line,omitempty"`
	Product *productSummary `json:"product,omitempty"`
}

type productSummary struct {
	ProductID      string `json:"product_id"`
	VariantID      string `json:"variant_id,omitempty"`
	Name           string `json:"name"`
	Color          string `json:"color,omitempty"`
	Size           string `json:"size,omitempty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Stock          int32  `json:"stock"`
}

type cartLineView struct {
	Key            string `json:"key"`
	ProductID      string `json:"product_id"`
	VariantID      string `json:"variant_id,omitempty"`
	Name           string `json:"name"`
	Color          string `json:"color,omitempty"`
	Size           string `json:"size,omitempty"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	MaxStock       int32  `json:"max_stock"`
}

type cartView struct {
	Lines         []cartLineView `json:"lines"`
	ItemCount     int32          `json:"item_count"`
	SubtotalCents int64          `json:"subtotal_cents"`
	TaxCents      int64          `json:"tax_cents"`
	TotalCents    int64          `json:"total_cents"`
	TaxLabel      string         `json:"tax_label"`
	TaxEnabled    bool           `json:"tax_enabled"`
}

// Scan handles POST /api/pos/scan: resolve a barcode and, when it matches,
// add the item to the seller's cart. An unmatched code is a normal outcome,
// not an error; the terminal offers quick product creation.
func (h *POSHandler) Scan(w http.ResponseWriter, r *http.Request) {
	seller, err := sellerID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if req.Code == "" {
		respondError(w, h.logger, domain.Invalid("pos.scan", "Missing barcode"))
		return
	}

	res, err := h.resolver.Lookup(r.Context(), seller, req.Code)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if !res.Found {
		respondJSON(w, http.StatusOK, scanResponse{Found: false})
		return
	}

	resp := scanResponse{
		Found: true,
		Product: &productSummary{
			ProductID:      res.ProductID,
			VariantID:      res.VariantID,
			Name:           res.Name,
			Color:          res.Color,
			Size:           res.Size,
			UnitPriceCents: res.UnitPriceCents,
			Stock:          res.Stock,
		},
	}

	err = h.carts.With(seller, func(cart *pos.CartEngine) error {
		line, err := cart.AddLine(pos.AddLineParams{
			ProductID:      res.ProductID,
			VariantID:      res.VariantID,
			Name:           res.Name,
			HasVariants:    res.HasVariants,
			Color:          res.Color,
			Size:           res.Size,
			UnitPriceCents: res.UnitPriceCents,
			Stock:          res.Stock,
		})
		if err != nil {
			return err
		}
		resp.Added = true
		resp.Line = lineView(*line)
		return nil
	})
	if err != nil {
		// Hitting the stock snapshot is a soft outcome; the scan still
		// resolved and the terminal shows a warning toast.
		if errors.Is(err, pos.ErrStockLimit) {
			h.metrics.StockLimitHits.WithLabelValues(seller).Inc()
			resp.Warning = domain.ErrorMessage(err)
			respondJSON(w, http.StatusOK, resp)
			return
		}
		respondError(w, h.logger, err)
		return
	}

	h.metrics.CartLinesAdded.WithLabelValues(seller).Inc()
	respondJSON(w, http.StatusOK, resp)
}

// LookupBarcode handles GET /api/pos/barcode?code=...: resolve only, no cart
// mutation. The terminal uses it to preview an item before committing.
func (h *POSHandler) LookupBarcode(w http.ResponseWriter, r *http.Request) {
	seller, err := sellerID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, h.logger, domain.Invalid("pos.barcode", "Missing code parameter"))
		return
	}

	res, err := h.resolver.Lookup(r.Context(), seller, code)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if !res.Found {
		respondJSON(w, http.StatusOK, scanResponse{Found: false})
		return
	}

	respondJSON(w, http.StatusOK, scanResponse{
		Found: true,
		Product: &productSummary{
			ProductID:      res.ProductID,
			VariantID:      res.VariantID,
			Name:           res.Name,
			Color:          res.Color,
			Size:           res.Size,
			UnitPriceCents: res.UnitPriceCents,
			Stock:          res.Stock,
		},
	})
}

type addLineRequest struct {
	ProductID      string `json:"product_id"`
	VariantID      string `json:"variant_id"`
	Name           string `json:"name"`
	HasVariants    bool   `json:"has_variants"`
	Color          string `json:"color"`
	Size           string `json:"size"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Stock          int32  `json:"stock"`
}

// AddLine handles POST /api/pos/cart/lines for items picked from the product
// browser rather than scanned.
func (h *POSHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	seller, err := sellerID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req addLineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if req.ProductID == "" || req.Name == "" {
		respondError(w, h.logger, domain.Invalid("pos.cart", "Missing product id or name"))
		return
	}

	var view *cartLineView
	err = h.carts.With(seller, func(cart *pos.CartEngine) error {
		line, err := cart.AddLine(pos.AddLineParams{
			ProductID:      req.ProductID,
			VariantID:      req.VariantID,
			Name:           req.Name,
			HasVariants:    req.HasVariants,
			Color:          req.Color,
			Size:           req.Size,
			UnitPriceCents: req.UnitPriceCents,
			Stock:          req.Stock,
		})
		if err != nil {
			return err
		}
		view = lineView(*line)
		return nil
	})
	if err != nil {
		if errors.Is(err, pos.ErrStockLimit) {
			h.metrics.StockLimitHits.WithLabelValues(seller).Inc()
		}
		respondError(w, h.logger, err)
		return
	}

	h.metrics.CartLinesAdded.WithLabelValues(seller).Inc()
	respondJSON(w, http.StatusOK, view)
}

// UpdateLine handles PATCH /api/pos/cart/lines/{key} with a quantity delta.
// A delta that drives the quantity to zero or below removes the line.
func (h *POSHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	seller, err := sellerID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	key := r.PathValue("key")
	var req struct {
		Delta int32 `json:"delta"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	var resp struct {
		Removed bool          `json:"removed"`
		Line    *cartLineView `json:"line,omitempty"`
	}
	err = h.carts.With(seller, func(cart *pos.CartEngine) error {
		line, err := cart.UpdateQuantity(key, req.Delta)
		if err != nil {
			return err
		}
		if line == nil {
			resp.Removed = true
			return nil
		}
		resp.Line = lineView(*line)
		return nil
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// RemoveLine handles DELETE /api/pos/cart/lines/{key}.
func (h *POSHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	seller, err := sellerID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	key := r.PathValue("key")
	err = h.carts.With(seller, func(cart *pos.CartEngine) error {
		return cart.RemoveLine(key)
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCart handles GET /api/pos/cart: lines plus totals under the seller's
// current tax settings. Totals are derived fresh on every read.
func (h *POSHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	seller, err := sellerID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	view, err := h.cartView(r, seller)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// ClearCart handles DELETE /api/pos/cart.
func (h *POSHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	seller, err := sellerID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	_ = h.carts.With(seller, func(cart *pos.CartEngine) error {
		cart.Clear()
		return nil
	})
	w.WriteHeader(http.StatusNoContent)
}

// CompleteSale handles POST /api/pos/sale. The cart clears only after the
// downstream order pipeline confirms the sale; on failure the cart is left
// intact for retry.
func (h *POSHandler) CompleteSale(w http.ResponseWriter, r *http.Request) {
	seller, err := sellerID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	settings, err := h.settings.Load(r.Context(), seller)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := checkPaymentMethod(req.PaymentMethod, settings.AcceptCash, settings.AcceptCard); err != nil {
		respondError(w, h.logger, err)
		return
	}

	cfg := pos.TaxConfig(settings)
	saleID := uuid.New().String()

	var completed pos.Sale
	err = h.carts.With(seller, func(cart *pos.CartEngine) error {
		totals, err := cart.Totals(r.Context(), h.calc, cfg)
		if err != nil {
			return err
		}

		return cart.CompleteSale(r.Context(), func(ctx context.Context, lines []pos.CartLine) error {
			completed = pos.Sale{
				SaleID:        saleID,
				SellerID:      seller,
				Lines:         lines,
				SubtotalCents: displayCents(totals.Subtotal),
				TaxCents:      displayCents(totals.Tax),
				TotalCents:    displayCents(totals.Total),
				PaymentMethod: req.PaymentMethod,
				CompletedAt:   time.Now().UTC(),
			}
			return h.completer.Complete(ctx, completed)
		})
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.metrics.SalesCompleted.WithLabelValues(seller).Inc()
	h.metrics.SaleValue.WithLabelValues(seller).Observe(float64(completed.SubtotalCents))
	h.logger.Info("sale completed",
		"sale_id", saleID,
		"seller_id", seller,
		"total_cents", completed.TotalCents,
	)

	respondJSON(w, http.StatusOK, completed)
}

func (h *POSHandler) cartView(r *http.Request, seller string) (*cartView, error) {
	settings, err := h.settings.Load(r.Context(), seller)
	if err != nil {
		return nil, err
	}
	cfg := pos.TaxConfig(settings)

	view := &cartView{
		Lines:      []cartLineView{},
		TaxLabel:   settings.TaxLabel,
		TaxEnabled: settings.EnableTax,
	}
	err = h.carts.With(seller, func(cart *pos.CartEngine) error {
		for _, line := range cart.Lines() {
			view.Lines = append(view.Lines, *lineView(line))
		}
		view.ItemCount = cart.ItemCount()
		view.SubtotalCents = cart.SubtotalCents()

		totals, err := cart.Totals(r.Context(), h.calc, cfg)
		if err != nil {
			return err
		}
		view.TaxCents = displayCents(totals.Tax)
		view.TotalCents = displayCents(totals.Total)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func checkPaymentMethod(method string, acceptCash, acceptCard bool) error {
	switch method {
	case "cash":
		if !acceptCash {
			return domain.Invalid("pos.sale", "Cash payments are not enabled")
		}
	case "card":
		if !acceptCard {
			return domain.Invalid("pos.sale", "Card payments are not enabled")
		}
	default:
		return domain.Invalid("pos.sale", "Unknown payment method")
	}
	return nil
}

// displayCents converts an exact decimal amount to whole cents at the display
// boundary. Rounding happens only here; the engine carries full precision.
func displayCents(d decimal.Decimal) int64 {
	return tax.RoundDisplay(d).Shift(2).IntPart()
}

func lineView(line pos.CartLine) *cartLineView {
	return &cartLineView{
		Key:            line.Key,
		ProductID:      line.ProductID,
		VariantID:      line.VariantID,
		Name:           line.Name,
		Color:          line.Color,
		Size:           line.Size,
		Quantity:       line.Quantity,
		UnitPriceCents: line.UnitPriceCents,
		MaxStock:       line.MaxStock,
	}
}
