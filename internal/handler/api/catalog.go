package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/karstlund/vendhub/internal/catalog"
	"github.com/karstlund/vendhub/internal/domain"
	"github.com/karstlund/vendhub/internal/service"
)

// CatalogHandler serves product submission requests.
type CatalogHandler struct {
	submissions service.SubmissionService
	logger      *slog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(submissions service.SubmissionService, logger *slog.Logger) *CatalogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{
		submissions: submissions,
		logger:      logger,
	}
}

// variantOverride carries a seller's per-combo edits from the client edit
// session. Absent fields fall back to the product baseline.
type variantOverride struct {
	PriceCents *int64 `json:"price_cents"`
	Stock      *int32 `json:"stock"`
	SKU        string `json:"sku"`
	ImageURL   string `json:"image_url"`
}

type submitProductRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	BasePriceCents int64    `json:"base_price_cents"`
	BaseStock      int32    `json:"base_stock"`
	ImageURIs      []string `json:"image_uris"`

	VariantsEnabled bool     `json:"variants_enabled"`
	VariantLabel1   string   `json:"variant_label1"`
	VariantLabel2   string   `json:"variant_label2"`
	Option1Values   []string `json:"option1_values"`
	Option2Values   []string `json:"option2_values"`
	Option2Active   bool     `json:"option2_active"`

	// Overrides is keyed by combo ("<option1>-<option2>", sentinel "-" for an
	// unused dimension), matching the client's edit cache.
	Overrides map[string]variantOverride `json:"overrides"`

	SubmittedBy string `json:"submitted_by"`
}

type variantResponse struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	VariantName string `json:"variant_name"`
	Option1     string `json:"option1,omitempty"`
	Option2     string `json:"option2,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int32  `json:"stock"`
}

type imageResponse struct {
	ImageURL  string `json:"image_url"`
	SortOrder int32  `json:"sort_order"`
	IsPrimary bool   `json:"is_primary"`
}

type submitProductResponse struct {
	ProductID      string            `json:"product_id"`
	ApprovalStatus string            `json:"approval_status"`
	TotalStock     int32             `json:"total_stock"`
	Variants       []variantResponse `json:"variants"`
	Images         []imageResponse   `json:"images"`
}

// SubmitProduct handles POST /api/products.
func (h *CatalogHandler) SubmitProduct(w http.ResponseWriter, r *http.Request) {
	seller, err := sellerID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req submitProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	result, err := h.submissions.Submit(r.Context(), service.SubmitProductParams{
		SellerID:        seller,
		Name:            req.Name,
		Description:     req.Description,
		CategoryName:    req.Category,
		BasePriceCents:  req.BasePriceCents,
		ImageURIs:       req.ImageURIs,
		VariantsEnabled: req.VariantsEnabled,
		VariantLabel1:   req.VariantLabel1,
		VariantLabel2:   req.VariantLabel2,
		Option1Values:   req.Option1Values,
		Option2Values:   req.Option2Values,
		Option2Active:   req.Option2Active,
		EditCache:       buildEditCache(req),
		BaseStock:       req.BaseStock,
		SubmittedBy:     req.SubmittedBy,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	resp := submitProductResponse{
		ProductID:      uuid.UUID(result.Product.ID.Bytes).String(),
		ApprovalStatus: string(result.Product.ApprovalStatus),
		TotalStock:     result.TotalStock,
	}
	for _, v := range result.Variants {
		resp.Variants = append(resp.Variants, variantResponse{
			ID:          uuid.UUID(v.ID.Bytes).String(),
			SKU:         v.SKU,
			VariantName: v.VariantName,
			Option1:     v.Option1Value.String,
			Option2:     v.Option2Value.String,
			PriceCents:  v.PriceCents,
			Stock:       v.Stock,
		})
	}
	for _, img := range result.Images {
		resp.Images = append(resp.Images, imageResponse{
			ImageURL:  img.ImageURL,
			SortOrder: img.SortOrder,
			IsPrimary: img.IsPrimary,
		})
	}

	respondJSON(w, http.StatusCreated, resp)
}

// buildEditCache reconstructs the edit cache from the request's override map.
// Combos are enumerated the same way the composer does, so an override for a
// value the seller since removed simply never matches a generated draft.
func buildEditCache(req submitProductRequest) catalog.EditCache {
	if len(req.Overrides) == 0 {
		return nil
	}

	cache := make(catalog.EditCache, len(req.Overrides))
	entry := func(opt1, opt2 string) {
		key := catalog.ComboKey(opt1, opt2)
		ov, ok := req.Overrides[key]
		if !ok {
			return
		}

		price := req.BasePriceCents
		if ov.PriceCents != nil {
			price = *ov.PriceCents
		}
		sku := ov.SKU
		if sku == "" {
			sku = catalog.DraftSKU(req.Name, opt1, opt2)
		}

		cache[key] = catalog.VariantDraft{
			Key:        key,
			Option1:    opt1,
			Option2:    opt2,
			PriceCents: price,
			Stock:      ov.Stock,
			SKU:        sku,
			ImageURL:   ov.ImageURL,
		}
	}

	if req.Option2Active && len(req.Option2Values) > 0 {
		for _, v1 := range req.Option1Values {
			for _, v2 := range req.Option2Values {
				entry(v1, v2)
			}
		}
	} else {
		for _, v1 := range req.Option1Values {
			entry(v1, domain.OptionSentinel)
		}
	}
	return cache
}
