package catalog

import (
	"fmt"

	"github.com/karstlund/vendhub/internal/domain"
)

// VariantDraft is an in-memory, unpersisted candidate variant record.
// Drafts are regenerated on every option-set edit and never written to
// storage themselves.
type VariantDraft struct {
	// Key uniquely identifies the (option1, option2) combo: "opt1-opt2",
	// with the sentinel "-" standing in for an unused dimension.
	Key string

	Option1 string
	Option2 string

	PriceCents int64

	// Stock is nil until the seller fills it in; submission rejects drafts
	// without an explicit stock figure.
	Stock *int32

	SKU      string
	ImageURL string
}

// EditCache preserves a seller's per-combo edits across regenerations.
// It is externally owned and threaded through Generate calls; the composer
// never mutates it. Because entries are keyed by value text, removing and
// re-adding a value resurrects its old price/stock/SKU — the intended
// quick-undo behavior.
type EditCache map[string]VariantDraft

// ComboKey builds the cache key for one (option1, option2) value pair.
func ComboKey(opt1, opt2 string) string {
	return fmt.Sprintf("%s-%s", opt1, opt2)
}

// GenerateParams are the inputs to one composer pass.
type GenerateParams struct {
	Option1Values []string
	Option2Values []string

	// Option2Active reports whether the seller enabled the second dimension.
	// When false, option-2 values are ignored even if present.
	Option2Active bool

	Cache          EditCache
	BasePriceCents int64
	NamePrefix     string
}

// Generate derives the ordered draft list from the option sets.
//
//   - Both dimensions active and non-empty: cross join, outer loop over
//     option 1 in list order, inner loop over option 2.
//   - Only option 1 non-empty: one draft per value, option 2 sentinel.
//   - Otherwise: empty (submission falls back to a single synthesized
//     "Default" variant).
//
// A draft whose combo key exists in the cache keeps the cached
// price/stock/SKU/image; everything else defaults to the base price, unset
// stock, and a derived draft SKU.
func Generate(params GenerateParams) []VariantDraft {
	switch {
	case params.Option2Active && len(params.Option1Values) > 0 && len(params.Option2Values) > 0:
		drafts := make([]VariantDraft, 0, len(params.Option1Values)*len(params.Option2Values))
		for _, v1 := range params.Option1Values {
			for _, v2 := range params.Option2Values {
				drafts = append(drafts, buildDraft(params, v1, v2))
			}
		}
		return drafts

	case len(params.Option1Values) > 0:
		drafts := make([]VariantDraft, 0, len(params.Option1Values))
		for _, v1 := range params.Option1Values {
			drafts = append(drafts, buildDraft(params, v1, domain.OptionSentinel))
		}
		return drafts

	default:
		return nil
	}
}

func buildDraft(params GenerateParams, opt1, opt2 string) VariantDraft {
	key := ComboKey(opt1, opt2)

	if cached, ok := params.Cache[key]; ok {
		return VariantDraft{
			Key:        key,
			Option1:    opt1,
			Option2:    opt2,
			PriceCents: cached.PriceCents,
			Stock:      cached.Stock,
			SKU:        cached.SKU,
			ImageURL:   cached.ImageURL,
		}
	}

	return VariantDraft{
		Key:        key,
		Option1:    opt1,
		Option2:    opt2,
		PriceCents: params.BasePriceCents,
		SKU:        DraftSKU(params.NamePrefix, opt1, opt2),
	}
}

// Remember stores a draft's current edits back into the cache under its
// combo key, so the next Generate pass can restore them.
func (c EditCache) Remember(draft VariantDraft) {
	c[draft.Key] = draft
}
