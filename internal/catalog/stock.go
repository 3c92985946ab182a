package catalog

import (
	"fmt"

	"github.com/karstlund/vendhub/internal/domain"
)

// VariantRow is a finalized, insert-ready variant produced from drafts at
// submission time (final SKU allocated, stock resolved).
type VariantRow struct {
	SKU         string
	Option1     string
	Option2     string
	PriceCents  int64
	Stock       int32
	VariantName string
	ImageURL    string
}

// TotalStock sums the base-stock figure and every variant row's stock. This
// is the product's displayed total; the Σ(variant.stock) invariant holds
// because base stock is materialized as a hidden variant row (SynthesizeBase)
// rather than special-cased at read time.
func TotalStock(baseStock int32, rows []VariantRow) int32 {
	total := baseStock
	for _, row := range rows {
		total += row.Stock
	}
	return total
}

// SynthesizeBase builds the hidden base variant carrying attribute-less
// inventory. It is synthesized only when the seller both enabled the variant
// system and entered a non-zero base-stock figure; a blank base-stock field
// counts as 0 and produces nothing.
func SynthesizeBase(productID, namePrefix string, basePriceCents int64, baseStock int32, variantsEnabled bool) (VariantRow, bool) {
	if !variantsEnabled || baseStock <= 0 {
		return VariantRow{}, false
	}

	token := cleanToken(namePrefix)
	if token == "" {
		token = "SKU"
	}

	return VariantRow{
		SKU:         fmt.Sprintf("%s-%s-BASE", productID[:8], token),
		Option1:     domain.OptionSentinel,
		Option2:     domain.OptionSentinel,
		PriceCents:  basePriceCents,
		Stock:       baseStock,
		VariantName: "Base",
	}, true
}
