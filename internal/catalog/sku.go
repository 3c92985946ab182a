package catalog

import (
	"fmt"
	"strings"

	"github.com/karstlund/vendhub/internal/domain"
)

// draftTokenMax caps each cleaned SKU token at 5 characters.
const draftTokenMax = 5

// DefaultSKUMaxAttempts bounds the per-product suffix-retry loop.
const DefaultSKUMaxAttempts = 10

// DuplicateSKUError reports a within-product SKU collision that survived the
// bounded suffix retry, naming the offending combo. It must reach the seller,
// never be dropped.
type DuplicateSKUError struct {
	Combo string
	SKU   string
}

func (e *DuplicateSKUError) Error() string {
	return fmt.Sprintf("duplicate SKU %q for variant combo %q", e.SKU, e.Combo)
}

// DraftSKU derives the editable draft token for one combo:
// productToken[-opt1Token][-opt2Token], sentinel segments omitted.
// The draft token is shown for editing and is not globally unique by itself.
func DraftSKU(namePrefix, opt1, opt2 string) string {
	segments := []string{cleanToken(namePrefix)}
	if opt1 != domain.OptionSentinel {
		if t := cleanToken(opt1); t != "" {
			segments = append(segments, t)
		}
	}
	if opt2 != domain.OptionSentinel {
		if t := cleanToken(opt2); t != "" {
			segments = append(segments, t)
		}
	}
	return strings.Join(segments, "-")
}

// cleanToken keeps alphanumerics, uppercases, and caps at draftTokenMax.
func cleanToken(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
		if b.Len() == draftTokenMax {
			break
		}
	}
	return b.String()
}

// sanitizeSKU normalizes a seller-edited SKU for final allocation: uppercase,
// alphanumerics and dashes only.
func sanitizeSKU(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SKUAllocator mints final SKUs at submission time. The 8-hex-character
// product-id prefix makes SKUs collision-free across products without any
// cross-product coordination; the suffix loop only resolves within-product
// collisions (e.g. a seller retyping identical SKU text on two combos).
type SKUAllocator struct {
	MaxAttempts int
}

// NewSKUAllocator creates an allocator with the given retry bound.
// Zero or negative maxAttempts falls back to DefaultSKUMaxAttempts.
func NewSKUAllocator(maxAttempts int) *SKUAllocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultSKUMaxAttempts
	}
	return &SKUAllocator{MaxAttempts: maxAttempts}
}

// FinalSKU computes the globally unique SKU for one combo:
// productID[:8] + "-" + sanitize(draft-or-edited token), suffixed -2, -3, ...
// while the result is already taken within this product. The taken set is
// updated with the allocated SKU before returning.
func (a *SKUAllocator) FinalSKU(productID, editedSKU, combo string, taken map[string]struct{}) (string, error) {
	token := sanitizeSKU(editedSKU)
	if token == "" {
		token = "SKU"
	}

	base := fmt.Sprintf("%s-%s", productID[:8], token)

	candidate := base
	for attempt := 2; ; attempt++ {
		if _, exists := taken[candidate]; !exists {
			taken[candidate] = struct{}{}
			return candidate, nil
		}
		if attempt > a.MaxAttempts {
			return "", &DuplicateSKUError{Combo: combo, SKU: base}
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}
}
