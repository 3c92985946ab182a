package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karstlund/vendhub/internal/catalog"
)

func int32p(v int32) *int32 { return &v }

func draftKeys(drafts []catalog.VariantDraft) []string {
	keys := make([]string, len(drafts))
	for i, d := range drafts {
		keys[i] = d.Key
	}
	return keys
}

func TestGenerate_CrossJoin(t *testing.T) {
	drafts := catalog.Generate(catalog.GenerateParams{
		Option1Values:  []string{"Red", "Blue"},
		Option2Values:  []string{"S", "M"},
		Option2Active:  true,
		BasePriceCents: 1000,
		NamePrefix:     "Premium Tee",
	})

	require.Len(t, drafts, 4)
	assert.Equal(t, []string{"Red-S", "Red-M", "Blue-S", "Blue-M"}, draftKeys(drafts),
		"outer loop over option 1 in list order, inner over option 2")

	for _, d := range drafts {
		assert.Equal(t, int64(1000), d.PriceCents, "uncached draft inherits the base price")
		assert.Nil(t, d.Stock, "stock starts unset and must be filled in")
		assert.NotEmpty(t, d.SKU)
	}
}

func TestGenerate_SingleDimension(t *testing.T) {
	drafts := catalog.Generate(catalog.GenerateParams{
		Option1Values:  []string{"Red", "Blue"},
		BasePriceCents: 500,
		NamePrefix:     "Mug",
	})

	require.Len(t, drafts, 2)
	assert.Equal(t, []string{"Red--", "Blue--"}, draftKeys(drafts),
		"unused second dimension appears as the sentinel in the key")
	assert.Equal(t, "Red", drafts[0].Option1)
	assert.Equal(t, "-", drafts[0].Option2)
}

func TestGenerate_SecondDimensionIgnoredWhenInactive(t *testing.T) {
	drafts := catalog.Generate(catalog.GenerateParams{
		Option1Values: []string{"Red"},
		Option2Values: []string{"S", "M"},
		Option2Active: false,
	})

	require.Len(t, drafts, 1)
	assert.Equal(t, "Red--", drafts[0].Key)
}

func TestGenerate_NoValues(t *testing.T) {
	assert.Nil(t, catalog.Generate(catalog.GenerateParams{}))

	// Option 2 values without any option 1 values produce nothing.
	assert.Nil(t, catalog.Generate(catalog.GenerateParams{
		Option2Values: []string{"S"},
		Option2Active: true,
	}))
}

func TestGenerate_CachePreservesEditsAcrossRegeneration(t *testing.T) {
	cache := catalog.EditCache{}
	params := catalog.GenerateParams{
		Option1Values:  []string{"Red"},
		BasePriceCents: 1000,
		NamePrefix:     "Tee",
		Cache:          cache,
	}

	drafts := catalog.Generate(params)
	require.Len(t, drafts, 1)

	// Seller edits the Red draft and the edits are remembered.
	edited := drafts[0]
	edited.PriceCents = 1500
	edited.Stock = int32p(3)
	edited.SKU = "TEE-RED-X"
	cache.Remember(edited)

	// Adding Green regenerates everything; Red's edits must survive.
	params.Option1Values = []string{"Red", "Green"}
	drafts = catalog.Generate(params)
	require.Len(t, drafts, 2)

	red, green := drafts[0], drafts[1]
	assert.Equal(t, int64(1500), red.PriceCents)
	require.NotNil(t, red.Stock)
	assert.Equal(t, int32(3), *red.Stock)
	assert.Equal(t, "TEE-RED-X", red.SKU)

	assert.Equal(t, int64(1000), green.PriceCents, "new draft starts from the base price")
	assert.Nil(t, green.Stock)
}

func TestGenerate_CacheResurrectsRemovedValue(t *testing.T) {
	cache := catalog.EditCache{}
	cache.Remember(catalog.VariantDraft{
		Key:        catalog.ComboKey("Red", "-"),
		Option1:    "Red",
		Option2:    "-",
		PriceCents: 1750,
		Stock:      int32p(9),
	})

	// "Red" was removed and re-added; the cached entry keyed by value text
	// still applies.
	drafts := catalog.Generate(catalog.GenerateParams{
		Option1Values:  []string{"Red"},
		BasePriceCents: 1000,
		Cache:          cache,
	})

	require.Len(t, drafts, 1)
	assert.Equal(t, int64(1750), drafts[0].PriceCents)
	require.NotNil(t, drafts[0].Stock)
	assert.Equal(t, int32(9), *drafts[0].Stock)
}

func TestComboKey(t *testing.T) {
	assert.Equal(t, "Red-M", catalog.ComboKey("Red", "M"))
	assert.Equal(t, "Red--", catalog.ComboKey("Red", "-"))
}
