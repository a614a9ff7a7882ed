package pricing

import (
	"encoding/json"
	"testing"

	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLength(t *testing.T) {
	t.Parallel()

	n, display := ParseLength("Length: 25 ft")
	require.NotNil(t, n)
	requireDecimal(t, "25", *n)
	assert.Equal(t, "25 ft", display)

	n, display = ParseLength("length:10 ft dBi")
	require.NotNil(t, n)
	requireDecimal(t, "10", *n)
	assert.Equal(t, "10 ft", display)

	n, _ = ParseLength("custom")
	assert.Nil(t, n)
}

func TestParseGain(t *testing.T) {
	t.Parallel()

	n, display := ParseGain("Gain: 5.5 dBi")
	require.NotNil(t, n)
	requireDecimal(t, "5.5", *n)
	assert.Equal(t, "5.5dBi", display)

	n, display = ParseGain(" Omni ")
	assert.Nil(t, n)
	assert.Equal(t, "Omni", display)
}

func TestIndexSortsNumericallyWithUnparseableLast(t *testing.T) {
	t.Parallel()

	p := Product{
		ID:   "cable-9",
		Type: enums.ProductTypeCable,
		Variants: []Variant{
			{ID: "custom", Title: "Custom"},
			{ID: "100", Title: "100 ft"},
			{ID: "5", Title: "5 ft"},
			{ID: "other", Title: "Other"},
			{ID: "25", Title: "25 ft"},
		},
	}
	sorted := BuildIndex(p).SortedByLength()
	ids := make([]string, 0, len(sorted))
	for _, opt := range sorted {
		ids = append(ids, opt.SourceID)
	}
	assert.Equal(t, []string{"5", "25", "100", "custom", "other"}, ids)
}

func TestIndexSkipsMalformedLegacyOptions(t *testing.T) {
	t.Parallel()

	p := Product{
		ID:            "bulk",
		Type:          enums.ProductTypeCable,
		PricePerFoot:  decPtr("0.5"),
		LengthOptions: []LegacyOption{{Value: "10 ft"}, {Value: "  "}, {Value: "50 ft"}},
	}
	idx := BuildIndex(p)
	assert.Equal(t, 2, idx.Len())
	require.Len(t, idx.Warnings(), 1)

	var warning *MalformedOptionWarning
	require.ErrorAs(t, idx.Warnings()[0], &warning)
	assert.Equal(t, OptionKindLength, warning.Kind)
	assert.Equal(t, 1, warning.Position)

	q := SelectUnitPrice(p, Selection{LengthValue: "50", Quantity: 1}, Catalog{})
	requireDecimal(t, "25", q.UnitPrice)
	assert.Len(t, q.Warnings, 1)
}

func TestIndexByIDFirstWins(t *testing.T) {
	t.Parallel()

	p := Product{
		ID:   "dup",
		Type: enums.ProductTypeCable,
		Variants: []Variant{
			{ID: "same", Title: "10 ft", CalculatedAmount: int64Ptr(100)},
			{ID: "same", Title: "20 ft", CalculatedAmount: int64Ptr(200)},
		},
	}
	opt, ok := BuildIndex(p).ByID("same")
	require.True(t, ok)
	assert.Equal(t, "10 ft", opt.Title)

	_, ok = BuildIndex(p).ByID("")
	assert.False(t, ok)
}

func TestFindLength(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(Product{
		ID:            "bulk",
		Type:          enums.ProductTypeCable,
		LengthOptions: []LegacyOption{{Value: "3 ft", Bare: true}, {Value: "Custom", Bare: true}},
	})

	opt, ok := idx.FindLength("Length: 3 ft")
	require.True(t, ok)
	assert.Equal(t, "3 ft", opt.Value)

	opt, ok = idx.FindLength("custom")
	require.True(t, ok)
	assert.Equal(t, "Custom", opt.Value)

	_, ok = idx.FindLength("7")
	assert.False(t, ok)
}

func TestLegacyOptionDecodesBothShapes(t *testing.T) {
	t.Parallel()

	var opts []LegacyOption
	payload := `["6dBi", {"value": 8, "price": 1200, "sku": "Y-8", "variantId": "var-8"}, {"value": "10dBi"}]`
	require.NoError(t, json.Unmarshal([]byte(payload), &opts))
	require.Len(t, opts, 3)

	assert.Equal(t, "6dBi", opts[0].Value)
	assert.True(t, opts[0].Bare)

	assert.Equal(t, "8", opts[1].Value)
	assert.Equal(t, "Y-8", opts[1].SKU)
	assert.Equal(t, "var-8", opts[1].VariantID)
	price, ok := opts[1].UnitPrice()
	require.True(t, ok)
	requireDecimal(t, "12", price)

	assert.False(t, opts[2].Bare)
	_, ok = opts[2].UnitPrice()
	assert.False(t, ok)

	out, err := json.Marshal(opts[0])
	require.NoError(t, err)
	assert.JSONEq(t, `"6dBi"`, string(out))
}

func TestLegacyOptionRejectsGarbage(t *testing.T) {
	t.Parallel()

	var opt LegacyOption
	assert.Error(t, json.Unmarshal([]byte(`{"value": [1,2]}`), &opt))
}
