package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "expected %s got %s", want, got.String())
}

func lmrCatalog() Catalog {
	return Catalog{CableTypes: []CableType{
		{ID: "ct-1", Name: "LMR 400", Slug: "lmr-400", PricePerFoot: dec("0.50"), SeriesSlug: "lmr"},
		{ID: "ct-2", Name: "LMR 240", Slug: "lmr-240", PricePerFoot: dec("0.35"), SeriesSlug: "lmr"},
		{ID: "ct-3", Name: "RG-58", Slug: "rg-58", PricePerFoot: dec("0.20")},
	}}
}
