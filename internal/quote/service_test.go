package quote

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/angelmondragon/rflink-backend/internal/pricing"
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/rflink-backend/pkg/errors"
	"github.com/angelmondragon/rflink-backend/pkg/logger"
	"github.com/angelmondragon/rflink-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	products map[string]pricing.Product
	catalog  pricing.Catalog
	err      error
}

func (s *stubCatalog) Product(_ context.Context, id string) (pricing.Product, error) {
	if s.err != nil {
		return pricing.Product{}, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return pricing.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return p, nil
}

func (s *stubCatalog) Catalog(context.Context) (pricing.Catalog, error) {
	return s.catalog, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "expected %s got %s", want, got.String())
}

func fixtures() *stubCatalog {
	return &stubCatalog{
		products: map[string]pricing.Product{
			"jumper-1": {
				ID:            "jumper-1",
				Type:          enums.ProductTypeConnector,
				Title:         "LMR-400 Jumper",
				CableTypeSlug: "lmr-400",
				ConnectorPricing: []pricing.ConnectorPricingEntry{
					{CableTypeSlug: "lmr-400", Price: dec("3.00")},
				},
				LengthOptions: []pricing.LegacyOption{
					{Value: "25 ft", Bare: true},
					{Value: "10 ft", Bare: true},
				},
			},
			"n-male": {
				ID:    "n-male",
				Type:  enums.ProductTypeConnector,
				Title: "N Male",
				ConnectorPricing: []pricing.ConnectorPricingEntry{
					{CableTypeSlug: "lmr-400", Price: dec("6.25")},
					{CableTypeSlug: "lmr-240", Price: dec("5.10")},
				},
			},
			"yagi-1": {
				ID:    "yagi-1",
				Type:  enums.ProductTypeAntenna,
				Title: "Yagi",
				Price: dec("100"),
				GainOptions: []pricing.LegacyOption{
					{Value: "9", Bare: true},
					{Value: "6", Bare: true},
				},
			},
		},
		catalog: pricing.Catalog{CableTypes: []pricing.CableType{
			{ID: "ct-1", Name: "LMR 400", Slug: "lmr-400", SeriesSlug: "lmr", PricePerFoot: dec("0.50")},
			{Name: "LMR 240", Slug: "lmr-240", SeriesSlug: "lmr", PricePerFoot: dec("0.35")},
			{Name: "RG 58", Slug: "rg-58", PricePerFoot: dec("0.20")},
		}},
	}
}

func newTestService(t *testing.T, catalog catalogReader, out io.Writer) Service {
	t.Helper()
	if out == nil {
		out = io.Discard
	}
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: out})
	svc, err := NewService(catalog, logg, metrics.NewPricingMetrics(prometheus.NewRegistry()))
	require.NoError(t, err)
	return svc
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(v int) *int {
	return &v
}

func TestNewServiceValidatesDeps(t *testing.T) {
	t.Parallel()
	_, err := NewService(nil, logger.New(logger.Options{Output: io.Discard}), nil)
	require.Error(t, err)
	_, err = NewService(fixtures(), nil, nil)
	require.Error(t, err)
}

func TestQuoteDisplaysShortestLengthBeforeSelection(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, fixtures(), nil)

	res, err := svc.Quote(context.Background(), QuoteInput{ProductID: "jumper-1"})
	require.NoError(t, err)
	requireDecimal(t, "11", res.UnitPrice)
	require.True(t, res.DisplayOnly)
	require.Equal(t, 1, res.Quantity)
	requireDecimal(t, "11", res.LineTotal)
	require.Equal(t, "jumper-1", res.Identity)
	require.Equal(t, enums.MatchTierExact, res.MatchTier)
}

func TestQuoteWithSelectedLength(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, fixtures(), nil)

	res, err := svc.Quote(context.Background(), QuoteInput{
		ProductID: "jumper-1",
		Selection: pricing.Selection{LengthValue: "25 ft", Quantity: 3},
	})
	require.NoError(t, err)
	requireDecimal(t, "18.5", res.UnitPrice)
	requireDecimal(t, "55.5", res.LineTotal)
	require.Equal(t, enums.PricingStrategyConnectorPair, res.Strategy)
	require.False(t, res.DisplayOnly)
	require.Equal(t, "jumper-1-25", res.Identity)
}

func TestQuoteNotFound(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, fixtures(), nil)

	_, err := svc.Quote(context.Background(), QuoteInput{ProductID: "missing"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestCartLineMissingSelectionIsValidationError(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, fixtures(), nil)

	_, err := svc.CartLine(context.Background(), CartLineInput{
		ProductID: "jumper-1",
		Selection: pricing.Selection{Quantity: 1},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Equal(t, "length not selected", typed.Message())
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	require.Equal(t, pricing.FieldLength, details["field"])
	require.Equal(t, "missing", details["reason"])
}

func TestCartLineMergesIntoExistingLines(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, fixtures(), nil)
	ctx := context.Background()

	existing := []pricing.CartLine{
		{Identity: "jumper-1-25", ProductID: "jumper-1", Quantity: 2, UnitPrice: dec("17")},
		{Identity: "yagi-1", ProductID: "yagi-1", Quantity: 1, UnitPrice: dec("100")},
	}

	res, err := svc.CartLine(ctx, CartLineInput{
		ProductID: "jumper-1",
		Selection: pricing.Selection{LengthValue: "25", Quantity: 3},
		Lines:     existing,
	})
	require.NoError(t, err)
	require.Equal(t, "jumper-1-25", res.Line.Identity)
	requireDecimal(t, "18.5", res.Line.UnitPrice)
	require.Len(t, res.Lines, 2)
	require.Equal(t, 5, res.Lines[0].Quantity)
	requireDecimal(t, "18.5", res.Lines[0].UnitPrice)
	require.Equal(t, 2, existing[0].Quantity)

	res, err = svc.CartLine(ctx, CartLineInput{
		ProductID: "jumper-1",
		Selection: pricing.Selection{LengthValue: "25 ft", Quantity: 4},
		Lines:     existing,
		MergeMode: enums.MergeModeReplace,
	})
	require.NoError(t, err)
	require.Equal(t, 4, res.Lines[0].Quantity)

	res, err = svc.CartLine(ctx, CartLineInput{
		ProductID: "jumper-1",
		Selection: pricing.Selection{LengthIndex: intPtr(0), Quantity: 1},
	})
	require.NoError(t, err)
	require.Equal(t, "jumper-1-10", res.Line.Identity)
	require.Nil(t, res.Lines)
}

func TestCartLineRejectsUnknownMergeMode(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, fixtures(), nil)

	_, err := svc.CartLine(context.Background(), CartLineInput{
		ProductID: "jumper-1",
		Selection: pricing.Selection{LengthValue: "25", Quantity: 1},
		MergeMode: "sum",
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCartLineUnpriceable(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	svc := newTestService(t, fixtures(), buf)

	_, err := svc.CartLine(context.Background(), CartLineInput{
		ProductID: "n-male",
		Selection: pricing.Selection{CableSeriesSlug: "rg", CableTypeSlug: "rg-174", Quantity: 1},
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnpriceable))
	require.Contains(t, buf.String(), "pricing warning")
	require.Contains(t, buf.String(), `"product_id":"n-male"`)
}

func TestCartLineRefusesRepresentativePrice(t *testing.T) {
	t.Parallel()
	store := fixtures()
	store.products["cab"] = pricing.Product{
		ID:   "cab",
		Type: enums.ProductTypeCable,
		LengthOptions: []pricing.LegacyOption{
			{Value: "10 ft", Price: decPtr("5")},
			{Value: "25 ft", Price: decPtr("9")},
		},
	}
	store.products["bulk-custom"] = pricing.Product{
		ID:            "bulk-custom",
		Type:          enums.ProductTypeCable,
		PricePerFoot:  decPtr("0.50"),
		LengthOptions: []pricing.LegacyOption{{Value: "10 ft", Bare: true}, {Value: "Custom", Bare: true}},
	}
	svc := newTestService(t, store, nil)
	ctx := context.Background()

	inputs := []CartLineInput{
		{ProductID: "cab", Selection: pricing.Selection{LengthValue: "50", Quantity: 1}},
		{ProductID: "bulk-custom", Selection: pricing.Selection{LengthIndex: intPtr(1), Quantity: 1}},
		{ProductID: "jumper-1", Selection: pricing.Selection{Quantity: 1}},
		{ProductID: "yagi-1", Selection: pricing.Selection{Quantity: 1}},
	}
	for _, input := range inputs {
		display, err := svc.Quote(ctx, QuoteInput{ProductID: input.ProductID, Selection: input.Selection})
		require.NoError(t, err)
		require.True(t, display.DisplayOnly, input.ProductID)

		res, err := svc.CartLine(ctx, input)
		require.Nil(t, res, input.ProductID)
		require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "%s: %v", input.ProductID, err)
	}

	res, err := svc.CartLine(ctx, CartLineInput{ProductID: "cab", Selection: pricing.Selection{LengthValue: "25", Quantity: 1}})
	require.NoError(t, err)
	requireDecimal(t, "9", res.Line.UnitPrice)
}

func TestCartLineStandaloneConnector(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, fixtures(), nil)

	res, err := svc.CartLine(context.Background(), CartLineInput{
		ProductID: "n-male",
		Selection: pricing.Selection{CableSeriesSlug: "lmr", CableTypeSlug: "lmr-240", Quantity: 2},
	})
	require.NoError(t, err)
	requireDecimal(t, "5.1", res.Line.UnitPrice)
	require.Equal(t, "n-male-lmr-lmr-240", res.Line.Identity)
	require.Equal(t, 2, res.Line.Quantity)
}

func TestOptions(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, fixtures(), nil)
	ctx := context.Background()

	res, err := svc.Options(ctx, "jumper-1", "lmr")
	require.NoError(t, err)
	require.Len(t, res.Lengths, 2)
	require.Equal(t, "10 ft", res.Lengths[0].Value)
	require.Equal(t, "25 ft", res.Lengths[1].Value)
	require.Len(t, res.CableTypes, 2)
	require.Equal(t, []string{"lmr", "rg"}, res.Series)

	res, err = svc.Options(ctx, "yagi-1", "")
	require.NoError(t, err)
	require.Len(t, res.Gains, 2)
	require.Equal(t, "6", res.Gains[0].Value)
	require.Len(t, res.CableTypes, 3)
}

func TestWarningKind(t *testing.T) {
	t.Parallel()
	require.Equal(t, warningUnresolvedPrice, warningKind(&pricing.UnresolvedPriceWarning{}))
	require.Equal(t, warningMalformedOption, warningKind(&pricing.MalformedOptionWarning{}))
	require.Equal(t, warningOther, warningKind(pkgerrors.New(pkgerrors.CodeInternal, "x")))
}
