package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/rflink-backend/internal/catalog"
	"github.com/angelmondragon/rflink-backend/internal/pricing"
	"github.com/angelmondragon/rflink-backend/internal/quote"
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/rflink-backend/pkg/errors"
	"github.com/angelmondragon/rflink-backend/pkg/logger"
	"github.com/angelmondragon/rflink-backend/pkg/types"
)

type stubQuoteService struct {
	quoteInput    quote.QuoteInput
	cartLineInput quote.CartLineInput
	series        string
	err           error
}

func (s *stubQuoteService) Quote(_ context.Context, input quote.QuoteInput) (*quote.QuoteResult, error) {
	s.quoteInput = input
	if s.err != nil {
		return nil, s.err
	}
	return &quote.QuoteResult{ProductID: input.ProductID, UnitPrice: decimal.RequireFromString("11"), Identity: input.ProductID}, nil
}

func (s *stubQuoteService) CartLine(_ context.Context, input quote.CartLineInput) (*quote.CartLineResult, error) {
	s.cartLineInput = input
	if s.err != nil {
		return nil, s.err
	}
	return &quote.CartLineResult{Line: pricing.CartLine{Identity: input.ProductID + "-25", ProductID: input.ProductID, Quantity: input.Selection.Quantity}}, nil
}

func (s *stubQuoteService) Options(_ context.Context, productID, series string) (*quote.OptionsResult, error) {
	s.series = series
	if s.err != nil {
		return nil, s.err
	}
	return &quote.OptionsResult{ProductID: productID, Series: []string{"lmr"}}, nil
}

type stubCatalogService struct {
	snapshot catalog.Snapshot
	types    []pricing.CableType
	deleted  string
	err      error
}

func (s *stubCatalogService) DeleteProduct(_ context.Context, id string) error {
	s.deleted = id
	return s.err
}

func (s *stubCatalogService) Product(context.Context, string) (pricing.Product, error) {
	return pricing.Product{}, s.err
}

func (s *stubCatalogService) Catalog(context.Context) (pricing.Catalog, error) {
	return pricing.Catalog{}, s.err
}

func (s *stubCatalogService) IngestProduct(_ context.Context, snapshot catalog.Snapshot) (pricing.Product, error) {
	s.snapshot = snapshot
	if s.err != nil {
		return pricing.Product{}, s.err
	}
	return snapshot.Product, nil
}

func (s *stubCatalogService) UpsertCableTypes(_ context.Context, types []pricing.CableType) (pricing.Catalog, error) {
	s.types = types
	if s.err != nil {
		return pricing.Catalog{}, s.err
	}
	return pricing.Catalog{CableTypes: types}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var body types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestPricingQuote(t *testing.T) {
	svc := &stubQuoteService{}
	body := `{"product_id":"jumper-1","selection":{"length_value":"25 ft","quantity":2,"thumbnail_index":3}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()

	PricingQuote(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "jumper-1", svc.quoteInput.ProductID)
	require.Equal(t, "25 ft", svc.quoteInput.Selection.LengthValue)
	require.Equal(t, 2, svc.quoteInput.Selection.Quantity)

	var envelope struct {
		Data quote.QuoteResult `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.True(t, decimal.RequireFromString("11").Equal(envelope.Data.UnitPrice))
}

func TestPricingQuoteRejectsBadBodies(t *testing.T) {
	cases := map[string]string{
		"missing product": `{"selection":{}}`,
		"unknown field":   `{"product_id":"x","colour":"red"}`,
		"not json":        `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(body))
			rec := httptest.NewRecorder()
			PricingQuote(&stubQuoteService{}, testLogger()).ServeHTTP(rec, req)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, string(pkgerrors.CodeValidation), decodeError(t, rec).Code)
		})
	}
}

func TestPricingCartLine(t *testing.T) {
	svc := &stubQuoteService{}
	body := `{"product_id":"jumper-1","selection":{"length_value":"25","quantity":1},"merge_mode":"replace",
		"lines":[{"identity":"jumper-1-25","product_id":"jumper-1","quantity":2,"unit_price":"18.5","strategy":"connector_pair"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/cart-line", strings.NewReader(body))
	rec := httptest.NewRecorder()

	PricingCartLine(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, enums.MergeModeReplace, svc.cartLineInput.MergeMode)
	require.Len(t, svc.cartLineInput.Lines, 1)
	require.Equal(t, 2, svc.cartLineInput.Lines[0].Quantity)
}

func TestPricingCartLineValidationDetails(t *testing.T) {
	svc := &stubQuoteService{
		err: pkgerrors.New(pkgerrors.CodeValidation, "length not selected").
			WithDetails(map[string]any{"field": "length", "reason": "missing"}),
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/cart-line", strings.NewReader(`{"product_id":"jumper-1","selection":{"quantity":1}}`))
	rec := httptest.NewRecorder()

	PricingCartLine(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeError(t, rec)
	require.Equal(t, "length not selected", apiErr.Message)
	details, ok := apiErr.Details.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "length", details["field"])
}

func TestPricingCartLineRejectsMergeMode(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/cart-line", strings.NewReader(`{"product_id":"jumper-1","merge_mode":"sum"}`))
	rec := httptest.NewRecorder()
	PricingCartLine(&stubQuoteService{}, testLogger()).ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPricingNilService(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	PricingQuote(nil, testLogger()).ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
