package quote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/rflink-backend/internal/pricing"
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/rflink-backend/pkg/errors"
	"github.com/angelmondragon/rflink-backend/pkg/logger"
	"github.com/angelmondragon/rflink-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

const (
	operationQuote    = "quote"
	operationCartLine = "cart_line"
	operationOptions  = "options"
)

type catalogReader interface {
	Product(ctx context.Context, id string) (pricing.Product, error)
	Catalog(ctx context.Context) (pricing.Catalog, error)
}

// Service prices selections for product pages and cart actions.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*QuoteResult, error)
	CartLine(ctx context.Context, input CartLineInput) (*CartLineResult, error)
	Options(ctx context.Context, productID, series string) (*OptionsResult, error)
}

type service struct {
	catalog catalogReader
	engine  *pricing.Engine
	logg    *logger.Logger
	metrics *metrics.PricingMetrics
	now     func() time.Time
}

// NewService builds the quote service over the catalog reader.
func NewService(catalog catalogReader, logg *logger.Logger, m *metrics.PricingMetrics) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		catalog: catalog,
		engine:  pricing.NewEngine(newObserver(logg, m)),
		logg:    logg,
		metrics: m,
		now:     time.Now,
	}, nil
}

func (s *service) Quote(ctx context.Context, input QuoteInput) (*QuoteResult, error) {
	defer s.observe(operationQuote, s.now())

	p, catalog, err := s.load(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithProductID(ctx, p.ID)

	eval := s.engine.Evaluate(ctx, p, input.Selection, catalog)
	qty := input.Selection.Quantity
	if qty < 1 {
		qty = 1
	}
	q := eval.Quote
	return &QuoteResult{
		ProductID:   p.ID,
		UnitPrice:   q.UnitPrice,
		Quantity:    qty,
		LineTotal:   pricing.RoundCents(q.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))),
		Strategy:    q.Strategy,
		DisplayOnly: q.DisplayOnly,
		PriceKnown:  q.PriceKnown,
		MatchTier:   q.MatchTier,
		OptionID:    q.OptionID,
		Identity:    eval.Identity,
		SKU:         eval.SKU,
		Label:       eval.Label,
		Warnings:    warningStrings(q.Warnings),
	}, nil
}

func (s *service) CartLine(ctx context.Context, input CartLineInput) (*CartLineResult, error) {
	defer s.observe(operationCartLine, s.now())

	mode := input.MergeMode
	if mode == "" {
		mode = enums.MergeModeAdd
	}
	if !mode.IsValid() {
		return nil, pkgerrors.InvalidField("merge_mode", fmt.Sprintf("invalid merge mode %q", input.MergeMode))
	}

	p, catalog, err := s.load(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithProductID(ctx, p.ID)

	line, q, err := s.engine.CartLine(ctx, p, input.Selection, catalog)
	if err != nil {
		if verr, ok := pricing.AsValidationError(err); ok {
			s.logg.Info(s.logg.WithField(ctx, "field", verr.Field), "cart line rejected")
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, verr.Error()).
				WithDetails(map[string]any{"field": verr.Field, "reason": string(verr.Kind)})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build cart line")
	}
	if q.DisplayOnly {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selection is incomplete").
			WithDetails(map[string]any{"product_id": p.ID, "strategy": q.Strategy.String()})
	}
	if !q.PriceKnown {
		return nil, pkgerrors.New(pkgerrors.CodeUnpriceable, "price could not be determined for this selection").
			WithDetails(map[string]any{
				"product_id": p.ID,
				"strategy":   q.Strategy.String(),
				"warnings":   warningStrings(q.Warnings),
			})
	}

	result := &CartLineResult{Line: line, Warnings: warningStrings(q.Warnings)}
	if input.Lines != nil {
		result.Lines = pricing.MergeLine(input.Lines, line, mode)
	}
	return result, nil
}

func (s *service) Options(ctx context.Context, productID, series string) (*OptionsResult, error) {
	defer s.observe(operationOptions, s.now())

	p, catalog, err := s.load(ctx, productID)
	if err != nil {
		return nil, err
	}

	idx := pricing.BuildIndex(p)
	result := &OptionsResult{
		ProductID:   p.ID,
		ProductType: p.Type,
		Series:      pricing.Series(catalog),
		CableTypes:  pricing.CableTypesForSeries(catalog, series),
		Warnings:    warningStrings(idx.Warnings()),
	}
	switch p.Type {
	case enums.ProductTypeAntenna:
		result.Gains = toOptions(idx.SortedByGain())
	case enums.ProductTypeCable:
		result.Lengths = toOptions(idx.SortedByLength())
	case enums.ProductTypeConnector:
		if len(p.LengthOptions) > 0 || strings.TrimSpace(p.CableTypeSlug) != "" {
			result.Lengths = toOptions(idx.SortedByLength())
		} else {
			result.Variants = toOptions(idx.Variants())
		}
	}
	return result, nil
}

// load fetches the product snapshot and the cable catalog concurrently.
func (s *service) load(ctx context.Context, productID string) (pricing.Product, pricing.Catalog, error) {
	var (
		p       pricing.Product
		catalog pricing.Catalog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = s.catalog.Product(gctx, productID)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = s.catalog.Catalog(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pricing data")
		}
		return pricing.Product{}, pricing.Catalog{}, err
	}
	return p, catalog, nil
}

func (s *service) observe(operation string, start time.Time) {
	s.metrics.ObserveDuration(operation, s.now().Sub(start))
}
