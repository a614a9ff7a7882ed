package pricing

import (
	"context"

	"github.com/angelmondragon/rflink-backend/pkg/enums"
)

// Observer receives the engine's operational signals. Implementations must
// not alter pricing; they log and count.
type Observer interface {
	StrategySelected(ctx context.Context, productID string, strategy enums.PricingStrategy)
	ConnectorMatched(ctx context.Context, productID string, tier enums.MatchTier)
	Warning(ctx context.Context, productID string, warning error)
}

type nopObserver struct{}

func (nopObserver) StrategySelected(context.Context, string, enums.PricingStrategy) {}

func (nopObserver) ConnectorMatched(context.Context, string, enums.MatchTier) {}

func (nopObserver) Warning(context.Context, string, error) {}

// Evaluation bundles everything a product page needs for one selection.
type Evaluation struct {
	Quote    Quote
	Identity string
	SKU      string
	Label    string
}

// Engine runs the pure pricing functions and reports what happened to an
// Observer. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	obs Observer
}

// NewEngine builds an engine. A nil observer discards signals.
func NewEngine(obs Observer) *Engine {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Engine{obs: obs}
}

// Evaluate computes the display quote, identity, SKU and label.
func (e *Engine) Evaluate(ctx context.Context, p Product, sel Selection, catalog Catalog) Evaluation {
	idx := BuildIndex(p)
	r := resolveSelection(p, sel, catalog, idx)
	q := quoteFor(p, catalog, idx, r)
	e.report(ctx, p.ID, q)
	return Evaluation{
		Quote:    q,
		Identity: identityFor(p, r),
		SKU:      skuFor(p, r),
		Label:    labelFor(r),
	}
}

// CartLine validates the selection for an add-to-cart action and builds the
// line descriptor. Missing selections return a *ValidationError.
func (e *Engine) CartLine(ctx context.Context, p Product, sel Selection, catalog Catalog) (CartLine, Quote, error) {
	idx := BuildIndex(p)
	r := resolveSelection(p, sel, catalog, idx)
	if err := validateAction(sel, r); err != nil {
		return CartLine{}, Quote{}, err
	}
	q := quoteFor(p, catalog, idx, r)
	if q.DisplayOnly {
		return CartLine{}, Quote{}, missing(requiredField(p, r))
	}
	e.report(ctx, p.ID, q)

	line := CartLine{
		Identity:  identityFor(p, r),
		ProductID: p.ID,
		Quantity:  sel.Quantity,
		UnitPrice: q.UnitPrice,
		SKU:       skuFor(p, r),
		Label:     labelFor(r),
		Strategy:  q.Strategy,
	}
	if r.option != nil && r.option.IsVariant() {
		line.VariantID = r.option.SourceID
	}
	return line, q, nil
}

func (e *Engine) report(ctx context.Context, productID string, q Quote) {
	e.obs.StrategySelected(ctx, productID, q.Strategy)
	connector := q.Strategy == enums.PricingStrategyConnectorPair || q.Strategy == enums.PricingStrategyStandaloneConnector
	if q.MatchTier != enums.MatchTierNone || (connector && !q.DisplayOnly) {
		e.obs.ConnectorMatched(ctx, productID, q.MatchTier)
	}
	for _, w := range q.Warnings {
		e.obs.Warning(ctx, productID, w)
	}
}
