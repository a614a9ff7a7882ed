package pricing

import (
	"context"
	"sync"
	"testing"

	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu         sync.Mutex
	strategies []enums.PricingStrategy
	tiers      []enums.MatchTier
	warnings   []error
}

func (r *recordingObserver) StrategySelected(_ context.Context, _ string, s enums.PricingStrategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies = append(r.strategies, s)
}

func (r *recordingObserver) ConnectorMatched(_ context.Context, _ string, tier enums.MatchTier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tiers = append(r.tiers, tier)
}

func (r *recordingObserver) Warning(_ context.Context, _ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, err)
}

func TestEngineEvaluate(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	engine := NewEngine(obs)

	eval := engine.Evaluate(context.Background(), cableWithVariants(), Selection{VariantID: "v-20", Quantity: 1}, Catalog{})
	requireDecimal(t, "20", eval.Quote.UnitPrice)
	assert.Equal(t, "cable-1-v-20", eval.Identity)
	assert.Equal(t, "C-25", eval.SKU)
	assert.Equal(t, "25 ft", eval.Label)
	assert.Equal(t, []enums.PricingStrategy{enums.PricingStrategyFlatVariant}, obs.strategies)
	assert.Empty(t, obs.tiers)
}

func TestEngineReportsSubstringMatches(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	engine := NewEngine(obs)

	p := standaloneConnector()
	p.ConnectorPricing = []ConnectorPricingEntry{{CableTypeSlug: "rg-58-cu", Price: dec("4")}}

	line, q, err := engine.CartLine(context.Background(), p, Selection{CableSeriesSlug: "rg", CableTypeSlug: "rg-58", Quantity: 2}, lmrCatalog())
	require.NoError(t, err)
	requireDecimal(t, "4", q.UnitPrice)
	assert.Equal(t, []enums.MatchTier{enums.MatchTierSubstring}, obs.tiers)
	assert.Equal(t, "n-male-rg-rg-58", line.Identity)
	assert.Equal(t, 2, line.Quantity)
	assert.Empty(t, line.VariantID)
}

func TestEngineReportsUnresolvedPrice(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	engine := NewEngine(obs)

	_, q, err := engine.CartLine(context.Background(), standaloneConnector(), Selection{CableSeriesSlug: "rg", CableTypeSlug: "rg-58", Quantity: 1}, lmrCatalog())
	require.NoError(t, err)
	assert.False(t, q.PriceKnown)
	assert.Equal(t, []enums.MatchTier{enums.MatchTierNone}, obs.tiers)
	require.Len(t, obs.warnings, 1)
}

func TestEngineCartLineValidation(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	engine := NewEngine(obs)

	_, _, err := engine.CartLine(context.Background(), cableWithVariants(), Selection{Quantity: 1}, Catalog{})
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, FieldLength, verr.Field)
	assert.Empty(t, obs.strategies)

	line, _, err := engine.CartLine(context.Background(), cableWithVariants(), Selection{LengthIndex: intPtr(0), Quantity: 1}, Catalog{})
	require.NoError(t, err)
	assert.Equal(t, "v-10", line.VariantID)
	assert.Equal(t, "C-10", line.SKU)
	assert.Equal(t, enums.PricingStrategyFlatVariant, line.Strategy)
}

func TestNewEngineWithoutObserver(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil)
	eval := engine.Evaluate(context.Background(), standaloneConnector(), Selection{}, lmrCatalog())
	requireDecimal(t, "0", eval.Quote.UnitPrice)
	assert.True(t, eval.Quote.DisplayOnly)
}
