package pricing

import (
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

var (
	// connectorEnds is charged per cable run: one connector at each end.
	connectorEnds = decimal.NewFromInt(2)
	gainStep      = decimal.RequireFromString("0.05")
	one           = decimal.NewFromInt(1)
)

// Quote is a pricing decision for one product and selection.
type Quote struct {
	UnitPrice decimal.Decimal
	Strategy  enums.PricingStrategy
	// DisplayOnly marks a representative price shown before the customer
	// chose; it must never price a cart addition.
	DisplayOnly bool
	// PriceKnown is false when the price could not be resolved. A zero
	// UnitPrice then means "unknown", not "free".
	PriceKnown bool
	MatchTier  enums.MatchTier
	OptionID   string
	Warnings   []error
}

// SelectUnitPrice returns the unit price for display. It never fails: missing
// selections fall back to the lowest-priced option, then the product price.
func SelectUnitPrice(p Product, sel Selection, catalog Catalog) Quote {
	idx := BuildIndex(p)
	return quoteFor(p, catalog, idx, resolveSelection(p, sel, catalog, idx))
}

// DisplayPrice is SelectUnitPrice reduced to the rounded amount.
func DisplayPrice(p Product, sel Selection, catalog Catalog) decimal.Decimal {
	return SelectUnitPrice(p, sel, catalog).UnitPrice
}

// ActionPrice prices an add-to-cart or checkout action. A missing mandatory
// selection yields a *ValidationError instead of a substitute price.
func ActionPrice(p Product, sel Selection, catalog Catalog) (Quote, error) {
	idx := BuildIndex(p)
	r := resolveSelection(p, sel, catalog, idx)
	if err := validateAction(sel, r); err != nil {
		return Quote{}, err
	}
	q := quoteFor(p, catalog, idx, r)
	if q.DisplayOnly {
		return Quote{}, missing(requiredField(p, r))
	}
	return q, nil
}

func validateAction(sel Selection, r resolution) error {
	if r.missing != "" {
		return missing(r.missing)
	}
	if r.invalid != "" {
		return invalid(r.invalid)
	}
	if sel.Quantity < 1 {
		return invalid(FieldQuantity)
	}
	return nil
}

// requiredField names the selection an action still lacks when resolution
// only reached a representative price.
func requiredField(p Product, r resolution) string {
	switch p.Type {
	case enums.ProductTypeAntenna:
		return FieldGain
	case enums.ProductTypeCable:
		return FieldLength
	case enums.ProductTypeConnector:
		if r.strategy == enums.PricingStrategyConnectorPair {
			return FieldLength
		}
		return FieldCableType
	}
	return FieldVariant
}

func quoteFor(p Product, catalog Catalog, idx *Index, r resolution) Quote {
	q := computeQuote(p, catalog, idx, r)
	q.UnitPrice = RoundCents(q.UnitPrice)
	if q.MatchTier == "" {
		q.MatchTier = enums.MatchTierNone
	}
	q.Warnings = append(idx.Warnings(), q.Warnings...)
	return q
}

func computeQuote(p Product, catalog Catalog, idx *Index, r resolution) Quote {
	switch r.strategy {
	case enums.PricingStrategyFlatVariant:
		return flatVariantQuote(p, r)
	case enums.PricingStrategyPerFoot:
		return perFootQuote(p, idx, r)
	case enums.PricingStrategyConnectorPair:
		return connectorPairQuote(p, catalog, idx, r)
	case enums.PricingStrategyStandaloneConnector:
		return standaloneConnectorQuote(p, catalog, r)
	case enums.PricingStrategyLegacyGain:
		return legacyGainQuote(p, idx, r)
	}
	return productPriceQuote(p, false)
}

func productPriceQuote(p Product, displayOnly bool) Quote {
	return Quote{
		UnitPrice:   p.Price,
		Strategy:    enums.PricingStrategyProductPrice,
		DisplayOnly: displayOnly,
		PriceKnown:  true,
	}
}

func flatVariantQuote(p Product, r resolution) Quote {
	if r.option != nil {
		if r.option.Price == nil {
			// chosen option without a usable price degrades to the product price
			q := productPriceQuote(p, false)
			q.OptionID = r.option.SourceID
			return q
		}
		return Quote{
			UnitPrice:  *r.option.Price,
			Strategy:   enums.PricingStrategyFlatVariant,
			PriceKnown: true,
			OptionID:   r.option.SourceID,
		}
	}
	if lowest, ok := lowestPriced(r.candidates); ok {
		return Quote{
			UnitPrice:   *lowest.Price,
			Strategy:    enums.PricingStrategyLowestPrice,
			DisplayOnly: true,
			PriceKnown:  true,
		}
	}
	return productPriceQuote(p, true)
}

func perFootQuote(p Product, idx *Index, r resolution) Quote {
	if r.length != nil {
		return Quote{
			UnitPrice:  p.PricePerFoot.Mul(*r.length),
			Strategy:   enums.PricingStrategyPerFoot,
			PriceKnown: true,
		}
	}
	if opt, ok := shortest(idx); ok {
		return Quote{
			UnitPrice:   p.PricePerFoot.Mul(*opt.Length),
			Strategy:    enums.PricingStrategyLowestPrice,
			DisplayOnly: true,
			PriceKnown:  true,
		}
	}
	return productPriceQuote(p, true)
}

func connectorPairQuote(p Product, catalog Catalog, idx *Index, r resolution) Quote {
	q := Quote{Strategy: enums.PricingStrategyConnectorPair, PriceKnown: true}

	var perFoot decimal.Decimal
	switch {
	case r.cableType != nil:
		perFoot = r.cableType.PricePerFoot
	case p.PricePerFoot != nil:
		perFoot = *p.PricePerFoot
	default:
		q.PriceKnown = false
		q.Warnings = append(q.Warnings, &UnresolvedPriceWarning{ProductID: p.ID, CableTypeSlug: p.CableTypeSlug})
	}

	connector, tier := MatchConnectorPrice(p.ConnectorPricing, p.CableTypeSlug, catalog)
	q.MatchTier = tier
	if tier == enums.MatchTierNone {
		if p.Price.IsPositive() {
			connector = p.Price
		} else {
			q.PriceKnown = false
			q.Warnings = append(q.Warnings, &UnresolvedPriceWarning{ProductID: p.ID, CableTypeSlug: p.CableTypeSlug})
		}
	}

	length := r.length
	if length == nil {
		opt, ok := shortest(idx)
		if !ok {
			fallback := productPriceQuote(p, true)
			fallback.MatchTier = tier
			fallback.Warnings = q.Warnings
			return fallback
		}
		length = opt.Length
		q.Strategy = enums.PricingStrategyLowestPrice
		q.DisplayOnly = true
	}

	q.UnitPrice = perFoot.Mul(*length).Add(connector.Mul(connectorEnds))
	if !q.PriceKnown {
		q.UnitPrice = decimal.Zero
	}
	return q
}

func standaloneConnectorQuote(p Product, catalog Catalog, r resolution) Quote {
	q := Quote{Strategy: enums.PricingStrategyStandaloneConnector}
	if r.typeSlug == "" {
		q.DisplayOnly = true
		q.MatchTier = enums.MatchTierNone
		return q
	}
	price, tier := MatchConnectorPrice(p.ConnectorPricing, r.typeSlug, catalog)
	q.UnitPrice = price
	q.MatchTier = tier
	q.PriceKnown = tier != enums.MatchTierNone
	if !q.PriceKnown {
		q.Warnings = append(q.Warnings, &UnresolvedPriceWarning{ProductID: p.ID, CableTypeSlug: r.typeSlug})
	}
	return q
}

func legacyGainQuote(p Product, idx *Index, r resolution) Quote {
	if r.option == nil {
		return productPriceQuote(p, true)
	}
	if r.option.Price != nil {
		return Quote{
			UnitPrice:  *r.option.Price,
			Strategy:   enums.PricingStrategyFlatVariant,
			PriceKnown: true,
			OptionID:   r.option.SourceID,
		}
	}

	baseGain := p.BaseGain
	if baseGain == nil && len(idx.gains) > 0 {
		baseGain = idx.gains[0].Gain
	}
	if baseGain == nil || r.option.Gain == nil {
		return productPriceQuote(p, false)
	}

	return Quote{
		UnitPrice:  LegacyGainPrice(p.Price, *baseGain, *r.option.Gain),
		Strategy:   enums.PricingStrategyLegacyGain,
		PriceKnown: true,
		OptionID:   r.option.SourceID,
	}
}

// LegacyGainPrice is the linear gain proxy used by catalog entries that
// predate per-gain prices: base * (1 + (gain - baseGain) * 0.05), in cents.
func LegacyGainPrice(base, baseGain, gain decimal.Decimal) decimal.Decimal {
	factor := one.Add(gain.Sub(baseGain).Mul(gainStep))
	return RoundCents(base.Mul(factor))
}
