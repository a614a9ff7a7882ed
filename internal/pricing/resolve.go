package pricing

import (
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// resolution is the price-relevant reading of a Selection against one
// product. Price, identity and SKU are all derived from it so they never
// disagree about what was chosen.
type resolution struct {
	strategy   enums.PricingStrategy
	option     *NormalizedOption
	candidates []NormalizedOption
	length     *decimal.Decimal
	lengthKey  string
	cableType  *CableType
	typeSlug   string
	series     string
	missing    string
	invalid    string
}

func resolveSelection(p Product, sel Selection, catalog Catalog, idx *Index) resolution {
	switch p.Type {
	case enums.ProductTypeAntenna:
		return resolveAntenna(sel, idx)
	case enums.ProductTypeCable:
		return resolveCable(p, sel, idx)
	case enums.ProductTypeConnector:
		return resolveConnector(p, sel, catalog, idx)
	}
	return resolution{strategy: enums.PricingStrategyProductPrice}
}

func resolveAntenna(sel Selection, idx *Index) resolution {
	if idx.HasVariants() {
		r := resolution{strategy: enums.PricingStrategyFlatVariant, candidates: idx.variants}
		r.option = chooseOption(idx, sel.VariantID, idx.SortedByGain(), sel.GainIndex)
		if r.option == nil {
			r.missing = FieldGain
		}
		return r
	}
	if len(idx.gains) > 0 {
		r := resolution{strategy: enums.PricingStrategyLegacyGain, candidates: idx.gains}
		r.option = chooseOption(idx, sel.VariantID, idx.SortedByGain(), sel.GainIndex)
		if r.option == nil {
			r.missing = FieldGain
		}
		return r
	}
	return resolution{strategy: enums.PricingStrategyProductPrice}
}

func resolveCable(p Product, sel Selection, idx *Index) resolution {
	if idx.HasVariants() {
		r := resolution{strategy: enums.PricingStrategyFlatVariant, candidates: idx.variants}
		r.option = chooseOption(idx, sel.VariantID, idx.SortedByLength(), sel.LengthIndex)
		if r.option == nil {
			if opt, ok := idx.FindLength(sel.LengthValue); ok {
				r.option = &opt
			}
		}
		if r.option == nil {
			r.missing = FieldLength
		} else {
			r.length = r.option.Length
		}
		return r
	}

	if len(idx.lengths) == 0 && p.PricePerFoot == nil {
		return resolution{strategy: enums.PricingStrategyProductPrice}
	}

	r := resolution{strategy: enums.PricingStrategyPerFoot, candidates: idx.lengths}
	r.option, r.length, r.lengthKey = chooseLength(idx, sel)

	switch {
	case r.option != nil && r.option.Price != nil:
		// legacy length options that carry their own price behave like variants
		r.strategy = enums.PricingStrategyFlatVariant
	case p.PricePerFoot == nil:
		r.strategy = enums.PricingStrategyProductPrice
		if hasPricedOption(idx.lengths) {
			r.strategy = enums.PricingStrategyFlatVariant
		}
	}

	switch {
	case r.option == nil && r.length == nil:
		r.missing = FieldLength
	case r.strategy == enums.PricingStrategyFlatVariant && r.option == nil:
		// a free-form length that matches none of the priced options
		r.missing = FieldLength
	case r.strategy == enums.PricingStrategyPerFoot && r.length == nil:
		// chosen option has no numeric length ("Custom")
		r.missing = FieldLength
	}
	return r
}

func resolveConnector(p Product, sel Selection, catalog Catalog, idx *Index) resolution {
	if idx.HasVariants() {
		r := resolution{strategy: enums.PricingStrategyFlatVariant, candidates: idx.variants}
		if opt, ok := idx.ByID(sel.VariantID); ok && opt.IsVariant() {
			r.option = &opt
		} else {
			r.option = variantForCableType(idx, sel.CableTypeSlug, catalog)
		}
		if r.option == nil {
			r.missing = FieldCableType
		}
		return r
	}

	if p.CableTypeSlug != "" {
		r := resolution{strategy: enums.PricingStrategyConnectorPair, candidates: idx.lengths}
		if ct, ok := catalog.FindCableType(p.CableTypeSlug); ok {
			r.cableType = &ct
		}
		r.option, r.length, r.lengthKey = chooseLength(idx, sel)
		if r.length == nil {
			r.missing = FieldLength
		}
		return r
	}

	if len(p.ConnectorPricing) > 0 {
		r := resolution{strategy: enums.PricingStrategyStandaloneConnector}
		r.series = normalizeSlug(sel.CableSeriesSlug)
		r.typeSlug = normalizeSlug(sel.CableTypeSlug)
		if ct, ok := catalog.FindCableType(sel.CableTypeSlug); ok {
			r.cableType = &ct
			r.typeSlug = normalizeSlug(ct.Slug)
			if r.series == "" {
				r.series = SeriesOf(ct)
			} else if !InSeries(ct, r.series) {
				r.invalid = FieldCableSeries
			}
		}
		switch {
		case r.typeSlug == "" && r.series == "":
			r.missing = FieldCableSeries
		case r.typeSlug == "":
			r.missing = FieldCableType
		case r.series == "":
			r.missing = FieldCableSeries
		}
		return r
	}

	return resolution{strategy: enums.PricingStrategyProductPrice}
}

// chooseOption applies selection precedence: explicit ID first, then the
// positional index into the sorted choices the customer was shown.
func chooseOption(idx *Index, id string, choices []NormalizedOption, position *int) *NormalizedOption {
	if opt, ok := idx.ByID(id); ok {
		return &opt
	}
	if position == nil || *position < 0 || *position >= len(choices) {
		return nil
	}
	opt := choices[*position]
	return &opt
}

// chooseLength resolves a length from a legacy option (ID, index or value)
// or, failing that, from the free-form LengthValue.
func chooseLength(idx *Index, sel Selection) (*NormalizedOption, *decimal.Decimal, string) {
	opt := chooseOption(idx, sel.VariantID, idx.SortedByLength(), sel.LengthIndex)
	if opt == nil {
		if found, ok := idx.FindLength(sel.LengthValue); ok {
			opt = &found
		}
	}
	if opt != nil {
		if opt.Length != nil {
			return opt, opt.Length, opt.Length.String()
		}
		return opt, nil, opt.key()
	}
	if n, _ := ParseLength(sel.LengthValue); n != nil {
		return nil, n, canonicalLength(sel.LengthValue)
	}
	return nil, nil, ""
}

func variantForCableType(idx *Index, slug string, catalog Catalog) *NormalizedOption {
	query := normalizeSlug(slug)
	if query == "" {
		return nil
	}
	names := []string{query}
	if ct, ok := catalog.FindCableType(slug); ok {
		names = append(names, normalizeSlug(ct.Slug), normalizeSlug(ct.Name))
	}
	for i := range idx.variants {
		title := squash(idx.variants[i].Title)
		for _, name := range names {
			if name != "" && title == squash(name) {
				opt := idx.variants[i]
				return &opt
			}
		}
	}
	return nil
}

func hasPricedOption(opts []NormalizedOption) bool {
	for _, opt := range opts {
		if opt.Price != nil {
			return true
		}
	}
	return false
}

// lowestPriced returns the cheapest priced option; ties keep the first.
func lowestPriced(opts []NormalizedOption) (*NormalizedOption, bool) {
	var best *NormalizedOption
	for i := range opts {
		if opts[i].Price == nil {
			continue
		}
		if best == nil || opts[i].Price.LessThan(*best.Price) {
			best = &opts[i]
		}
	}
	return best, best != nil
}

// shortest returns the shortest length option with a numeric length.
func shortest(idx *Index) (*NormalizedOption, bool) {
	for _, opt := range idx.SortedByLength() {
		if opt.Length != nil {
			o := opt
			return &o, true
		}
	}
	return nil, false
}
