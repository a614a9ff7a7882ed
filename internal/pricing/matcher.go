package pricing

import (
	"strings"

	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// MatchConnectorPrice resolves the connector price for cableTypeSlug. Tiers
// are tried in order and the first entry that matches within a tier wins:
//
//  1. exact slug after lowercase/trim
//  2. the canonical slug of the cable type the query resolves to in catalog
//  3. substring in either direction (lossy, tolerates slug drift)
//
// A zero price with MatchTierNone means "price unknown", never "free".
func MatchConnectorPrice(entries []ConnectorPricingEntry, cableTypeSlug string, catalog Catalog) (decimal.Decimal, enums.MatchTier) {
	query := normalizeSlug(cableTypeSlug)
	if query == "" || len(entries) == 0 {
		return decimal.Zero, enums.MatchTierNone
	}

	for _, entry := range entries {
		if normalizeSlug(entry.CableTypeSlug) == query {
			return entry.Price, enums.MatchTierExact
		}
	}

	if ct, ok := catalog.FindCableType(cableTypeSlug); ok {
		canonical := normalizeSlug(ct.Slug)
		if canonical != "" && canonical != query {
			for _, entry := range entries {
				if normalizeSlug(entry.CableTypeSlug) == canonical {
					return entry.Price, enums.MatchTierCanonical
				}
			}
		}
	}

	for _, entry := range entries {
		slug := normalizeSlug(entry.CableTypeSlug)
		if slug == "" {
			continue
		}
		if strings.Contains(slug, query) || strings.Contains(query, slug) {
			return entry.Price, enums.MatchTierSubstring
		}
	}

	return decimal.Zero, enums.MatchTierNone
}
