package catalog

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/rflink-backend/internal/pricing"
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Snapshot is a product payload as an upstream system sends it, with the unit
// of its flat prices declared by the sender.
type Snapshot struct {
	Product   pricing.Product
	PriceUnit enums.PriceUnit
	Source    enums.SnapshotSource
}

// Ingest validates a snapshot and rewrites every flat price into decimal
// currency. Declared units are applied as-is; only undeclared prices fall back
// to the magnitude heuristic. The snapshot unit covers the product price,
// price per foot and connector pricing. Variant calculated amounts stay in cents.
// The returned snapshot carries PriceUnitDecimal; the input is not modified.
func Ingest(s Snapshot) (Snapshot, error) {
	p := s.Product
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return Snapshot{}, fmt.Errorf("product id is required")
	}
	if !p.Type.IsValid() {
		return Snapshot{}, fmt.Errorf("invalid product type %q", p.Type)
	}
	if s.Source == "" {
		s.Source = enums.SnapshotSourceCommerce
	}
	if !s.Source.IsValid() {
		return Snapshot{}, fmt.Errorf("invalid snapshot source %q", s.Source)
	}

	unit, err := declaredUnit(s.PriceUnit)
	if err != nil {
		return Snapshot{}, err
	}
	if p.Price.IsNegative() {
		return Snapshot{}, fmt.Errorf("price must not be negative")
	}
	p.Price = pricing.Normalize(p.Price, unit)

	if p.PricePerFoot != nil {
		if p.PricePerFoot.IsNegative() {
			return Snapshot{}, fmt.Errorf("price_per_foot must not be negative")
		}
		perFoot := declaredAmount(*p.PricePerFoot, unit)
		p.PricePerFoot = &perFoot
	}

	if p.Variants, err = ingestVariants(p.Variants); err != nil {
		return Snapshot{}, err
	}
	if p.GainOptions, err = ingestOptions("gain_options", p.GainOptions); err != nil {
		return Snapshot{}, err
	}
	if p.LengthOptions, err = ingestOptions("length_options", p.LengthOptions); err != nil {
		return Snapshot{}, err
	}

	entries := make([]pricing.ConnectorPricingEntry, 0, len(p.ConnectorPricing))
	for i, entry := range p.ConnectorPricing {
		if entry.Price.IsNegative() {
			return Snapshot{}, fmt.Errorf("connector_pricing[%d]: price must not be negative", i)
		}
		entry.CableTypeSlug = strings.TrimSpace(entry.CableTypeSlug)
		entry.Price = declaredAmount(entry.Price, unit)
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		entries = nil
	}
	p.ConnectorPricing = entries

	return Snapshot{Product: p, PriceUnit: enums.PriceUnitDecimal, Source: s.Source}, nil
}

// declaredAmount converts per-foot and connector prices only when the sender
// declared cents. Undeclared values are decimal currency.
func declaredAmount(v decimal.Decimal, unit enums.PriceUnit) decimal.Decimal {
	if unit == enums.PriceUnitCents {
		return pricing.Normalize(v, unit)
	}
	return v
}

func declaredUnit(u enums.PriceUnit) (enums.PriceUnit, error) {
	if u == "" {
		return enums.PriceUnitUnknown, nil
	}
	if !u.IsValid() {
		return "", fmt.Errorf("invalid price unit %q", u)
	}
	return u, nil
}

func ingestVariants(in []pricing.Variant) ([]pricing.Variant, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]pricing.Variant, 0, len(in))
	for i, v := range in {
		if v.CalculatedAmount != nil && *v.CalculatedAmount < 0 {
			return nil, fmt.Errorf("variants[%d]: calculated_amount must not be negative", i)
		}
		if v.CalculatedAmount == nil && v.Price != nil {
			price, err := normalizedPrice(*v.Price, v.PriceUnit)
			if err != nil {
				return nil, fmt.Errorf("variants[%d]: %w", i, err)
			}
			v.Price = &price
			v.PriceUnit = enums.PriceUnitDecimal
		}
		out = append(out, v)
	}
	return out, nil
}

func ingestOptions(field string, in []pricing.LegacyOption) ([]pricing.LegacyOption, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]pricing.LegacyOption, 0, len(in))
	for i, o := range in {
		if o.Price != nil {
			price, err := normalizedPrice(*o.Price, o.PriceUnit)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
			}
			o.Price = &price
			o.PriceUnit = enums.PriceUnitDecimal
			o.Bare = false
		}
		out = append(out, o)
	}
	return out, nil
}

func normalizedPrice(raw decimal.Decimal, u enums.PriceUnit) (decimal.Decimal, error) {
	if raw.IsNegative() {
		return decimal.Zero, fmt.Errorf("price must not be negative")
	}
	unit, err := declaredUnit(u)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.Normalize(raw, unit), nil
}
