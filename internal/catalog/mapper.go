package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/angelmondragon/rflink-backend/internal/pricing"
	"github.com/angelmondragon/rflink-backend/pkg/db/models"
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func toModel(p pricing.Product, source enums.SnapshotSource) (*models.CatalogProduct, error) {
	m := &models.CatalogProduct{
		ID:              p.ID,
		ProductType:     p.Type,
		Title:           p.Title,
		SKU:             p.SKU,
		Price:           p.Price,
		Source:          source,
		CableSeriesSlug: p.CableSeriesSlug,
		CableTypeSlug:   p.CableTypeSlug,
		PricePerFoot:    nullDecimal(p.PricePerFoot),
		BaseGain:        nullDecimal(p.BaseGain),
	}

	var err error
	if m.Variants, err = rawList(p.Variants, len(p.Variants)); err != nil {
		return nil, fmt.Errorf("encode variants: %w", err)
	}
	if m.GainOptions, err = rawList(p.GainOptions, len(p.GainOptions)); err != nil {
		return nil, fmt.Errorf("encode gain options: %w", err)
	}
	if m.LengthOptions, err = rawList(p.LengthOptions, len(p.LengthOptions)); err != nil {
		return nil, fmt.Errorf("encode length options: %w", err)
	}
	if m.ConnectorPricing, err = rawList(p.ConnectorPricing, len(p.ConnectorPricing)); err != nil {
		return nil, fmt.Errorf("encode connector pricing: %w", err)
	}
	return m, nil
}

func toProduct(m *models.CatalogProduct) (pricing.Product, error) {
	p := pricing.Product{
		ID:              m.ID,
		Type:            m.ProductType,
		Title:           m.Title,
		SKU:             m.SKU,
		Price:           m.Price,
		CableSeriesSlug: m.CableSeriesSlug,
		CableTypeSlug:   m.CableTypeSlug,
		PricePerFoot:    decimalPtr(m.PricePerFoot),
		BaseGain:        decimalPtr(m.BaseGain),
	}
	if err := decodeList(m.Variants, &p.Variants); err != nil {
		return pricing.Product{}, fmt.Errorf("decode variants for %s: %w", m.ID, err)
	}
	if err := decodeList(m.GainOptions, &p.GainOptions); err != nil {
		return pricing.Product{}, fmt.Errorf("decode gain options for %s: %w", m.ID, err)
	}
	if err := decodeList(m.LengthOptions, &p.LengthOptions); err != nil {
		return pricing.Product{}, fmt.Errorf("decode length options for %s: %w", m.ID, err)
	}
	if err := decodeList(m.ConnectorPricing, &p.ConnectorPricing); err != nil {
		return pricing.Product{}, fmt.Errorf("decode connector pricing for %s: %w", m.ID, err)
	}
	return p, nil
}

func toCableTypeModel(ct pricing.CableType) (models.CableType, error) {
	m := models.CableType{
		Name:         strings.TrimSpace(ct.Name),
		Slug:         strings.ToLower(strings.TrimSpace(ct.Slug)),
		SeriesSlug:   strings.ToLower(strings.TrimSpace(ct.SeriesSlug)),
		PricePerFoot: ct.PricePerFoot,
	}
	if m.Slug == "" {
		return models.CableType{}, fmt.Errorf("cable type slug is required")
	}
	if m.Name == "" {
		m.Name = m.Slug
	}
	if m.PricePerFoot.IsNegative() {
		return models.CableType{}, fmt.Errorf("cable type %s: price_per_foot must not be negative", m.Slug)
	}
	if id := strings.TrimSpace(ct.ID); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return models.CableType{}, fmt.Errorf("cable type %s: invalid id: %w", m.Slug, err)
		}
		m.ID = parsed
	}
	return m, nil
}

func toCableType(m models.CableType) pricing.CableType {
	return pricing.CableType{
		ID:           m.ID.String(),
		Name:         m.Name,
		Slug:         m.Slug,
		PricePerFoot: m.PricePerFoot,
		SeriesSlug:   m.SeriesSlug,
	}
}

func rawList(v any, n int) (json.RawMessage, error) {
	if n == 0 {
		return nil, nil
	}
	return json.Marshal(v)
}

func decodeList(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
