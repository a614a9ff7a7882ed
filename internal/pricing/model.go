package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Product is an immutable snapshot of a catalog entry as supplied by the
// commerce engine, the CMS or the legacy product API.
type Product struct {
	ID               string                  `json:"id"`
	Type             enums.ProductType       `json:"product_type"`
	Title            string                  `json:"title"`
	SKU              string                  `json:"sku,omitempty"`
	Price            decimal.Decimal         `json:"price"`
	Variants         []Variant               `json:"variants,omitempty"`
	GainOptions      []LegacyOption          `json:"gain_options,omitempty"`
	LengthOptions    []LegacyOption          `json:"length_options,omitempty"`
	CableSeriesSlug  string                  `json:"cable_series_slug,omitempty"`
	CableTypeSlug    string                  `json:"cable_type_slug,omitempty"`
	PricePerFoot     *decimal.Decimal        `json:"price_per_foot,omitempty"`
	ConnectorPricing []ConnectorPricingEntry `json:"connector_pricing,omitempty"`
	BaseGain         *decimal.Decimal        `json:"base_gain,omitempty"`
}

// Variant is a purchasable configuration of a Product.
type Variant struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	SKU   string `json:"sku,omitempty"`
	// CalculatedAmount is in minor units and wins over Price when both are present.
	CalculatedAmount *int64           `json:"calculated_amount,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	PriceUnit        enums.PriceUnit  `json:"price_unit,omitempty"`
}

// UnitPrice returns the variant price in decimal currency.
func (v Variant) UnitPrice() (decimal.Decimal, bool) {
	if v.CalculatedAmount != nil {
		return Cents(*v.CalculatedAmount).Decimal(), true
	}
	if v.Price != nil {
		return Normalize(*v.Price, unitOrUnknown(v.PriceUnit)), true
	}
	return decimal.Zero, false
}

// LegacyOption is the pre-variant option shape. Sources send either a bare
// string ("25 ft") or an object with value, price, sku and variantId.
type LegacyOption struct {
	Value     string           `json:"value"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	PriceUnit enums.PriceUnit  `json:"price_unit,omitempty"`
	SKU       string           `json:"sku,omitempty"`
	VariantID string           `json:"variantId,omitempty"`
	Bare      bool             `json:"-"`
}

type legacyOptionObject struct {
	Value     json.RawMessage  `json:"value"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	PriceUnit enums.PriceUnit  `json:"price_unit,omitempty"`
	SKU       string           `json:"sku,omitempty"`
	VariantID string           `json:"variantId,omitempty"`
}

// UnmarshalJSON accepts both the bare-string and the object shape.
func (o *LegacyOption) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = LegacyOption{}
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*o = LegacyOption{Value: s, Bare: true}
		return nil
	}
	var obj legacyOptionObject
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("decode legacy option: %w", err)
	}
	value, err := rawOptionValue(obj.Value)
	if err != nil {
		return err
	}
	*o = LegacyOption{
		Value:     value,
		Price:     obj.Price,
		PriceUnit: obj.PriceUnit,
		SKU:       obj.SKU,
		VariantID: obj.VariantID,
	}
	return nil
}

// MarshalJSON writes bare options back as plain strings.
func (o LegacyOption) MarshalJSON() ([]byte, error) {
	if o.Bare {
		return json.Marshal(o.Value)
	}
	type plain LegacyOption
	return json.Marshal(plain(o))
}

func rawOptionValue(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode legacy option value: %w", err)
		}
		return s, nil
	}
	// numeric values such as {"value": 6} keep their literal text
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decode legacy option value: %w", err)
	}
	return n.String(), nil
}

// UnitPrice returns the option price in decimal currency.
func (o LegacyOption) UnitPrice() (decimal.Decimal, bool) {
	if o.Price == nil {
		return decimal.Zero, false
	}
	return Normalize(*o.Price, unitOrUnknown(o.PriceUnit)), true
}

// CableType is a cable construction sold by the foot.
type CableType struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	PricePerFoot decimal.Decimal `json:"price_per_foot"`
	SeriesSlug   string          `json:"series_slug,omitempty"`
}

// ConnectorPricingEntry prices a connector for one compatible cable type.
type ConnectorPricingEntry struct {
	CableTypeSlug string          `json:"cable_type_slug"`
	CableTypeName string          `json:"cable_type_name,omitempty"`
	Price         decimal.Decimal `json:"price"`
}

// Catalog is the pre-fetched cable type catalog.
type Catalog struct {
	CableTypes []CableType `json:"cable_types"`
}

// FindCableType resolves ref by slug, then by name, then by ID. Comparison is
// case and whitespace insensitive; the first hit wins.
func (c Catalog) FindCableType(ref string) (CableType, bool) {
	key := normalizeSlug(ref)
	if key == "" {
		return CableType{}, false
	}
	for _, ct := range c.CableTypes {
		if normalizeSlug(ct.Slug) == key {
			return ct, true
		}
	}
	for _, ct := range c.CableTypes {
		if normalizeSlug(ct.Name) == key {
			return ct, true
		}
	}
	for _, ct := range c.CableTypes {
		if ct.ID != "" && strings.EqualFold(ct.ID, strings.TrimSpace(ref)) {
			return ct, true
		}
	}
	return CableType{}, false
}

// Selection is the customer's current choice on a product page.
type Selection struct {
	CableSeriesSlug string `json:"cable_series_slug,omitempty"`
	CableTypeSlug   string `json:"cable_type_slug,omitempty"`
	Connector1Slug  string `json:"connector1_slug,omitempty"`
	Connector2Slug  string `json:"connector2_slug,omitempty"`
	LengthValue     string `json:"length_value,omitempty"`
	LengthIndex     *int   `json:"length_index,omitempty"`
	GainIndex       *int   `json:"gain_index,omitempty"`
	VariantID       string `json:"variant_id,omitempty"`
	Quantity        int    `json:"quantity"`
	// ThumbnailIndex is display state only and never affects price or identity.
	ThumbnailIndex *int `json:"thumbnail_index,omitempty"`
}

// CartLine is the descriptor handed to the cart collaborator.
type CartLine struct {
	Identity  string                `json:"identity"`
	ProductID string                `json:"product_id"`
	VariantID string                `json:"variant_id,omitempty"`
	Quantity  int                   `json:"quantity"`
	UnitPrice decimal.Decimal       `json:"unit_price"`
	SKU       string                `json:"sku,omitempty"`
	Label     string                `json:"label,omitempty"`
	Strategy  enums.PricingStrategy `json:"strategy"`
}

func unitOrUnknown(u enums.PriceUnit) enums.PriceUnit {
	if u == "" {
		return enums.PriceUnitUnknown
	}
	return u
}

func normalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
