package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/rflink-backend/pkg/enums"
)

// CatalogProduct is the stored product snapshot. Option lists keep the shape
// the source sent so legacy bare-string options survive a round trip; prices
// inside them are normalised at ingestion.
type CatalogProduct struct {
	ID               string               `gorm:"column:id;primaryKey"`
	ProductType      enums.ProductType    `gorm:"column:product_type;not null"`
	Title            string               `gorm:"column:title;not null;default:''"`
	SKU              string               `gorm:"column:sku;not null;default:''"`
	Price            decimal.Decimal      `gorm:"column:price;type:numeric(12,4);not null"`
	Source           enums.SnapshotSource `gorm:"column:source;not null;default:'commerce'"`
	Variants         json.RawMessage      `gorm:"column:variants;type:jsonb;serializer:json"`
	GainOptions      json.RawMessage      `gorm:"column:gain_options;type:jsonb;serializer:json"`
	LengthOptions    json.RawMessage      `gorm:"column:length_options;type:jsonb;serializer:json"`
	CableSeriesSlug  string               `gorm:"column:cable_series_slug;not null;default:''"`
	CableTypeSlug    string               `gorm:"column:cable_type_slug;not null;default:''"`
	PricePerFoot     decimal.NullDecimal  `gorm:"column:price_per_foot;type:numeric(12,4)"`
	ConnectorPricing json.RawMessage      `gorm:"column:connector_pricing;type:jsonb;serializer:json"`
	BaseGain         decimal.NullDecimal  `gorm:"column:base_gain;type:numeric(6,2)"`
	CreatedAt        time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (CatalogProduct) TableName() string {
	return "catalog_products"
}
