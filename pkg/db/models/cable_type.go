package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CableType is a cable construction sold by the foot.
type CableType struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	Slug         string          `gorm:"column:slug;not null;uniqueIndex:idx_cable_types_slug"`
	SeriesSlug   string          `gorm:"column:series_slug;not null;default:''"`
	PricePerFoot decimal.Decimal `gorm:"column:price_per_foot;type:numeric(12,4);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (CableType) TableName() string {
	return "cable_types"
}
