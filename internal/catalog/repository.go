package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/rflink-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProductNotFound is returned when no snapshot exists for a product ID.
var ErrProductNotFound = errors.New("catalog product not found")

// Repository persists product snapshots and the cable type catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindProduct loads a product snapshot by its upstream ID.
func (r *Repository) FindProduct(ctx context.Context, id string) (*models.CatalogProduct, error) {
	var product models.CatalogProduct
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpsertProduct inserts the snapshot or replaces every mutable column of the
// existing row.
func (r *Repository) UpsertProduct(ctx context.Context, product *models.CatalogProduct) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(product).Error
}

// DeleteProduct removes a snapshot. Deleting a missing product is not an error.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.CatalogProduct{}, "id = ?", id).Error
}

// ListCableTypes returns the cable catalog ordered by series then slug.
func (r *Repository) ListCableTypes(ctx context.Context) ([]models.CableType, error) {
	var types []models.CableType
	if err := r.db.WithContext(ctx).
		Order("series_slug ASC").
		Order("slug ASC").
		Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// UpsertCableTypes inserts or updates cable types keyed by slug. Existing rows
// keep their ID.
func (r *Repository) UpsertCableTypes(ctx context.Context, types []models.CableType) error {
	if len(types) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range types {
		if types[i].ID == uuid.Nil {
			types[i].ID = uuid.New()
		}
		types[i].UpdatedAt = now
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "series_slug", "price_per_foot", "updated_at"}),
		}).
		Create(&types).Error
}
