package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/rflink-backend/internal/pricing"
	"github.com/angelmondragon/rflink-backend/pkg/db"
	"github.com/angelmondragon/rflink-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rflink-backend/pkg/errors"
	"github.com/angelmondragon/rflink-backend/pkg/logger"
	"github.com/angelmondragon/rflink-backend/pkg/metrics"
)

// Service serves product snapshots and the cable catalog to the pricing
// layer and accepts snapshot pushes from upstream adapters.
type Service interface {
	Product(ctx context.Context, id string) (pricing.Product, error)
	Catalog(ctx context.Context) (pricing.Catalog, error)
	IngestProduct(ctx context.Context, snapshot Snapshot) (pricing.Product, error)
	UpsertCableTypes(ctx context.Context, types []pricing.CableType) (pricing.Catalog, error)
	DeleteProduct(ctx context.Context, id string) error
}

type store interface {
	FindProduct(ctx context.Context, id string) (*models.CatalogProduct, error)
	UpsertProduct(ctx context.Context, product *models.CatalogProduct) error
	DeleteProduct(ctx context.Context, id string) error
	ListCableTypes(ctx context.Context) ([]models.CableType, error)
	UpsertCableTypes(ctx context.Context, types []models.CableType) error
}

type snapshotCache interface {
	Product(ctx context.Context, id string) (pricing.Product, bool, error)
	SetProduct(ctx context.Context, p pricing.Product) error
	InvalidateProduct(ctx context.Context, id string) error
	Catalog(ctx context.Context) (pricing.Catalog, bool, error)
	SetCatalog(ctx context.Context, catalog pricing.Catalog) error
	InvalidateCatalog(ctx context.Context) error
}

type service struct {
	repo    store
	cache   snapshotCache
	logg    *logger.Logger
	metrics *metrics.PricingMetrics
}

// NewService constructs the catalog service. cache may be nil, in which case
// every read goes to the repository.
func NewService(repo store, cache snapshotCache, logg *logger.Logger, m *metrics.PricingMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, logg: logg, metrics: m}, nil
}

func (s *service) Product(ctx context.Context, id string) (pricing.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pricing.Product{}, pkgerrors.InvalidField("product_id", "product id is required")
	}

	if s.cache != nil {
		p, ok, err := s.cache.Product(ctx, id)
		switch {
		case err != nil:
			s.logg.WarnErr(ctx, "snapshot cache read failed", err)
		case ok:
			s.metrics.IncCache("hit")
			return p, nil
		default:
			s.metrics.IncCache("miss")
		}
	}

	row, err := s.repo.FindProduct(ctx, id)
	if errors.Is(err, ErrProductNotFound) {
		return pricing.Product{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
	}
	if err != nil {
		return pricing.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product snapshot")
	}
	p, err := toProduct(row)
	if err != nil {
		return pricing.Product{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode product snapshot")
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, p); err != nil {
			s.logg.WarnErr(ctx, "snapshot cache write failed", err)
		}
	}
	return p, nil
}

func (s *service) Catalog(ctx context.Context) (pricing.Catalog, error) {
	if s.cache != nil {
		catalog, ok, err := s.cache.Catalog(ctx)
		switch {
		case err != nil:
			s.logg.WarnErr(ctx, "catalog cache read failed", err)
		case ok:
			s.metrics.IncCache("hit")
			return catalog, nil
		default:
			s.metrics.IncCache("miss")
		}
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return pricing.Catalog{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, catalog); err != nil {
			s.logg.WarnErr(ctx, "catalog cache write failed", err)
		}
	}
	return catalog, nil
}

func (s *service) loadCatalog(ctx context.Context) (pricing.Catalog, error) {
	rows, err := s.repo.ListCableTypes(ctx)
	if err != nil {
		return pricing.Catalog{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cable types")
	}
	catalog := pricing.Catalog{CableTypes: make([]pricing.CableType, 0, len(rows))}
	for _, row := range rows {
		catalog.CableTypes = append(catalog.CableTypes, toCableType(row))
	}
	return catalog, nil
}

func (s *service) IngestProduct(ctx context.Context, snapshot Snapshot) (pricing.Product, error) {
	normalized, err := Ingest(snapshot)
	if err != nil {
		return pricing.Product{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
	}
	p := normalized.Product
	ctx = s.logg.WithProductID(ctx, p.ID)

	row, err := toModel(p, normalized.Source)
	if err != nil {
		return pricing.Product{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode product snapshot")
	}
	if err := s.repo.UpsertProduct(ctx, row); err != nil {
		return pricing.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store product snapshot")
	}

	for _, w := range pricing.BuildIndex(p).Warnings() {
		s.logg.Warn(s.logg.WithField(ctx, "warning", w.Error()), "product snapshot has malformed options")
	}

	if s.cache != nil {
		if err := s.cache.InvalidateProduct(ctx, p.ID); err != nil {
			s.logg.WarnErr(ctx, "snapshot cache invalidation failed", err)
		}
	}
	s.logg.Info(s.logg.WithField(ctx, "source", normalized.Source.String()), "product snapshot ingested")
	return p, nil
}

// DeleteProduct removes an unpublished product's snapshot. Removing a
// product that was never ingested succeeds.
func (s *service) DeleteProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return pkgerrors.InvalidField("product_id", "product id is required")
	}
	ctx = s.logg.WithProductID(ctx, id)

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product snapshot")
	}
	if s.cache != nil {
		if err := s.cache.InvalidateProduct(ctx, id); err != nil {
			s.logg.WarnErr(ctx, "snapshot cache invalidation failed", err)
		}
	}
	s.logg.Info(ctx, "product snapshot deleted")
	return nil
}

func (s *service) UpsertCableTypes(ctx context.Context, types []pricing.CableType) (pricing.Catalog, error) {
	if len(types) == 0 {
		return pricing.Catalog{}, pkgerrors.InvalidField("cable_types", "at least one cable type is required")
	}
	rows := make([]models.CableType, 0, len(types))
	seen := make(map[string]struct{}, len(types))
	for i, ct := range types {
		row, err := toCableTypeModel(ct)
		if err != nil {
			return pricing.Catalog{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error()).
				WithDetails(map[string]any{"field": fmt.Sprintf("cable_types[%d]", i)})
		}
		if _, dup := seen[row.Slug]; dup {
			return pricing.Catalog{}, pkgerrors.InvalidField(fmt.Sprintf("cable_types[%d]", i), fmt.Sprintf("duplicate cable type slug %q", row.Slug))
		}
		seen[row.Slug] = struct{}{}
		rows = append(rows, row)
	}

	if err := s.repo.UpsertCableTypes(ctx, rows); err != nil {
		if db.IsUniqueViolation(err, "") {
			return pricing.Catalog{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "cable type conflicts with an existing entry")
		}
		return pricing.Catalog{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store cable types")
	}

	if s.cache != nil {
		if err := s.cache.InvalidateCatalog(ctx); err != nil {
			s.logg.WarnErr(ctx, "catalog cache invalidation failed", err)
		}
	}
	s.logg.Info(s.logg.WithField(ctx, "count", len(rows)), "cable types upserted")
	return s.loadCatalog(ctx)
}
