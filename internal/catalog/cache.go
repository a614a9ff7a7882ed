package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/angelmondragon/rflink-backend/internal/pricing"
	"github.com/angelmondragon/rflink-backend/pkg/redis"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SnapshotKey(productID string) string
	CableTypesKey() string
}

// Cache is the Redis read-through layer in front of the repository. Entries
// are JSON encoded pricing values so a hit skips decoding the row.
type Cache struct {
	store       cacheStore
	snapshotTTL time.Duration
	catalogTTL  time.Duration
}

// NewCache wires a cache over the provided store.
func NewCache(store cacheStore, snapshotTTL, catalogTTL time.Duration) *Cache {
	return &Cache{store: store, snapshotTTL: snapshotTTL, catalogTTL: catalogTTL}
}

// Product returns the cached snapshot. ok is false on a miss.
func (c *Cache) Product(ctx context.Context, id string) (pricing.Product, bool, error) {
	var p pricing.Product
	ok, err := c.get(ctx, c.store.SnapshotKey(id), &p)
	return p, ok, err
}

func (c *Cache) SetProduct(ctx context.Context, p pricing.Product) error {
	return c.set(ctx, c.store.SnapshotKey(p.ID), p, c.snapshotTTL)
}

func (c *Cache) InvalidateProduct(ctx context.Context, id string) error {
	return c.store.Del(ctx, c.store.SnapshotKey(id))
}

// Catalog returns the cached cable catalog. ok is false on a miss.
func (c *Cache) Catalog(ctx context.Context) (pricing.Catalog, bool, error) {
	var catalog pricing.Catalog
	ok, err := c.get(ctx, c.store.CableTypesKey(), &catalog)
	return catalog, ok, err
}

func (c *Cache) SetCatalog(ctx context.Context, catalog pricing.Catalog) error {
	return c.set(ctx, c.store.CableTypesKey(), catalog, c.catalogTTL)
}

func (c *Cache) InvalidateCatalog(ctx context.Context) error {
	return c.store.Del(ctx, c.store.CableTypesKey())
}

func (c *Cache) get(ctx context.Context, key string, dst any) (bool, error) {
	payload, err := c.store.Get(ctx, key)
	if redis.IsNil(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read cache %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		// a payload we cannot read is treated as a miss and dropped
		_ = c.store.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, string(payload), ttl); err != nil {
		return fmt.Errorf("write cache %s: %w", key, err)
	}
	return nil
}
