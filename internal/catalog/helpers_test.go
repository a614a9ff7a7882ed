package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/rflink-backend/internal/pricing"
	"github.com/angelmondragon/rflink-backend/pkg/db/models"
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "expected %s got %s", want, got.String())
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, conn.AutoMigrate(&models.CableType{}, &models.CatalogProduct{}))
	return conn
}

func jumperProduct() pricing.Product {
	return pricing.Product{
		ID:            "jumper-1",
		Type:          enums.ProductTypeCable,
		Title:         "LMR-400 Jumper",
		Price:         dec("3"),
		CableTypeSlug: "lmr-400",
		LengthOptions: []pricing.LegacyOption{
			{Value: "10 ft", Bare: true},
			{Value: "25 ft", Price: decPtr("2500"), SKU: "J-25"},
		},
		ConnectorPricing: []pricing.ConnectorPricingEntry{
			{CableTypeSlug: " lmr-400 ", Price: dec("3.00")},
		},
	}
}

type fakeStore struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = fmt.Sprint(value)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeStore) SnapshotKey(productID string) string {
	return "rf:snapshot:product:" + productID
}

func (f *fakeStore) CableTypesKey() string {
	return "rf:catalog:cable_types"
}
