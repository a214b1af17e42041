package catalog

import (
	"path/filepath"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brightline/catalogd/config"
	"github.com/brightline/catalogd/internal/assets"
	"github.com/brightline/catalogd/internal/cachestore"
	"github.com/brightline/catalogd/internal/currency"
	"github.com/brightline/catalogd/internal/domain"
	"github.com/brightline/catalogd/internal/oplog"
)

type testEnv struct {
	db      *gorm.DB
	cache   *cachestore.MemoryStore
	storage *assets.Storage
	manager *Manager
}

// newTestEnv wires a manager against a throwaway SQLite database and an
// unreachable rate provider; conversion tests seed the cache instead.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	cache := cachestore.NewMemoryStore()
	conv := currency.NewConverter(cache, config.CurrencyConfig{
		ProviderEndpoint: "http://127.0.0.1:1",
		FetchTimeout:     1,
		CacheTTL:         60,
	})
	storage := assets.NewStorage(t.TempDir())
	log := oplog.NewWriter(db)

	categories := NewCategoryService(db, log)
	attributes := NewAttributeService(db, log)
	manager := NewManager(db, categories, attributes, conv, storage, log)

	return &testEnv{db: db, cache: cache, storage: storage, manager: manager}
}

// seedRates pre-populates the exchange-rate cache for a base currency.
func (e *testEnv) seedRates(t *testing.T, from string, rates map[string]float64) {
	t.Helper()
	data, err := jsoniter.Marshal(rates)
	require.NoError(t, err)
	require.NoError(t, e.cache.Set("exchange_rate_"+from, data, time.Minute))
}

func testCtx() oplog.RequestContext {
	return oplog.RequestContext{
		Operator:   "tester",
		IP:         "127.0.0.1",
		UserAgent:  "go-test",
		RequestURI: "/",
		Method:     "TEST",
	}
}

func (e *testEnv) createProduct(t *testing.T, name, price, cur string) *domain.Product {
	t.Helper()
	p, err := e.manager.CreateProduct(testCtx(), CreateProductInput{
		Name:     name,
		Price:    price,
		Currency: cur,
	})
	require.NoError(t, err)
	return p
}
