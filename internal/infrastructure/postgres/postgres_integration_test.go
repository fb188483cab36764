package postgres_test

import (
	"context"
	"errors"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-analytics/pkg/config"
)

// Requiere TEST_DATABASE_URL; cada ejecución usa un esquema propio que se borra al final.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	admin, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	qs := u.Query()
	qs.Set("search_path", schema)
	u.RawQuery = qs.Encode()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: u.String()})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	return pool
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestPostgres_EquivalenciaConMemoria(t *testing.T) {
	pool := setupPool(t)
	runner := postgres.NewTxRunner(pool)
	ctx := context.Background()

	rows := []entity.SaleRecord{
		{Date: day("2023-11-30"), Store: "B", Product: "Gadget", Quantity: 1, UnitPrice: decimal.RequireFromString("40")},
		{Date: day("2023-12-16"), Store: "A", Product: "Widget", Quantity: 3, UnitPrice: decimal.RequireFromString("10")},
		{Date: day("2024-01-02"), Store: "C", Product: "Widget", Quantity: 4, UnitPrice: decimal.RequireFromString("2.5")},
		{Date: day("2024-01-05"), Store: "B", Product: "Bidule", Quantity: 10, UnitPrice: decimal.RequireFromString("1")},
		{Date: day("2024-01-05"), Store: "A", Product: "gadget", Quantity: 1, UnitPrice: decimal.RequireFromString("0.9999")},
	}
	err := runner.RunIngest(ctx, func(dims repository.DimensionRepository, sales repository.SaleRepository) error {
		for _, r := range rows {
			s, err := dims.FindStoreByName(ctx, r.Store)
			if err != nil {
				return err
			}
			if s == nil {
				if s, err = dims.CreateStore(ctx, r.Store); err != nil {
					return err
				}
			}
			p, err := dims.FindProductByName(ctx, r.Product)
			if err != nil {
				return err
			}
			if p == nil {
				if p, err = dims.CreateProduct(ctx, r.Product); err != nil {
					return err
				}
			}
			if err := sales.Insert(ctx, r.Date, s.ID, p.ID, r.Quantity, r.UnitPrice); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	store := postgres.NewAnalyticsRepository(pool)
	mem := analytics.NewMemoryAggregator(rows)

	for _, f := range []entity.Filter{{}, {Stores: []string{"A", "B"}}, {From: ptr(day("2024-01-01"))}} {
		wantTotal, _ := mem.TotalSales(ctx, f)
		gotTotal, err := store.TotalSales(ctx, f)
		require.NoError(t, err)
		assert.True(t, wantTotal.Equal(gotTotal), "total %s vs %s", wantTotal, gotTotal)

		wantStores, _ := mem.SalesByStore(ctx, f)
		gotStores, err := store.SalesByStore(ctx, f)
		require.NoError(t, err)
		assertGroups(t, wantStores, gotStores)

		wantSP, _ := mem.StoreProductPerformance(ctx, f)
		gotSP, err := store.StoreProductPerformance(ctx, f)
		require.NoError(t, err)
		require.Len(t, gotSP, len(wantSP))
		for i := range wantSP {
			assert.Equal(t, wantSP[i].Store, gotSP[i].Store)
			assert.Equal(t, wantSP[i].Product, gotSP[i].Product)
		}
	}

	listed, err := postgres.NewSaleRepository(pool).ListAll(ctx, entity.Filter{})
	require.NoError(t, err)
	require.Len(t, listed, len(rows))
	assert.True(t, rows[0].Date.Equal(listed[0].Date))
}

func TestPostgres_RollbackSiFnFalla(t *testing.T) {
	pool := setupPool(t)
	runner := postgres.NewTxRunner(pool)
	ctx := context.Background()

	boom := errors.New("boom")
	err := runner.RunIngest(ctx, func(dims repository.DimensionRepository, _ repository.SaleRepository) error {
		if _, err := dims.CreateStore(ctx, "A"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stores, err := postgres.NewDimensionRepository(pool).ListStores(ctx)
	require.NoError(t, err)
	assert.Empty(t, stores)
}

func assertGroups(t *testing.T, want, got []entity.GroupTotal) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Key, got[i].Key)
		assert.True(t, want[i].TotalAmount.Equal(got[i].TotalAmount))
		assert.Equal(t, want[i].TotalQuantity, got[i].TotalQuantity)
	}
}

func ptr[T any](v T) *T { return &v }
