package sqlquery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/sqlquery"
)

func TestSalesByStore_FiltroPostgres(t *testing.T) {
	from := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	q, err := sqlquery.Postgres.SalesByStore(entity.Filter{From: &from, Stores: []string{"A", "B"}})
	require.NoError(t, err)

	assert.Contains(t, q.SQL, "v.date >= $1")
	assert.Contains(t, q.SQL, "m.nom IN ($2,$3)")
	assert.Contains(t, q.SQL, "GROUP BY m.id, m.nom")
	assert.Contains(t, q.SQL, "ORDER BY total DESC, MIN(v.id) ASC")
	assert.Equal(t, []any{from, "A", "B"}, q.Args)
}

func TestSalesByStore_FiltroSQLite(t *testing.T) {
	to := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	q, err := sqlquery.SQLite.SalesByStore(entity.Filter{To: &to})
	require.NoError(t, err)

	assert.Contains(t, q.SQL, "v.date <= ?")
	assert.Equal(t, []any{"2023-12-31"}, q.Args)
}

func TestSalesTrend_EtiquetaPorMotor(t *testing.T) {
	pg, err := sqlquery.Postgres.SalesTrend(entity.Filter{}, entity.GranularityYear)
	require.NoError(t, err)
	assert.Contains(t, pg.SQL, "to_char(v.date, 'YYYY') AS periode")

	lite, err := sqlquery.SQLite.SalesTrend(entity.Filter{}, entity.GranularityDay)
	require.NoError(t, err)
	assert.Contains(t, lite.SQL, "strftime('%Y-%m-%d', v.date) AS periode")
	assert.Contains(t, lite.SQL, "ORDER BY periode ASC")
}

func TestStoreProductPerformance_OrdenPorBytes(t *testing.T) {
	q, err := sqlquery.Postgres.StoreProductPerformance(entity.Filter{})
	require.NoError(t, err)
	assert.Contains(t, q.SQL, `ORDER BY m.nom COLLATE "C" ASC, total DESC, MIN(v.id) ASC`)
}

func TestTopProducts_Limit(t *testing.T) {
	q, err := sqlquery.SQLite.TopProducts(entity.Filter{}, 5)
	require.NoError(t, err)
	assert.Contains(t, q.SQL, "LIMIT 5")
}

func TestInsertDimension_Returning(t *testing.T) {
	q, err := sqlquery.Postgres.InsertDimension(sqlquery.TableStores, "A")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO magasins (nom) VALUES ($1) RETURNING id", q.SQL)
	assert.Equal(t, []any{"A"}, q.Args)
}
