package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/sales"
)

func rec(day string, store, product string, qty int64, price string) entity.SaleRecord {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return entity.SaleRecord{Date: d, Store: store, Product: product, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sample() []entity.SaleRecord {
	return []entity.SaleRecord{
		rec("2023-11-30", "B", "Gadget", 1, "40"),
		rec("2023-12-16", "A", "Widget", 3, "10"),
		rec("2023-12-17", "A", "Widget", 2, "10"),
		rec("2024-01-02", "C", "Widget", 4, "2.5"),
		rec("2024-01-05", "B", "Bidule", 10, "1"),
		rec("2024-01-05", "C", "Gadget", 1, "0.99"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ejemplo de extremo a extremo
// ──────────────────────────────────────────────────────────────────────────────

func TestEndToEnd_DesdeFilasCrudas(t *testing.T) {
	table := &sales.RawTable{
		Header: []string{"Date", "Magasin", "Produit", "Quantité vendue", "Prix unitaire"},
		Rows: [][]string{
			{"16/12/2023", "A", "Widget", "3", "10,00"},
			{"17/12/2023", "A", "Widget", "2", "10,00"},
		},
	}
	res, err := sales.NewNormalizer(zerolog.Nop()).Normalize(table, nil)
	require.NoError(t, err)

	records := res.Records
	assert.True(t, dec("50.00").Equal(analytics.TotalSales(records)))

	byStore := analytics.ByStore(records)
	require.Len(t, byStore, 1)
	assert.Equal(t, "A", byStore[0].Key)
	assert.True(t, dec("50").Equal(byStore[0].TotalAmount))
	assert.Equal(t, int64(5), byStore[0].TotalQuantity)

	trend := analytics.Trend(records, entity.GranularityMonth)
	require.Len(t, trend, 1)
	assert.Equal(t, "2023-12", trend[0].Period)
	assert.True(t, dec("50").Equal(trend[0].TotalAmount))
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

func TestConservacionDelImporte(t *testing.T) {
	records := sample()
	total := analytics.TotalSales(records)

	sumGroups := func(gs []entity.GroupTotal) decimal.Decimal {
		s := decimal.Zero
		for _, g := range gs {
			s = s.Add(g.TotalAmount)
		}
		return s
	}
	assert.True(t, total.Equal(sumGroups(analytics.ByStore(records))))
	assert.True(t, total.Equal(sumGroups(analytics.ByProduct(records))))

	for _, g := range []entity.Granularity{entity.GranularityDay, entity.GranularityMonth, entity.GranularityYear} {
		s := decimal.Zero
		for _, p := range analytics.Trend(records, g) {
			s = s.Add(p.TotalAmount)
		}
		assert.True(t, total.Equal(s), "granularidad %s", g)
	}
}

func TestTrend_ParticionOrdenada(t *testing.T) {
	trend := analytics.Trend(sample(), entity.GranularityMonth)
	require.Len(t, trend, 3)
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01"}, []string{trend[0].Period, trend[1].Period, trend[2].Period})
	assert.True(t, dec("20.99").Equal(trend[2].TotalAmount))

	years := analytics.Trend(sample(), entity.GranularityYear)
	require.Len(t, years, 2)
	assert.Equal(t, "2023", years[0].Period)
	assert.Equal(t, "2024", years[1].Period)

	days := analytics.Trend(sample(), entity.GranularityDay)
	assert.Len(t, days, 5)
	assert.Equal(t, "2023-11-30", days[0].Period)
}

func TestByStore_OrdenYEmpates(t *testing.T) {
	// B: 40 + 10 = 50, A: 50, C: 10 + 0.99. Empate A/B → B aparece primero.
	got := analytics.ByStore(sample())
	require.Len(t, got, 3)
	assert.Equal(t, "B", got[0].Key)
	assert.Equal(t, "A", got[1].Key)
	assert.Equal(t, "C", got[2].Key)
	assert.Equal(t, int64(11), got[0].TotalQuantity)
	assert.True(t, dec("10.99").Equal(got[2].TotalAmount))
}

func TestByProduct(t *testing.T) {
	got := analytics.ByProduct(sample())
	require.Len(t, got, 3)
	assert.Equal(t, "Widget", got[0].Key)
	assert.True(t, dec("60").Equal(got[0].TotalAmount))
	assert.Equal(t, int64(9), got[0].TotalQuantity)
	assert.Equal(t, "Gadget", got[1].Key)
	assert.Equal(t, "Bidule", got[2].Key)
}

func TestTopN(t *testing.T) {
	records := sample()

	top := analytics.TopN(records, 2)
	require.Len(t, top, 2)
	assert.Equal(t, entity.ProductQuantity{Product: "Bidule", TotalQuantity: 10}, top[0])
	assert.Equal(t, entity.ProductQuantity{Product: "Widget", TotalQuantity: 9}, top[1])

	assert.Len(t, analytics.TopN(records, 10), 3, "longitud = min(n, productos distintos)")
	assert.Empty(t, analytics.TopN(records, 0))
	assert.NotNil(t, analytics.TopN(records, -1))
}

func TestTopN_EmpateEstable(t *testing.T) {
	records := []entity.SaleRecord{
		rec("2024-01-01", "A", "Zeta", 2, "1"),
		rec("2024-01-01", "A", "Alpha", 2, "1"),
		rec("2024-01-01", "A", "Mid", 2, "1"),
	}
	top := analytics.TopN(records, 2)
	assert.Equal(t, "Zeta", top[0].Product)
	assert.Equal(t, "Alpha", top[1].Product)
}

func TestByStoreProduct(t *testing.T) {
	got := analytics.ByStoreProduct(sample())
	require.Len(t, got, 5)
	assert.Equal(t, "A", got[0].Store)
	assert.Equal(t, "B", got[1].Store)
	assert.Equal(t, "Gadget", got[1].Product, "dentro de B primero el de mayor importe")
	assert.Equal(t, "Bidule", got[2].Product)
	assert.Equal(t, "C", got[3].Store)
	assert.Equal(t, "Widget", got[3].Product)
}

func TestEntradaVacia(t *testing.T) {
	assert.True(t, analytics.TotalSales(nil).IsZero())
	assert.NotNil(t, analytics.ByStore(nil))
	assert.Empty(t, analytics.ByStore(nil))
	assert.NotNil(t, analytics.ByProduct(nil))
	assert.NotNil(t, analytics.Trend(nil, entity.GranularityMonth))
	assert.NotNil(t, analytics.TopN(nil, 5))
	assert.NotNil(t, analytics.ByStoreProduct(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// MemoryAggregator con filtro
// ──────────────────────────────────────────────────────────────────────────────

func TestMemoryAggregator_Filtro(t *testing.T) {
	ctx := context.Background()
	agg := analytics.NewMemoryAggregator(sample())

	from := time.Date(2023, 12, 17, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	total, err := agg.TotalSales(ctx, entity.Filter{From: &from, To: &to})
	require.NoError(t, err)
	assert.True(t, dec("30").Equal(total), "fechas inclusivas: 20 + 10")

	byStore, err := agg.SalesByStore(ctx, entity.Filter{Stores: []string{"C"}})
	require.NoError(t, err)
	require.Len(t, byStore, 1)
	assert.Equal(t, "C", byStore[0].Key)

	top, err := agg.TopProducts(ctx, entity.Filter{Products: []string{"Nada"}}, 5)
	require.NoError(t, err)
	assert.Empty(t, top)

	all, err := agg.TotalSales(ctx, entity.Filter{})
	require.NoError(t, err)
	assert.True(t, analytics.TotalSales(sample()).Equal(all))
}
