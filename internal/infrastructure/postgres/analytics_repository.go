package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/sqlquery"
)

var _ repository.Aggregator = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura: las agregaciones se resuelven en PostgreSQL.
type AnalyticsRepo struct {
	q       Querier
	dialect sqlquery.Dialect
}

// NewAnalyticsRepository construye el adaptador de analítica. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q, dialect: sqlquery.Postgres}
}

// TotalSales usa COALESCE para devolver cero si no hay filas.
func (r *AnalyticsRepo) TotalSales(ctx context.Context, f entity.Filter) (decimal.Decimal, error) {
	q, err := r.dialect.TotalSales(f)
	if err != nil {
		return decimal.Zero, domain.StoreError("analytics.TotalSales", err)
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, q.SQL, q.Args...).Scan(&total); err != nil {
		return decimal.Zero, domain.StoreError("analytics.TotalSales", err)
	}
	return total, nil
}

// SalesByStore importe y unidades por tienda; desempate por la primera venta de cada grupo.
func (r *AnalyticsRepo) SalesByStore(ctx context.Context, f entity.Filter) ([]entity.GroupTotal, error) {
	q, err := r.dialect.SalesByStore(f)
	if err != nil {
		return nil, domain.StoreError("analytics.SalesByStore", err)
	}
	return r.groupTotals(ctx, "analytics.SalesByStore", q)
}

// SalesByProduct importe y unidades por producto.
func (r *AnalyticsRepo) SalesByProduct(ctx context.Context, f entity.Filter) ([]entity.GroupTotal, error) {
	q, err := r.dialect.SalesByProduct(f)
	if err != nil {
		return nil, domain.StoreError("analytics.SalesByProduct", err)
	}
	return r.groupTotals(ctx, "analytics.SalesByProduct", q)
}

func (r *AnalyticsRepo) groupTotals(ctx context.Context, op string, q sqlquery.Query) ([]entity.GroupTotal, error) {
	rows, err := r.q.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, domain.StoreError(op, err)
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.GroupTotal, error) {
		var g entity.GroupTotal
		err := row.Scan(&g.Key, &g.TotalAmount, &g.TotalQuantity)
		return g, err
	})
	if err != nil {
		return nil, domain.StoreError(op+" scan", err)
	}
	if results == nil {
		results = []entity.GroupTotal{}
	}
	return results, nil
}

// SalesTrend etiqueta con to_char según la granularidad.
func (r *AnalyticsRepo) SalesTrend(ctx context.Context, f entity.Filter, g entity.Granularity) ([]entity.PeriodTotal, error) {
	q, err := r.dialect.SalesTrend(f, g)
	if err != nil {
		return nil, domain.StoreError("analytics.SalesTrend", err)
	}
	rows, err := r.q.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, domain.StoreError("analytics.SalesTrend", err)
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.PeriodTotal, error) {
		var p entity.PeriodTotal
		err := row.Scan(&p.Period, &p.TotalAmount)
		return p, err
	})
	if err != nil {
		return nil, domain.StoreError("analytics.SalesTrend scan", err)
	}
	if results == nil {
		results = []entity.PeriodTotal{}
	}
	return results, nil
}

// TopProducts n <= 0 devuelve vacío sin consultar.
func (r *AnalyticsRepo) TopProducts(ctx context.Context, f entity.Filter, n int) ([]entity.ProductQuantity, error) {
	if n <= 0 {
		return []entity.ProductQuantity{}, nil
	}
	q, err := r.dialect.TopProducts(f, n)
	if err != nil {
		return nil, domain.StoreError("analytics.TopProducts", err)
	}
	rows, err := r.q.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, domain.StoreError("analytics.TopProducts", err)
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.ProductQuantity, error) {
		var p entity.ProductQuantity
		err := row.Scan(&p.Product, &p.TotalQuantity)
		return p, err
	})
	if err != nil {
		return nil, domain.StoreError("analytics.TopProducts scan", err)
	}
	if results == nil {
		results = []entity.ProductQuantity{}
	}
	return results, nil
}

// StoreProductPerformance rendimiento por (tienda, producto).
func (r *AnalyticsRepo) StoreProductPerformance(ctx context.Context, f entity.Filter) ([]entity.StoreProductTotal, error) {
	q, err := r.dialect.StoreProductPerformance(f)
	if err != nil {
		return nil, domain.StoreError("analytics.StoreProductPerformance", err)
	}
	rows, err := r.q.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, domain.StoreError("analytics.StoreProductPerformance", err)
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.StoreProductTotal, error) {
		var sp entity.StoreProductTotal
		err := row.Scan(&sp.Store, &sp.Product, &sp.TotalQuantity, &sp.TotalAmount)
		return sp, err
	})
	if err != nil {
		return nil, domain.StoreError("analytics.StoreProductPerformance scan", err)
	}
	if results == nil {
		results = []entity.StoreProductTotal{}
	}
	return results, nil
}
