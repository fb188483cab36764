package sqlite

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/sqlquery"
)

var _ repository.Aggregator = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregaciones resueltas en SQLite con las mismas sentencias que Postgres.
type AnalyticsRepo struct {
	q       Querier
	dialect sqlquery.Dialect
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q, dialect: sqlquery.SQLite}
}

func (r *AnalyticsRepo) TotalSales(ctx context.Context, f entity.Filter) (decimal.Decimal, error) {
	q, err := r.dialect.TotalSales(f)
	if err != nil {
		return decimal.Zero, domain.StoreError("analytics.TotalSales", err)
	}
	var scaled int64
	if err := r.q.QueryRowContext(ctx, q.SQL, q.Args...).Scan(&scaled); err != nil {
		return decimal.Zero, domain.StoreError("analytics.TotalSales", err)
	}
	return fromScaled(scaled), nil
}

func (r *AnalyticsRepo) SalesByStore(ctx context.Context, f entity.Filter) ([]entity.GroupTotal, error) {
	q, err := r.dialect.SalesByStore(f)
	if err != nil {
		return nil, domain.StoreError("analytics.SalesByStore", err)
	}
	return r.groupTotals(ctx, "analytics.SalesByStore", q)
}

func (r *AnalyticsRepo) SalesByProduct(ctx context.Context, f entity.Filter) ([]entity.GroupTotal, error) {
	q, err := r.dialect.SalesByProduct(f)
	if err != nil {
		return nil, domain.StoreError("analytics.SalesByProduct", err)
	}
	return r.groupTotals(ctx, "analytics.SalesByProduct", q)
}

func (r *AnalyticsRepo) groupTotals(ctx context.Context, op string, q sqlquery.Query) ([]entity.GroupTotal, error) {
	results := []entity.GroupTotal{}
	err := eachRow(ctx, r.q, q, func(rows *sql.Rows) error {
		var g entity.GroupTotal
		var scaled int64
		if err := rows.Scan(&g.Key, &scaled, &g.TotalQuantity); err != nil {
			return err
		}
		g.TotalAmount = fromScaled(scaled)
		results = append(results, g)
		return nil
	})
	if err != nil {
		return nil, domain.StoreError(op, err)
	}
	return results, nil
}

func (r *AnalyticsRepo) SalesTrend(ctx context.Context, f entity.Filter, g entity.Granularity) ([]entity.PeriodTotal, error) {
	q, err := r.dialect.SalesTrend(f, g)
	if err != nil {
		return nil, domain.StoreError("analytics.SalesTrend", err)
	}
	results := []entity.PeriodTotal{}
	err = eachRow(ctx, r.q, q, func(rows *sql.Rows) error {
		var p entity.PeriodTotal
		var scaled int64
		if err := rows.Scan(&p.Period, &scaled); err != nil {
			return err
		}
		p.TotalAmount = fromScaled(scaled)
		results = append(results, p)
		return nil
	})
	if err != nil {
		return nil, domain.StoreError("analytics.SalesTrend", err)
	}
	return results, nil
}

func (r *AnalyticsRepo) TopProducts(ctx context.Context, f entity.Filter, n int) ([]entity.ProductQuantity, error) {
	results := []entity.ProductQuantity{}
	if n <= 0 {
		return results, nil
	}
	q, err := r.dialect.TopProducts(f, n)
	if err != nil {
		return nil, domain.StoreError("analytics.TopProducts", err)
	}
	err = eachRow(ctx, r.q, q, func(rows *sql.Rows) error {
		var p entity.ProductQuantity
		if err := rows.Scan(&p.Product, &p.TotalQuantity); err != nil {
			return err
		}
		results = append(results, p)
		return nil
	})
	if err != nil {
		return nil, domain.StoreError("analytics.TopProducts", err)
	}
	return results, nil
}

func (r *AnalyticsRepo) StoreProductPerformance(ctx context.Context, f entity.Filter) ([]entity.StoreProductTotal, error) {
	q, err := r.dialect.StoreProductPerformance(f)
	if err != nil {
		return nil, domain.StoreError("analytics.StoreProductPerformance", err)
	}
	results := []entity.StoreProductTotal{}
	err = eachRow(ctx, r.q, q, func(rows *sql.Rows) error {
		var sp entity.StoreProductTotal
		var scaled int64
		if err := rows.Scan(&sp.Store, &sp.Product, &sp.TotalQuantity, &scaled); err != nil {
			return err
		}
		sp.TotalAmount = fromScaled(scaled)
		results = append(results, sp)
		return nil
	})
	if err != nil {
		return nil, domain.StoreError("analytics.StoreProductPerformance", err)
	}
	return results, nil
}

// eachRow ejecuta q y llama a scan por cada fila.
func eachRow(ctx context.Context, db Querier, q sqlquery.Query, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
