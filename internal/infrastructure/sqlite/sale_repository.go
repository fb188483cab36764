package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/sqlquery"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo hechos de venta (usable con *sql.DB o *sql.Tx).
type SaleRepo struct {
	q       Querier
	dialect sqlquery.Dialect
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q, dialect: sqlquery.SQLite}
}

func (r *SaleRepo) Exists(ctx context.Context, date time.Time, storeID, productID int64) (bool, error) {
	q, err := r.dialect.SaleExists(date, storeID, productID)
	if err != nil {
		return false, domain.StoreError("sales.Exists", err)
	}
	var one int
	if err := r.q.QueryRowContext(ctx, q.SQL, q.Args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, domain.StoreError("sales.Exists", err)
	}
	return true, nil
}

func (r *SaleRepo) Insert(ctx context.Context, date time.Time, storeID, productID, quantity int64, unitPrice decimal.Decimal) error {
	scaled, err := toScaled(unitPrice)
	if err != nil {
		return fmt.Errorf("sales.Insert: %w", err)
	}
	q, err := r.dialect.InsertSale(date, storeID, productID, quantity, scaled)
	if err != nil {
		return domain.StoreError("sales.Insert", err)
	}
	if _, err := r.q.ExecContext(ctx, q.SQL, q.Args...); err != nil {
		return domain.StoreError("sales.Insert", err)
	}
	return nil
}

func (r *SaleRepo) ListAll(ctx context.Context, f entity.Filter) ([]entity.SaleRecord, error) {
	q, err := r.dialect.ListSales(f)
	if err != nil {
		return nil, domain.StoreError("sales.ListAll", err)
	}
	out := []entity.SaleRecord{}
	err = eachRow(ctx, r.q, q, func(rows *sql.Rows) error {
		var s entity.SaleRecord
		var date string
		var scaled int64
		if err := rows.Scan(&date, &s.Store, &s.Product, &s.Quantity, &scaled); err != nil {
			return err
		}
		d, err := time.Parse(sqlquery.DateLayout, date)
		if err != nil {
			return fmt.Errorf("fecha almacenada %q: %w", date, err)
		}
		s.Date = d
		s.UnitPrice = fromScaled(scaled)
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, domain.StoreError("sales.ListAll", err)
	}
	return out, nil
}
