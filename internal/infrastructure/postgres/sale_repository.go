package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/sqlquery"
)

// PriceScale decimales con los que se guarda prix_unitaire (NUMERIC(14,4)).
const PriceScale = entity.PriceDecimals

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo hechos de venta sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q       Querier
	dialect sqlquery.Dialect
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q, dialect: sqlquery.Postgres}
}

func (r *SaleRepo) Exists(ctx context.Context, date time.Time, storeID, productID int64) (bool, error) {
	q, err := r.dialect.SaleExists(date, storeID, productID)
	if err != nil {
		return false, domain.StoreError("sales.Exists", err)
	}
	var one int
	if err := r.q.QueryRow(ctx, q.SQL, q.Args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, domain.StoreError("sales.Exists", err)
	}
	return true, nil
}

func (r *SaleRepo) Insert(ctx context.Context, date time.Time, storeID, productID, quantity int64, unitPrice decimal.Decimal) error {
	if unitPrice.Round(PriceScale).GreaterThanOrEqual(entity.MaxUnitPrice) {
		return fmt.Errorf("sales.Insert: %w: precio %s fuera de rango", domain.ErrInvalidInput, unitPrice)
	}
	q, err := r.dialect.InsertSale(date, storeID, productID, quantity, unitPrice.Round(PriceScale))
	if err != nil {
		return domain.StoreError("sales.Insert", err)
	}
	if _, err := r.q.Exec(ctx, q.SQL, q.Args...); err != nil {
		return domain.StoreError("sales.Insert", err)
	}
	return nil
}

func (r *SaleRepo) ListAll(ctx context.Context, f entity.Filter) ([]entity.SaleRecord, error) {
	q, err := r.dialect.ListSales(f)
	if err != nil {
		return nil, domain.StoreError("sales.ListAll", err)
	}
	rows, err := r.q.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, domain.StoreError("sales.ListAll", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.SaleRecord, error) {
		var s entity.SaleRecord
		err := row.Scan(&s.Date, &s.Store, &s.Product, &s.Quantity, &s.UnitPrice)
		s.Date = entity.DateOnly(s.Date)
		return s, err
	})
	if err != nil {
		return nil, domain.StoreError("sales.ListAll scan", err)
	}
	if out == nil {
		out = []entity.SaleRecord{}
	}
	return out, nil
}
