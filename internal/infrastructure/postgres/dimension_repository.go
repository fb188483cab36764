package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/sqlquery"
)

var _ repository.DimensionRepository = (*DimensionRepo)(nil)

// DimensionRepo tiendas y productos sobre PostgreSQL (usable con pool o tx).
type DimensionRepo struct {
	q       Querier
	dialect sqlquery.Dialect
}

// NewDimensionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDimensionRepository(q Querier) *DimensionRepo {
	return &DimensionRepo{q: q, dialect: sqlquery.Postgres}
}

func (r *DimensionRepo) FindStoreByName(ctx context.Context, name string) (*entity.Store, error) {
	id, found, err := r.find(ctx, sqlquery.TableStores, name)
	if err != nil || !found {
		return nil, err
	}
	return &entity.Store{ID: id, Name: name}, nil
}

func (r *DimensionRepo) CreateStore(ctx context.Context, name string) (*entity.Store, error) {
	id, err := r.create(ctx, sqlquery.TableStores, name)
	if err != nil {
		return nil, err
	}
	return &entity.Store{ID: id, Name: name}, nil
}

func (r *DimensionRepo) ListStores(ctx context.Context) ([]entity.Store, error) {
	rows, err := r.list(ctx, sqlquery.TableStores)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Store, 0, len(rows))
	for _, d := range rows {
		out = append(out, entity.Store{ID: d.id, Name: d.name})
	}
	return out, nil
}

func (r *DimensionRepo) FindProductByName(ctx context.Context, name string) (*entity.Product, error) {
	id, found, err := r.find(ctx, sqlquery.TableProducts, name)
	if err != nil || !found {
		return nil, err
	}
	return &entity.Product{ID: id, Name: name}, nil
}

func (r *DimensionRepo) CreateProduct(ctx context.Context, name string) (*entity.Product, error) {
	id, err := r.create(ctx, sqlquery.TableProducts, name)
	if err != nil {
		return nil, err
	}
	return &entity.Product{ID: id, Name: name}, nil
}

func (r *DimensionRepo) ListProducts(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.list(ctx, sqlquery.TableProducts)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(rows))
	for _, d := range rows {
		out = append(out, entity.Product{ID: d.id, Name: d.name})
	}
	return out, nil
}

type dimensionRow struct {
	id   int64
	name string
}

func (r *DimensionRepo) find(ctx context.Context, table, name string) (int64, bool, error) {
	q, err := r.dialect.FindDimension(table, name)
	if err != nil {
		return 0, false, domain.StoreError("find "+table, err)
	}
	var d dimensionRow
	if err := r.q.QueryRow(ctx, q.SQL, q.Args...).Scan(&d.id, &d.name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, domain.StoreError("find "+table, err)
	}
	return d.id, true, nil
}

// create falla con violación de unicidad si otra ingesta ganó la carrera; el lote se revierte.
func (r *DimensionRepo) create(ctx context.Context, table, name string) (int64, error) {
	q, err := r.dialect.InsertDimension(table, name)
	if err != nil {
		return 0, domain.StoreError("insert "+table, err)
	}
	var id int64
	if err := r.q.QueryRow(ctx, q.SQL, q.Args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, domain.StoreError("insert "+table+" (nombre duplicado)", err)
		}
		return 0, domain.StoreError("insert "+table, err)
	}
	return id, nil
}

func (r *DimensionRepo) list(ctx context.Context, table string) ([]dimensionRow, error) {
	q, err := r.dialect.ListDimension(table)
	if err != nil {
		return nil, domain.StoreError("list "+table, err)
	}
	rows, err := r.q.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, domain.StoreError("list "+table, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (dimensionRow, error) {
		var d dimensionRow
		err := row.Scan(&d.id, &d.name)
		return d, err
	})
	if err != nil {
		return nil, domain.StoreError("list "+table+" scan", err)
	}
	return out, nil
}
