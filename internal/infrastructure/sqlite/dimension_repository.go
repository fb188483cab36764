package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/sqlquery"
)

var _ repository.DimensionRepository = (*DimensionRepo)(nil)

// DimensionRepo tiendas y productos (usable con *sql.DB o *sql.Tx).
type DimensionRepo struct {
	q       Querier
	dialect sqlquery.Dialect
}

// NewDimensionRepository construye el adaptador.
func NewDimensionRepository(q Querier) *DimensionRepo {
	return &DimensionRepo{q: q, dialect: sqlquery.SQLite}
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
	out := []entity.Store{}
	err := r.list(ctx, sqlquery.TableStores, func(id int64, name string) {
		out = append(out, entity.Store{ID: id, Name: name})
	})
	if err != nil {
		return nil, err
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
	out := []entity.Product{}
	err := r.list(ctx, sqlquery.TableProducts, func(id int64, name string) {
		out = append(out, entity.Product{ID: id, Name: name})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DimensionRepo) find(ctx context.Context, table, name string) (int64, bool, error) {
	q, err := r.dialect.FindDimension(table, name)
	if err != nil {
		return 0, false, domain.StoreError("find "+table, err)
	}
	var id int64
	var nom string
	if err := r.q.QueryRowContext(ctx, q.SQL, q.Args...).Scan(&id, &nom); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, domain.StoreError("find "+table, err)
	}
	return id, true, nil
}

func (r *DimensionRepo) create(ctx context.Context, table, name string) (int64, error) {
	q, err := r.dialect.InsertDimension(table, name)
	if err != nil {
		return 0, domain.StoreError("insert "+table, err)
	}
	var id int64
	if err := r.q.QueryRowContext(ctx, q.SQL, q.Args...).Scan(&id); err != nil {
		return 0, domain.StoreError("insert "+table, err)
	}
	return id, nil
}

func (r *DimensionRepo) list(ctx context.Context, table string, add func(id int64, name string)) error {
	q, err := r.dialect.ListDimension(table)
	if err != nil {
		return domain.StoreError("list "+table, err)
	}
	err = eachRow(ctx, r.q, q, func(rows *sql.Rows) error {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		add(id, name)
		return nil
	})
	return domain.StoreError("list "+table, err)
}
