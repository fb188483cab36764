package ingest

import (
	"context"

	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

// dimensionCache resuelve nombre → ID una sola vez por lote.
type dimensionCache struct {
	repo     repository.DimensionRepository
	stores   map[string]int64
	products map[string]int64
}

func newDimensionCache(repo repository.DimensionRepository) *dimensionCache {
	return &dimensionCache{
		repo:     repo,
		stores:   make(map[string]int64),
		products: make(map[string]int64),
	}
}

func (c *dimensionCache) storeID(ctx context.Context, name string) (int64, error) {
	if id, ok := c.stores[name]; ok {
		return id, nil
	}
	s, err := c.repo.FindStoreByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if s == nil {
		if s, err = c.repo.CreateStore(ctx, name); err != nil {
			return 0, err
		}
	}
	c.stores[name] = s.ID
	return s.ID, nil
}

func (c *dimensionCache) productID(ctx context.Context, name string) (int64, error) {
	if id, ok := c.products[name]; ok {
		return id, nil
	}
	p, err := c.repo.FindProductByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if p == nil {
		if p, err = c.repo.CreateProduct(ctx, name); err != nil {
			return 0, err
		}
	}
	c.products[name] = p.ID
	return p.ID, nil
}
