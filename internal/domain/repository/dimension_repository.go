package repository

import (
	"context"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// DimensionRepository acceso a las dimensiones tienda y producto (únicas por nombre).
type DimensionRepository interface {
	// FindStoreByName devuelve nil, nil si no existe.
	FindStoreByName(ctx context.Context, name string) (*entity.Store, error)
	CreateStore(ctx context.Context, name string) (*entity.Store, error)
	ListStores(ctx context.Context) ([]entity.Store, error)

	// FindProductByName devuelve nil, nil si no existe.
	FindProductByName(ctx context.Context, name string) (*entity.Product, error)
	CreateProduct(ctx context.Context, name string) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
}
