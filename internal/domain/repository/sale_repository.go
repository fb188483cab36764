package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// SaleRepository puerto de persistencia de los hechos de venta.
type SaleRepository interface {
	// Exists indica si ya hay una venta con la misma (fecha, tienda, producto).
	Exists(ctx context.Context, date time.Time, storeID, productID int64) (bool, error)
	Insert(ctx context.Context, date time.Time, storeID, productID, quantity int64, unitPrice decimal.Decimal) error
	// ListAll devuelve las ventas filtradas en orden de inserción.
	ListAll(ctx context.Context, f entity.Filter) ([]entity.SaleRecord, error)
}

// IngestTxRunner ejecuta fn dentro de una única transacción con repositorios atados a ella.
// Si fn devuelve error se hace Rollback; si no, Commit.
type IngestTxRunner interface {
	RunIngest(ctx context.Context, fn func(dims DimensionRepository, sales SaleRepository) error) error
}
