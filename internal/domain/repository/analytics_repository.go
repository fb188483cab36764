package repository

//go:generate mockgen -source=analytics_repository.go -destination=mocks/aggregator_mock.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// Aggregator define el conjunto fijo de vistas analíticas sobre las ventas.
//
// Hay dos implementaciones con la misma semántica: una en memoria sobre []entity.SaleRecord
// y otra que delega en las consultas de agregación del almacén (Postgres o SQLite).
// Ambas deben producir resultados idénticos para el mismo conjunto lógico de datos.
//
// Reglas comunes:
//   - Entrada vacía → cero o slices vacíos (nunca nil), nunca error.
//   - Un fallo del almacén devuelve domain.ErrStoreUnavailable y ningún resultado parcial.
//   - Los empates se resuelven por orden de descubrimiento del grupo (primera venta).
type Aggregator interface {
	// TotalSales suma Quantity × UnitPrice de todas las ventas.
	TotalSales(ctx context.Context, f entity.Filter) (decimal.Decimal, error)

	// SalesByStore agrupa por tienda, ordenado por importe descendente.
	SalesByStore(ctx context.Context, f entity.Filter) ([]entity.GroupTotal, error)

	// SalesByProduct agrupa por producto, ordenado por importe descendente.
	SalesByProduct(ctx context.Context, f entity.Filter) ([]entity.GroupTotal, error)

	// SalesTrend agrupa por período de la granularidad dada, en orden ascendente.
	SalesTrend(ctx context.Context, f entity.Filter, g entity.Granularity) ([]entity.PeriodTotal, error)

	// TopProducts devuelve los n productos con más unidades vendidas. n <= 0 → vacío.
	TopProducts(ctx context.Context, f entity.Filter, n int) ([]entity.ProductQuantity, error)

	// StoreProductPerformance agrupa por (tienda, producto): tienda ascendente y luego importe descendente.
	StoreProductPerformance(ctx context.Context, f entity.Filter) ([]entity.StoreProductTotal, error)
}
