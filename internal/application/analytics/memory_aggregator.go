package analytics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

// DefaultTopN productos en el ranking de más vendidos si no se indica otro valor.
const DefaultTopN = 5

var _ repository.Aggregator = (*MemoryAggregator)(nil)

// MemoryAggregator implementa repository.Aggregator sobre registros ya cargados en memoria.
// Solo lee el slice; nunca lo modifica.
type MemoryAggregator struct {
	records []entity.SaleRecord
}

// NewMemoryAggregator construye el agregador. records debe estar en orden de origen
// (orden de archivo o de inserción): de él depende el desempate.
func NewMemoryAggregator(records []entity.SaleRecord) *MemoryAggregator {
	return &MemoryAggregator{records: records}
}

func (a *MemoryAggregator) selected(f entity.Filter) []entity.SaleRecord {
	if f.IsZero() {
		return a.records
	}
	out := make([]entity.SaleRecord, 0, len(a.records))
	for _, r := range a.records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func (a *MemoryAggregator) TotalSales(_ context.Context, f entity.Filter) (decimal.Decimal, error) {
	return TotalSales(a.selected(f)), nil
}

func (a *MemoryAggregator) SalesByStore(_ context.Context, f entity.Filter) ([]entity.GroupTotal, error) {
	return ByStore(a.selected(f)), nil
}

func (a *MemoryAggregator) SalesByProduct(_ context.Context, f entity.Filter) ([]entity.GroupTotal, error) {
	return ByProduct(a.selected(f)), nil
}

func (a *MemoryAggregator) SalesTrend(_ context.Context, f entity.Filter, g entity.Granularity) ([]entity.PeriodTotal, error) {
	return Trend(a.selected(f), g), nil
}

func (a *MemoryAggregator) TopProducts(_ context.Context, f entity.Filter, n int) ([]entity.ProductQuantity, error) {
	return TopN(a.selected(f), n), nil
}

func (a *MemoryAggregator) StoreProductPerformance(_ context.Context, f entity.Filter) ([]entity.StoreProductTotal, error) {
	return ByStoreProduct(a.selected(f)), nil
}

// ── Funciones puras ───────────────────────────────────────────────────────────

// TotalSales suma los importes. Cero para una entrada vacía.
func TotalSales(records []entity.SaleRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount())
	}
	return total
}

// ByStore agrupa por tienda; orden por importe descendente, empates por primera aparición.
func ByStore(records []entity.SaleRecord) []entity.GroupTotal {
	return groupTotals(records, func(r entity.SaleRecord) string { return r.Store })
}

// ByProduct agrupa por producto con la misma regla de orden que ByStore.
func ByProduct(records []entity.SaleRecord) []entity.GroupTotal {
	return groupTotals(records, func(r entity.SaleRecord) string { return r.Product })
}

func groupTotals(records []entity.SaleRecord, key func(entity.SaleRecord) string) []entity.GroupTotal {
	index := make(map[string]int)
	out := make([]entity.GroupTotal, 0)
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, entity.GroupTotal{Key: k, TotalAmount: decimal.Zero})
		}
		out[i].TotalAmount = out[i].TotalAmount.Add(r.Amount())
		out[i].TotalQuantity += r.Quantity
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalAmount.GreaterThan(out[j].TotalAmount)
	})
	return out
}

// Trend agrupa por la etiqueta del período y ordena las etiquetas de forma ascendente.
// Cada registro cae exactamente en un bucket.
func Trend(records []entity.SaleRecord, g entity.Granularity) []entity.PeriodTotal {
	index := make(map[string]int)
	out := make([]entity.PeriodTotal, 0)
	for _, r := range records {
		label := g.Label(r.Date)
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, entity.PeriodTotal{Period: label, TotalAmount: decimal.Zero})
		}
		out[i].TotalAmount = out[i].TotalAmount.Add(r.Amount())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// TopN suma unidades por producto, ordena de forma descendente (estable) y trunca a n.
// n <= 0 devuelve un slice vacío.
func TopN(records []entity.SaleRecord, n int) []entity.ProductQuantity {
	if n <= 0 {
		return []entity.ProductQuantity{}
	}
	index := make(map[string]int)
	out := make([]entity.ProductQuantity, 0)
	for _, r := range records {
		i, ok := index[r.Product]
		if !ok {
			i = len(out)
			index[r.Product] = i
			out = append(out, entity.ProductQuantity{Product: r.Product})
		}
		out[i].TotalQuantity += r.Quantity
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalQuantity > out[j].TotalQuantity
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ByStoreProduct agrupa por (tienda, producto): tienda ascendente, luego importe descendente.
func ByStoreProduct(records []entity.SaleRecord) []entity.StoreProductTotal {
	type key struct{ store, product string }
	index := make(map[key]int)
	out := make([]entity.StoreProductTotal, 0)
	for _, r := range records {
		k := key{r.Store, r.Product}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, entity.StoreProductTotal{Store: r.Store, Product: r.Product, TotalAmount: decimal.Zero})
		}
		out[i].TotalAmount = out[i].TotalAmount.Add(r.Amount())
		out[i].TotalQuantity += r.Quantity
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Store != out[j].Store {
			return out[i].Store < out[j].Store
		}
		return out[i].TotalAmount.GreaterThan(out[j].TotalAmount)
	})
	return out
}
