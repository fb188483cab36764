package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GroupTotal total agregado por tienda o por producto.
type GroupTotal struct {
	Key           string
	TotalAmount   decimal.Decimal
	TotalQuantity int64
}

// PeriodTotal total de ventas de un período (día, mes o año).
type PeriodTotal struct {
	Period      string
	TotalAmount decimal.Decimal
}

// ProductQuantity unidades vendidas de un producto (ranking de más vendidos).
type ProductQuantity struct {
	Product       string
	TotalQuantity int64
}

// StoreProductTotal rendimiento de un producto dentro de una tienda.
type StoreProductTotal struct {
	Store         string
	Product       string
	TotalQuantity int64
	TotalAmount   decimal.Decimal
}

// Granularity tamaño del bucket de la tendencia.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Layout devuelve el layout Go de la etiqueta del período. Todas las etiquetas van
// rellenadas con ceros, así el orden lexicográfico coincide con el cronológico.
func (g Granularity) Layout() string {
	switch g {
	case GranularityDay:
		return "2006-01-02"
	case GranularityYear:
		return "2006"
	default:
		return "2006-01"
	}
}

// Label formatea la fecha según la granularidad.
func (g Granularity) Label(t time.Time) string {
	return t.Format(g.Layout())
}

// ParseGranularity acepta day|daily|D, month|monthly|M, year|yearly|Y.
// Cadena vacía equivale a mensual.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "month", "monthly", "m":
		return GranularityMonth, nil
	case "day", "daily", "d":
		return GranularityDay, nil
	case "year", "yearly", "y":
		return GranularityYear, nil
	}
	return "", fmt.Errorf("granularidad desconocida: %q", s)
}

// Filter acota el conjunto de ventas. El valor cero selecciona todo.
// From y To son inclusivos y se comparan como fechas de calendario.
type Filter struct {
	From     *time.Time
	To       *time.Time
	Stores   []string
	Products []string
}

// IsZero indica si el filtro no restringe nada.
func (f Filter) IsZero() bool {
	return f.From == nil && f.To == nil && len(f.Stores) == 0 && len(f.Products) == 0
}

// Match evalúa el filtro sobre un registro en memoria.
func (f Filter) Match(r SaleRecord) bool {
	d := DateOnly(r.Date)
	if f.From != nil && d.Before(DateOnly(*f.From)) {
		return false
	}
	if f.To != nil && d.After(DateOnly(*f.To)) {
		return false
	}
	if len(f.Stores) > 0 && !contains(f.Stores, r.Store) {
		return false
	}
	if len(f.Products) > 0 && !contains(f.Products, r.Product) {
		return false
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
