package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceDecimals decimales con los que se conserva un precio unitario. Es la precisión de
// prix_unitaire en ambos almacenes, así memoria y almacén agregan los mismos valores.
const PriceDecimals = 4

// MaxUnitPrice cota superior (exclusiva) de un precio unitario: NUMERIC(14,4) en Postgres.
var MaxUnitPrice = decimal.New(1, 10)

// SaleRecord es la venta canónica tras la normalización (un "hecho").
// El importe no se almacena: Amount() lo recalcula siempre desde Quantity y UnitPrice.
type SaleRecord struct {
	Date      time.Time // fecha de calendario, medianoche UTC
	Store     string
	Product   string
	Quantity  int64           // >= 0
	UnitPrice decimal.Decimal // 0 <= p < MaxUnitPrice, a lo sumo PriceDecimals decimales
}

// Amount devuelve Quantity × UnitPrice con aritmética exacta.
func (r SaleRecord) Amount() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(r.Quantity))
}

// DateOnly trunca t a una fecha de calendario en UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
