package sales

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// dateLayouts en orden de prueba; gana el primero que parsea.
// DD/MM/YYYY va antes que MM/DD/YYYY: con día <= 12 ambas son válidas y se prefiere la francesa.
var dateLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2/1/2006 15:04:05",
	"2/1/2006",
	"2006-01-02",
	"1/2/2006",
	"2-1-2006",
	"2.1.2006",
}

// dateOnlyLayouts se usan sobre la parte anterior al primer espacio.
var dateOnlyLayouts = []string{
	"2006-01-02",
	"2/1/2006",
	"1/2/2006",
	"2-1-2006",
	"2.1.2006",
}

var (
	errEmptyValue    = errors.New("valor vacío")
	errUnknownFormat = errors.New("formato de fecha no reconocido")
	errNegative      = errors.New("valor negativo")
	errNotNumber     = errors.New("número inválido")
	errOutOfRange    = errors.New("valor fuera de rango")
)

// ParseDate convierte la fecha de la fila en una fecha de calendario (UTC).
// Fechas inexistentes como 31/02/2023 no encajan en ningún layout y fallan.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyValue
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entity.DateOnly(t), nil
		}
	}
	if i := strings.IndexByte(s, ' '); i > 0 {
		part := s[:i]
		for _, layout := range dateOnlyLayouts {
			if t, err := time.Parse(layout, part); err == nil {
				return entity.DateOnly(t), nil
			}
		}
	}
	return time.Time{}, errUnknownFormat
}

var numberCleaner = strings.NewReplacer(
	" ", "",
	"\u00a0", "", // espacio duro
	"\u202f", "", // espacio fino (separador de miles francés)
	"\u20ac", "",
	"$", "",
	",", ".",
)

// ParseDecimal normaliza separadores ("1 234,56" → 1234.56) y parsea de forma exacta.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = numberCleaner.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, errEmptyValue
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errNotNumber
	}
	if d.IsNegative() {
		return decimal.Zero, errNegative
	}
	return d, nil
}

// ParseQuantity acepta enteros escritos como decimales ("12.0" → 12); la parte fraccionaria se trunca.
func ParseQuantity(s string) (int64, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	// IntPart desborda en silencio fuera de int64
	if !d.Truncate(0).BigInt().IsInt64() {
		return 0, errOutOfRange
	}
	return d.IntPart(), nil
}

// ParseUnitPrice parsea un precio y lo redondea a entity.PriceDecimals decimales.
// Precios >= entity.MaxUnitPrice no caben en el almacén y se rechazan.
func ParseUnitPrice(s string) (decimal.Decimal, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return decimal.Zero, err
	}
	d = d.Round(entity.PriceDecimals)
	if d.GreaterThanOrEqual(entity.MaxUnitPrice) {
		return decimal.Zero, errOutOfRange
	}
	return d, nil
}
