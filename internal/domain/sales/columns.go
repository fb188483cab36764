package sales

import (
	"strings"

	"github.com/jhoicas/ventas-analytics/internal/domain"
)

// Campos canónicos que toda fila debe poder resolver.
const (
	FieldDate      = "date"
	FieldStore     = "store"
	FieldProduct   = "product"
	FieldQuantity  = "quantity"
	FieldUnitPrice = "unit_price"
)

// CanonicalFields en el orden de resolución.
var CanonicalFields = []string{FieldDate, FieldStore, FieldProduct, FieldQuantity, FieldUnitPrice}

// columnAliases cabeceras conocidas por campo; se comparan de forma exacta (tras Trim).
var columnAliases = map[string][]string{
	FieldDate:      {"Date", "date", "Date de vente", "date_vente"},
	FieldStore:     {"Magasin", "magasin", "Store", "store"},
	FieldProduct:   {"Produit", "produit", "Product", "product"},
	FieldQuantity:  {"Quantité vendue", "Quantite vendue", "Quantité", "Quantite", "quantite", "Quantity", "quantity"},
	FieldUnitPrice: {"Prix unitaire", "Prix", "prix_unitaire", "Unit price", "unit_price"},
}

// columnProbes fragmentos en minúsculas para la búsqueda por subcadena; el primero es el nombre canónico.
var columnProbes = map[string][]string{
	FieldDate:      {"date"},
	FieldStore:     {"store", "magasin", "boutique"},
	FieldProduct:   {"product", "produit", "article"},
	FieldQuantity:  {"quantity", "quantit", "qty"},
	FieldUnitPrice: {"unit_price", "prix", "price"},
}

// ColumnHints fuerza la cabecera a usar para un campo canónico (campo → cabecera exacta).
type ColumnHints map[string]string

// ColumnMap índices de columna resueltos una sola vez por lote.
type ColumnMap map[string]int

// Header devuelve la cabecera original de cada campo, útil para el log.
func (m ColumnMap) Header(header []string) map[string]string {
	out := make(map[string]string, len(m))
	for field, idx := range m {
		out[field] = header[idx]
	}
	return out
}

// ResolveColumns resuelve los campos canónicos contra la cabecera:
//  1. pistas explícitas (hints);
//  2. coincidencia exacta con la lista de alias;
//  3. subcadena sin distinguir mayúsculas contra las cabeceras aún libres.
//
// Si algún campo queda sin resolver devuelve *domain.MissingColumnError.
func ResolveColumns(header []string, hints ColumnHints) (ColumnMap, error) {
	clean := make([]string, len(header))
	for i, h := range header {
		clean[i] = cleanHeader(h)
	}

	resolved := make(ColumnMap, len(CanonicalFields))
	claimed := make(map[int]bool, len(header))

	claim := func(field string, idx int) {
		resolved[field] = idx
		claimed[idx] = true
	}

	for _, field := range CanonicalFields {
		want, ok := hints[field]
		if !ok {
			continue
		}
		idx := indexOf(clean, strings.TrimSpace(want))
		if idx < 0 {
			return nil, &domain.MissingColumnError{Field: field}
		}
		claim(field, idx)
	}

	for _, field := range CanonicalFields {
		if _, ok := resolved[field]; ok {
			continue
		}
		for _, alias := range columnAliases[field] {
			if idx := indexOf(clean, alias); idx >= 0 && !claimed[idx] {
				claim(field, idx)
				break
			}
		}
	}

	for _, field := range CanonicalFields {
		if _, ok := resolved[field]; ok {
			continue
		}
	probe:
		for _, p := range columnProbes[field] {
			for i, h := range clean {
				if !claimed[i] && strings.Contains(strings.ToLower(h), p) {
					claim(field, i)
					break probe
				}
			}
		}
		if _, ok := resolved[field]; !ok {
			return nil, &domain.MissingColumnError{Field: field}
		}
	}
	return resolved, nil
}

// cleanHeader quita espacios, BOM y comillas sobrantes de una cabecera.
func cleanHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
