// Package sqlquery construye con squirrel las consultas del almacén de ventas.
// Postgres y SQLite comparten las mismas sentencias; solo cambian los placeholders,
// la etiqueta del período, la intercalación del orden por nombre y cómo se pasa una fecha.
package sqlquery

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// Nombres del esquema normalizado.
const (
	TableStores   = "magasins"
	TableProducts = "produits"
	TableSales    = "ventes"
)

// Dialect diferencias SQL entre motores.
type Dialect struct {
	Name        string
	Placeholder sq.PlaceholderFormat
	// Period devuelve la expresión que etiqueta v.date según la granularidad.
	Period func(g entity.Granularity) string
	// Collate se añade a los ORDER BY por nombre para que el orden sea por bytes,
	// igual que la comparación de strings en Go.
	Collate string
	// DateArg convierte una fecha de calendario al tipo que espera el driver.
	DateArg func(t time.Time) any
}

// Postgres dialecto para pgx.
var Postgres = Dialect{
	Name:        "postgres",
	Placeholder: sq.Dollar,
	Period: func(g entity.Granularity) string {
		switch g {
		case entity.GranularityDay:
			return "to_char(v.date, 'YYYY-MM-DD')"
		case entity.GranularityYear:
			return "to_char(v.date, 'YYYY')"
		default:
			return "to_char(v.date, 'YYYY-MM')"
		}
	},
	Collate: ` COLLATE "C"`,
	DateArg: func(t time.Time) any { return entity.DateOnly(t) },
}

// SQLite dialecto para modernc.org/sqlite. Las fechas se guardan como TEXT YYYY-MM-DD.
var SQLite = Dialect{
	Name:        "sqlite",
	Placeholder: sq.Question,
	Period: func(g entity.Granularity) string {
		switch g {
		case entity.GranularityDay:
			return "strftime('%Y-%m-%d', v.date)"
		case entity.GranularityYear:
			return "strftime('%Y', v.date)"
		default:
			return "strftime('%Y-%m', v.date)"
		}
	},
	DateArg: func(t time.Time) any { return t.Format(DateLayout) },
}

// DateLayout formato de las fechas almacenadas como texto.
const DateLayout = "2006-01-02"

func (d Dialect) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder)
}
