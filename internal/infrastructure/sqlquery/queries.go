package sqlquery

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

const (
	amountExpr   = "v.quantite * v.prix_unitaire"
	sumAmount    = "COALESCE(SUM(" + amountExpr + "), 0)"
	sumQuantity  = "CAST(COALESCE(SUM(v.quantite), 0) AS BIGINT)"
	discoveryAsc = "MIN(v.id) ASC"
)

// Query sentencia lista para ejecutar.
type Query struct {
	SQL  string
	Args []any
}

func build(b interface {
	ToSql() (string, []interface{}, error)
}) (Query, error) {
	s, args, err := b.ToSql()
	return Query{SQL: s, Args: args}, err
}

// salesFrom une los hechos con sus dimensiones y aplica el filtro.
func (d Dialect) salesFrom(b sq.SelectBuilder, f entity.Filter) sq.SelectBuilder {
	b = b.From(TableSales + " v").
		Join(TableStores + " m ON m.id = v.magasin_id").
		Join(TableProducts + " p ON p.id = v.produit_id")
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"v.date": d.DateArg(*f.From)})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"v.date": d.DateArg(*f.To)})
	}
	if len(f.Stores) > 0 {
		b = b.Where(sq.Eq{"m.nom": f.Stores})
	}
	if len(f.Products) > 0 {
		b = b.Where(sq.Eq{"p.nom": f.Products})
	}
	return b
}

// ── Agregaciones ──────────────────────────────────────────────────────────────

// TotalSales columnas: total.
func (d Dialect) TotalSales(f entity.Filter) (Query, error) {
	return build(d.salesFrom(d.builder().Select(sumAmount+" AS total"), f))
}

// SalesByStore columnas: magasin, total, quantite.
func (d Dialect) SalesByStore(f entity.Filter) (Query, error) {
	return build(d.salesFrom(d.builder().Select("m.nom", sumAmount+" AS total", sumQuantity+" AS quantite"), f).
		GroupBy("m.id", "m.nom").
		OrderBy("total DESC", discoveryAsc))
}

// SalesByProduct columnas: produit, total, quantite.
func (d Dialect) SalesByProduct(f entity.Filter) (Query, error) {
	return build(d.salesFrom(d.builder().Select("p.nom", sumAmount+" AS total", sumQuantity+" AS quantite"), f).
		GroupBy("p.id", "p.nom").
		OrderBy("total DESC", discoveryAsc))
}

// SalesTrend columnas: periode, total.
func (d Dialect) SalesTrend(f entity.Filter, g entity.Granularity) (Query, error) {
	period := d.Period(g)
	return build(d.salesFrom(d.builder().Select(period+" AS periode", sumAmount+" AS total"), f).
		GroupBy(period).
		OrderBy("periode ASC"))
}

// TopProducts columnas: produit, quantite. n debe ser > 0.
func (d Dialect) TopProducts(f entity.Filter, n int) (Query, error) {
	return build(d.salesFrom(d.builder().Select("p.nom", sumQuantity+" AS quantite"), f).
		GroupBy("p.id", "p.nom").
		OrderBy("quantite DESC", discoveryAsc).
		Limit(uint64(n)))
}

// StoreProductPerformance columnas: magasin, produit, quantite, total.
func (d Dialect) StoreProductPerformance(f entity.Filter) (Query, error) {
	return build(d.salesFrom(d.builder().Select("m.nom", "p.nom", sumQuantity+" AS quantite", sumAmount+" AS total"), f).
		GroupBy("m.id", "m.nom", "p.id", "p.nom").
		OrderBy("m.nom"+d.Collate+" ASC", "total DESC", discoveryAsc))
}

// ── Hechos ────────────────────────────────────────────────────────────────────

// ListSales columnas: date, magasin, produit, quantite, prix_unitaire; en orden de inserción.
func (d Dialect) ListSales(f entity.Filter) (Query, error) {
	return build(d.salesFrom(d.builder().Select("v.date", "m.nom", "p.nom", "v.quantite", "v.prix_unitaire"), f).
		OrderBy("v.id ASC"))
}

// SaleExists devuelve una fila si ya hay una venta con la misma clave.
func (d Dialect) SaleExists(date time.Time, storeID, productID int64) (Query, error) {
	return build(d.builder().Select("1").From(TableSales).
		Where(sq.Eq{"date": d.DateArg(date), "magasin_id": storeID, "produit_id": productID}).
		Limit(1))
}

// InsertSale price ya viene convertido al tipo de la columna.
func (d Dialect) InsertSale(date time.Time, storeID, productID, quantity int64, price any) (Query, error) {
	return build(d.builder().Insert(TableSales).
		Columns("date", "magasin_id", "produit_id", "quantite", "prix_unitaire").
		Values(d.DateArg(date), storeID, productID, quantity, price))
}

// ── Dimensiones ───────────────────────────────────────────────────────────────

// FindDimension columnas: id, nom.
func (d Dialect) FindDimension(table, name string) (Query, error) {
	return build(d.builder().Select("id", "nom").From(table).Where(sq.Eq{"nom": name}))
}

// InsertDimension devuelve el id generado.
func (d Dialect) InsertDimension(table, name string) (Query, error) {
	return build(d.builder().Insert(table).Columns("nom").Values(name).Suffix("RETURNING id"))
}

// ListDimension columnas: id, nom; por nombre.
func (d Dialect) ListDimension(table string) (Query, error) {
	return build(d.builder().Select("id", "nom").From(table).OrderBy("nom" + d.Collate + " ASC"))
}
