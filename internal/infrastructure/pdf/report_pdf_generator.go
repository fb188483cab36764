// Package pdf genera la versión imprimible del reporte de ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título          │  Fecha de generación             │
//	│  FILTRO: período / tiendas / productos                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE VENTAS                                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tienda | Unidades | Importe                         │
//	│  TABLA: Producto | Unidades | Importe                       │
//	│  TABLA: Período | Importe                                   │
//	│  TABLA: Top productos                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-analytics/internal/application/ports"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ReportPDFGenerator = (*ReportGenerator)(nil)

// ReportGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type ReportGenerator struct {
	author string
}

// NewReportGenerator construye el generador. author se guarda en los metadatos del PDF.
func NewReportGenerator(author string) *ReportGenerator {
	return &ReportGenerator{author: author}
}

// column describe una columna de tabla (etiqueta, ancho en la grilla de 12, alineación).
type column struct {
	label string
	size  int
	align align.Type
}

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) GenerateReportPDF(_ context.Context, report *entity.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rapport des ventes", true)
	if g.author != "" {
		b = b.WithAuthor(g.author, true)
	}
	m := maroto.New(b.Build())

	m.AddRows(headerRow(report))
	m.AddRows(filterRow(report.Filter))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalRow(report.TotalSales))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	storeRows := make([][]string, 0, len(report.SalesByStore))
	for _, s := range report.SalesByStore {
		storeRows = append(storeRows, []string{s.Key, formatInt(s.TotalQuantity), formatEuro(s.TotalAmount)})
	}
	m.AddRows(section("VENTES PAR MAGASIN", []column{
		{"Magasin", 6, align.Left}, {"Quantité", 2, align.Right}, {"Total", 4, align.Right},
	}, storeRows)...)

	productRows := make([][]string, 0, len(report.SalesByProduct))
	for _, p := range report.SalesByProduct {
		productRows = append(productRows, []string{p.Key, formatInt(p.TotalQuantity), formatEuro(p.TotalAmount)})
	}
	m.AddRows(section("VENTES PAR PRODUIT", []column{
		{"Produit", 6, align.Left}, {"Quantité", 2, align.Right}, {"Total", 4, align.Right},
	}, productRows)...)

	trendRows := make([][]string, 0, len(report.MonthlyTrend))
	for _, p := range report.MonthlyTrend {
		trendRows = append(trendRows, []string{p.Period, formatEuro(p.TotalAmount)})
	}
	m.AddRows(section("TENDANCE MENSUELLE", []column{
		{"Période", 6, align.Left}, {"Total", 6, align.Right},
	}, trendRows)...)

	topRows := make([][]string, 0, len(report.TopProducts))
	for i, p := range report.TopProducts {
		topRows = append(topRows, []string{strconv.Itoa(i + 1), p.Product, formatInt(p.TotalQuantity)})
	}
	m.AddRows(section("PRODUITS POPULAIRES", []column{
		{"#", 1, align.Center}, {"Produit", 7, align.Left}, {"Quantité", 4, align.Right},
	}, topRows)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(report *entity.Report) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("RAPPORT DES VENTES", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New("Généré le", props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

// filterRow: resumen del filtro aplicado.
func filterRow(f entity.Filter) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(describeFilter(f), props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func describeFilter(f entity.Filter) string {
	if f.IsZero() {
		return "Filtre : toutes les ventes"
	}
	parts := make([]string, 0, 3)
	from, to := "…", "…"
	if f.From != nil {
		from = f.From.Format("02/01/2006")
	}
	if f.To != nil {
		to = f.To.Format("02/01/2006")
	}
	if f.From != nil || f.To != nil {
		parts = append(parts, "période "+from+" – "+to)
	}
	if len(f.Stores) > 0 {
		parts = append(parts, "magasins "+strings.Join(f.Stores, ", "))
	}
	if len(f.Products) > 0 {
		parts = append(parts, "produits "+strings.Join(f.Products, ", "))
	}
	return "Filtre : " + strings.Join(parts, " | ")
}

// totalRow: total general destacado.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6).Add(text.New("TOTAL DES VENTES", props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 3,
		})),
		col.New(6).Add(text.New(formatEuro(total), props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

// section: título, cabecera con fondo y una fila por elemento (filas alternas sombreadas).
func section(title string, cols []column, rows [][]string) []core.Row {
	out := make([]core.Row, 0, len(rows)+3)
	out = append(out, row.New(4))
	out = append(out, row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	)))

	header := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		header = append(header, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	out = append(out, row.New(7).Add(header...).WithStyle(&props.Cell{BackgroundColor: colorPrimary}))

	if len(rows) == 0 {
		out = append(out, row.New(6).Add(col.New(12).Add(
			text.New("Aucune donnée", props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
		)))
		return out
	}
	for i, values := range rows {
		cells := make([]core.Col, 0, len(cols))
		for j, c := range cols {
			cells = append(cells, col.New(c.size).Add(text.New(values[j], props.Text{
				Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
			})))
		}
		r := row.New(6).Add(cells...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

func formatInt(v int64) string { return groupThousands(strconv.FormatInt(v, 10)) }

// formatEuro formatea a la francesa: "1 234,56 €".
func formatEuro(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "," + frac + " €"
	if neg {
		return "-" + out
	}
	return out
}

// groupThousands inserta espacios de miles en un string numérico sin signo.
// Ej: "25000" → "25 000", "1000000" → "1 000 000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
