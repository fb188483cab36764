package dto

import (
	"strconv"
	"strings"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// DateTimeLayout formato de date_generation.
const DateTimeLayout = "2006-01-02 15:04:05"

// ── Query parameters ──────────────────────────────────────────────────────────

// ReportRequest parámetros comunes de GET /api/report y /api/analytics/*.
type ReportRequest struct {
	StartDate   string `query:"start_date"`  // YYYY-MM-DD, inclusivo; vacío = sin límite
	EndDate     string `query:"end_date"`    // YYYY-MM-DD, inclusivo; vacío = sin límite
	Store       string `query:"store"`       // lista separada por comas
	Product     string `query:"product"`     // lista separada por comas
	Granularity string `query:"granularity"` // day|month|year (solo tendencia)
	Limit       int    `query:"limit"`       // solo top-products
}

// ── Filas ─────────────────────────────────────────────────────────────────────

// StoreSalesDTO ventas de una tienda.
type StoreSalesDTO struct {
	Store         string  `json:"magasin"`
	TotalSales    float64 `json:"total_ventes"`
	TotalQuantity int64   `json:"quantite_totale"`
}

// ProductSalesDTO ventas de un producto.
type ProductSalesDTO struct {
	Product       string  `json:"produit"`
	TotalQuantity int64   `json:"quantite_totale"`
	TotalSales    float64 `json:"total_ventes"`
}

// PeriodSalesDTO ventas de un período de la tendencia.
type PeriodSalesDTO struct {
	Period     string  `json:"periode"`
	TotalSales float64 `json:"total_ventes"`
}

// TopProductDTO entrada del ranking de más vendidos.
type TopProductDTO struct {
	Product       string `json:"produit"`
	TotalQuantity int64  `json:"quantite_totale"`
}

// StoreProductDTO rendimiento de un producto en una tienda.
type StoreProductDTO struct {
	Store         string  `json:"magasin"`
	Product       string  `json:"produit"`
	TotalQuantity int64   `json:"quantite_totale"`
	TotalSales    float64 `json:"total_ventes"`
}

// ── Reporte ───────────────────────────────────────────────────────────────────

// ReportDTO respuesta de GET /api/report y contenido de rapport_ventes.json.
type ReportDTO struct {
	GeneratedAt    string            `json:"date_generation"`
	TotalSales     float64           `json:"total_ventes"`
	SalesByStore   []StoreSalesDTO   `json:"ventes_par_magasin"`
	SalesByProduct []ProductSalesDTO `json:"ventes_par_produit"`
	MonthlyTrend   []PeriodSalesDTO  `json:"tendance_mensuelle"`
	TopProducts    []TopProductDTO   `json:"produits_populaires"`
}

// FromReport convierte el reporte exacto a su forma serializable.
// Es el único punto donde los importes pasan a float64.
func FromReport(r *entity.Report) *ReportDTO {
	return &ReportDTO{
		GeneratedAt:    r.GeneratedAt.Format(DateTimeLayout),
		TotalSales:     r.TotalSales.InexactFloat64(),
		SalesByStore:   FromStoreTotals(r.SalesByStore),
		SalesByProduct: FromProductTotals(r.SalesByProduct),
		MonthlyTrend:   FromPeriodTotals(r.MonthlyTrend),
		TopProducts:    FromTopProducts(r.TopProducts),
	}
}

func FromStoreTotals(in []entity.GroupTotal) []StoreSalesDTO {
	out := make([]StoreSalesDTO, 0, len(in))
	for _, g := range in {
		out = append(out, StoreSalesDTO{Store: g.Key, TotalSales: g.TotalAmount.InexactFloat64(), TotalQuantity: g.TotalQuantity})
	}
	return out
}

func FromProductTotals(in []entity.GroupTotal) []ProductSalesDTO {
	out := make([]ProductSalesDTO, 0, len(in))
	for _, g := range in {
		out = append(out, ProductSalesDTO{Product: g.Key, TotalQuantity: g.TotalQuantity, TotalSales: g.TotalAmount.InexactFloat64()})
	}
	return out
}

func FromPeriodTotals(in []entity.PeriodTotal) []PeriodSalesDTO {
	out := make([]PeriodSalesDTO, 0, len(in))
	for _, p := range in {
		out = append(out, PeriodSalesDTO{Period: p.Period, TotalSales: p.TotalAmount.InexactFloat64()})
	}
	return out
}

func FromTopProducts(in []entity.ProductQuantity) []TopProductDTO {
	out := make([]TopProductDTO, 0, len(in))
	for _, p := range in {
		out = append(out, TopProductDTO{Product: p.Product, TotalQuantity: p.TotalQuantity})
	}
	return out
}

func FromStoreProducts(in []entity.StoreProductTotal) []StoreProductDTO {
	out := make([]StoreProductDTO, 0, len(in))
	for _, sp := range in {
		out = append(out, StoreProductDTO{
			Store:         sp.Store,
			Product:       sp.Product,
			TotalQuantity: sp.TotalQuantity,
			TotalSales:    sp.TotalAmount.InexactFloat64(),
		})
	}
	return out
}

// ── CSV ───────────────────────────────────────────────────────────────────────

// CSVSection sección tabular del reporte exportable a CSV.
// Header coincide con las claves JSON de la fila, en el mismo orden.
type CSVSection struct {
	Name   string
	Header []string
	Rows   [][]string
}

// CSVSections devuelve las secciones de lista del reporte en orden de aparición.
func (r *ReportDTO) CSVSections() []CSVSection {
	sections := []CSVSection{
		{Name: "ventes_par_magasin", Header: []string{"magasin", "total_ventes", "quantite_totale"}},
		{Name: "ventes_par_produit", Header: []string{"produit", "quantite_totale", "total_ventes"}},
		{Name: "tendance_mensuelle", Header: []string{"periode", "total_ventes"}},
		{Name: "produits_populaires", Header: []string{"produit", "quantite_totale"}},
	}
	for _, s := range r.SalesByStore {
		sections[0].Rows = append(sections[0].Rows, []string{s.Store, formatFloat(s.TotalSales), formatInt(s.TotalQuantity)})
	}
	for _, p := range r.SalesByProduct {
		sections[1].Rows = append(sections[1].Rows, []string{p.Product, formatInt(p.TotalQuantity), formatFloat(p.TotalSales)})
	}
	for _, p := range r.MonthlyTrend {
		sections[2].Rows = append(sections[2].Rows, []string{p.Period, formatFloat(p.TotalSales)})
	}
	for _, p := range r.TopProducts {
		sections[3].Rows = append(sections[3].Rows, []string{p.Product, formatInt(p.TotalQuantity)})
	}
	return sections
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
func formatInt(v int64) string     { return strconv.FormatInt(v, 10) }

// SplitList separa un parámetro "a,b,c" descartando elementos vacíos.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
