package dto

import "github.com/jhoicas/ventas-analytics/internal/domain/entity"

// DashboardDTO respuesta de GET /api/dashboard y contenido de dashboard_data.js.
// Las claves de primer nivel van en inglés; las filas comparten forma con el reporte.
type DashboardDTO struct {
	TotalSales          float64           `json:"total_sales"`
	SalesByStore        []StoreSalesDTO   `json:"sales_by_store"`
	SalesByProduct      []ProductSalesDTO `json:"sales_by_product"`
	MonthlySales        []PeriodSalesDTO  `json:"monthly_sales"`
	BestSellingProducts []TopProductDTO   `json:"best_selling_products"`
}

// FromDashboard convierte los datos exactos del tablero.
func FromDashboard(d *entity.Dashboard) *DashboardDTO {
	return &DashboardDTO{
		TotalSales:          d.TotalSales.InexactFloat64(),
		SalesByStore:        FromStoreTotals(d.SalesByStore),
		SalesByProduct:      FromProductTotals(d.SalesByProduct),
		MonthlySales:        FromPeriodTotals(d.MonthlySales),
		BestSellingProducts: FromTopProducts(d.BestSellingProducts),
	}
}
