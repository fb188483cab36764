package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/export"
)

func sampleReport() *dto.ReportDTO {
	return &dto.ReportDTO{
		GeneratedAt: "2024-03-01 10:00:00",
		TotalSales:  110.99,
		SalesByStore: []dto.StoreSalesDTO{
			{Store: "Évry", TotalSales: 60.5, TotalQuantity: 4},
			{Store: "Angers", TotalSales: 50.49, TotalQuantity: 3},
		},
		SalesByProduct: []dto.ProductSalesDTO{{Product: "Crêpe", TotalQuantity: 7, TotalSales: 110.99}},
		MonthlyTrend:   []dto.PeriodSalesDTO{},
		TopProducts:    []dto.TopProductDTO{{Product: "Crêpe", TotalQuantity: 7}},
	}
}

func TestWriteReportJSON_SangriaYNoASCII(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", export.ReportJSONName)
	require.NoError(t, export.NewWriter().WriteReportJSON(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(data)
	assert.True(t, strings.HasPrefix(s, "{\n    \"date_generation\""))
	assert.Contains(t, s, "\"magasin\": \"Évry\"")
	assert.Contains(t, s, "\"tendance_mensuelle\": []")
	assert.NotContains(t, s, "\\u00c9")
}

func TestWriteReportCSV_OmiteSeccionesVacias(t *testing.T) {
	dir := t.TempDir()
	paths, err := export.NewWriter().WriteReportCSV(dir, sampleReport())
	require.NoError(t, err)

	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "rapport_ventes_par_magasin.csv"), paths[0])
	_, err = os.Stat(filepath.Join(dir, "rapport_tendance_mensuelle.csv"))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "magasin,total_ventes,quantite_totale\nÉvry,60.5,4\nAngers,50.49,3\n", string(data))
}

func TestWriteDashboardJS(t *testing.T) {
	path := filepath.Join(t.TempDir(), export.DashboardJSName)
	d := &dto.DashboardDTO{
		TotalSales:          12.5,
		SalesByStore:        []dto.StoreSalesDTO{},
		SalesByProduct:      []dto.ProductSalesDTO{},
		MonthlySales:        []dto.PeriodSalesDTO{},
		BestSellingProducts: []dto.TopProductDTO{},
	}
	require.NoError(t, export.NewWriter().WriteDashboardJS(path, d))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(data)
	assert.True(t, strings.HasPrefix(s, "const dashboardData = {\n  \"total_sales\": 12.5,"))
	assert.True(t, strings.HasSuffix(s, "};\n"))
}

func TestWriteAtomic_ReemplazaSinTemporales(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, export.ReportJSONName)
	w := export.NewWriter()
	require.NoError(t, w.WriteReportJSON(path, sampleReport()))
	require.NoError(t, w.WriteReportJSON(path, &dto.ReportDTO{GeneratedAt: "x"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"date_generation\": \"x\"")
}

func TestWritePDF_DirectorioInvalido(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plano")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	err := export.NewWriter().WritePDF(filepath.Join(file, "r.pdf"), []byte("%PDF"))
	assert.Error(t, err)
}
