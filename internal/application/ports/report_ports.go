package ports

import (
	"context"
	"io"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/sales"
)

// SalesTableReader puerto de entrada de archivos de ventas (CSV con codificación desconocida).
type SalesTableReader interface {
	Read(src io.Reader) (*sales.RawTable, *sales.SourceMeta, error)
	ReadFile(path string) (*sales.RawTable, *sales.SourceMeta, error)
}

// ReportPDFGenerator genera la representación PDF del reporte.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *entity.Report) ([]byte, error)
}

// DashboardWriter publica el payload del tablero en disco.
// Una escritura fallida deja intacto el archivo anterior.
type DashboardWriter interface {
	WriteDashboardJS(path string, d *dto.DashboardDTO) error
}
