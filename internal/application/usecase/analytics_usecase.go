package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/ports"
	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

const maxTopN = 200

// AnalyticsUseCase atiende las consultas HTTP de análisis de ventas:
//   - Reporte completo (JSON o PDF).
//   - Tendencia con granularidad día/mes/año.
//   - Ranking de productos más vendidos.
//   - Rendimiento producto por tienda.
//   - Listado de tiendas y productos registrados.
type AnalyticsUseCase struct {
	agg       repository.Aggregator
	dims      repository.DimensionRepository
	assembler *analytics.ReportAssembler
	pdf       ports.ReportPDFGenerator
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(
	agg repository.Aggregator,
	dims repository.DimensionRepository,
	assembler *analytics.ReportAssembler,
	pdf ports.ReportPDFGenerator,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{agg: agg, dims: dims, assembler: assembler, pdf: pdf}
}

// GetReport arma el reporte filtrado.
func (uc *AnalyticsUseCase) GetReport(ctx context.Context, req dto.ReportRequest) (*dto.ReportDTO, error) {
	f, err := ParseFilter(req)
	if err != nil {
		return nil, err
	}
	r, err := uc.assembler.Build(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.FromReport(r), nil
}

// GetReportPDF arma el reporte y lo renderiza como PDF.
func (uc *AnalyticsUseCase) GetReportPDF(ctx context.Context, req dto.ReportRequest) (pdfBytes []byte, filename string, err error) {
	f, err := ParseFilter(req)
	if err != nil {
		return nil, "", err
	}
	r, err := uc.assembler.Build(ctx, f)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdf.GenerateReportPDF(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("analytics: pdf: %w", err)
	}
	filename = fmt.Sprintf("rapport_ventes_%s.pdf", r.GeneratedAt.Format("20060102_150405"))
	return pdfBytes, filename, nil
}

// GetTrend ventas por período.
func (uc *AnalyticsUseCase) GetTrend(ctx context.Context, req dto.ReportRequest) ([]dto.PeriodSalesDTO, error) {
	f, err := ParseFilter(req)
	if err != nil {
		return nil, err
	}
	g, err := entity.ParseGranularity(req.Granularity)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	rows, err := uc.agg.SalesTrend(ctx, f, g)
	if err != nil {
		return nil, fmt.Errorf("analytics: tendencia: %w", err)
	}
	return dto.FromPeriodTotals(rows), nil
}

// GetTopProducts ranking por unidades vendidas (limit por defecto 5, máx 200).
func (uc *AnalyticsUseCase) GetTopProducts(ctx context.Context, req dto.ReportRequest) ([]dto.TopProductDTO, error) {
	f, err := ParseFilter(req)
	if err != nil {
		return nil, err
	}
	n := req.Limit
	if n <= 0 {
		n = analytics.DefaultTopN
	}
	if n > maxTopN {
		n = maxTopN
	}
	rows, err := uc.agg.TopProducts(ctx, f, n)
	if err != nil {
		return nil, fmt.Errorf("analytics: top productos: %w", err)
	}
	return dto.FromTopProducts(rows), nil
}

// GetStoreProducts rendimiento de cada producto dentro de cada tienda.
func (uc *AnalyticsUseCase) GetStoreProducts(ctx context.Context, req dto.ReportRequest) ([]dto.StoreProductDTO, error) {
	f, err := ParseFilter(req)
	if err != nil {
		return nil, err
	}
	rows, err := uc.agg.StoreProductPerformance(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("analytics: tienda-producto: %w", err)
	}
	return dto.FromStoreProducts(rows), nil
}

// ListStores tiendas registradas, ordenadas por nombre.
func (uc *AnalyticsUseCase) ListStores(ctx context.Context) ([]dto.DimensionDTO, error) {
	stores, err := uc.dims.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: tiendas: %w", err)
	}
	out := make([]dto.DimensionDTO, 0, len(stores))
	for _, s := range stores {
		out = append(out, dto.DimensionDTO{ID: s.ID, Name: s.Name})
	}
	return out, nil
}

// ListProducts productos registrados, ordenados por nombre.
func (uc *AnalyticsUseCase) ListProducts(ctx context.Context) ([]dto.DimensionDTO, error) {
	products, err := uc.dims.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: productos: %w", err)
	}
	out := make([]dto.DimensionDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.DimensionDTO{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

// ParseFilter convierte los parámetros de consulta en un entity.Filter.
func ParseFilter(req dto.ReportRequest) (entity.Filter, error) {
	from, to, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return entity.Filter{}, err
	}
	return entity.Filter{
		From:     from,
		To:       to,
		Stores:   dto.SplitList(req.Store),
		Products: dto.SplitList(req.Product),
	}, nil
}

// parsePeriod convierte los strings de fecha; vacío significa sin límite por ese lado.
func parsePeriod(startStr, endStr string) (start, end *time.Time, err error) {
	if startStr != "" {
		t, err := time.ParseInLocation("2006-01-02", startStr, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: start_date inválido: %s", domain.ErrInvalidInput, err)
		}
		start = &t
	}
	if endStr != "" {
		t, err := time.ParseInLocation("2006-01-02", endStr, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: end_date inválido: %s", domain.ErrInvalidInput, err)
		}
		end = &t
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}
