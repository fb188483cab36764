package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

// ReportAssembler arma el reporte de ventas a partir de cualquier Aggregator:
// registros en memoria (CSV) o la base de datos. No conoce la fuente.
type ReportAssembler struct {
	agg   repository.Aggregator
	topN  int
	clock func() time.Time
}

// AssemblerOption configura el ReportAssembler.
type AssemblerOption func(*ReportAssembler)

// WithTopN fija el tamaño del ranking de productos (por defecto DefaultTopN).
func WithTopN(n int) AssemblerOption {
	return func(a *ReportAssembler) {
		if n > 0 {
			a.topN = n
		}
	}
}

// WithClock reemplaza time.Now para sellar GeneratedAt.
func WithClock(clock func() time.Time) AssemblerOption {
	return func(a *ReportAssembler) { a.clock = clock }
}

// NewReportAssembler construye el ensamblador.
func NewReportAssembler(agg repository.Aggregator, opts ...AssemblerOption) *ReportAssembler {
	a := &ReportAssembler{agg: agg, topN: DefaultTopN, clock: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build consulta total, por tienda, por producto, tendencia mensual y top productos,
// en ese orden. Si cualquiera falla no hay reporte parcial.
func (a *ReportAssembler) Build(ctx context.Context, f entity.Filter) (*entity.Report, error) {
	total, err := a.agg.TotalSales(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("report: total: %w", err)
	}
	byStore, err := a.agg.SalesByStore(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("report: por tienda: %w", err)
	}
	byProduct, err := a.agg.SalesByProduct(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("report: por producto: %w", err)
	}
	trend, err := a.agg.SalesTrend(ctx, f, entity.GranularityMonth)
	if err != nil {
		return nil, fmt.Errorf("report: tendencia: %w", err)
	}
	top, err := a.agg.TopProducts(ctx, f, a.topN)
	if err != nil {
		return nil, fmt.Errorf("report: top productos: %w", err)
	}

	return &entity.Report{
		GeneratedAt:    a.clock(),
		Filter:         f,
		TotalSales:     total,
		SalesByStore:   byStore,
		SalesByProduct: byProduct,
		MonthlyTrend:   trend,
		TopProducts:    top,
	}, nil
}

// Dashboard reúne las mismas cinco vistas, sin filtro, para el tablero.
func (a *ReportAssembler) Dashboard(ctx context.Context) (*entity.Dashboard, error) {
	r, err := a.Build(ctx, entity.Filter{})
	if err != nil {
		return nil, err
	}
	return &entity.Dashboard{
		TotalSales:          r.TotalSales,
		SalesByStore:        r.SalesByStore,
		SalesByProduct:      r.SalesByProduct,
		MonthlySales:        r.MonthlyTrend,
		BestSellingProducts: r.TopProducts,
	}, nil
}
