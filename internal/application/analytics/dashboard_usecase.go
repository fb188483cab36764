// Package analytics contiene los casos de uso del análisis de ventas: agregación en memoria,
// ensamblado del reporte y el payload del tablero.
package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/ports"
)

// DashboardUseCase genera los datos del tablero y los publica como archivo JS.
//
// Fuente de datos: el ReportAssembler (cualquier Aggregator).
type DashboardUseCase struct {
	assembler *ReportAssembler
	writer    ports.DashboardWriter
	log       zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso. writer puede ser nil si solo se usa GetDashboard.
func NewDashboardUseCase(assembler *ReportAssembler, writer ports.DashboardWriter, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{assembler: assembler, writer: writer, log: log}
}

// GetDashboard devuelve el payload del tablero:
//  1. total de ventas
//  2. ventas por tienda y por producto
//  3. ventas mensuales
//  4. productos más vendidos
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	d, err := uc.assembler.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return dto.FromDashboard(d), nil
}

// Publish regenera el archivo consumido por el front-end.
// Si algo falla, el archivo anterior queda intacto.
func (uc *DashboardUseCase) Publish(ctx context.Context, path string) error {
	if uc.writer == nil {
		return fmt.Errorf("dashboard: sin writer configurado")
	}
	payload, err := uc.GetDashboard(ctx)
	if err != nil {
		return err
	}
	if err := uc.writer.WriteDashboardJS(path, payload); err != nil {
		return fmt.Errorf("dashboard: escribir %s: %w", path, err)
	}
	uc.log.Info().Str("path", path).Float64("total_sales", payload.TotalSales).Msg("dashboard actualizado")
	return nil
}
