package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ventas-analytics/internal/application/ports"
	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/domain/sales"
)

// LoadCSV lee y normaliza un archivo de ventas y devuelve un agregador en memoria
// con los registros válidos en orden de archivo.
func LoadCSV(path string, reader ports.SalesTableReader, hints sales.ColumnHints, log zerolog.Logger) (*MemoryAggregator, error) {
	table, meta, err := reader.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := sales.NewNormalizer(log).Normalize(table, hints)
	if err != nil {
		return nil, fmt.Errorf("analytics.LoadCSV: %w", err)
	}
	log.Info().
		Str("file", path).
		Str("encoding", meta.Encoding).
		Str("delimiter", string(meta.Delimiter)).
		Int("records", len(res.Records)).
		Int("skipped", len(res.Skipped)).
		Msg("CSV cargado")
	return NewMemoryAggregator(res.Records), nil
}

// LoadStore trae todos los hechos del almacén (en orden de inserción) a memoria.
func LoadStore(ctx context.Context, repo repository.SaleRepository, f entity.Filter) (*MemoryAggregator, error) {
	records, err := repo.ListAll(ctx, f)
	if err != nil {
		return nil, domain.StoreError("analytics.LoadStore", err)
	}
	return NewMemoryAggregator(records), nil
}
