// Package ingest carga archivos de ventas en el almacén normalizado (tiendas, productos, ventas).
package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/ports"
	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/domain/sales"
)

// Result resumen de un lote. RowsSkipped = RowsInvalid + RowsDuplicate.
type Result struct {
	BatchID       string
	Source        string
	RowsProcessed int
	RowsInserted  int
	RowsSkipped   int
	RowsInvalid   int
	RowsDuplicate int
	Errors        []domain.RowError
}

// Pipeline lee, normaliza y persiste un lote dentro de una única transacción.
type Pipeline struct {
	reader     ports.SalesTableReader
	normalizer *sales.Normalizer
	txRunner   repository.IngestTxRunner
	hints      sales.ColumnHints
	log        zerolog.Logger
}

// NewPipeline construye el pipeline. hints puede ser nil.
func NewPipeline(reader ports.SalesTableReader, txRunner repository.IngestTxRunner, hints sales.ColumnHints, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		reader:     reader,
		normalizer: sales.NewNormalizer(log),
		txRunner:   txRunner,
		hints:      hints,
		log:        log,
	}
}

// IngestFile abre path y delega en Ingest.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: abrir %s: %w", path, err)
	}
	defer f.Close()
	return p.Ingest(ctx, f, filepath.Base(path))
}

// Ingest procesa src. Los errores de esquema o codificación abortan antes de tocar el almacén;
// las filas inválidas y los duplicados solo se cuentan. Cualquier fallo del almacén revierte
// el lote completo y devuelve domain.ErrStoreUnavailable.
func (p *Pipeline) Ingest(ctx context.Context, src io.Reader, name string) (*Result, error) {
	start := time.Now()
	batchID := uuid.New().String()
	log := p.log.With().Str("batch_id", batchID).Str("source", name).Logger()

	table, meta, err := p.reader.Read(src)
	if err != nil {
		return nil, fmt.Errorf("ingest: leer %s: %w", name, err)
	}
	log.Debug().Str("encoding", meta.Encoding).Str("delimiter", string(meta.Delimiter)).Msg("archivo detectado")

	norm, err := p.normalizer.Normalize(table, p.hints)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	res := &Result{
		BatchID:       batchID,
		Source:        name,
		RowsProcessed: len(table.Rows),
		RowsInvalid:   len(norm.Skipped),
		Errors:        norm.Skipped,
	}

	var inserted, duplicates int
	err = p.txRunner.RunIngest(ctx, func(dims repository.DimensionRepository, salesRepo repository.SaleRepository) error {
		inserted, duplicates = 0, 0
		cache := newDimensionCache(dims)
		for _, r := range norm.Records {
			storeID, err := cache.storeID(ctx, r.Store)
			if err != nil {
				return err
			}
			productID, err := cache.productID(ctx, r.Product)
			if err != nil {
				return err
			}
			ok, err := insertIfAbsent(ctx, salesRepo, r, storeID, productID)
			if err != nil {
				return err
			}
			if ok {
				inserted++
			} else {
				duplicates++
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("lote revertido")
		return nil, domain.StoreError("ingest", err)
	}

	res.RowsInserted = inserted
	res.RowsDuplicate = duplicates
	res.RowsSkipped = res.RowsInvalid + res.RowsDuplicate

	log.Info().
		Int("processed", res.RowsProcessed).
		Int("inserted", res.RowsInserted).
		Int("invalid", res.RowsInvalid).
		Int("duplicate", res.RowsDuplicate).
		Dur("elapsed", time.Since(start)).
		Msg("lote ingerido")
	return res, nil
}

// insertIfAbsent inserta la venta salvo que ya exista una con la misma (fecha, tienda, producto).
func insertIfAbsent(ctx context.Context, repo repository.SaleRepository, r entity.SaleRecord, storeID, productID int64) (bool, error) {
	exists, err := repo.Exists(ctx, r.Date, storeID, productID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := repo.Insert(ctx, r.Date, storeID, productID, r.Quantity, r.UnitPrice); err != nil {
		return false, err
	}
	return true, nil
}

// DTO convierte el resultado para la respuesta HTTP.
func (r *Result) DTO() *dto.IngestResultDTO {
	errs := make([]dto.RowErrorDTO, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, dto.RowErrorDTO{Line: e.Line, Field: e.Field, Value: e.Value, Reason: e.Reason})
	}
	return &dto.IngestResultDTO{
		BatchID:       r.BatchID,
		Source:        r.Source,
		RowsProcessed: r.RowsProcessed,
		RowsInserted:  r.RowsInserted,
		RowsSkipped:   r.RowsSkipped,
		RowsInvalid:   r.RowsInvalid,
		RowsDuplicate: r.RowsDuplicate,
		Errors:        errs,
	}
}
