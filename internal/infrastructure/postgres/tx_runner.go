package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

// ingestLockKey clave del advisory lock que serializa las ingestas.
const ingestLockKey int64 = 0x76656e746573 // "ventes"

var _ repository.IngestTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunIngest inicia una transacción, toma el advisory lock de ingesta (se libera con la tx),
// ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Dos ingestas concurrentes no se intercalan entre la comprobación de existencia y la inserción.
func (r *TxRunner) RunIngest(ctx context.Context, fn func(
	dims repository.DimensionRepository,
	sales repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", ingestLockKey); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}

	if err := fn(NewDimensionRepository(tx), NewSaleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
