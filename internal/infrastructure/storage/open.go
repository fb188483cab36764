// Package storage abre el almacén configurado (PostgreSQL o SQLite) y expone sus puertos.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/sqlite"
	"github.com/jhoicas/ventas-analytics/pkg/config"
)

// Store puertos del almacén abierto. Close libera las conexiones.
type Store struct {
	Driver     string
	Aggregator repository.Aggregator
	Dimensions repository.DimensionRepository
	Sales      repository.SaleRepository
	TxRunner   repository.IngestTxRunner
	closeFn    func()
}

// Close libera el pool o el archivo.
func (s *Store) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// Open conecta con el driver de cfg y crea el esquema si falta.
func Open(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("storage: postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Int32("max_conns", pool.Config().MaxConns).Msg("almacén listo")
		return &Store{
			Driver:     cfg.Driver,
			Aggregator: postgres.NewAnalyticsRepository(pool),
			Dimensions: postgres.NewDimensionRepository(pool),
			Sales:      postgres.NewSaleRepository(pool),
			TxRunner:   postgres.NewTxRunner(pool),
			closeFn:    pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		if err := sqlite.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("almacén listo")
		return &Store{
			Driver:     cfg.Driver,
			Aggregator: sqlite.NewAnalyticsRepository(db),
			Dimensions: sqlite.NewDimensionRepository(db),
			Sales:      sqlite.NewSaleRepository(db),
			TxRunner:   sqlite.NewTxRunner(db),
			closeFn:    func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
}
