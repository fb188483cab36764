// Package sqlite implementa los puertos del almacén de ventas sobre SQLite embebido
// (modernc.org/sqlite, sin cgo). Sirve para despliegues de un solo nodo y para las pruebas.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// PriceScale prix_unitaire se guarda como INTEGER escalado por 10^PriceScale,
// así las sumas en SQL son exactas.
const PriceScale = entity.PriceDecimals

// MemoryDSN base de datos en memoria, útil en pruebas.
const MemoryDSN = ":memory:"

// Querier lo que comparten *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open abre la base y fija una única conexión: SQLite serializa las escrituras y
// una base en memoria vive solo mientras su conexión siga abierta.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite %s: %w", pragma, err)
		}
	}
	return db, nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS magasins (
	    id  INTEGER PRIMARY KEY AUTOINCREMENT,
	    nom TEXT    NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS produits (
	    id  INTEGER PRIMARY KEY AUTOINCREMENT,
	    nom TEXT    NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS ventes (
	    id            INTEGER PRIMARY KEY AUTOINCREMENT,
	    date          TEXT    NOT NULL,
	    magasin_id    INTEGER NOT NULL REFERENCES magasins(id),
	    produit_id    INTEGER NOT NULL REFERENCES produits(id),
	    quantite      INTEGER NOT NULL CHECK (quantite >= 0),
	    prix_unitaire INTEGER NOT NULL CHECK (prix_unitaire >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ventes_cle ON ventes (date, magasin_id, produit_id)`,
}

// EnsureSchema crea las tablas si no existen. Es idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return domain.StoreError("sqlite.EnsureSchema", err)
		}
	}
	return nil
}

// toScaled falla si el precio escalado no cabe en int64 en lugar de desbordar.
func toScaled(d decimal.Decimal) (int64, error) {
	scaled := d.Round(PriceScale).Shift(PriceScale)
	if !scaled.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: precio %s fuera de rango", domain.ErrInvalidInput, d)
	}
	return scaled.IntPart(), nil
}

func fromScaled(v int64) decimal.Decimal {
	return decimal.New(v, -PriceScale)
}
