package postgres

import (
	"context"

	"github.com/jhoicas/ventas-analytics/internal/domain"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS magasins (
	    id  BIGSERIAL    PRIMARY KEY,
	    nom VARCHAR(100) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS produits (
	    id  BIGSERIAL    PRIMARY KEY,
	    nom VARCHAR(200) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS ventes (
	    id            BIGSERIAL     PRIMARY KEY,
	    date          DATE          NOT NULL,
	    magasin_id    BIGINT        NOT NULL REFERENCES magasins(id),
	    produit_id    BIGINT        NOT NULL REFERENCES produits(id),
	    quantite      BIGINT        NOT NULL CHECK (quantite >= 0),
	    prix_unitaire NUMERIC(14,4) NOT NULL CHECK (prix_unitaire >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ventes_cle ON ventes (date, magasin_id, produit_id)`,
}

// EnsureSchema crea las tablas si no existen. Es idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return domain.StoreError("postgres.EnsureSchema", err)
		}
	}
	return nil
}
