package ingest_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/ventas-analytics/internal/application/ingest"
	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/csvsource"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/sqlite"
)

const ventes = "Date;Magasin;Produit;Quantité vendue;Prix unitaire\n" +
	"16/12/2023;A;Widget;3;10,00\n" +
	"17/12/2023;A;Widget;2;10,00\n" +
	"31/02/2023;A;Widget;1;10,00\n" +
	"18/12/2023;B;Gadget;x;5\n" +
	"18/12/2023;B;Gadget;1;1 234,56\n"

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.EnsureSchema(context.Background(), db))
	return db
}

func newPipeline(runner repository.IngestTxRunner) *ingest.Pipeline {
	return ingest.NewPipeline(csvsource.NewReader(), runner, nil, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingesta
// ──────────────────────────────────────────────────────────────────────────────

func TestIngest_ContadoresYPersistencia(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	res, err := newPipeline(sqlite.NewTxRunner(db)).Ingest(ctx, strings.NewReader(ventes), "ventes.csv")
	require.NoError(t, err)

	assert.NotEmpty(t, res.BatchID)
	assert.Equal(t, 5, res.RowsProcessed)
	assert.Equal(t, 3, res.RowsInserted)
	assert.Equal(t, 2, res.RowsInvalid)
	assert.Equal(t, 0, res.RowsDuplicate)
	assert.Equal(t, 2, res.RowsSkipped)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 4, res.Errors[0].Line)

	total, err := sqlite.NewAnalyticsRepository(db).TotalSales(ctx, entity.Filter{})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1284.56").Equal(total), "obtenido %s", total)

	stores, err := sqlite.NewDimensionRepository(db).ListStores(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 2)
}

func TestIngest_Idempotente(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	p := newPipeline(sqlite.NewTxRunner(db))

	first, err := p.Ingest(ctx, strings.NewReader(ventes), "ventes.csv")
	require.NoError(t, err)
	require.Equal(t, 3, first.RowsInserted)

	second, err := p.Ingest(ctx, strings.NewReader(ventes), "ventes.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, second.RowsInserted)
	assert.Equal(t, 3, second.RowsDuplicate)
	assert.Equal(t, 5, second.RowsSkipped)
	assert.NotEqual(t, first.BatchID, second.BatchID)

	all, err := sqlite.NewSaleRepository(db).ListAll(ctx, entity.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// Una segunda fila con la misma (fecha, tienda, producto) dentro del lote también se omite.
func TestIngest_DuplicadoEnElMismoLote(t *testing.T) {
	db := openDB(t)
	csv := "Date,Magasin,Produit,Quantite vendue,Prix\n" +
		"2023-12-16,A,Widget,3,10\n" +
		"2023-12-16,A,Widget,7,12\n"

	res, err := newPipeline(sqlite.NewTxRunner(db)).Ingest(context.Background(), strings.NewReader(csv), "dup.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowsInserted)
	assert.Equal(t, 1, res.RowsDuplicate)
}

// Precios o cantidades que el almacén no puede representar se omiten como filas inválidas
// y el resto del lote se confirma.
func TestIngest_ValoresFueraDeRangoNoAbortanElLote(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	csv := "Date;Magasin;Produit;Quantité vendue;Prix unitaire\n" +
		"16/12/2023;A;Widget;3;10,00\n" +
		"17/12/2023;A;Widget;1;1000000000000000\n" +
		"18/12/2023;A;Widget;9223372036854775808;1\n" +
		"19/12/2023;B;Gadget;2;9999999999,9999\n"

	res, err := newPipeline(sqlite.NewTxRunner(db)).Ingest(ctx, strings.NewReader(csv), "rango.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, res.RowsInserted)
	assert.Equal(t, 2, res.RowsInvalid)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 3, res.Errors[0].Line)
	assert.Equal(t, 4, res.Errors[1].Line)

	total, err := sqlite.NewAnalyticsRepository(db).TotalSales(ctx, entity.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "20000000029.9998", total.String())
}

func TestIngestFile_Latin1(t *testing.T) {
	db := openDB(t)
	latin, err := charmap.ISO8859_1.NewEncoder().String(ventes)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "ventes_latin1.csv")
	require.NoError(t, os.WriteFile(path, []byte(latin), 0o644))

	res, err := newPipeline(sqlite.NewTxRunner(db)).IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "ventes_latin1.csv", res.Source)
	assert.Equal(t, 3, res.RowsInserted)
}

func TestIngest_ColumnaAusenteNoTocaElAlmacen(t *testing.T) {
	db := openDB(t)
	csv := "Date,Magasin,Produit,Quantite vendue\n2023-12-16,A,Widget,3\n"

	_, err := newPipeline(sqlite.NewTxRunner(db)).Ingest(context.Background(), strings.NewReader(csv), "x.csv")
	assert.ErrorIs(t, err, domain.ErrMissingColumn)

	stores, err := sqlite.NewDimensionRepository(db).ListStores(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stores)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos del almacén
// ──────────────────────────────────────────────────────────────────────────────

// failingRunner delega en SQLite pero hace fallar la inserción número failAt.
type failingRunner struct {
	inner  *sqlite.TxRunner
	failAt int
}

func (r *failingRunner) RunIngest(ctx context.Context, fn func(repository.DimensionRepository, repository.SaleRepository) error) error {
	return r.inner.RunIngest(ctx, func(dims repository.DimensionRepository, sales repository.SaleRepository) error {
		return fn(dims, &failingSales{SaleRepository: sales, failAt: r.failAt})
	})
}

type failingSales struct {
	repository.SaleRepository
	failAt int
	calls  int
}

func (s *failingSales) Insert(ctx context.Context, date time.Time, storeID, productID, quantity int64, unitPrice decimal.Decimal) error {
	s.calls++
	if s.calls == s.failAt {
		return errors.New("disk I/O error")
	}
	return s.SaleRepository.Insert(ctx, date, storeID, productID, quantity, unitPrice)
}

func TestIngest_FalloDelAlmacenRevierteElLote(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	runner := &failingRunner{inner: sqlite.NewTxRunner(db), failAt: 2}

	res, err := newPipeline(runner).Ingest(ctx, strings.NewReader(ventes), "ventes.csv")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	all, err := sqlite.NewSaleRepository(db).ListAll(ctx, entity.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all, "la primera inserción también se revierte")

	stores, err := sqlite.NewDimensionRepository(db).ListStores(ctx)
	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestIngest_AlmacenCerrado(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Close())

	_, err := newPipeline(sqlite.NewTxRunner(db)).Ingest(context.Background(), strings.NewReader(ventes), "ventes.csv")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestResult_DTO(t *testing.T) {
	db := openDB(t)
	res, err := newPipeline(sqlite.NewTxRunner(db)).Ingest(context.Background(), strings.NewReader(ventes), "ventes.csv")
	require.NoError(t, err)

	out := res.DTO()
	assert.Equal(t, res.BatchID, out.BatchID)
	require.Len(t, out.Errors, 2)
	assert.Equal(t, "date", out.Errors[0].Field)
	assert.Equal(t, "quantity", out.Errors[1].Field)
}
