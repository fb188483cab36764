// Package sales normaliza filas heterogéneas (CSV o almacén) en entity.SaleRecord.
package sales

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
)

// RawTable filas crudas con su cabecera.
type RawTable struct {
	Header []string
	Rows   [][]string
	// Lines número de línea de cada fila en el origen; si es nil se asume cabecera en la línea 1
	// y una fila por línea.
	Lines []int
}

func (t *RawTable) line(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}
	return i + 2
}

// SourceMeta lo que el lector detectó en el origen.
type SourceMeta struct {
	Encoding  string
	Delimiter rune
}

// NormalizeResult registros válidos más las filas descartadas con su motivo.
type NormalizeResult struct {
	Records []entity.SaleRecord
	Columns ColumnMap
	Skipped []domain.RowError
}

// Normalizer convierte filas crudas en registros canónicos. No toca el almacén.
type Normalizer struct {
	log zerolog.Logger
}

// NewNormalizer construye el normalizador.
func NewNormalizer(log zerolog.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// Normalize resuelve las columnas una vez y convierte cada fila.
// Un error de esquema (columna ausente) aborta el lote; una fila inválida solo se descarta.
func (n *Normalizer) Normalize(table *RawTable, hints ColumnHints) (*NormalizeResult, error) {
	cols, err := ResolveColumns(table.Header, hints)
	if err != nil {
		return nil, err
	}

	res := &NormalizeResult{
		Records: make([]entity.SaleRecord, 0, len(table.Rows)),
		Columns: cols,
	}
	for i, row := range table.Rows {
		rec, rowErr := n.normalizeRow(row, cols, table.line(i))
		if rowErr != nil {
			n.log.Warn().
				Int("line", rowErr.Line).
				Str("field", rowErr.Field).
				Str("value", rowErr.Value).
				Str("reason", rowErr.Reason).
				Msg("fila descartada")
			res.Skipped = append(res.Skipped, *rowErr)
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func (n *Normalizer) normalizeRow(row []string, cols ColumnMap, line int) (entity.SaleRecord, *domain.RowError) {
	cell := func(field string) (string, *domain.RowError) {
		idx := cols[field]
		if idx >= len(row) {
			return "", &domain.RowError{Line: line, Field: field, Reason: "columnas insuficientes"}
		}
		return row[idx], nil
	}
	fail := func(field, value string, err error) *domain.RowError {
		return &domain.RowError{Line: line, Field: field, Value: value, Reason: err.Error()}
	}

	var rec entity.SaleRecord

	raw, rowErr := cell(FieldDate)
	if rowErr != nil {
		return rec, rowErr
	}
	date, err := ParseDate(raw)
	if err != nil {
		return rec, fail(FieldDate, raw, err)
	}
	rec.Date = date

	for _, field := range []string{FieldStore, FieldProduct} {
		raw, rowErr := cell(field)
		if rowErr != nil {
			return rec, rowErr
		}
		v := strings.TrimSpace(raw)
		if v == "" {
			return rec, fail(field, raw, errEmptyValue)
		}
		if field == FieldStore {
			rec.Store = v
		} else {
			rec.Product = v
		}
	}

	raw, rowErr = cell(FieldQuantity)
	if rowErr != nil {
		return rec, rowErr
	}
	qty, err := ParseQuantity(raw)
	if err != nil {
		return rec, fail(FieldQuantity, raw, err)
	}
	rec.Quantity = qty

	raw, rowErr = cell(FieldUnitPrice)
	if rowErr != nil {
		return rec, rowErr
	}
	price, err := ParseUnitPrice(raw)
	if err != nil {
		return rec, fail(FieldUnitPrice, raw, err)
	}
	rec.UnitPrice = price

	return rec, nil
}
