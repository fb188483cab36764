// Package csvsource lee archivos CSV de ventas con codificación y delimitador desconocidos.
package csvsource

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/transform"

	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/sales"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader lee CSV con detección de codificación y delimitador.
type Reader struct {
	Encodings []Encoding // vacío = DefaultEncodings
}

// NewReader construye el lector con los candidatos por defecto.
func NewReader() *Reader {
	return &Reader{}
}

// ReadFile abre path y delega en Read.
func (r *Reader) ReadFile(path string) (*sales.RawTable, *sales.SourceMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csvsource: abrir %s: %w", path, err)
	}
	defer f.Close()
	return r.Read(f)
}

// Read detecta la codificación sobre los primeros SampleSize bytes, decodifica el flujo a UTF-8,
// elige el delimitador y devuelve la cabecera y las filas. Las líneas vacías se ignoran.
func (r *Reader) Read(src io.Reader) (*sales.RawTable, *sales.SourceMeta, error) {
	br := bufio.NewReaderSize(src, 64*1024)
	sample, err := br.Peek(SampleSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, nil, fmt.Errorf("csvsource: leer muestra: %w", err)
	}

	enc, err := DetectEncoding(sample, r.Encodings)
	if err != nil {
		return nil, nil, err
	}

	decodedSample, _, err := transform.Bytes(enc.Decoder(), sample)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrEncodingUndetected, err)
	}
	delim := DetectDelimiter(string(decodedSample))

	decoded := bufio.NewReader(transform.NewReader(br, enc.Decoder()))
	if head, _ := decoded.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		_, _ = decoded.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(decoded)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("csvsource: archivo vacío: %w", domain.ErrInvalidInput)
		}
		return nil, nil, fmt.Errorf("csvsource: cabecera: %w", err)
	}

	table := &sales.RawTable{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("csvsource: %w", err)
		}
		line, _ := cr.FieldPos(0)
		table.Rows = append(table.Rows, rec)
		table.Lines = append(table.Lines, line)
	}

	return table, &sales.SourceMeta{Encoding: enc.Name, Delimiter: delim}, nil
}
