package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrMissingColumn      = errors.New("columna obligatoria ausente")
	ErrInvalidRow         = errors.New("fila inválida")
	ErrStoreUnavailable   = errors.New("almacén de datos no disponible")
	ErrEncodingUndetected = errors.New("codificación del archivo no reconocida")
)

// MissingColumnError indica qué campo canónico no pudo resolverse contra la cabecera.
type MissingColumnError struct {
	Field string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumn.Error(), e.Field)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// RowError describe una fila descartada. Es recuperable: el lote continúa.
type RowError struct {
	Line   int    // número de línea en el archivo (1 = cabecera)
	Field  string // campo canónico que falló
	Value  string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("línea %d: %s %q: %s", e.Line, e.Field, e.Value, e.Reason)
}

func (e *RowError) Unwrap() error { return ErrInvalidRow }

// StoreError envuelve un fallo del almacén como ErrStoreUnavailable conservando la causa.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
