// Package export escribe el reporte y el payload del tablero en disco.
// Toda escritura pasa por un archivo temporal en el mismo directorio y un rename:
// si algo falla no queda ningún archivo a medias.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/ports"
)

// json conserva los caracteres no ASCII tal cual y no escapa HTML.
var json = jsoniter.Config{
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

// Nombres de archivo por defecto.
const (
	ReportJSONName    = "rapport_ventes.json"
	DashboardJSName   = "dashboard_data.js"
	csvNamePrefix     = "rapport_"
	dashboardJSPrefix = "const dashboardData = "
)

var _ ports.DashboardWriter = (*Writer)(nil)

// Writer exportador a archivos.
type Writer struct{}

// NewWriter construye el exportador.
func NewWriter() *Writer { return &Writer{} }

// WriteReportJSON escribe el reporte con sangría de 4 espacios.
func (w *Writer) WriteReportJSON(path string, r *dto.ReportDTO) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("export: serializar reporte: %w", err)
	}
	return writeAtomic(path, data)
}

// WriteReportCSV escribe un rapport_<sección>.csv por cada sección de lista no vacía
// y devuelve las rutas creadas.
func (w *Writer) WriteReportCSV(dir string, r *dto.ReportDTO) ([]string, error) {
	var written []string
	for _, section := range r.CSVSections() {
		if len(section.Rows) == 0 {
			continue
		}
		var buf bytes.Buffer
		cw := csv.NewWriter(&buf)
		if err := cw.Write(section.Header); err != nil {
			return written, fmt.Errorf("export: csv %s: %w", section.Name, err)
		}
		if err := cw.WriteAll(section.Rows); err != nil {
			return written, fmt.Errorf("export: csv %s: %w", section.Name, err)
		}
		path := filepath.Join(dir, csvNamePrefix+section.Name+".csv")
		if err := writeAtomic(path, buf.Bytes()); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteDashboardJS escribe `const dashboardData = {...};` con sangría de 2 espacios.
func (w *Writer) WriteDashboardJS(path string, d *dto.DashboardDTO) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("export: serializar dashboard: %w", err)
	}
	var buf bytes.Buffer
	buf.Grow(len(data) + len(dashboardJSPrefix) + 2)
	buf.WriteString(dashboardJSPrefix)
	buf.Write(data)
	buf.WriteString(";\n")
	return writeAtomic(path, buf.Bytes())
}

// WritePDF guarda bytes ya generados (reporte PDF).
func (w *Writer) WritePDF(path string, pdf []byte) error {
	return writeAtomic(path, pdf)
}

// writeAtomic crea los directorios padre, escribe en un temporal y lo renombra sobre path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: crear %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("export: temporal: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("export: escribir %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: cerrar %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("export: permisos %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("export: renombrar %s: %w", path, err)
	}
	return nil
}
