package http

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/ingest"
)

// salesIngester lo implementa *ingest.Pipeline.
type salesIngester interface {
	Ingest(ctx context.Context, src io.Reader, name string) (*ingest.Result, error)
}

// IngestHandler recibe archivos de ventas para cargarlos en el almacén.
type IngestHandler struct {
	pipeline salesIngester
}

// NewIngestHandler construye el handler.
func NewIngestHandler(pipeline salesIngester) *IngestHandler {
	return &IngestHandler{pipeline: pipeline}
}

// Upload godoc
// @Summary      Ingesta de un CSV de ventas
// @Description  Lote transaccional: filas inválidas y duplicadas se omiten y se informan.
//               Una columna obligatoria ausente rechaza el archivo completo.
// @Tags         ingest
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV de ventas (UTF-8, Latin-1 o Windows-1252; ',' o ';')."
// @Success      201  {object}  dto.IngestResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ingest [post]
func (h *IngestHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "MISSING_FILE", Message: "campo multipart 'file' requerido",
		})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	res, err := h.pipeline.Ingest(c.Context(), f, fh.Filename)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res.DTO())
}
