package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/usecase"
)

// AnalyticsHandler maneja el reporte de ventas y las vistas de análisis.
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetReport godoc
// @Summary      Reporte de ventas
// @Description  Total, ventas por tienda y por producto, tendencia mensual y productos más vendidos.
// @Tags         report
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD), inclusivo."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD), inclusivo."
// @Param        store       query  string  false  "Tiendas separadas por comas."
// @Param        product     query  string  false  "Productos separados por comas."
// @Success      200  {object}  dto.ReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/report [get]
func (h *AnalyticsHandler) GetReport(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	report, err := h.uc.GetReport(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// GetReportPDF godoc
// @Summary      Reporte de ventas en PDF
// @Tags         report
// @Produce      application/pdf
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)."
// @Param        store       query  string  false  "Tiendas separadas por comas."
// @Param        product     query  string  false  "Productos separados por comas."
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/report/pdf [get]
func (h *AnalyticsHandler) GetReportPDF(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	pdf, filename, err := h.uc.GetReportPDF(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// GetTrend godoc
// @Summary      Tendencia de ventas
// @Tags         analytics
// @Produce      json
// @Param        granularity  query  string  false  "day | month | year (default month)."
// @Param        start_date   query  string  false  "Inicio del período (YYYY-MM-DD)."
// @Param        end_date     query  string  false  "Fin del período (YYYY-MM-DD)."
// @Param        store        query  string  false  "Tiendas separadas por comas."
// @Param        product      query  string  false  "Productos separados por comas."
// @Success      200  {array}   dto.PeriodSalesDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/trend [get]
func (h *AnalyticsHandler) GetTrend(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	rows, err := h.uc.GetTrend(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// GetTopProducts godoc
// @Summary      Productos más vendidos por unidades
// @Tags         analytics
// @Produce      json
// @Param        limit       query  int     false  "Tamaño del ranking (default 5, max 200)."
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)."
// @Param        store       query  string  false  "Tiendas separadas por comas."
// @Success      200  {array}   dto.TopProductDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/top-products [get]
func (h *AnalyticsHandler) GetTopProducts(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	rows, err := h.uc.GetTopProducts(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// GetStoreProducts godoc
// @Summary      Rendimiento de cada producto por tienda
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)."
// @Param        store       query  string  false  "Tiendas separadas por comas."
// @Param        product     query  string  false  "Productos separados por comas."
// @Success      200  {array}   dto.StoreProductDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/store-products [get]
func (h *AnalyticsHandler) GetStoreProducts(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	rows, err := h.uc.GetStoreProducts(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// ListStores godoc
// @Summary      Tiendas registradas
// @Tags         dimensions
// @Produce      json
// @Success      200  {array}   dto.DimensionDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stores [get]
func (h *AnalyticsHandler) ListStores(c *fiber.Ctx) error {
	rows, err := h.uc.ListStores(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// ListProducts godoc
// @Summary      Productos registrados
// @Tags         dimensions
// @Produce      json
// @Success      200  {array}   dto.DimensionDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *AnalyticsHandler) ListProducts(c *fiber.Ctx) error {
	rows, err := h.uc.ListProducts(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}
