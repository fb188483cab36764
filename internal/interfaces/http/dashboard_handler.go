package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/scheduler"
)

// dashboardRefresher lo implementa *scheduler.DashboardRefreshService.
type dashboardRefresher interface {
	RefreshNow(ctx context.Context) error
	Status() scheduler.Status
}

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc        *appanalytics.DashboardUseCase
	refresher dashboardRefresher
}

// NewDashboardHandler construye el handler. refresher puede ser nil.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, refresher dashboardRefresher) *DashboardHandler {
	return &DashboardHandler{uc: uc, refresher: refresher}
}

// GetDashboard godoc
// @Summary      Datos del tablero
// @Description  Mismo contenido que dashboard_data.js: total, ventas por tienda y producto,
//               ventas mensuales y productos más vendidos.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	d, err := h.uc.GetDashboard(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(d)
}

// Refresh godoc
// @Summary      Regenera dashboard_data.js
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  scheduler.Status
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	if err := h.refresher.RefreshNow(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.refresher.Status())
}

// Status godoc
// @Summary      Estado del refresco periódico del tablero
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  scheduler.Status
// @Router       /api/dashboard/status [get]
func (h *DashboardHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.refresher.Status())
}
