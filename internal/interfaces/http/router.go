package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/usecase"
	"github.com/jhoicas/ventas-analytics/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AnalyticsUC *usecase.AnalyticsUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Ingest      salesIngester
	Refresher   dashboardRefresher // opcional
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Reporte y vistas de análisis (lectura pública)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	api.Get("/report", analyticsHandler.GetReport)
	api.Get("/report/pdf", analyticsHandler.GetReportPDF)
	api.Get("/stores", analyticsHandler.ListStores)
	api.Get("/products", analyticsHandler.ListProducts)

	analytics := api.Group("/analytics")
	analytics.Get("/trend", analyticsHandler.GetTrend)
	analytics.Get("/top-products", analyticsHandler.GetTopProducts)
	analytics.Get("/store-products", analyticsHandler.GetStoreProducts)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Refresher)
	api.Get("/dashboard", dashboardHandler.GetDashboard)

	adminOnly := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin)}

	if deps.Refresher != nil {
		api.Get("/dashboard/status", dashboardHandler.Status)
		api.Post("/dashboard/refresh", append(adminOnly, dashboardHandler.Refresh)...)
	}

	// Ingesta (protegida: Bearer Token con rol admin)
	ingestHandler := NewIngestHandler(deps.Ingest)
	api.Post("/ingest", append(adminOnly, ingestHandler.Upload)...)
}
