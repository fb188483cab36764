package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"

	_ "github.com/jhoicas/ventas-analytics/docs"
	appanalytics "github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/ingest"
	"github.com/jhoicas/ventas-analytics/internal/application/usecase"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/csvsource"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/ventas-analytics/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/ventas-analytics/internal/interfaces/http"
	"github.com/jhoicas/ventas-analytics/internal/scheduler"
	"github.com/jhoicas/ventas-analytics/pkg/config"
	"github.com/jhoicas/ventas-analytics/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := storage.Open(ctx, cfg.DB, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén")
	}
	defer store.Close()

	assembler := appanalytics.NewReportAssembler(store.Aggregator, appanalytics.WithTopN(cfg.Report.TopProductsLimit))
	analyticsUC := usecase.NewAnalyticsUseCase(
		store.Aggregator, store.Dimensions, assembler, infrapdf.NewReportGenerator(cfg.App.Name),
	)
	dashboardUC := appanalytics.NewDashboardUseCase(assembler, export.NewWriter(), log.Zerolog())
	pipeline := ingest.NewPipeline(csvsource.NewReader(), store.TxRunner, nil, log.Zerolog())

	// Refresco periódico de dashboard_data.js (DASHBOARD_REFRESH_MINUTES=0 lo deshabilita)
	refresher := scheduler.NewDashboardRefreshService(dashboardUC, scheduler.DashboardRefreshConfig{
		IntervalMinutes: cfg.Report.DashboardRefreshMinutes,
		Path:            cfg.Report.DashboardJSPath,
	}, log.Zerolog())
	if err := refresher.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("iniciar scheduler")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    64 * 1024 * 1024, // lotes CSV
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas Analytics API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db_driver": store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AnalyticsUC: analyticsUC,
		DashboardUC: dashboardUC,
		Ingest:      pipeline,
		Refresher:   refresher,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
