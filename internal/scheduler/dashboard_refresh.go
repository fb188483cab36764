// Package scheduler contiene los trabajos periódicos del servicio.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// DashboardPublisher regenera el archivo del tablero (analytics.DashboardUseCase).
type DashboardPublisher interface {
	Publish(ctx context.Context, path string) error
}

// DashboardRefreshConfig intervalo en minutos (0 = deshabilitado) y destino del archivo.
type DashboardRefreshConfig struct {
	IntervalMinutes int
	Path            string
	Timeout         time.Duration
}

// Status estado del último refresco.
type Status struct {
	Enabled         bool      `json:"enabled"`
	IntervalMinutes int       `json:"interval_minutes"`
	Path            string    `json:"path"`
	Running         bool      `json:"running"`
	LastStartedAt   time.Time `json:"last_started_at"`
	LastCompletedAt time.Time `json:"last_completed_at"`
	LastError       string    `json:"last_error,omitempty"`
}

// DashboardRefreshService regenera dashboard_data.js con gocron.
type DashboardRefreshService struct {
	scheduler *gocron.Scheduler
	publisher DashboardPublisher
	config    DashboardRefreshConfig
	log       zerolog.Logger

	mu              sync.Mutex
	running         bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastErr         error
}

// NewDashboardRefreshService construye el servicio; no arranca nada hasta Start.
func NewDashboardRefreshService(publisher DashboardPublisher, cfg DashboardRefreshConfig, log zerolog.Logger) *DashboardRefreshService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	log.Info().Int("interval_minutes", cfg.IntervalMinutes).Str("path", cfg.Path).
		Msg("configuración del refresco del dashboard cargada")
	return &DashboardRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		publisher: publisher,
		config:    cfg,
		log:       log,
	}
}

// Start agenda el trabajo y lo detiene cuando ctx se cancela.
// Con IntervalMinutes <= 0 no agenda nada.
func (s *DashboardRefreshService) Start(ctx context.Context) error {
	if s.config.IntervalMinutes <= 0 {
		s.log.Info().Msg("refresco del dashboard deshabilitado por configuración")
		return nil
	}

	_, err := s.scheduler.Every(s.config.IntervalMinutes).Minutes().Do(func() {
		if err := s.RefreshNow(ctx); err != nil {
			s.log.Error().Err(err).Msg("error al refrescar el dashboard")
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler: agendar refresco del dashboard: %w", err)
	}

	s.scheduler.StartAsync()
	s.log.Info().Int("interval_minutes", s.config.IntervalMinutes).Msg("refresco del dashboard iniciado")

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("deteniendo refresco del dashboard")
		s.scheduler.Stop()
	}()
	return nil
}

// RefreshNow ejecuta un refresco. Si ya hay uno en curso no hace nada.
func (s *DashboardRefreshService) RefreshNow(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Warn().Msg("refresco del dashboard ya en ejecución")
		return nil
	}
	s.running = true
	s.lastStartedAt = time.Now()
	s.mu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()
	err := s.publisher.Publish(runCtx, s.config.Path)

	s.mu.Lock()
	s.running = false
	s.lastCompletedAt = time.Now()
	s.lastErr = err
	s.mu.Unlock()
	return err
}

// Status devuelve el estado actual del servicio.
func (s *DashboardRefreshService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		Enabled:         s.config.IntervalMinutes > 0,
		IntervalMinutes: s.config.IntervalMinutes,
		Path:            s.config.Path,
		Running:         s.running,
		LastStartedAt:   s.lastStartedAt,
		LastCompletedAt: s.lastCompletedAt,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}
