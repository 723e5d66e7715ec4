package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-Fingerprint/internal/interfaces/http/handlers"
	"github.com/turtacn/KeyIP-Fingerprint/internal/interfaces/http/middleware"
)

// DefaultMetricsPath is where the scrape endpoint is mounted when
// RouterConfig.MetricsPath is empty.
const DefaultMetricsPath = "/metrics"

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the HTTP route tree.
type RouterConfig struct {
	// Handlers
	FingerprintHandler *handlers.FingerprintHandler
	FieldHandler       *handlers.FieldHandler
	HealthHandler      *handlers.HealthHandler

	// Infrastructure
	Logger           logging.Logger
	LoggingConfig    *middleware.LoggingConfig
	MetricsCollector prometheus.MetricsCollector
	Metrics          *prometheus.FingerprintMetrics
	MetricsPath      string
}

// NewRouter constructs the complete HTTP route tree: global middleware,
// probes, the scrape endpoint and the /api/v1 resource groups.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logCfg := middleware.DefaultLoggingConfig()
	if cfg.LoggingConfig != nil {
		logCfg = *cfg.LoggingConfig
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.RequestLogging(logger, logCfg))

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = DefaultMetricsPath
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.FingerprintHandler != nil {
			cfg.FingerprintHandler.RegisterRoutes(api)
		}
		if cfg.FieldHandler != nil {
			cfg.FieldHandler.RegisterRoutes(api)
		}
	})

	return r
}

//Personal.AI order the ending
