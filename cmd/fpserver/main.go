// Command fpserver serves the fingerprint catalog over HTTP and keeps the
// per-field settings registry in Redis.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	appfp "github.com/turtacn/KeyIP-Fingerprint/internal/application/fingerprint"
	"github.com/turtacn/KeyIP-Fingerprint/internal/config"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/chem/hashkernel"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/database/redis"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/KeyIP-Fingerprint/internal/interfaces/http"
	"github.com/turtacn/KeyIP-Fingerprint/internal/interfaces/http/handlers"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (environment only when empty)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fpserver: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, level, err := logging.NewLeveledLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()
	logging.SetDefault(logger)

	logger.Info("starting fingerprint server",
		logging.String("version", version),
		logging.String("commit", commit),
		logging.String("addr", cfg.Server.Address()))

	var (
		collector prometheus.MetricsCollector
		metrics   *prometheus.FingerprintMetrics
	)
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(cfg.Metrics.Collector, logger)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		metrics = prometheus.NewFingerprintMetrics(collector)
	}

	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	storeOpts := []redis.StoreOption{redis.WithKeyPrefix(cfg.Redis.KeyPrefix)}
	if metrics != nil {
		storeOpts = append(storeOpts, redis.WithMetrics(metrics))
	}
	store := redis.NewSettingsStore(rdb, logger, storeOpts...)

	svcOpts := []appfp.Option{
		appfp.WithBatchConcurrency(cfg.Fingerprint.BatchConcurrency),
		appfp.WithMaxBatchSize(cfg.Fingerprint.MaxBatchSize),
	}
	if metrics != nil {
		svcOpts = append(svcOpts, appfp.WithMetrics(metrics))
	}
	defaults, err := cfg.Fingerprint.DefaultSettings()
	if err != nil {
		return err
	}
	svcOpts = append(svcOpts, appfp.WithDefaultSettings(defaults))
	svc := appfp.NewService(hashkernel.New(cfg.Fingerprint.Kernel, logger), store, logger, svcOpts...)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		FingerprintHandler: handlers.NewFingerprintHandler(svc, logger, cfg.Server.MaxBodySize),
		FieldHandler:       handlers.NewFieldHandler(svc, logger, cfg.Server.MaxBodySize),
		HealthHandler:      handlers.NewHealthHandler(version, handlers.CheckFunc("redis", rdb.Ping)),
		Logger:             logger,
		MetricsCollector:   collector,
		Metrics:            metrics,
		MetricsPath:        cfg.Metrics.Path,
	})
	srv := httpserver.NewServer(cfg.Server, router, logger)

	if configPath != "" {
		err := config.Watch(configPath, func(next *config.Config) {
			if next.Log.Level != level.Level() {
				level.SetLevel(next.Log.Level)
				logger.Info("log level changed", logging.String("level", next.Log.Level.String()))
			}
		}, func(err error) {
			logger.Warn("ignoring config change", logging.Err(err))
		})
		if err != nil {
			logger.Warn("config watch disabled", logging.Err(err))
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case sig := <-quit:
		logger.Info("shutting down", logging.String("signal", sig.String()))
	}

	if err := srv.Stop(context.Background()); err != nil {
		logger.Error("shutdown failed", logging.Err(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

//Personal.AI order the ending
