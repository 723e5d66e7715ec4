// Package config defines the configuration of the fingerprint service and
// its command-line tools.  No I/O lives here, only data types, conversion
// and validation.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/KeyIP-Fingerprint/internal/domain/fingerprint"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/chem/hashkernel"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/database/redis"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/prometheus"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address is the listen address.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MetricsConfig controls the /metrics endpoint.
type MetricsConfig struct {
	Enabled   bool                       `mapstructure:"enabled"`
	Path      string                     `mapstructure:"path"`
	Collector prometheus.CollectorConfig `mapstructure:",squash"`
}

// ParametersConfig is the universal parameter bundle as it appears in
// configuration.  An omitted knob is unavailable.
type ParametersConfig struct {
	TorsionPathLength *int `mapstructure:"torsion_path_length"`
	MinPath           *int `mapstructure:"min_path"`
	MaxPath           *int `mapstructure:"max_path"`
	AtomPairMinPath   *int `mapstructure:"atom_pair_min_path"`
	AtomPairMaxPath   *int `mapstructure:"atom_pair_max_path"`
	NumBits           *int `mapstructure:"num_bits"`
	Radius            *int `mapstructure:"radius"`
	LayerFlags        *int `mapstructure:"layer_flags"`
	AvalonQueryFlag   *int `mapstructure:"avalon_query_flag"`
	AvalonBitFlags    *int `mapstructure:"avalon_bit_flags"`
}

// Bundle converts the configured knobs into a domain bundle.
func (p ParametersConfig) Bundle() fingerprint.Bundle {
	return fingerprint.Bundle{
		TorsionPathLength: fingerprint.ParamFromPtr(p.TorsionPathLength),
		MinPath:           fingerprint.ParamFromPtr(p.MinPath),
		MaxPath:           fingerprint.ParamFromPtr(p.MaxPath),
		AtomPairMinPath:   fingerprint.ParamFromPtr(p.AtomPairMinPath),
		AtomPairMaxPath:   fingerprint.ParamFromPtr(p.AtomPairMaxPath),
		NumBits:           fingerprint.ParamFromPtr(p.NumBits),
		Radius:            fingerprint.ParamFromPtr(p.Radius),
		LayerFlags:        fingerprint.ParamFromPtr(p.LayerFlags),
		AvalonQueryFlag:   fingerprint.ParamFromPtr(p.AvalonQueryFlag),
		AvalonBitFlags:    fingerprint.ParamFromPtr(p.AvalonBitFlags),
	}
}

// FingerprintConfig holds the deployment's default descriptor and kernel
// limits.
type FingerprintConfig struct {
	DefaultType      string            `mapstructure:"default_type"`
	Parameters       ParametersConfig  `mapstructure:"parameters"`
	Kernel           hashkernel.Config `mapstructure:"kernel"`
	BatchConcurrency int               `mapstructure:"batch_concurrency"`
	MaxBatchSize     int               `mapstructure:"max_batch_size"`
}

// DefaultSettings builds the configured default descriptor.
func (f FingerprintConfig) DefaultSettings() (*fingerprint.Settings, error) {
	family, ok := fingerprint.ParseFamily(f.DefaultType)
	if !ok {
		return nil, fmt.Errorf("config: fingerprint.default_type %q is not a known fingerprint type", f.DefaultType)
	}
	return family.Specification(f.Parameters.Bundle()), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         logging.LogConfig `mapstructure:"log"`
	Redis       redis.RedisConfig `mapstructure:"redis"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Fingerprint FingerprintConfig `mapstructure:"fingerprint"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config and
// returns the first problem found.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	if c.Server.MaxBodySize < 0 {
		return fmt.Errorf("config: server.max_body_size must be ≥ 0, got %d", c.Server.MaxBodySize)
	}

	// Log
	if _, err := logging.ParseLevel(string(c.Log.Level)); err != nil {
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Redis
	switch c.Redis.Mode {
	case "", "standalone":
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required")
		}
	case "cluster":
		if len(c.Redis.ClusterAddrs) == 0 {
			return fmt.Errorf("config: redis.cluster_addrs is required in cluster mode")
		}
	case "sentinel":
		if c.Redis.MasterName == "" || len(c.Redis.SentinelAddrs) == 0 {
			return fmt.Errorf("config: redis.master_name and redis.sentinel_addrs are required in sentinel mode")
		}
	default:
		return fmt.Errorf("config: redis.mode %q is invalid; expected standalone|sentinel|cluster", c.Redis.Mode)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Collector.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}

	// Fingerprint
	settings, err := c.Fingerprint.DefaultSettings()
	if err != nil {
		return err
	}
	if err := fingerprint.Validate(settings); err != nil {
		return fmt.Errorf("config: fingerprint.parameters: %w", err)
	}
	if c.Fingerprint.BatchConcurrency < 1 {
		return fmt.Errorf("config: fingerprint.batch_concurrency must be ≥ 1, got %d", c.Fingerprint.BatchConcurrency)
	}
	if c.Fingerprint.MaxBatchSize < 1 {
		return fmt.Errorf("config: fingerprint.max_batch_size must be ≥ 1, got %d", c.Fingerprint.MaxBatchSize)
	}

	return nil
}

//Personal.AI order the ending
