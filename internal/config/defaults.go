package config

import (
	"time"

	"github.com/turtacn/KeyIP-Fingerprint/internal/domain/fingerprint"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/chem/hashkernel"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/database/redis"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost        = "0.0.0.0"
	DefaultServerPort        = 8080
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultMaxBodySize int64 = 4 << 20

	DefaultLogLevel  = logging.LevelInfo
	DefaultLogFormat = "json"

	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "keyip"
	DefaultMetricsSubsystem = "fingerprint"

	DefaultFingerprintType  = "Morgan"
	DefaultNumBits          = 2048
	DefaultRadius           = 2
	DefaultBatchConcurrency = 8
	DefaultMaxBatchSize     = 1000
)

// ApplyDefaults fills every zero-value field in cfg with its default.  Values
// already set are left unchanged.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	redis.ApplyDefaults(&cfg.Redis)

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Collector.Namespace == "" {
		cfg.Metrics.Collector.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Collector.Subsystem == "" {
		cfg.Metrics.Collector.Subsystem = DefaultMetricsSubsystem
	}

	// ── Fingerprint ───────────────────────────────────────────────────────────
	fp := &cfg.Fingerprint
	if fp.DefaultType == "" {
		fp.DefaultType = DefaultFingerprintType
	}
	// Only fill knobs when the whole bundle is absent; a partial bundle is the
	// operator's choice.
	if fp.Parameters == (ParametersConfig{}) {
		fp.Parameters = defaultParameters()
	}
	if fp.Kernel.MaxAtoms == 0 {
		fp.Kernel.MaxAtoms = hashkernel.DefaultMaxAtoms
	}
	if fp.Kernel.MaxPaths == 0 {
		fp.Kernel.MaxPaths = hashkernel.DefaultMaxPaths
	}
	if fp.Kernel.MaxNumBits == 0 {
		fp.Kernel.MaxNumBits = hashkernel.DefaultMaxNumBits
	}
	if fp.BatchConcurrency == 0 {
		fp.BatchConcurrency = DefaultBatchConcurrency
	}
	if fp.MaxBatchSize == 0 {
		fp.MaxBatchSize = DefaultMaxBatchSize
	}
}

func defaultParameters() ParametersConfig {
	return ParametersConfig{
		TorsionPathLength: intPtr(fingerprint.DefaultTorsionPathLength),
		MinPath:           intPtr(1),
		MaxPath:           intPtr(7),
		AtomPairMinPath:   intPtr(fingerprint.DefaultAtomPairMinPath),
		AtomPairMaxPath:   intPtr(fingerprint.DefaultAtomPairMaxPath),
		NumBits:           intPtr(DefaultNumBits),
		Radius:            intPtr(DefaultRadius),
		LayerFlags:        intPtr(0x07),
	}
}

func intPtr(v int) *int { return &v }

//Personal.AI order the ending
