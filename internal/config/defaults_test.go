package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/chem/hashkernel"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/database/redis"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerHost, cfg.Server.Host)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DefaultMaxBodySize, cfg.Server.MaxBodySize)
	assert.Equal(t, logging.LevelInfo, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, redis.DefaultKeyPrefix, cfg.Redis.KeyPrefix)
	assert.Equal(t, DefaultMetricsPath, cfg.Metrics.Path)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Collector.Namespace)
	assert.Equal(t, DefaultFingerprintType, cfg.Fingerprint.DefaultType)
	assert.Equal(t, hashkernel.DefaultMaxAtoms, cfg.Fingerprint.Kernel.MaxAtoms)
	assert.Equal(t, hashkernel.DefaultMaxPaths, cfg.Fingerprint.Kernel.MaxPaths)
	assert.Equal(t, hashkernel.DefaultMaxNumBits, cfg.Fingerprint.Kernel.MaxNumBits)
	assert.Equal(t, DefaultBatchConcurrency, cfg.Fingerprint.BatchConcurrency)
	assert.Equal(t, DefaultMaxBatchSize, cfg.Fingerprint.MaxBatchSize)

	require.NotNil(t, cfg.Fingerprint.Parameters.NumBits)
	assert.Equal(t, DefaultNumBits, *cfg.Fingerprint.Parameters.NumBits)
	assert.Nil(t, cfg.Fingerprint.Parameters.AvalonBitFlags)
}

func TestApplyDefaults_PreserveExistingValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Log.Level = logging.LevelDebug
	cfg.Fingerprint.DefaultType = "avalon"
	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, logging.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "avalon", cfg.Fingerprint.DefaultType)
}

func TestApplyDefaults_PartialParametersKept(t *testing.T) {
	cfg := &Config{}
	cfg.Fingerprint.Parameters.NumBits = intPtr(512)
	ApplyDefaults(cfg)

	assert.Equal(t, 512, *cfg.Fingerprint.Parameters.NumBits)
	assert.Nil(t, cfg.Fingerprint.Parameters.Radius)
}

func TestApplyDefaults_Nil(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

//Personal.AI order the ending
