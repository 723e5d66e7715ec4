package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Fingerprint/internal/config"
	"github.com/turtacn/KeyIP-Fingerprint/internal/domain/fingerprint"
)

// validConfig returns a Config that passes Validate().
func validConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func intPtr(v int) *int { return &v }

func TestConfig_Validate_ValidConfig(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_InvalidServerPort(t *testing.T) {
	t.Parallel()
	for _, port := range []int{0, -1, 65536} {
		cfg := validConfig()
		cfg.Server.Port = port
		err := cfg.Validate()
		require.Error(t, err, "port %d", port)
		assert.Contains(t, err.Error(), "server.port")
	}
}

func TestConfig_Validate_NegativeBodySize(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Server.MaxBodySize = -1
	assert.ErrorContains(t, cfg.Validate(), "server.max_body_size")
}

func TestConfig_Validate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Log.Level = "verbose"
	assert.ErrorContains(t, cfg.Validate(), "log.level")
}

func TestConfig_Validate_InvalidLogFormat(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Log.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "log.format")
}

func TestConfig_Validate_Redis(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"missing addr", func(c *config.Config) { c.Redis.Addr = "" }, "redis.addr"},
		{"cluster without addrs", func(c *config.Config) { c.Redis.Mode = "cluster" }, "redis.cluster_addrs"},
		{"sentinel without master", func(c *config.Config) { c.Redis.Mode = "sentinel" }, "redis.master_name"},
		{"unknown mode", func(c *config.Config) { c.Redis.Mode = "ring" }, "redis.mode"},
		{"negative db", func(c *config.Config) { c.Redis.DB = -1 }, "redis.db"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}

	cfg := validConfig()
	cfg.Redis.Mode = "cluster"
	cfg.Redis.ClusterAddrs = []string{"redis-0:6379", "redis-1:6379"}
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_MetricsNamespace(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Collector.Namespace = ""
	assert.ErrorContains(t, cfg.Validate(), "metrics.namespace")

	cfg.Metrics.Enabled = false
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_UnknownFingerprintType(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Fingerprint.DefaultType = "ecfp4"
	assert.ErrorContains(t, cfg.Validate(), "fingerprint.default_type")
}

func TestConfig_Validate_IllegalParameters(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Fingerprint.Parameters.NumBits = intPtr(0)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), fingerprint.MsgNumBits)
}

func TestConfig_Validate_ParametersIrrelevantToFamily(t *testing.T) {
	t.Parallel()
	// MACCS has no knobs, so an illegal radius is not looked at.
	cfg := validConfig()
	cfg.Fingerprint.DefaultType = "maccs"
	cfg.Fingerprint.Parameters.Radius = intPtr(-3)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_Batch(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Fingerprint.BatchConcurrency = 0
	assert.ErrorContains(t, cfg.Validate(), "fingerprint.batch_concurrency")

	cfg = validConfig()
	cfg.Fingerprint.MaxBatchSize = -5
	assert.ErrorContains(t, cfg.Validate(), "fingerprint.max_batch_size")
}

func TestServerConfig_Address(t *testing.T) {
	t.Parallel()
	s := config.ServerConfig{Host: "127.0.0.1", Port: 9000}
	assert.Equal(t, "127.0.0.1:9000", s.Address())
}

func TestParametersConfig_Bundle(t *testing.T) {
	t.Parallel()
	p := config.ParametersConfig{NumBits: intPtr(1024), Radius: intPtr(3)}
	b := p.Bundle()

	assert.Equal(t, fingerprint.Value(1024), b.NumBits)
	assert.Equal(t, fingerprint.Value(3), b.Radius)
	assert.False(t, b.LayerFlags.IsAvailable())
	assert.False(t, b.AvalonBitFlags.IsAvailable())
}

func TestFingerprintConfig_DefaultSettings(t *testing.T) {
	t.Parallel()
	fp := validConfig().Fingerprint

	s, err := fp.DefaultSettings()
	require.NoError(t, err)
	assert.Equal(t, fingerprint.Morgan, s.Family())
	assert.Equal(t, fingerprint.Value(config.DefaultNumBits), s.NumBits())
	assert.Equal(t, fingerprint.Value(config.DefaultRadius), s.Radius())

	fp.DefaultType = "nope"
	_, err = fp.DefaultSettings()
	assert.Error(t, err)
}

//Personal.AI order the ending
