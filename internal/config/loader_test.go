package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
)

const validConfigYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 5s
log:
  level: debug
  format: console
redis:
  addr: "redis:6379"
  db: 2
  key_prefix: "idx:"
metrics:
  enabled: true
  namespace: "chem"
fingerprint:
  default_type: "AtomPair"
  parameters:
    num_bits: 1024
    atom_pair_min_path: 1
    atom_pair_max_path: 10
  kernel:
    max_atoms: 200
  batch_concurrency: 4
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile_ValidConfig(t *testing.T) {
	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultWriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, logging.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "idx:", cfg.Redis.KeyPrefix)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "chem", cfg.Metrics.Collector.Namespace)
	assert.Equal(t, 200, cfg.Fingerprint.Kernel.MaxAtoms)
	assert.Equal(t, 4, cfg.Fingerprint.BatchConcurrency)

	s, err := cfg.Fingerprint.DefaultSettings()
	require.NoError(t, err)
	assert.Equal(t, "AtomPair", s.FamilyName())
	assert.Equal(t, 10, s.AtomPairMaxPath().Or(0))
}

func TestLoad_FromFile_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoad_FromFile_InvalidYAML(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_FromFile_ValidationFailure(t *testing.T) {
	yaml := `
fingerprint:
  default_type: "RDKit"
  parameters:
    num_bits: 2048
    min_path: 5
    max_path: 2
`
	_, err := Load(createTempConfigFile(t, yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("KEYIP_FP_SERVER_PORT", "7070")
	t.Setenv("KEYIP_FP_REDIS_ADDR", "cache:6380")

	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
}

func TestLoad_EnvOverride_NestedKey(t *testing.T) {
	t.Setenv("KEYIP_FP_FINGERPRINT_PARAMETERS_NUM_BITS", "4096")

	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)
	require.NotNil(t, cfg.Fingerprint.Parameters.NumBits)
	assert.Equal(t, 4096, *cfg.Fingerprint.Parameters.NumBits)
}

func TestLoadFromEnv_NoFile(t *testing.T) {
	t.Setenv("KEYIP_FP_FINGERPRINT_DEFAULT_TYPE", "maccs")
	t.Setenv("KEYIP_FP_LOG_LEVEL", "warn")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "maccs", cfg.Fingerprint.DefaultType)
	assert.Equal(t, logging.LevelWarn, cfg.Log.Level)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("KEYIP_FP_FINGERPRINT_DEFAULT_TYPE", "ecfp")

	_, err := LoadFromEnv()
	assert.ErrorContains(t, err, "fingerprint.default_type")
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(filepath.Join(t.TempDir(), "missing.yaml"), func(*Config) {}, nil)
	assert.Error(t, err)
}

func TestWatch_Reload(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	changed := make(chan *Config, 4)
	require.NoError(t, Watch(path, func(c *Config) { changed <- c }, nil))

	updated := validConfigYAML + "\n" + "# touched\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	select {
	case cfg := <-changed:
		assert.Equal(t, 9090, cfg.Server.Port)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}
}

func TestMustLoad_Success(t *testing.T) {
	cfg := MustLoad(createTempConfigFile(t, validConfigYAML))
	assert.NotNil(t, cfg)
}

func TestMustLoad_Panic(t *testing.T) {
	assert.Panics(t, func() { MustLoad("/nonexistent/config.yaml") })
}

//Personal.AI order the ending
