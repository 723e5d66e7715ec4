package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all service settings.
const envPrefix = "KEYIP_FP"

// envKeys are bound explicitly so that LoadFromEnv sees them without a file
// declaring the key first.
var envKeys = []string{
	"server.host", "server.port", "server.read_timeout", "server.write_timeout",
	"server.max_body_size", "server.shutdown_timeout",
	"log.level", "log.format", "log.output_paths", "log.error_output_paths",
	"redis.mode", "redis.addr", "redis.password", "redis.db", "redis.key_prefix",
	"redis.master_name", "redis.sentinel_addrs", "redis.cluster_addrs",
	"redis.pool_size", "redis.dial_timeout", "redis.max_retries", "redis.tls_enabled",
	"metrics.enabled", "metrics.path", "metrics.namespace", "metrics.subsystem",
	"fingerprint.default_type",
	"fingerprint.parameters.torsion_path_length",
	"fingerprint.parameters.min_path",
	"fingerprint.parameters.max_path",
	"fingerprint.parameters.atom_pair_min_path",
	"fingerprint.parameters.atom_pair_max_path",
	"fingerprint.parameters.num_bits",
	"fingerprint.parameters.radius",
	"fingerprint.parameters.layer_flags",
	"fingerprint.parameters.avalon_query_flag",
	"fingerprint.parameters.avalon_bit_flags",
	"fingerprint.kernel.max_atoms", "fingerprint.kernel.max_paths", "fingerprint.kernel.max_num_bits",
	"fingerprint.batch_concurrency", "fingerprint.max_batch_size",
}

// newViper builds a Viper instance with the service's standard settings:
// YAML file type, KEYIP_FP_ env prefix and a "." → "_" key replacer, so that
// "redis.addr" resolves to KEYIP_FP_REDIS_ADDR.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}
	return v
}

// Load reads the YAML file at configPath, merges KEYIP_FP_* environment
// overrides, applies defaults for unset fields and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from KEYIP_FP_* environment variables alone.
//
//	KEYIP_FP_<SECTION>_<FIELD>   e.g.  KEYIP_FP_REDIS_ADDR, KEYIP_FP_FINGERPRINT_DEFAULT_TYPE
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch re-reads configPath whenever it changes on disk and hands the new
// Config to onChange.  A change that fails to parse or validate is reported
// to onError, when set, and onChange is not called.  Watch does not block.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("config: reload of %s: %w", e.Name, err))
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// MustLoad is Load that panics on error, for use in main().
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
