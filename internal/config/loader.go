package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Load reads configuration from the OS filesystem. See LoadFs.
func Load(configPath string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), configPath)
}

// LoadFs reads configuration from configPath on fsys, layered over the
// defaults and under PROJCOLLECT_* environment variables. An empty path
// falls back to DefaultConfigFile when it exists, and to defaults only
// when it does not.
func LoadFs(fsys afero.Fs, configPath string) (*Config, error) {
	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())

	if configPath == "" {
		if _, err := fsys.Stat(DefaultConfigFile); err == nil {
			configPath = DefaultConfigFile
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %s: %w", DefaultConfigFile, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Logging.Output = os.ExpandEnv(cfg.Logging.Output)

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// the config file does not mention.
func setDefaults(v *viper.Viper, cfg *Config) {
	ignored := cfg.Filter.IgnoredPatterns
	if ignored == nil {
		ignored = []string{}
	}

	v.SetDefault("filter.extensions", cfg.Filter.Extensions)
	v.SetDefault("filter.ignored_patterns", ignored)
	v.SetDefault("filter.separator", cfg.Filter.Separator)
	v.SetDefault("scan.workers", cfg.Scan.Workers)
	v.SetDefault("scan.cache_size", cfg.Scan.CacheSize)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.color", cfg.Output.Color)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.output", cfg.Logging.Output)
}
