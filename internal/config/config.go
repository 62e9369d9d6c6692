// Package config provides configuration structures and loading for projcollect.
package config

import (
	"os"

	"github.com/taigrr/projcollect/internal/pathfilter"
	"github.com/taigrr/projcollect/internal/types"
)

// DefaultConfigFile is looked up in the working directory when no config
// path is given.
const DefaultConfigFile = ".projcollect.yaml"

// EnvPrefix prefixes environment overrides, e.g. PROJCOLLECT_LOGGING_LEVEL.
const EnvPrefix = "PROJCOLLECT"

// Config represents the complete application configuration.
type Config struct {
	Filter  FilterConfig  `yaml:"filter" mapstructure:"filter"`
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// FilterConfig controls which files the enumerator reports.
type FilterConfig struct {
	Extensions      []string `yaml:"extensions" mapstructure:"extensions"`
	IgnoredPatterns []string `yaml:"ignored_patterns" mapstructure:"ignored_patterns"`
	Separator       string   `yaml:"separator" mapstructure:"separator"` // joins directory and entry names
}

// ScanConfig controls include scanning.
type ScanConfig struct {
	Workers   int `yaml:"workers" mapstructure:"workers"`       // 0 = one per CPU
	CacheSize int `yaml:"cache_size" mapstructure:"cache_size"` // serve mode only, 0 disables
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // text, json, yaml
	Color  string `yaml:"color" mapstructure:"color"`   // auto, always, never
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Filter: FilterConfig{
			Extensions: pathfilter.DefaultRelevantExtensions(),
			Separator:  string(os.PathSeparator),
		},
		Scan: ScanConfig{
			Workers:   0,
			CacheSize: 256,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
	}
}

// PathFilterConfig converts the filter section for pathfilter.New.
func (c *Config) PathFilterConfig() *types.FilterConfig {
	return &types.FilterConfig{
		Extensions:      c.Filter.Extensions,
		IgnoredPatterns: c.Filter.IgnoredPatterns,
	}
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat, outputFormat, colorMode string, workers int, extensions []string) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if outputFormat != "" {
		c.Output.Format = outputFormat
	}
	if colorMode != "" {
		c.Output.Color = colorMode
	}
	if workers > 0 {
		c.Scan.Workers = workers
	}
	if len(extensions) > 0 {
		c.Filter.Extensions = extensions
	}
}
