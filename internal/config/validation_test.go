package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"empty separator", func(c *Config) { c.Filter.Separator = "" }, "filter.separator"},
		{"no extensions", func(c *Config) { c.Filter.Extensions = []string{} }, "filter.extensions"},
		{"only blank extensions", func(c *Config) { c.Filter.Extensions = []string{" ", "."} }, "filter.extensions"},
		{"bad ignore pattern", func(c *Config) { c.Filter.IgnoredPatterns = []string{"[unclosed"} }, "filter.ignored_patterns"},
		{"negative workers", func(c *Config) { c.Scan.Workers = -1 }, "scan.workers"},
		{"negative cache", func(c *Config) { c.Scan.CacheSize = -5 }, "scan.cache_size"},
		{"unknown output format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"unknown color mode", func(c *Config) { c.Output.Color = "sometimes" }, "output.color"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.Workers = -1
	cfg.Output.Format = "xml"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
	assert.Contains(t, err.Error(), "validation failed:")
	assert.Contains(t, err.Error(), "scan.workers: must not be negative")
}

func TestValidate_AcceptsYmlAndMixedCase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "YML"
	cfg.Output.Color = "Always"
	cfg.Filter.Extensions = []string{".C"}

	assert.NoError(t, cfg.Validate())
}

func TestValidationErrors_Empty(t *testing.T) {
	assert.Equal(t, "", ValidationErrors(nil).Error())
}
