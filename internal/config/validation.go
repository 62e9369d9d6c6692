package config

import (
	"fmt"
	"strings"

	"github.com/taigrr/projcollect/internal/pathfilter"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for valid values.
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, c.validateFilter()...)

	if c.Scan.Workers < 0 {
		errs = append(errs, ValidationError{Field: "scan.workers", Message: "must not be negative"})
	}
	if c.Scan.CacheSize < 0 {
		errs = append(errs, ValidationError{Field: "scan.cache_size", Message: "must not be negative"})
	}

	if !oneOf(c.Output.Format, "text", "json", "yaml", "yml") {
		errs = append(errs, ValidationError{
			Field:   "output.format",
			Message: fmt.Sprintf("unknown format %q (want text, json or yaml)", c.Output.Format),
		})
	}
	if !oneOf(c.Output.Color, "auto", "always", "never") {
		errs = append(errs, ValidationError{
			Field:   "output.color",
			Message: fmt.Sprintf("unknown color mode %q (want auto, always or never)", c.Output.Color),
		})
	}

	if !oneOf(c.Logging.Level, "debug", "info", "warn", "error") {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q", c.Logging.Level),
		})
	}
	if !oneOf(c.Logging.Format, "text", "json") {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q (want text or json)", c.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validateFilter() ValidationErrors {
	var errs ValidationErrors

	if c.Filter.Separator == "" {
		errs = append(errs, ValidationError{Field: "filter.separator", Message: "must not be empty"})
	}

	usable := 0
	for _, ext := range c.Filter.Extensions {
		if strings.TrimPrefix(strings.TrimSpace(ext), ".") != "" {
			usable++
		}
	}
	if usable == 0 {
		errs = append(errs, ValidationError{Field: "filter.extensions", Message: "at least one extension is required"})
	}

	if _, err := pathfilter.New(c.PathFilterConfig()); err != nil {
		errs = append(errs, ValidationError{Field: "filter.ignored_patterns", Message: err.Error()})
	}

	return errs
}

func oneOf(value string, allowed ...string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
