package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.API.validate(),
		c.Log.validate(),
		c.Telemetry.validate(),
	)
}

func (a *APIConfig) validate() error {
	var errs []error

	if a.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url must not be empty"))
	} else if _, err := url.ParseRequestURI(a.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("api.base_url is not a valid URL: %w", err))
	}
	if a.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if a.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("api.circuit_breaker.max_failures must be >= 1, got %d",
			a.CircuitBreaker.MaxFailures))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
