package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Store.validate(),
		c.RateLimit.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.RequestTimeout < 0 {
		errs = append(errs, errors.New("server.request_timeout must not be negative"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	if !slices.Contains(logging.Levels, l.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %s; got %q",
			strings.Join(logging.Levels, ", "), l.Level))
	}
	if !slices.Contains(logging.Formats, l.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %s; got %q",
			strings.Join(logging.Formats, ", "), l.Format))
	}

	return errors.Join(errs...)
}

func (s *StoreConfig) validate() error {
	var errs []error

	switch s.Driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if s.DSN == "" {
			errs = append(errs, fmt.Errorf("store.dsn must not be empty for driver %q", s.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver must be one of: %s, %s, %s; got %q",
			DriverMemory, DriverSQLite, DriverPostgres, s.Driver))
	}

	if s.MaxOpenConns < 1 {
		errs = append(errs, fmt.Errorf("store.max_open_conns must be >= 1, got %d", s.MaxOpenConns))
	}
	if s.Breaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("store.breaker.max_failures must be >= 1, got %d", s.Breaker.MaxFailures))
	}
	if s.Breaker.Timeout <= 0 {
		errs = append(errs, errors.New("store.breaker.timeout must be positive"))
	}
	if s.Breaker.HalfOpenLimit < 1 {
		errs = append(errs, fmt.Errorf("store.breaker.half_open_limit must be >= 1, got %d",
			s.Breaker.HalfOpenLimit))
	}

	return errors.Join(errs...)
}

func (r *RateLimitConfig) validate() error {
	var errs []error

	if r.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.requests_per_second must not be negative, got %v",
			r.RequestsPerSecond))
	}
	if r.RequestsPerSecond > 0 && r.Burst < 1 {
		errs = append(errs, fmt.Errorf("rate_limit.burst must be >= 1 when rate limiting is enabled, got %d",
			r.Burst))
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
