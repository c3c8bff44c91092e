package config

const (
	defaultServerPort = 8080

	defaultStoreMaxOpenConns = 4

	defaultBreakerMaxFailures = 5
	defaultBreakerHalfOpen    = 1

	defaultRateLimitBurst = 50
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":            "0.0.0.0",
		"server.port":            defaultServerPort,
		"server.read_timeout":    "5s",
		"server.write_timeout":   "10s",
		"server.idle_timeout":    "120s",
		"server.request_timeout": "8s",

		"log.level":  "info",
		"log.format": "json",

		"store.driver":                  DriverSQLite,
		"store.dsn":                     "file:todos.db",
		"store.max_open_conns":          defaultStoreMaxOpenConns,
		"store.auto_migrate":            true,
		"store.breaker.max_failures":    defaultBreakerMaxFailures,
		"store.breaker.timeout":         "30s",
		"store.breaker.half_open_limit": defaultBreakerHalfOpen,

		"cors.allowed_origins": []string{},

		"rate_limit.requests_per_second": 0,
		"rate_limit.burst":               defaultRateLimitBurst,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "todo-service",
	}
}
