package config

const (
	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"api.base_url":                        "http://localhost:8080/api",
		"api.timeout":                         "30s",
		"api.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"api.circuit_breaker.timeout":         "30s",
		"api.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,

		"log.level":  "info",
		"log.format": "json",
		"log.file":   "",

		"session.file": "",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "todoterm",
	}
}
