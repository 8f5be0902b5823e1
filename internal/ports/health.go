package ports

import "context"

// HealthChecker is implemented by any component that can report its health.
// The HTTP client reports from its circuit breaker state, so checks are
// cheap and never hit the network.
type HealthChecker interface {
	// Name returns a human-readable identifier for this component
	// (e.g., "todo-api").
	Name() string

	// HealthCheck returns nil if healthy, or an error describing the
	// failure. Implementations should respect context cancellation.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry manages registration and execution of health checkers.
// The TUI polls it to render the downstream status line.
type HealthRegistry interface {
	// Register adds a HealthChecker to the registry.
	Register(checker HealthChecker)

	// CheckAll executes all registered health checks and returns results
	// keyed by checker name. Nil values indicate healthy components.
	CheckAll(ctx context.Context) map[string]error
}
