// Package health provides a thread-safe health check registry for tracking
// the health of downstream dependencies. The TUI status
// line polls the registry to show whether the API is reachable.
package health

import (
	"context"
	"sync"

	"github.com/wtek/todoterm/internal/app/fanout"
	"github.com/wtek/todoterm/internal/ports"
)

// maxConcurrentChecks bounds how many checkers run at once during a poll.
const maxConcurrentChecks = 4

// Compile-time interface check.
var _ ports.HealthRegistry = (*Registry)(nil)

// Registry is a thread-safe implementation of [ports.HealthRegistry].
// Components that implement [ports.HealthChecker] are registered at startup
// and checked on each status poll.
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// New creates an empty health check registry.
func New() *Registry {
	return &Registry{}
}

// Register adds a health checker to the registry. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll executes all registered health checks concurrently and returns
// results keyed by checker name. Nil values indicate healthy components.
// The slice is copied under a read lock so checks run without holding it.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := make([]ports.HealthChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	checked := fanout.Run(ctx, maxConcurrentChecks, checkers,
		func(ctx context.Context, c ports.HealthChecker) (string, error) {
			return c.Name(), c.HealthCheck(ctx)
		})

	results := make(map[string]error, len(checkers))
	for i, res := range checked {
		name := res.Value
		if name == "" {
			// The check never ran: the poll's context was canceled while
			// it waited for a worker slot.
			name = checkers[i].Name()
		}
		results[name] = res.Err
	}
	return results
}
