package health_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/wtek/todoterm/internal/platform/health"
)

// stubChecker is a fixed-result health checker.
type stubChecker struct {
	name string
	err  error
}

func (c stubChecker) Name() string { return c.name }

func (c stubChecker) HealthCheck(context.Context) error { return c.err }

// ctxChecker reports unhealthy when its context is already done.
type ctxChecker struct {
	name string
}

func (c ctxChecker) Name() string { return c.name }

func (c ctxChecker) HealthCheck(ctx context.Context) error { return ctx.Err() }

func TestCheckAll_Empty(t *testing.T) {
	t.Parallel()

	r := health.New()
	results := r.CheckAll(context.Background())

	if results == nil {
		t.Fatal("expected non-nil map, got nil")
	}
	if len(results) != 0 {
		t.Errorf("expected empty map, got %d entries", len(results))
	}
}

func TestCheckAll_MixedHealth(t *testing.T) {
	t.Parallel()

	unhealthyErr := errors.New("todo-api: failing (circuit breaker open)")

	r := health.New()
	r.Register(stubChecker{name: "session-store"})
	r.Register(stubChecker{name: "todo-api", err: unhealthyErr})

	results := r.CheckAll(context.Background())

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results["session-store"] != nil {
		t.Errorf("session-store check = %v, want nil", results["session-store"])
	}
	if !errors.Is(results["todo-api"], unhealthyErr) {
		t.Errorf("todo-api check = %v, want %v", results["todo-api"], unhealthyErr)
	}
}

func TestCheckAll_ContextPropagated(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := health.New()
	r.Register(ctxChecker{name: "todo-api"})

	results := r.CheckAll(ctx)

	if !errors.Is(results["todo-api"], context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", results["todo-api"])
	}
}

func TestCheckAll_DuplicateNames_LastWriteWins(t *testing.T) {
	t.Parallel()

	secondErr := errors.New("second failure")

	r := health.New()
	r.Register(stubChecker{name: "todo-api"})
	r.Register(stubChecker{name: "todo-api", err: secondErr})

	results := r.CheckAll(context.Background())

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !errors.Is(results["todo-api"], secondErr) {
		t.Errorf("todo-api check = %v, want %v (from last registered checker)", results["todo-api"], secondErr)
	}
}

func TestCheckAll_ConcurrentSafety(t *testing.T) {
	t.Parallel()

	r := health.New()

	var wg sync.WaitGroup
	const goroutines = 50

	// Half the goroutines register checkers, half call CheckAll.
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		if i%2 == 0 {
			go func(i int) {
				defer wg.Done()
				r.Register(stubChecker{name: fmt.Sprintf("checker-%d", i)})
			}(i)
		} else {
			go func() {
				defer wg.Done()
				r.CheckAll(context.Background())
			}()
		}
	}

	wg.Wait()
}
