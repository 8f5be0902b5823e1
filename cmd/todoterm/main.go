// Package main is the entry point for the todoterm client. It wires all
// dependencies using samber/do v2, hands the terminal to Bubble Tea, and
// flushes telemetry on exit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/do/v2"

	"github.com/wtek/todoterm/internal/adapters/clients/acl"
	"github.com/wtek/todoterm/internal/app"
	"github.com/wtek/todoterm/internal/platform/config"
	"github.com/wtek/todoterm/internal/platform/health"
	"github.com/wtek/todoterm/internal/platform/httpclient"
	"github.com/wtek/todoterm/internal/platform/logging"
	"github.com/wtek/todoterm/internal/platform/session"
	"github.com/wtek/todoterm/internal/platform/telemetry"
	"github.com/wtek/todoterm/internal/ports"
	"github.com/wtek/todoterm/internal/tui"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const otelShutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("TODOTERM_PROFILE")
	if profile == "" {
		profile = "local"
	}

	// Bootstrap: config, logger, telemetry. Logs go to a file because the
	// terminal belongs to the TUI for the whole run.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, logFile)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the root model (eagerly wires the full graph).
	model, err := do.Invoke[tui.Model](injector)
	if err != nil {
		return fmt.Errorf("resolving application: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	httpClient := do.MustInvoke[*httpclient.Client](injector)
	registry.Register(httpClient)

	logger.Info("starting", slog.String("profile", profile), slog.String("api", cfg.API.BaseURL))

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (ports.SessionStore, error) {
		store, err := session.New(cfg.Session.File)
		if err != nil {
			return nil, fmt.Errorf("creating session store: %w", err)
		}
		return store, nil
	})

	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		store := do.MustInvoke[ports.SessionStore](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.API, "todo-api", store, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.AuthClient, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return acl.NewAuthClient(client, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TodoClient, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return acl.NewTodoClient(client, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.UserClient, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return acl.NewUserClient(client, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.AuthService, error) {
		authClient := do.MustInvoke[ports.AuthClient](i)
		userClient := do.MustInvoke[ports.UserClient](i)
		store := do.MustInvoke[ports.SessionStore](i)
		return app.NewAuthService(authClient, userClient, store, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TodoService, error) {
		todoClient := do.MustInvoke[ports.TodoClient](i)
		return app.NewTodoService(todoClient, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.UserService, error) {
		userClient := do.MustInvoke[ports.UserClient](i)
		store := do.MustInvoke[ports.SessionStore](i)
		return app.NewUserService(userClient, store, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (tui.Model, error) {
		return tui.New(tui.Services{
			Auth:    do.MustInvoke[ports.AuthService](i),
			Todos:   do.MustInvoke[ports.TodoService](i),
			Users:   do.MustInvoke[ports.UserService](i),
			Session: do.MustInvoke[ports.SessionStore](i),
			Health:  do.MustInvoke[ports.HealthRegistry](i),
			Logger:  logger,
		}), nil
	})
}
