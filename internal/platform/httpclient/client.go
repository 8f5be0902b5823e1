// Package httpclient provides the single configured HTTP client for the
// todo API: bearer-token injection on every outgoing request, session
// invalidation on any 401 response, a circuit breaker feeding the health
// status, and OpenTelemetry tracing for outbound requests.
//
// The client applies middleware-like processing in this order:
//
//	Circuit Breaker → Token Injection → OTEL Span → HTTP
//
// There is deliberately no retry layer: every failure is surfaced exactly
// once to the initiating caller.
//
// Construction:
//
//	client := httpclient.New(&cfg.API, "todo-api", store, metrics, logger)
//
// Executing requests:
//
//	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
//	resp, err := client.Do(ctx, req)
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/wtek/todoterm/internal/platform/config"
	"github.com/wtek/todoterm/internal/platform/telemetry"
)

// TokenStore provides the bearer token for outgoing requests and is told
// when the server rejects it. Satisfied by the session store.
type TokenStore interface {
	// Token returns the persisted bearer token, if any.
	Token() (string, bool)

	// Clear invalidates the persisted credentials. Called exactly once
	// per 401 response, before the error reaches the caller.
	Clear()
}

// Client is the instrumented HTTP client for the todo API. It is the
// single reactive point of truth for "am I still logged in": any 401
// clears the token store before the failure propagates. There is no
// proactive expiry timer.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	serviceName string
	tokens      TokenStore
	breaker     *gobreaker.CircuitBreaker[*http.Response]
	metrics     *telemetry.Metrics
	logger      *slog.Logger
}

// New creates the configured client. The serviceName identifies the
// downstream API in traces, metrics, and health output, e.g. "todo-api".
// tokens may be nil for a client that never authenticates; metrics may be
// nil to skip metric recording.
func New(cfg *config.APIConfig, serviceName string, tokens TokenStore, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: toUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		serviceName: serviceName,
		tokens:      tokens,
		breaker:     cb,
		metrics:     metrics,
		logger:      logger,
	}
}

// Do executes an HTTP request through the pipeline:
// Circuit Breaker → Token Injection → OTEL Span → HTTP.
//
// When the server responded at all, resp is non-nil with an open body the
// caller must close, even for 5xx, where err is also non-nil so the
// breaker records the failure. When the breaker rejects or a network
// error occurs, resp is nil.
//
// A 401 response clears the token store before Do returns.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	method := req.Method

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		c.injectToken(req)

		spanCtx, span := c.startSpan(ctx, req)
		defer span.End()

		// Bind span context to the request so http.Client.Do uses it for
		// cancellation, deadlines, and trace propagation.
		req = req.WithContext(spanCtx)

		resp, doErr := c.httpClient.Do(req)
		if doErr == nil && resp.StatusCode >= http.StatusInternalServerError {
			// Count server errors against the breaker but hand the open
			// response back for error translation.
			doErr = fmt.Errorf("%s %s: server error %d", method, req.URL.Path, resp.StatusCode)
		}
		c.finishSpan(span, resp, doErr)

		return resp, doErr
	})

	if resp != nil && resp.StatusCode == http.StatusUnauthorized {
		c.invalidateSession(ctx)
	}

	c.recordMetrics(ctx, method, start, resp, err)

	if err != nil && resp == nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	return resp, err
}

// BaseURL returns the base URL configured for this client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Name returns the downstream service identifier, e.g. "todo-api".
// Together with HealthCheck, this method lets Client satisfy the
// ports.HealthChecker interface without importing it.
func (c *Client) Name() string {
	return c.serviceName
}

// CircuitBreakerState returns the current breaker state as a string.
func (c *Client) CircuitBreakerState() string {
	return c.breaker.State().String()
}

// HealthCheck reports the downstream API's availability based on the
// circuit breaker state; no network call is made.
//
// State mapping:
//   - "closed": downstream is operating normally; returns nil.
//   - "half-open": the breaker is probing recovery; returns a degraded error.
//   - "open": downstream is unavailable and requests are rejected; returns
//     a failing error.
func (c *Client) HealthCheck(_ context.Context) error {
	state := c.breaker.State()
	switch state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.serviceName)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.serviceName)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.serviceName, state)
	}
}

// injectToken adds the Authorization header when a token is persisted.
// Requests made while logged out (the auth endpoints) go out bare.
func (c *Client) injectToken(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// invalidateSession clears the persisted credentials in response to a 401.
// After this, IsAuthenticated is false and no further authenticated call
// will carry the stale token.
func (c *Client) invalidateSession(ctx context.Context) {
	if c.tokens == nil {
		return
	}
	c.logger.WarnContext(ctx, "401 from api, clearing session",
		slog.String("peer", c.serviceName),
	)
	c.tokens.Clear()
}

// startSpan creates an OTEL client span for the outbound request and injects
// trace context (W3C Trace Context) into the request headers.
func (c *Client) startSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer("httpclient")

	spanName := fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName)
	ctx, span := tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)

	// Propagate trace context into outbound request headers.
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return ctx, span
}

// finishSpan records the response outcome on the span.
func (c *Client) finishSpan(span trace.Span, resp *http.Response, err error) {
	if resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// recordMetrics records client request duration and count metrics.
// Metrics are recorded outside the circuit breaker so that circuit-open
// rejections are captured. Safe to call with nil metrics.
func (c *Client) recordMetrics(ctx context.Context, method string, start time.Time, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	duration := time.Since(start).Seconds()

	statusCode := 0
	result := "error"
	if resp != nil {
		statusCode = resp.StatusCode
		if statusCode < http.StatusBadRequest {
			result = "success"
		}
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		result = "circuit_open"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(statusCode),
		telemetry.AttrPeerService.String(c.serviceName),
		telemetry.AttrResult.String(result),
	)

	c.metrics.ClientRequestDuration.Record(ctx, duration, attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

// toUint32 safely converts a non-negative int to uint32, clamping at the
// uint32 maximum. Negative values are treated as zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
