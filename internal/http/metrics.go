package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/assistantd/internal/logging"
)

const httpInstrumentationName = "github.com/fyrsmithlabs/assistantd/internal/http"

// HTTPMetrics holds all HTTP-related metrics.
type HTTPMetrics struct {
	meter          metric.Meter
	logger         *logging.Logger
	requestsTotal  metric.Int64Counter
	requestDur     metric.Float64Histogram
	responseSize   metric.Int64Histogram
	activeRequests metric.Int64UpDownCounter
	guideLookups   metric.Int64Counter
}

// NewHTTPMetrics creates a new HTTPMetrics instance.
// A nil meter uses the global meter provider.
func NewHTTPMetrics(meter metric.Meter, logger *logging.Logger) *HTTPMetrics {
	if meter == nil {
		meter = otel.Meter(httpInstrumentationName)
	}
	if logger == nil {
		logger = logging.Nop()
	}

	m := &HTTPMetrics{
		meter:  meter,
		logger: logger,
	}
	m.init()
	return m
}

func (m *HTTPMetrics) init() {
	ctx := context.Background()
	var err error

	m.requestsTotal, err = m.meter.Int64Counter(
		"assistantd.http.requests_total",
		metric.WithDescription("Total HTTP requests labeled by method, endpoint, and status code."),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		m.logger.Warn(ctx, "failed to create requests counter", zap.Error(err))
	}

	m.requestDur, err = m.meter.Float64Histogram(
		"assistantd.http.request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds, labeled by method, endpoint, and status."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0),
	)
	if err != nil {
		m.logger.Warn(ctx, "failed to create duration histogram", zap.Error(err))
	}

	m.responseSize, err = m.meter.Int64Histogram(
		"assistantd.http.response_size_bytes",
		metric.WithDescription("HTTP response body size in bytes."),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(100, 500, 1000, 5000, 10000),
	)
	if err != nil {
		m.logger.Warn(ctx, "failed to create response size histogram", zap.Error(err))
	}

	m.activeRequests, err = m.meter.Int64UpDownCounter(
		"assistantd.http.active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		m.logger.Warn(ctx, "failed to create active requests gauge", zap.Error(err))
	}

	m.guideLookups, err = m.meter.Int64Counter(
		"assistantd.guides.lookups_total",
		metric.WithDescription("Guide lookups by identifier, labeled by outcome (found, unknown). A rising unknown rate means clients hold retired or future identifiers."),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		m.logger.Warn(ctx, "failed to create guide lookup counter", zap.Error(err))
	}
}

// RecordLookup counts one guide lookup.
func (m *HTTPMetrics) RecordLookup(ctx context.Context, found bool) {
	if m == nil || m.guideLookups == nil {
		return
	}
	outcome := "found"
	if !found {
		outcome = "unknown"
	}
	m.guideLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// MetricsMiddleware returns an Echo middleware that records HTTP metrics.
// Recording is deferred so a panicking handler is still counted (as a 500)
// and the active request gauge always comes back down.
func (m *HTTPMetrics) MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			ctx := req.Context()

			if m.activeRequests != nil {
				m.activeRequests.Add(ctx, 1)
				defer m.activeRequests.Add(ctx, -1)
			}

			panicked := true
			defer func() {
				status := c.Response().Status
				if panicked {
					status = http.StatusInternalServerError
				}
				m.record(ctx, req.Method, c.Path(), status, c.Response().Size, time.Since(start))
			}()

			err := next(c)
			if err != nil {
				c.Error(err)
			}
			panicked = false
			return nil
		}
	}
}

func (m *HTTPMetrics) record(ctx context.Context, method, path string, status int, size int64, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("endpoint", normalizePath(path)),
		attribute.Int("status", status),
	)

	if m.requestsTotal != nil {
		m.requestsTotal.Add(ctx, 1, attrs)
	}
	if m.requestDur != nil {
		m.requestDur.Record(ctx, d.Seconds(), attrs)
	}
	if m.responseSize != nil {
		m.responseSize.Record(ctx, size, attrs)
	}
}

// normalizePath maps the matched route pattern to a metric label.
// Echo reports patterns such as /api/v1/guides/:id, so identifiers never
// reach the label set. Unmatched requests have no pattern.
func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
