package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/fyrsmithlabs/assistantd/internal/config"
)

// Telemetry owns the process MeterProvider.
type Telemetry struct {
	meterProvider *sdkmetric.MeterProvider
}

// New creates a Telemetry instance. If telemetry is disabled, the instance
// is a no-op and Meter delegates to the global provider.
//
// On success with telemetry enabled, the provider is also installed as the
// otel global so package-level otel.Meter calls report through it.
func New(ctx context.Context, cfg config.TelemetryConfig, version string) (*Telemetry, error) {
	t := &Telemetry{}
	if !cfg.Enabled {
		return t, nil
	}
	if cfg.ServiceName == "" || cfg.Endpoint == "" {
		return nil, fmt.Errorf("invalid telemetry config: endpoint and service_name are required")
	}

	mp, err := newMeterProvider(ctx, cfg, newResource(cfg, version))
	if err != nil {
		return nil, fmt.Errorf("meter provider: %w", err)
	}
	t.meterProvider = mp
	otel.SetMeterProvider(mp)

	return t, nil
}

// Meter returns a meter for the given instrumentation scope.
func (t *Telemetry) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if t == nil || t.meterProvider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return t.meterProvider.Meter(name, opts...)
}

// Enabled reports whether an exporting provider is installed.
func (t *Telemetry) Enabled() bool {
	return t != nil && t.meterProvider != nil
}

// Shutdown flushes pending metrics and stops the exporter.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil || t.meterProvider == nil {
		return nil
	}
	if err := t.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	return nil
}
