package observability

import (
	"context"
	"errors"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mbrinkhoff/pontos/component"
)

// Telemetry owns the tracer and meter providers for one command run.
// With telemetry disabled Start does nothing and the global no-op
// providers stay in place.
type Telemetry struct {
	cfg         Config
	service     string
	version     string
	environment string

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

var _ component.Component = (*Telemetry)(nil)

// NewTelemetry creates a telemetry component.
func NewTelemetry(cfg Config, service, version, environment string) *Telemetry {
	cfg.ApplyDefaults()
	return &Telemetry{cfg: cfg, service: service, version: version, environment: environment}
}

// Name returns the component name.
func (t *Telemetry) Name() string { return "telemetry" }

// Start initializes the OTLP tracer and meter providers.
func (t *Telemetry) Start(ctx context.Context) error {
	if !t.cfg.Enabled {
		return nil
	}
	tp, err := InitTracer(ctx, TracerConfig{
		ServiceName:    t.service,
		ServiceVersion: t.version,
		Environment:    t.environment,
		Endpoint:       t.cfg.Endpoint,
		Insecure:       t.cfg.Insecure,
		SampleRate:     t.cfg.SampleRate,
	})
	if err != nil {
		return err
	}
	mp, err := InitMeter(ctx, MeterConfig{
		ServiceName:    t.service,
		ServiceVersion: t.version,
		Environment:    t.environment,
		Endpoint:       t.cfg.Endpoint,
		Insecure:       t.cfg.Insecure,
		Interval:       t.cfg.Interval,
	})
	if err != nil {
		_ = tp.Shutdown(ctx)
		return err
	}
	t.tp, t.mp = tp, mp
	return nil
}

// Stop flushes and shuts down both providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	var errs []error
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
		t.mp = nil
	}
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
		t.tp = nil
	}
	return errors.Join(errs...)
}

// Health reports whether export is active.
func (t *Telemetry) Health(_ context.Context) component.Health {
	h := component.Health{Name: t.Name(), Status: component.StatusHealthy}
	if !t.cfg.Enabled {
		h.Message = "disabled"
	}
	return h
}
