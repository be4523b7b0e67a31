package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/mbrinkhoff/pontos/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment.
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded for GitHub API traffic.
type Metrics struct {
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	pageTotal       metric.Int64Counter
	itemTotal       metric.Int64Counter
	downloadBytes   metric.Int64Counter
	errorTotal      metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requestTotal, err := meter.Int64Counter("pontos.api.requests",
		metric.WithDescription("Total number of GitHub API requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pontos.api.requests counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("pontos.api.request.duration",
		metric.WithDescription("Duration of GitHub API requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pontos.api.request.duration histogram: %w", err)
	}

	pageTotal, err := meter.Int64Counter("pontos.api.pages",
		metric.WithDescription("Listing pages fetched"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pontos.api.pages counter: %w", err)
	}

	itemTotal, err := meter.Int64Counter("pontos.api.items",
		metric.WithDescription("Records decoded from listing pages"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pontos.api.items counter: %w", err)
	}

	downloadBytes, err := meter.Int64Counter("pontos.download.bytes",
		metric.WithDescription("Bytes received by streaming downloads"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pontos.download.bytes counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("pontos.errors",
		metric.WithDescription("Total errors by type and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pontos.errors counter: %w", err)
	}

	return &Metrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		pageTotal:       pageTotal,
		itemTotal:       itemTotal,
		downloadBytes:   downloadBytes,
		errorTotal:      errorTotal,
	}, nil
}

// RecordRequest records a completed API request. A status of 0 means the
// request failed before a response arrived.
func (m *Metrics) RecordRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
	))
}

// RecordPage records one fetched listing page and the records it held.
func (m *Metrics) RecordPage(ctx context.Context, resource string, items int) {
	attrs := metric.WithAttributes(attribute.String("resource", resource))
	m.pageTotal.Add(ctx, 1, attrs)
	m.itemTotal.Add(ctx, int64(items), attrs)
}

// RecordDownload records bytes received by a streaming download.
func (m *Metrics) RecordDownload(ctx context.Context, bytes int64) {
	m.downloadBytes.Add(ctx, bytes)
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
