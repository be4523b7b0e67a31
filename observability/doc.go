// Package observability provides OpenTelemetry tracing and metrics for
// pontos API traffic.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.TracerConfig{ServiceName: "pontos", Endpoint: "localhost:4318", Insecure: true})
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanAPIRequest)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.MeterConfig{ServiceName: "pontos", Endpoint: "localhost:4318", Insecure: true})
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("pontos"))
//	metrics.RecordRequest(ctx, "GET", "/repos/{owner}/{repo}/actions/artifacts", 200, duration)
//
// Telemetry is a component.Component that initializes both providers from
// Config and shuts them down on Stop.
package observability
