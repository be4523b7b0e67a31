package github

import (
	"context"
	"net/url"
	"time"

	"github.com/mbrinkhoff/pontos/httpclient"
	"github.com/mbrinkhoff/pontos/logger"
	"github.com/mbrinkhoff/pontos/observability"
)

// Transport issues requests against the API. *httpclient.Adapter
// satisfies it.
type Transport interface {
	Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error)
	DoStream(ctx context.Context, req httpclient.Request) (*httpclient.StreamResponse, error)
}

// Middleware wraps a Transport with cross-cutting behavior.
type Middleware func(Transport) Transport

// Chain composes middlewares. The first middleware is outermost.
//
// Chain(a, b, c)(t) is equivalent to a(b(c(t))).
func Chain(middlewares ...Middleware) Middleware {
	return func(inner Transport) Transport {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// LoggingMiddleware logs every request at debug level and failures at
// warn level.
func LoggingMiddleware(log *logger.Logger) Middleware {
	return func(inner Transport) Transport {
		return &loggingTransport{inner: inner, log: log}
	}
}

type loggingTransport struct {
	inner Transport
	log   *logger.Logger
}

func (l *loggingTransport) Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	start := time.Now()
	resp, err := l.inner.Do(ctx, req)
	l.record(req, responseStatus(resp, err), time.Since(start), err)
	return resp, err
}

func (l *loggingTransport) DoStream(ctx context.Context, req httpclient.Request) (*httpclient.StreamResponse, error) {
	start := time.Now()
	resp, err := l.inner.DoStream(ctx, req)
	status := httpclient.StatusCode(err)
	if resp != nil {
		status = resp.StatusCode
	}
	l.record(req, status, time.Since(start), err)
	return resp, err
}

func (l *loggingTransport) record(req httpclient.Request, status int, d time.Duration, err error) {
	fields := logger.RequestFields(req.Method, routeOf(req.Path), status, d)
	if err != nil {
		fields[logger.FieldError] = err.Error()
		l.log.Warn("github request failed", fields)
		return
	}
	l.log.Debug("github request", fields)
}

// TracingMiddleware wraps every request in a span.
func TracingMiddleware() Middleware {
	return func(inner Transport) Transport {
		return &tracingTransport{inner: inner}
	}
}

type tracingTransport struct {
	inner Transport
}

func (t *tracingTransport) Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAPIRequest)
	defer span.End()
	t.annotate(ctx, req)

	resp, err := t.inner.Do(ctx, req)
	observability.SetSpanAttribute(ctx, observability.AttrHTTPStatus, responseStatus(resp, err))
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return resp, err
}

func (t *tracingTransport) DoStream(ctx context.Context, req httpclient.Request) (*httpclient.StreamResponse, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanDownload)
	defer span.End()
	t.annotate(ctx, req)

	resp, err := t.inner.DoStream(ctx, req)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrHTTPStatus, resp.StatusCode)
	return resp, nil
}

func (t *tracingTransport) annotate(ctx context.Context, req httpclient.Request) {
	observability.SetSpanAttribute(ctx, observability.AttrHTTPMethod, req.Method)
	observability.SetSpanAttribute(ctx, observability.AttrHTTPRoute, routeOf(req.Path))
}

// MetricsMiddleware records request counts and latencies.
func MetricsMiddleware(metrics *observability.Metrics) Middleware {
	return func(inner Transport) Transport {
		return &metricsTransport{inner: inner, metrics: metrics}
	}
}

type metricsTransport struct {
	inner   Transport
	metrics *observability.Metrics
}

func (m *metricsTransport) Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	start := time.Now()
	resp, err := m.inner.Do(ctx, req)
	m.metrics.RecordRequest(ctx, req.Method, routeOf(req.Path), responseStatus(resp, err), time.Since(start))
	if err != nil {
		m.metrics.RecordError(ctx, errorType(err), "github")
	}
	return resp, err
}

func (m *metricsTransport) DoStream(ctx context.Context, req httpclient.Request) (*httpclient.StreamResponse, error) {
	start := time.Now()
	resp, err := m.inner.DoStream(ctx, req)
	status := httpclient.StatusCode(err)
	if resp != nil {
		status = resp.StatusCode
	}
	m.metrics.RecordRequest(ctx, req.Method, routeOf(req.Path), status, time.Since(start))
	if err != nil {
		m.metrics.RecordError(ctx, errorType(err), "github")
	}
	return resp, err
}

func responseStatus(resp *httpclient.Response, err error) int {
	if resp != nil {
		return resp.StatusCode
	}
	return httpclient.StatusCode(err)
}

func errorType(err error) string {
	switch {
	case httpclient.IsTimeout(err):
		return "timeout"
	case httpclient.IsConnection(err):
		return "connection"
	case httpclient.IsNotFound(err):
		return "not_found"
	case httpclient.IsAuth(err):
		return "auth"
	case httpclient.IsRateLimit(err):
		return "rate_limit"
	case httpclient.IsServerError(err):
		return "server"
	default:
		return "request"
	}
}

// routeOf strips scheme, host and query so Link-header URLs and relative
// paths are reported alike.
func routeOf(path string) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	return u.Path
}
