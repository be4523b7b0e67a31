package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mbrinkhoff/pontos/component"
	"github.com/mbrinkhoff/pontos/httpclient"
	"github.com/mbrinkhoff/pontos/logger"
	"github.com/mbrinkhoff/pontos/observability"
	"github.com/mbrinkhoff/pontos/schema"
)

// Client is a GitHub REST API session. It implements component.Component.
type Client struct {
	cfg       Config
	adapter   *httpclient.Adapter
	transport Transport
	appAuth   *AppAuth
	log       *logger.Logger
	metrics   *observability.Metrics

	Artifacts    *ArtifactsService
	Workflows    *WorkflowsService
	Teams        *TeamsService
	Users        *UsersService
	Apps         *AppsService
	Repositories *RepositoriesService
}

var _ component.Component = (*Client)(nil)

type options struct {
	log         *logger.Logger
	metrics     *observability.Metrics
	tracing     bool
	middlewares []Middleware
	httpOptions []httpclient.Option
	transport   Transport
	appAuth     *AppAuth
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the client logger and logs every request.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMetrics records request and page metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracing wraps requests and listing pages in spans.
func WithTracing() Option {
	return func(o *options) { o.tracing = true }
}

// WithMiddleware adds transport middlewares, innermost last.
func WithMiddleware(mw ...Middleware) Option {
	return func(o *options) { o.middlewares = append(o.middlewares, mw...) }
}

// WithHTTPOptions passes options to the underlying HTTP adapter.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(o *options) { o.httpOptions = append(o.httpOptions, opts...) }
}

// WithTransport replaces the HTTP adapter entirely.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithAppAuth sets the GitHub App credentials used by the Apps service,
// overriding app_id and app_private_key_file from the config.
func WithAppAuth(a *AppAuth) Option {
	return func(o *options) { o.appAuth = a }
}

// New creates a client. No request is made until an operation is called.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.GetGlobalLogger()
	}
	log := o.log.WithComponent("github")

	c := &Client{cfg: cfg, log: log, metrics: o.metrics, appAuth: o.appAuth}

	if c.appAuth == nil && cfg.AppID != "" {
		appAuth, err := LoadAppAuth(cfg.AppID, cfg.AppPrivateKeyFile)
		if err != nil {
			return nil, err
		}
		c.appAuth = appAuth
	}

	base := o.transport
	if base == nil {
		httpCfg := httpclient.Config{
			Name:    "github",
			BaseURL: cfg.APIURL,
			Timeout: cfg.Timeout,
			Headers: map[string]string{
				"Accept":               "application/vnd.github+json",
				"Content-Type":         "application/json",
				"X-GitHub-Api-Version": APIVersion,
			},
		}
		if cfg.Token != "" {
			httpCfg.Auth = httpclient.BearerAuth(cfg.Token)
		}
		adapter, err := httpclient.New(httpCfg, o.httpOptions...)
		if err != nil {
			return nil, fmt.Errorf("github: create http adapter: %w", err)
		}
		c.adapter = adapter
		base = adapter
	}

	var chain []Middleware
	if o.tracing {
		chain = append(chain, TracingMiddleware())
	}
	chain = append(chain, LoggingMiddleware(log))
	if o.metrics != nil {
		chain = append(chain, MetricsMiddleware(o.metrics))
	}
	chain = append(chain, o.middlewares...)
	c.transport = Chain(chain...)(base)

	c.Artifacts = &ArtifactsService{client: c}
	c.Workflows = &WorkflowsService{client: c}
	c.Teams = &TeamsService{client: c}
	c.Users = &UsersService{client: c}
	c.Apps = &AppsService{client: c}
	c.Repositories = &RepositoriesService{client: c}

	return c, nil
}

// Open creates a client, runs fn with it and always stops the client
// afterwards, also when fn fails or panics.
func Open(ctx context.Context, cfg Config, fn func(context.Context, *Client) error, opts ...Option) (err error) {
	c, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := c.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if stopErr := c.Stop(context.WithoutCancel(ctx)); stopErr != nil && err == nil {
			err = stopErr
		}
	}()
	return fn(ctx, c)
}

// Name implements component.Component.
func (c *Client) Name() string { return "github" }

// Start implements component.Component.
func (c *Client) Start(ctx context.Context) error {
	if c.adapter != nil && !c.adapter.IsAvailable(ctx) {
		return fmt.Errorf("github: client already stopped")
	}
	c.log.Debug("github client started", logger.Fields("api_url", c.cfg.APIURL))
	return nil
}

// Stop implements component.Component. Calls made after Stop fail.
func (c *Client) Stop(ctx context.Context) error {
	if c.adapter == nil {
		return nil
	}
	return c.adapter.Close(ctx)
}

// Health implements component.Component.
func (c *Client) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if c.adapter != nil && !c.adapter.IsAvailable(ctx) {
		h.Status = component.StatusUnhealthy
		h.Message = "client stopped"
	}
	return h
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// get fetches and decodes a single record.
func get[T any](ctx context.Context, c *Client, path string, auth *httpclient.AuthConfig) (T, error) {
	var zero T
	resp, err := c.transport.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: path, Auth: auth})
	if err != nil {
		return zero, err
	}
	return schema.Decode[T](resp.Body)
}

// send issues a mutating request and decodes the response record.
func send[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T
	resp, err := c.transport.Do(ctx, httpclient.Request{Method: method, Path: path, Body: body})
	if err != nil {
		return zero, err
	}
	return schema.Decode[T](resp.Body)
}

// exec issues a mutating request whose response body is ignored.
func (c *Client) exec(ctx context.Context, method, path string, body any) error {
	_, err := c.transport.Do(ctx, httpclient.Request{Method: method, Path: path, Body: body})
	return err
}
