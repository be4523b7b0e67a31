package github

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/mbrinkhoff/pontos/errors"
	"github.com/mbrinkhoff/pontos/httpclient"
	"github.com/mbrinkhoff/pontos/logger"
)

func TestParseRepo(t *testing.T) {
	tests := []struct {
		in      string
		want    Repo
		wantErr bool
	}{
		{"foo/bar", Repo{Owner: "foo", Name: "bar"}, false},
		{" greenbone/pontos.git ", Repo{Owner: "greenbone", Name: "pontos.git"}, false},
		{"foo", Repo{}, true},
		{"foo/", Repo{}, true},
		{"/bar", Repo{}, true},
		{"foo/bar/baz", Repo{}, true},
		{"fo o/bar", Repo{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRepo(tt.in)
			if tt.wantErr {
				if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
					t.Errorf("expected INVALID_INPUT, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepo() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if got.String() != strings.TrimSpace(tt.in) {
				t.Errorf("String() = %q", got.String())
			}
		})
	}
}

func TestConfigDefaultsAndValidation(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.APIURL != DefaultAPIURL || cfg.Timeout != 30*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}

	cfg.AppID = "12345"
	if err := cfg.Validate(); !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected app settings error, got %v", err)
	}

	bad := Config{APIURL: "not a url", Timeout: time.Second}
	if err := bad.Validate(); err == nil {
		t.Error("expected api_url error")
	}
}

func TestClientSendsDefaultHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		want := map[string]string{
			"Authorization":        "Bearer secret",
			"Accept":               "application/vnd.github+json",
			"Content-Type":         "application/json",
			"X-GitHub-Api-Version": APIVersion,
		}
		for k, v := range want {
			if got := r.Header.Get(k); got != v {
				t.Errorf("header %s = %q, want %q", k, got, v)
			}
		}
		writeJSON(t, w, http.StatusOK, userFixture("octocat", 1))
	})

	if _, err := c.Users.Authenticated(context.Background()); err != nil {
		t.Fatalf("Authenticated() error: %v", err)
	}
}

func TestUsersGet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, userFixture("octocat", 583231))
	})

	u, err := c.Users.Get(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	want := User{
		Login:     "octocat",
		ID:        583231,
		NodeID:    "U_octocat",
		AvatarURL: "https://avatars.githubusercontent.com/u/1",
		URL:       "https://api.github.com/users/octocat",
		HTMLURL:   "https://github.com/octocat",
		Type:      "User",
	}
	if u != want {
		t.Errorf("got %+v, want %+v", u, want)
	}
}

func TestRepositoriesGetAndUpdate(t *testing.T) {
	repo := map[string]any{
		"id":          1296269,
		"node_id":     "MDEwOlJlcG9zaXRvcnkxMjk2MjY5",
		"name":        "bar",
		"full_name":   "foo/bar",
		"owner":       userFixture("foo", 2),
		"private":     false,
		"html_url":    "https://github.com/foo/bar",
		"description": nil,
		"fork":        false,
		"url":         "https://api.github.com/repos/foo/bar",
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/foo/bar" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method == http.MethodPatch {
			repo["description"] = "updated"
		}
		writeJSON(t, w, http.StatusOK, repo)
	})

	got, err := c.Repositories.Get(context.Background(), fooBar)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.FullName != "foo/bar" || got.Owner.Login != "foo" || got.Description != "" {
		t.Errorf("unexpected repository %+v", got)
	}

	desc := "updated"
	updated, err := c.Repositories.Update(context.Background(), fooBar, RepositoryUpdate{Description: &desc})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Description != "updated" {
		t.Errorf("unexpected description %q", updated.Description)
	}

	if _, err := c.Repositories.Update(context.Background(), fooBar, RepositoryUpdate{}); !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for empty update, got %v", err)
	}
}

func TestOpenStopsClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, userFixture("octocat", 1))
	}))
	defer srv.Close()
	cfg := Config{APIURL: srv.URL, Token: "secret"}

	var kept *Client
	errWork := errors.New("work failed")
	err := Open(context.Background(), cfg, func(ctx context.Context, c *Client) error {
		kept = c
		if _, err := c.Users.Authenticated(ctx); err != nil {
			return err
		}
		return errWork
	}, WithLogger(logger.Nop()))
	if !errors.Is(err, errWork) {
		t.Fatalf("expected work error, got %v", err)
	}

	_, err = kept.Users.Authenticated(context.Background())
	if !errors.Is(err, httpclient.ErrClosed) {
		t.Errorf("expected ErrClosed after Open returned, got %v", err)
	}
	if h := kept.Health(context.Background()); h.Message != "client stopped" {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestOpenStopsClientOnPanic(t *testing.T) {
	var kept *Client
	func() {
		defer func() { _ = recover() }()
		_ = Open(context.Background(), Config{}, func(ctx context.Context, c *Client) error {
			kept = c
			panic("boom")
		}, WithLogger(logger.Nop()))
	}()

	if kept == nil {
		t.Fatal("callback was not invoked")
	}
	if kept.adapter.IsAvailable(context.Background()) {
		t.Error("expected client to be stopped after panic")
	}
}

func TestAppsAuthenticated(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	keyFile := filepath.Join(t.TempDir(), "app.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	if err := os.WriteFile(keyFile, pemBytes, 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/app" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (any, error) {
			return &key.PublicKey, nil
		}, jwt.WithValidMethods([]string{"RS256"}))
		if err != nil {
			t.Errorf("invalid app token: %v", err)
		}
		if claims.Issuer != "12345" {
			t.Errorf("unexpected issuer %q", claims.Issuer)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"id":           12345,
			"slug":         "release-bot",
			"node_id":      "MDExOkludGVncmF0aW9uMQ==",
			"owner":        userFixture("foo", 2),
			"name":         "Release Bot",
			"description":  nil,
			"external_url": "https://example.com",
			"html_url":     "https://github.com/apps/release-bot",
			"created_at":   "2017-07-08T16:18:44-04:00",
			"updated_at":   "2017-07-08T16:18:44-04:00",
			"events":       []string{"push", "pull_request"},
		})
	}))
	defer srv.Close()

	c, err := New(Config{APIURL: srv.URL, Token: "secret", AppID: "12345", AppPrivateKeyFile: keyFile}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer func() { _ = c.Stop(context.Background()) }()

	app, err := c.Apps.Authenticated(context.Background())
	if err != nil {
		t.Fatalf("Authenticated() error: %v", err)
	}
	if app.Slug != "release-bot" || app.Owner.Login != "foo" || len(app.Events) != 2 {
		t.Errorf("unexpected app %+v", app)
	}
}

func TestAppsWithoutCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.Apps.Authenticated(context.Background())
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestNewAppAuthRejectsBadKey(t *testing.T) {
	_, err := NewAppAuth("1", []byte("not a key"))
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(inner Transport) Transport {
			return transportFunc(func(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
				order = append(order, name)
				return inner.Do(ctx, req)
			})
		}
	}
	base := transportFunc(func(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
		order = append(order, "base")
		return &httpclient.Response{StatusCode: http.StatusOK}, nil
	})

	_, _ = Chain(mark("a"), mark("b"))(base).Do(context.Background(), httpclient.Request{})
	if strings.Join(order, ",") != "a,b,base" {
		t.Errorf("unexpected order %v", order)
	}
}

type transportFunc func(context.Context, httpclient.Request) (*httpclient.Response, error)

func (f transportFunc) Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	return f(ctx, req)
}

func (f transportFunc) DoStream(context.Context, httpclient.Request) (*httpclient.StreamResponse, error) {
	return nil, errors.New("not supported")
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)

	fail := false
	base := transportFunc(func(context.Context, httpclient.Request) (*httpclient.Response, error) {
		if fail {
			return nil, errors.New("connection reset")
		}
		return &httpclient.Response{StatusCode: http.StatusOK}, nil
	})
	tr := LoggingMiddleware(log)(base)
	ctx := context.Background()

	_, _ = tr.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "https://api.github.com/repos/foo/bar?page=2"})
	fail = true
	_, _ = tr.Do(ctx, httpclient.Request{Method: http.MethodDelete, Path: "/repos/foo/bar/actions/artifacts/1"})

	var entries []map[string]any
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var e map[string]any
		if err := dec.Decode(&e); err != nil {
			t.Fatalf("decode log line: %v", err)
		}
		entries = append(entries, e)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(entries), buf.String())
	}
	if entries[0]["path"] != "/repos/foo/bar" || entries[0]["status"] != float64(200) || entries[0]["level"] != "debug" {
		t.Errorf("unexpected success entry %v", entries[0])
	}
	if entries[1]["level"] != "warn" || entries[1]["error"] != "connection reset" {
		t.Errorf("unexpected failure entry %v", entries[1])
	}
	if _, ok := entries[1]["status"]; ok {
		t.Errorf("failure without response should not carry a status: %v", entries[1])
	}
}
