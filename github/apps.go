package github

import (
	"context"

	"github.com/mbrinkhoff/pontos/errors"
)

// AppsService handles GitHub Apps. Its calls authenticate with an app
// token instead of the client token.
type AppsService struct {
	client *Client
}

// Authenticated returns the app the configured credentials belong to.
func (s *AppsService) Authenticated(ctx context.Context) (App, error) {
	if s.client.appAuth == nil {
		return App{}, errors.InvalidInput("app_id", "GitHub App credentials are not configured")
	}
	return get[App](ctx, s.client, "/app", s.client.appAuth.authConfig())
}
