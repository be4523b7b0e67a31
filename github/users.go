package github

import (
	"context"

	"github.com/mbrinkhoff/pontos/validation"
)

// UsersService handles user accounts.
type UsersService struct {
	client *Client
}

// Get returns a user by login.
func (s *UsersService) Get(ctx context.Context, login string) (User, error) {
	if err := validation.New().Name("username", login).Validate(); err != nil {
		return User{}, err
	}
	return get[User](ctx, s.client, escapePath("users", login), nil)
}

// Authenticated returns the user the token belongs to.
func (s *UsersService) Authenticated(ctx context.Context) (User, error) {
	return get[User](ctx, s.client, "/user", nil)
}
