package github

import (
	"context"
	"net/http"

	"github.com/mbrinkhoff/pontos/errors"
)

// RepositoriesService handles repositories.
type RepositoriesService struct {
	client *Client
}

// Get returns a repository.
func (s *RepositoriesService) Get(ctx context.Context, repo Repo) (Repository, error) {
	if err := repo.Validate(); err != nil {
		return Repository{}, err
	}
	return get[Repository](ctx, s.client, repo.path(), nil)
}

// Update applies a partial update and returns the updated repository.
func (s *RepositoriesService) Update(ctx context.Context, repo Repo, update RepositoryUpdate) (Repository, error) {
	if err := repo.Validate(); err != nil {
		return Repository{}, err
	}
	if update.isEmpty() {
		return Repository{}, errors.InvalidInput("update", "no fields to change")
	}
	return send[Repository](ctx, s.client, http.MethodPatch, repo.path(), update)
}
