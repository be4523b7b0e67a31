package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mbrinkhoff/pontos/validation"
)

// TeamsService handles organization teams.
type TeamsService struct {
	client *Client
}

// List lists the teams of an organization.
func (s *TeamsService) List(org string) *Pager[Team] {
	if err := validation.New().Name("org", org).Validate(); err != nil {
		return failedPager[Team](err)
	}
	return newPager[Team](s.client, escapePath("orgs", org, "teams"), "", nil)
}

// Get returns a team by slug.
func (s *TeamsService) Get(ctx context.Context, org, slug string) (Team, error) {
	if err := validateTeam(org, slug); err != nil {
		return Team{}, err
	}
	return get[Team](ctx, s.client, escapePath("orgs", org, "teams", slug), nil)
}

// Index lists every team of an organization into a TeamIndex.
func (s *TeamsService) Index(ctx context.Context, org string) (*TeamIndex, error) {
	teams, err := s.List(org).All(ctx)
	if err != nil {
		return nil, err
	}
	return NewTeamIndex(teams), nil
}

// AddMember adds or updates a user's membership in a team.
func (s *TeamsService) AddMember(ctx context.Context, org, slug, user string, role TeamRole) (Membership, error) {
	if err := validateTeam(org, slug); err != nil {
		return Membership{}, err
	}
	if role == "" {
		role = TeamRoleMember
	}
	v := validation.New().Name("username", user).OneOf("role", string(role), role.Values())
	if err := v.Validate(); err != nil {
		return Membership{}, err
	}
	path := escapePath("orgs", org, "teams", slug, "memberships", user)
	return send[Membership](ctx, s.client, http.MethodPut, path, map[string]TeamRole{"role": role})
}

// RemoveMember removes a user from a team.
func (s *TeamsService) RemoveMember(ctx context.Context, org, slug, user string) error {
	if err := validateTeam(org, slug); err != nil {
		return err
	}
	if err := validation.New().Name("username", user).Validate(); err != nil {
		return err
	}
	return s.client.exec(ctx, http.MethodDelete, escapePath("orgs", org, "teams", slug, "memberships", user), nil)
}

func validateTeam(org, slug string) error {
	if err := validation.New().Name("org", org).Name("team_slug", slug).Validate(); err != nil {
		return err
	}
	return nil
}

// TeamIndex resolves the team hierarchy by id.
type TeamIndex struct {
	teams map[int64]Team
	order []int64
}

// NewTeamIndex indexes teams by id. Later duplicates replace earlier ones.
func NewTeamIndex(teams []Team) *TeamIndex {
	idx := &TeamIndex{teams: make(map[int64]Team, len(teams))}
	for _, t := range teams {
		if _, ok := idx.teams[t.ID]; !ok {
			idx.order = append(idx.order, t.ID)
		}
		idx.teams[t.ID] = t
	}
	return idx
}

// Len returns the number of indexed teams.
func (idx *TeamIndex) Len() int { return len(idx.teams) }

// Get returns the team with the given id.
func (idx *TeamIndex) Get(id int64) (Team, bool) {
	t, ok := idx.teams[id]
	return t, ok
}

// Parent returns the indexed parent of a team.
func (idx *TeamIndex) Parent(t Team) (Team, bool) {
	id, ok := t.ParentID()
	if !ok {
		return Team{}, false
	}
	return idx.Get(id)
}

// Children returns the direct children of a team in listing order.
func (idx *TeamIndex) Children(id int64) []Team {
	var children []Team
	for _, childID := range idx.order {
		t := idx.teams[childID]
		if pid, ok := t.ParentID(); ok && pid == id {
			children = append(children, t)
		}
	}
	return children
}

// Roots returns the teams without a parent in listing order.
func (idx *TeamIndex) Roots() []Team {
	var roots []Team
	for _, id := range idx.order {
		if t := idx.teams[id]; t.Parent == nil {
			roots = append(roots, t)
		}
	}
	return roots
}

// Ancestors returns the chain of parents of a team, nearest first. It stops
// at the first parent that is not indexed and fails if the chain loops.
func (idx *TeamIndex) Ancestors(id int64) ([]Team, error) {
	t, ok := idx.teams[id]
	if !ok {
		return nil, fmt.Errorf("github: team %d not indexed", id)
	}
	visited := map[int64]bool{id: true}
	var ancestors []Team
	for {
		parent, ok := idx.Parent(t)
		if !ok {
			return ancestors, nil
		}
		if visited[parent.ID] {
			return ancestors, fmt.Errorf("github: team hierarchy of %q contains a cycle at %q", idx.teams[id].Slug, parent.Slug)
		}
		visited[parent.ID] = true
		ancestors = append(ancestors, parent)
		t = parent
	}
}
