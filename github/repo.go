package github

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mbrinkhoff/pontos/errors"
	"github.com/mbrinkhoff/pontos/validation"
)

// Repo identifies a repository by owner and name.
type Repo struct {
	Owner string `json:"owner" validate:"required,ghname,max=100"`
	Name  string `json:"name" validate:"required,ghname,max=100"`
}

// ParseRepo parses an "owner/name" identifier.
func ParseRepo(s string) (Repo, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || strings.Contains(name, "/") {
		return Repo{}, errors.InvalidInput("repository", fmt.Sprintf("%q is not of the form owner/name", s))
	}
	r := Repo{Owner: owner, Name: name}
	if err := r.Validate(); err != nil {
		return Repo{}, err
	}
	return r, nil
}

// MustParseRepo is like ParseRepo but panics on error.
func MustParseRepo(s string) Repo {
	r, err := ParseRepo(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns "owner/name".
func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// Validate checks that both parts are present and well formed.
func (r Repo) Validate() error {
	return validation.Validate(r)
}

// path returns /repos/{owner}/{name}/{segments...}.
func (r Repo) path(segments ...string) string {
	return escapePath(append([]string{"repos", r.Owner, r.Name}, segments...)...)
}

// escapePath joins escaped path segments into an absolute path.
func escapePath(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
