package git

import (
	"context"
	"strconv"
	"strings"

	"github.com/mbrinkhoff/pontos/errors"
	"github.com/mbrinkhoff/pontos/logger"
	"github.com/mbrinkhoff/pontos/observability"
	"github.com/mbrinkhoff/pontos/process"
)

const defaultBinary = "git"

// Git runs git commands in a working directory.
type Git struct {
	cwd    string
	binary string
	runner process.Runner
	log    *logger.Logger
}

// Option configures a Git.
type Option func(*Git)

// WithCwd sets the working directory. Empty means the current directory.
func WithCwd(dir string) Option {
	return func(g *Git) { g.cwd = dir }
}

// WithRunner replaces the process runner.
func WithRunner(r process.Runner) Option {
	return func(g *Git) { g.runner = r }
}

// WithBinary sets the git executable.
func WithBinary(path string) Option {
	return func(g *Git) { g.binary = path }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(g *Git) { g.log = l }
}

// New creates a Git.
func New(opts ...Option) *Git {
	g := &Git{binary: defaultBinary}
	for _, opt := range opts {
		opt(g)
	}
	if g.runner == nil {
		// Fail instead of blocking on a credential prompt.
		g.runner = process.NewAdapter(process.Config{Env: []string{"GIT_TERMINAL_PROMPT=0"}})
	}
	if g.log == nil {
		g.log = logger.GetGlobalLogger()
	}
	g.log = g.log.WithComponent("git")
	return g
}

// Cwd returns the working directory.
func (g *Git) Cwd() string {
	return g.cwd
}

// Init creates an empty repository.
func (g *Git) Init(ctx context.Context, bare bool) error {
	args := []string{"init"}
	if bare {
		args = append(args, "--bare")
	}
	_, err := g.exec(ctx, args...)
	return err
}

// CloneOptions configures Clone.
type CloneOptions struct {
	// Remote names the remote instead of "origin".
	Remote string
	// Branch checks out a branch other than the default.
	Branch string
	// Depth creates a shallow clone with that many commits.
	Depth int
}

// Clone clones url into dest.
func (g *Git) Clone(ctx context.Context, url, dest string, opts CloneOptions) error {
	args := []string{"clone"}
	if opts.Remote != "" {
		args = append(args, "-o", opts.Remote)
	}
	if opts.Branch != "" {
		args = append(args, "-b", opts.Branch)
	}
	if opts.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(opts.Depth))
	}
	args = append(args, url, dest)
	_, err := g.exec(ctx, args...)
	return err
}

// CreateBranch creates and checks out a branch, optionally from startPoint.
func (g *Git) CreateBranch(ctx context.Context, name, startPoint string) error {
	args := []string{"checkout", "-b", name}
	if startPoint != "" {
		args = append(args, startPoint)
	}
	_, err := g.exec(ctx, args...)
	return err
}

// RebaseOptions configures Rebase.
type RebaseOptions struct {
	// Head is the branch to rebase. Defaults to the current branch.
	Head string
	// Onto rebases onto this commit instead of base.
	Onto string
}

// Rebase rebases onto base.
func (g *Git) Rebase(ctx context.Context, base string, opts RebaseOptions) error {
	args := []string{"rebase"}
	if opts.Onto != "" {
		args = append(args, "--onto", opts.Onto)
	}
	args = append(args, base)
	if opts.Head != "" {
		args = append(args, opts.Head)
	}
	_, err := g.exec(ctx, args...)
	return err
}

// PushOptions configures Push.
type PushOptions struct {
	Remote     string
	Branch     string
	Force      bool
	FollowTags bool
}

// Push pushes to a remote. Branch is ignored unless Remote is set.
func (g *Git) Push(ctx context.Context, opts PushOptions) error {
	args := []string{"push"}
	if opts.FollowTags {
		args = append(args, "--follow-tags")
	}
	if opts.Force {
		args = append(args, "--force")
	}
	if opts.Remote != "" {
		args = append(args, opts.Remote)
		if opts.Branch != "" {
			args = append(args, opts.Branch)
		}
	}
	_, err := g.exec(ctx, args...)
	return err
}

// Config sets a repository configuration value.
func (g *Git) Config(ctx context.Context, key, value string) error {
	_, err := g.exec(ctx, "config", key, value)
	return err
}

// CherryPick applies the given commits.
func (g *Git) CherryPick(ctx context.Context, commits ...string) error {
	if len(commits) == 0 {
		return errors.MissingField("commits")
	}
	_, err := g.exec(ctx, append([]string{"cherry-pick"}, commits...)...)
	return err
}

// Add stages files.
func (g *Git) Add(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return errors.MissingField("files")
	}
	_, err := g.exec(ctx, append([]string{"add"}, files...)...)
	return err
}

// CommitOptions configures Commit.
type CommitOptions struct {
	// NoVerify skips the pre-commit and commit-msg hooks.
	NoVerify bool
	// SigningKey signs the commit with this GPG key.
	SigningKey string
}

// Commit records staged changes.
func (g *Git) Commit(ctx context.Context, message string, opts CommitOptions) error {
	if strings.TrimSpace(message) == "" {
		return errors.MissingField("message")
	}
	args := []string{"commit"}
	if opts.NoVerify {
		args = append(args, "--no-verify")
	}
	if opts.SigningKey != "" {
		args = append(args, "-S"+opts.SigningKey)
	}
	args = append(args, "-m", message)
	_, err := g.exec(ctx, args...)
	return err
}

// TagOptions configures Tag.
type TagOptions struct {
	// Message creates an annotated tag.
	Message string
	// SigningKey signs the tag with this GPG key.
	SigningKey string
}

// Tag creates a tag at HEAD.
func (g *Git) Tag(ctx context.Context, name string, opts TagOptions) error {
	args := []string{"tag"}
	if opts.SigningKey != "" {
		args = append(args, "-u", opts.SigningKey)
	}
	if opts.Message != "" {
		args = append(args, "-m", opts.Message)
	}
	args = append(args, name)
	_, err := g.exec(ctx, args...)
	return err
}

// ListTags returns all tags.
func (g *Git) ListTags(ctx context.Context) ([]string, error) {
	out, err := g.exec(ctx, "tag", "-l")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// Version returns the installed git version, e.g. "2.39.2".
func (g *Git) Version(ctx context.Context) (string, error) {
	out, err := g.exec(ctx, "--version")
	if err != nil {
		return "", err
	}
	fields := strings.Fields(out)
	if len(fields) < 3 || fields[0] != "git" || fields[1] != "version" {
		return "", errors.Git("--version", 0, "", nil).WithDetail("output", out)
	}
	return fields[2], nil
}

// exec runs git with args and returns trimmed stdout.
func (g *Git) exec(ctx context.Context, args ...string) (string, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanGit)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrGitCommand, args[0])

	result, err := g.runner.Run(ctx, process.Command{
		Binary: g.binary,
		Args:   args,
		Dir:    g.cwd,
	})
	if err != nil {
		exitCode := -1
		if result != nil {
			exitCode = result.ExitCode
		}
		stderr := result.ErrOutput()
		observability.SetSpanAttribute(ctx, observability.AttrExitCode, exitCode)
		observability.SetSpanError(ctx, err)
		g.log.Warn("git command failed", logger.Fields(
			logger.FieldOperation, args[0],
			"exit_code", exitCode,
			"stderr", stderr,
		))
		return "", errors.Git(args[0], exitCode, stderr, err)
	}

	g.log.Debug("git command", logger.Fields(
		logger.FieldOperation, args[0],
		logger.FieldDuration, result.Duration.Milliseconds(),
	))
	return result.Output(), nil
}

func lines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
