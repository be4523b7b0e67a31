package process

import (
	"context"
	"time"
)

// Runner executes subprocesses. *Adapter implements it; tests substitute
// fakes that record commands instead of running them.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// Config holds defaults applied to every command of an Adapter.
type Config struct {
	// GracePeriod is used when a command sets none.
	GracePeriod time.Duration `yaml:"grace_period,omitempty" mapstructure:"grace_period"`
	// Timeout bounds each command. Zero means no limit.
	Timeout time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout"`
	// Env is prepended to each command's own Env, so commands can override it.
	Env []string `yaml:"env,omitempty" mapstructure:"env"`
}

// Adapter runs commands with the configured defaults.
type Adapter struct {
	cfg Config
}

var _ Runner = (*Adapter)(nil)

// NewAdapter returns an Adapter for cfg.
func NewAdapter(cfg Config) *Adapter {
	return &Adapter{cfg: cfg}
}

// Run applies the defaults and runs cmd.
func (a *Adapter) Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.GracePeriod == 0 {
		cmd.GracePeriod = a.cfg.GracePeriod
	}
	if len(a.cfg.Env) > 0 {
		cmd.Env = append(append([]string(nil), a.cfg.Env...), cmd.Env...)
	}
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}
	return Run(ctx, cmd)
}
