package process

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/mbrinkhoff/pontos/logger"
)

const defaultGracePeriod = 5 * time.Second

// Run executes cmd and waits for it. Cancelling ctx sends SIGTERM to the
// whole process group and SIGKILL once the grace period has passed.
//
// A non-zero exit returns the Result together with an *ExitError.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("process: binary is required")
	}
	grace := cmd.GracePeriod
	if grace == 0 {
		grace = defaultGracePeriod
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // running caller-built command lines is the point
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.Stdin = cmd.Stdin

	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = grace

	start := time.Now()
	err := c.Run()
	res := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	logger.Debug("process finished", logger.Fields(
		"command", cmd.String(),
		"exit_code", res.ExitCode,
		logger.FieldDuration, res.Duration.Milliseconds(),
	))

	switch {
	case err == nil:
		return res, nil
	case ctx.Err() != nil:
		return res, fmt.Errorf("process: %s: killed by context: %w", cmd.Binary, ctx.Err())
	case c.ProcessState == nil:
		// Never started, e.g. binary not found.
		return res, fmt.Errorf("process: start %s: %w", cmd.Binary, err)
	default:
		return res, &ExitError{
			Command:  cmd.String(),
			ExitCode: res.ExitCode,
			Stderr:   res.ErrOutput(),
			Err:      err,
		}
	}
}
