package process

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Command is one subprocess invocation.
type Command struct {
	// Binary is the executable, looked up in PATH when it has no slash.
	Binary string
	Args   []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds extra KEY=value pairs on top of the inherited environment.
	Env   []string
	Stdin io.Reader
	// GracePeriod is the time between SIGTERM and SIGKILL on cancellation.
	// Zero means 5 seconds.
	GracePeriod time.Duration
}

// String renders the command line, quoting arguments that contain spaces.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Binary)
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Result is the outcome of a finished subprocess.
type Result struct {
	Stdout []byte
	Stderr []byte
	// ExitCode is -1 when the process never started or was killed.
	ExitCode int
	Duration time.Duration
}

// Output returns stdout without surrounding whitespace.
func (r *Result) Output() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Stdout))
}

// ErrOutput returns stderr without surrounding whitespace.
func (r *Result) ErrOutput() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Stderr))
}

// ExitError is returned by Run when the process exits with a non-zero code.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("process: %s: exit code %d", e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExitError) Unwrap() error { return e.Err }
