// Package execx runs external commands and reads pseudo-files with a bounded
// timeout. Every call returns a Result envelope instead of an error so callers
// can decide per-outcome what to degrade to.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultTimeout bounds every external call unless the caller overrides it.
const DefaultTimeout = 30 * time.Second

// Outcome classifies how an external call ended.
type Outcome int

const (
	// OK means the command ran and exited zero.
	OK Outcome = iota
	// Failed means the command ran and exited nonzero.
	Failed
	// NotFound means the binary or file does not exist.
	NotFound
	// Timeout means the command was killed after the deadline.
	Timeout
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Failed:
		return "failed"
	case NotFound:
		return "not found"
	case Timeout:
		return "timeout"
	}
	return "unknown"
}

// Result is the uniform envelope for every external invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Outcome  Outcome
}

// OK reports whether the call succeeded with output available.
func (r Result) OK() bool {
	return r.Outcome == OK
}

// Runner is the access surface probes use to reach the outside world. A fake
// implementation backs the probe tests.
type Runner interface {
	// Run executes a command and waits for it, bounded by the timeout.
	Run(name string, args ...string) Result
	// RunPrivileged executes a command through non-interactive sudo. Hosts
	// without passwordless elevation fail fast into a Failed result.
	RunPrivileged(name string, args ...string) Result
	// ReadFile reads and trims a file, reporting ok=false when it cannot.
	ReadFile(path string) (string, bool)
	// Glob expands a filesystem pattern, sorted, nil on no match.
	Glob(pattern string) []string
	// LookPath reports whether a tool is available on PATH.
	LookPath(name string) bool
}

// System is the real Runner backed by os/exec and the local filesystem.
type System struct {
	Timeout time.Duration
}

// NewSystem returns a Runner with the given per-call timeout; zero means
// DefaultTimeout.
func NewSystem(timeout time.Duration) *System {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &System{Timeout: timeout}
}

func (s *System) Run(name string, args ...string) Result {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return Result{
			Stderr:   fmt.Sprintf("command timed out after %s", s.Timeout),
			ExitCode: -1,
			Outcome:  Timeout,
		}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{
				Stdout:   strings.TrimSpace(stdout.String()),
				Stderr:   strings.TrimSpace(stderr.String()),
				ExitCode: exitErr.ExitCode(),
				Outcome:  Failed,
			}
		}
		if errors.Is(err, exec.ErrNotFound) {
			return Result{Stderr: err.Error(), ExitCode: -1, Outcome: NotFound}
		}
		return Result{Stderr: err.Error(), ExitCode: -1, Outcome: Failed}
	}

	return Result{
		Stdout:  strings.TrimSpace(stdout.String()),
		Stderr:  strings.TrimSpace(stderr.String()),
		Outcome: OK,
	}
}

func (s *System) RunPrivileged(name string, args ...string) Result {
	if !s.LookPath("sudo") {
		return Result{Stderr: "sudo not available", ExitCode: -1, Outcome: NotFound}
	}
	return s.Run("sudo", append([]string{"-n", name}, args...)...)
}

func (s *System) ReadFile(path string) (string, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

func (s *System) Glob(pattern string) []string {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}

func (s *System) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
