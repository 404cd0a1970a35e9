// Package run spawns external processes with a controlled environment and
// maps their exit status onto Go errors.
package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/corvank/sdkfetch/internal/debug"
)

// Command describes a single external process invocation.
type Command struct {
	// Path is the executable to run, resolved via PATH if not absolute.
	Path string
	// Args are the arguments passed to the executable (argv[1:]).
	Args []string
	// Dir is the working directory. Empty means the caller's directory.
	Dir string
	// Env holds environment overrides merged over the ambient environment.
	// A fresh environment slice is built per invocation; the ambient
	// environment is never mutated.
	Env map[string]string
}

// Runner executes commands. The concrete implementation spawns OS
// processes; tests substitute a recording fake.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExitError reports a process that ran to completion with a nonzero exit
// code. The exit code is the only failure signal carried; the process's
// own stderr was already passed through to the caller's streams.
type ExitError struct {
	// Path is the executable that failed.
	Path string
	// Code is the nonzero exit code.
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Path, e.Code)
}

// ExitCode extracts the exit code from an error returned by a Runner.
// The second return value reports whether err carries an exit code.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// ExecRunner runs commands as real OS processes with stdout/stderr
// inherited from the parent for pass-through visibility.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run spawns the command and blocks until it exits. It returns nil on exit
// code 0, an *ExitError on a nonzero exit code, and a wrapped error when
// the process could not be started at all.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	debug.Debug("spawn: %s", shellquote.Join(append([]string{cmd.Path}, cmd.Args...)...))
	if cmd.Dir != "" {
		debug.DebugValue("workdir", cmd.Dir)
	}

	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &ExitError{Path: cmd.Path, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}
	return nil
}

// mergeEnv builds a fresh environment slice from the ambient environment
// with the given overrides applied. Later entries win in os/exec, so
// overrides are appended after the ambient values.
func mergeEnv(overrides map[string]string) []string {
	env := os.Environ()
	if len(overrides) == 0 {
		return env
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	merged := make([]string, 0, len(env)+len(keys))
	merged = append(merged, env...)
	for _, k := range keys {
		merged = append(merged, k+"="+overrides[k])
	}
	return merged
}

// String renders the command as a shell-quoted line, for error messages
// and progress output.
func (c Command) String() string {
	parts := append([]string{c.Path}, c.Args...)
	return strings.TrimSpace(shellquote.Join(parts...))
}
