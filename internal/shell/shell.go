// Package shell runs commands through the user's shell, capturing output.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/tliron/commonlog"
)

// DefaultShell is used when a Runner is created without one.
const DefaultShell = "/bin/zsh"

// Result holds the captured streams of a completed command.
type Result struct {
	Stdout string
	Stderr string
}

// ExecError reports a command that ran but failed. The captured streams
// are kept so the caller can see what the command said before dying.
type ExecError struct {
	Message string
	Stdout  string
	Stderr  string
}

func (e *ExecError) Error() string {
	return e.Message
}

// Runner executes shell command lines. Commands run with the invoking
// user's permissions; there is no sandboxing here.
type Runner struct {
	Shell string

	log commonlog.Logger
}

// NewRunner returns a runner using shell, or DefaultShell when empty.
func NewRunner(shell string) *Runner {
	if shell == "" {
		shell = DefaultShell
	}
	return &Runner{
		Shell: shell,
		log:   commonlog.GetLogger("shell"),
	}
}

// Run executes command through the shell so expansions and chaining work.
// A non-zero exit returns a *ExecError with the captured output; other
// failures (shell missing, context canceled) return their own error.
func (r *Runner) Run(ctx context.Context, command string) (Result, error) {
	if command == "" {
		return Result{}, errors.New("command is required")
	}

	cmd := exec.CommandContext(ctx, r.Shell, "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Infof("run: %s", command)
	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, &ExecError{
			Message: fmt.Sprintf("command failed with exit code %d", exitErr.ExitCode()),
			Stdout:  result.Stdout,
			Stderr:  result.Stderr,
		}
	}
	if err != nil {
		return result, fmt.Errorf("failed to run command: %w", err)
	}
	return result, nil
}
