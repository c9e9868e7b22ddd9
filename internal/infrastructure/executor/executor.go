// Package executor runs external commands on behalf of the wtf and diff
// handlers.
package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/ports"
)

// RerunTimeout bounds the wtf handler's re-execution of the last shell
// command.
const RerunTimeout = 15 * time.Second

// ShellExecutor re-runs commands in the user's shell to capture fresh
// stdout/stderr/exit-code.
type ShellExecutor struct {
	shell string
}

// NewShellExecutor builds an executor; shell defaults to $SHELL, then /bin/sh.
func NewShellExecutor(shell string) *ShellExecutor {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &ShellExecutor{shell: shell}
}

// Execute implements ports.CommandExecutor. A non-zero exit is not an error
// here: it is the expected "something failed" case the caller diagnoses.
func (e *ShellExecutor) Execute(ctx context.Context, command string) domain.ExecutionResult {
	ctx, cancel := context.WithTimeout(ctx, RerunTimeout)
	defer cancel()

	c := exec.CommandContext(ctx, e.shell, "-c", command)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	result := domain.ExecutionResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = 1
		result.Stderr = "(command timed out after 15s)"
		return result
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result
	}
	if err != nil {
		result.ExitCode = 1
		if result.Stderr == "" {
			result.Stderr = err.Error()
		}
	}
	return result
}

var _ ports.CommandExecutor = (*ShellExecutor)(nil)
