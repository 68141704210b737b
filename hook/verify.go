// ABOUTME: This file runs the external post-batch verification command
// ABOUTME: Failures are surfaced as an explicit result, never as a propagated error
package hook

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Status tags the outcome of one verification run.
type Status int

const (
	// Verified means the command exited zero.
	Verified Status = iota
	// VerificationFailed means the command exited non-zero or never started.
	VerificationFailed
)

// Result is the explicit outcome the orchestrator logs. It never maps to a
// Go error: ignoring a failed verification is a deliberate, visible decision
// at the call site.
type Result struct {
	Status   Status
	ExitCode int
}

// Runner invokes the configured verification command with inherited stdio.
type Runner struct {
	command string
	logger  *slog.Logger
}

// NewRunner creates a hook runner. An empty command disables the hook; the
// orchestrator checks config.HookEnabled before calling Run.
func NewRunner(command string, logger *slog.Logger) *Runner {
	return &Runner{command: command, logger: logger}
}

// Run executes the command and waits for it. Extra environment entries are
// appended to this process's environment.
func (r *Runner) Run(ctx context.Context, extraEnv ...string) Result {
	fields := strings.Fields(r.command)
	if len(fields) == 0 {
		return Result{Status: VerificationFailed, ExitCode: -1}
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Env = append(os.Environ(), extraEnv...)

	r.logger.Info("running verification hook", "command", r.command)

	err := cmd.Run()
	if err == nil {
		return Result{Status: Verified, ExitCode: 0}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{Status: VerificationFailed, ExitCode: exitErr.ExitCode()}
	}

	// The command never started (not found, permission denied).
	r.logger.Error("verification hook failed to start", "command", r.command, "error", err)
	return Result{Status: VerificationFailed, ExitCode: -1}
}
