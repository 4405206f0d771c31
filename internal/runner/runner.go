// Package runner executes external programs under a wall-clock budget.
//
// Every Run resolves exactly once: normal exit, timeout, spawn error or
// context cancellation. A process killed on timeout never reports success,
// even if its exit races the kill.
package runner

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"

	apperrors "github.com/mcp-notify/mcp-notify/internal/errors"
)

// DefaultTimeout is used when Run is given a non-positive timeout.
const DefaultTimeout = 5 * time.Second

// TimeoutDetail is the error detail reported when a process is killed on timeout.
const TimeoutDetail = "timeout"

// Result describes how a process run ended.
type Result struct {
	// Succeeded is true only for a process that exited with code 0 in time.
	Succeeded bool
	// ExitCode is set when the process exited on its own.
	ExitCode *int
	// Err is an *apperrors.Failure describing why the run did not succeed.
	Err error
}

// ErrorDetail returns the failure message, or "" on success.
func (r Result) ErrorDetail() string {
	return apperrors.Detail(r.Err)
}

// Runner starts a command and waits for it within timeout.
type Runner interface {
	Run(ctx context.Context, command string, args []string, timeout time.Duration) Result
}

// ExecRunner runs commands with os/exec. Standard streams are not connected.
type ExecRunner struct {
	logger *slog.Logger
}

// NewExecRunner creates an ExecRunner. A nil logger uses slog.Default().
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{logger: logger}
}

// Run launches command and waits for it, killing it when timeout elapses
// or ctx is done.
func (r *ExecRunner) Run(ctx context.Context, command string, args []string, timeout time.Duration) Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cmd := exec.Command(command, args...)
	if err := cmd.Start(); err != nil {
		return Result{Err: apperrors.Wrap(err, apperrors.ProcessSpawnFailure)}
	}

	// Buffered so the waiter never blocks once the caller has moved on.
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return exitResult(err)
	case <-timer.C:
		r.kill(cmd, done)
		r.logger.Debug("process killed after timeout", "command", command, "timeout", timeout)
		return Result{Err: apperrors.New(apperrors.ProcessTimeout, TimeoutDetail)}
	case <-ctx.Done():
		r.kill(cmd, done)
		return Result{Err: apperrors.Wrap(ctx.Err(), apperrors.ProcessTimeout)}
	}
}

// kill terminates the process and reaps it. The kill error is ignored: the
// process may already have exited.
func (r *ExecRunner) kill(cmd *exec.Cmd, done <-chan error) {
	_ = cmd.Process.Kill()
	<-done
}

// exitResult converts the error returned by Wait into a Result.
func exitResult(err error) Result {
	if err == nil {
		code := 0
		return Result{Succeeded: true, ExitCode: &code}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Terminated by a signal we did not send.
			return Result{Err: apperrors.Wrap(err, apperrors.ProcessNonZeroExit)}
		}
		return Result{
			ExitCode: &code,
			Err:      apperrors.Newf(apperrors.ProcessNonZeroExit, "exited with code %d", code),
		}
	}

	return Result{Err: apperrors.Wrap(err, apperrors.ProcessNonZeroExit)}
}
