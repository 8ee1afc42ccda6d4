package gitsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/recallkit/recall/internal/domain/entities"
)

const (
	// defaultCommandTimeout bounds ordinary git commands.
	defaultCommandTimeout = 30 * time.Second
	// longCommandTimeout bounds push and repository maintenance commands,
	// which legitimately take longer on slow networks or large stores.
	longCommandTimeout = 60 * time.Second
)

// commandSpec describes one git command together with its retry policy.
type commandSpec struct {
	args        []string
	operation   string
	dir         string
	maxAttempts int
	baseDelay   time.Duration
	timeout     time.Duration
}

// CommandExecutor runs git commands with bounded retries and exponential
// backoff. It is the foundation every other sync engine component uses;
// no failure escapes it as an error, everything becomes a SyncResult.
type CommandExecutor struct {
	runner GitRunner
	sleep  func(time.Duration)
}

// NewCommandExecutor creates an executor on top of the given runner.
func NewCommandExecutor(runner GitRunner) *CommandExecutor {
	return &CommandExecutor{
		runner: runner,
		sleep:  time.Sleep,
	}
}

// Run executes the command up to spec.maxAttempts times, sleeping
// baseDelay * 2^(attempt-1) between attempts. It returns the result plus
// the stdout of the last successful invocation.
func (e *CommandExecutor) Run(ctx context.Context, spec commandSpec) (entities.SyncResult, string) {
	if spec.maxAttempts < 1 {
		spec.maxAttempts = 1
	}
	if spec.timeout <= 0 {
		spec.timeout = defaultCommandTimeout
	}

	var lastStderr string
	var lastTimedOut bool

	for attempt := 1; attempt <= spec.maxAttempts; attempt++ {
		stdout, stderr, timedOut, err := e.runOnce(ctx, spec)
		if err == nil {
			return entities.NewSuccessResult(
				spec.operation,
				fmt.Sprintf("git %s succeeded", strings.Join(spec.args, " ")),
				attempt,
			), stdout
		}

		if panicErr := (*unexpectedError)(nil); errors.As(err, &panicErr) {
			logger.Errorf("Unexpected error running git %s: %v", spec.args[0], err)
			return entities.NewFailureResult(
				spec.operation,
				fmt.Sprintf("unexpected error running git %s: %v", strings.Join(spec.args, " "), err),
				entities.CodeCommandUnexpected,
				attempt,
			), ""
		}

		lastStderr = strings.TrimSpace(stderr)
		lastTimedOut = timedOut
		logger.Warnf("git %s failed (attempt %d/%d): %v",
			spec.args[0], attempt, spec.maxAttempts, err)

		if attempt < spec.maxAttempts {
			e.sleep(backoffDelay(spec.baseDelay, attempt))
		}
	}

	code := entities.CodeCommandFailed
	message := fmt.Sprintf("git %s failed after %d attempts", strings.Join(spec.args, " "), spec.maxAttempts)
	if lastTimedOut {
		code = entities.CodeCommandTimeout
		message = fmt.Sprintf("git %s timed out after %d attempts", strings.Join(spec.args, " "), spec.maxAttempts)
	}
	if lastStderr != "" {
		message += ": " + lastStderr
	}

	return entities.NewFailureResult(spec.operation, message, code, spec.maxAttempts), ""
}

// runOnce performs a single bounded invocation. Panics from the runner are
// converted into an unexpectedError instead of propagating.
func (e *CommandExecutor) runOnce(ctx context.Context, spec commandSpec) (stdout, stderr string, timedOut bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &unexpectedError{value: r}
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, spec.timeout)
	defer cancel()

	stdout, stderr, err = e.runner.Run(runCtx, spec.dir, spec.args...)
	if err != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		timedOut = true
	}
	return stdout, stderr, timedOut, err
}

// backoffDelay returns the delay before the retry following the given
// attempt: baseDelay * 2^(attempt-1).
func backoffDelay(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<(attempt-1))
}

// unexpectedError marks a failure that did not come from the git process
// itself (a panic inside the runner).
type unexpectedError struct {
	value any
}

func (e *unexpectedError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}
