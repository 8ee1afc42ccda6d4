package gitsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallkit/recall/internal/domain/entities"
)

// scriptRunner is an in-package scripted GitRunner. Responses are keyed by
// git subcommand and consumed in order; the last one repeats. Subcommands
// without a script succeed with empty output.
type scriptRunner struct {
	responses map[string][]scriptResponse
	// block lists subcommands that park until the context expires.
	block map[string]bool

	calls    [][]string
	consumed map[string]int
}

type scriptResponse struct {
	stdout string
	stderr string
	err    error
}

func (r *scriptRunner) Run(ctx context.Context, _ string, args ...string) (string, string, error) {
	r.calls = append(r.calls, args)

	sub := ""
	if len(args) > 0 {
		sub = args[0]
	}

	if r.block != nil && r.block[sub] {
		<-ctx.Done()
		return "", "", ctx.Err()
	}

	script, ok := r.responses[sub]
	if !ok || len(script) == 0 {
		return "", "", nil
	}
	if r.consumed == nil {
		r.consumed = make(map[string]int)
	}
	idx := r.consumed[sub]
	if idx >= len(script) {
		idx = len(script) - 1
	}
	r.consumed[sub]++
	resp := script[idx]
	return resp.stdout, resp.stderr, resp.err
}

func (r *scriptRunner) callsFor(sub string) [][]string {
	var out [][]string
	for _, call := range r.calls {
		if len(call) > 0 && call[0] == sub {
			out = append(out, call)
		}
	}
	return out
}

// panicRunner always panics, simulating a defect below the process seam.
type panicRunner struct{}

func (panicRunner) Run(context.Context, string, ...string) (string, string, error) {
	panic("boom")
}

// newTestExecutor returns an executor with sleeps captured instead of slept.
func newTestExecutor(runner GitRunner) (*CommandExecutor, *[]time.Duration) {
	executor := NewCommandExecutor(runner)
	slept := &[]time.Duration{}
	executor.sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return executor, slept
}

func TestCommandExecutorRun(t *testing.T) {
	t.Parallel()

	t.Run("should succeed on the first attempt without sleeping", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &scriptRunner{responses: map[string][]scriptResponse{
			"status": {{stdout: "clean"}},
		}}
		executor, slept := newTestExecutor(runner)

		// when
		result, out := executor.Run(context.Background(), commandSpec{
			args:        []string{"status"},
			operation:   "test-op",
			maxAttempts: 3,
			baseDelay:   time.Second,
		})

		// then
		assert.True(t, result.Success)
		assert.Equal(t, 1, result.Attempts)
		assert.Equal(t, "clean", out)
		assert.Empty(t, *slept)
	})

	t.Run("should retry with exponential backoff and report the success attempt", func(t *testing.T) {
		t.Parallel()

		// given
		failure := errors.New("exit status 1")
		runner := &scriptRunner{responses: map[string][]scriptResponse{
			"push": {
				{err: failure},
				{err: failure},
				{stdout: "ok"},
			},
		}}
		executor, slept := newTestExecutor(runner)

		// when
		result, _ := executor.Run(context.Background(), commandSpec{
			args:        []string{"push"},
			operation:   "test-op",
			maxAttempts: 3,
			baseDelay:   time.Second,
		})

		// then
		assert.True(t, result.Success)
		assert.Equal(t, 3, result.Attempts)
		assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *slept)
	})

	t.Run("should fail with the command code after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &scriptRunner{responses: map[string][]scriptResponse{
			"push": {{stderr: "remote: access denied", err: errors.New("exit status 128")}},
		}}
		executor, slept := newTestExecutor(runner)

		// when
		result, _ := executor.Run(context.Background(), commandSpec{
			args:        []string{"push"},
			operation:   "test-op",
			maxAttempts: 3,
			baseDelay:   time.Second,
		})

		// then
		require.False(t, result.Success)
		assert.Equal(t, entities.CodeCommandFailed, result.ErrorCode)
		assert.Equal(t, 3, result.Attempts)
		assert.Contains(t, result.Message, "remote: access denied")
		assert.Len(t, *slept, 2)
	})

	t.Run("should report a timeout code when the process outlives its deadline", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &scriptRunner{block: map[string]bool{"fetch": true}}
		executor, _ := newTestExecutor(runner)

		// when
		result, _ := executor.Run(context.Background(), commandSpec{
			args:        []string{"fetch"},
			operation:   "test-op",
			maxAttempts: 2,
			timeout:     5 * time.Millisecond,
		})

		// then
		require.False(t, result.Success)
		assert.Equal(t, entities.CodeCommandTimeout, result.ErrorCode)
		assert.Equal(t, 2, result.Attempts)
	})

	t.Run("should fail immediately without retries when the runner panics", func(t *testing.T) {
		t.Parallel()

		// given
		executor, slept := newTestExecutor(panicRunner{})

		// when
		result, _ := executor.Run(context.Background(), commandSpec{
			args:        []string{"add", "file.md"},
			operation:   "test-op",
			maxAttempts: 3,
			baseDelay:   time.Second,
		})

		// then
		require.False(t, result.Success)
		assert.Equal(t, entities.CodeCommandUnexpected, result.ErrorCode)
		assert.Equal(t, 1, result.Attempts)
		assert.Empty(t, *slept)
	})

	t.Run("should treat non-positive attempt counts as a single attempt", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &scriptRunner{responses: map[string][]scriptResponse{
			"add": {{err: errors.New("exit status 1")}},
		}}
		executor, _ := newTestExecutor(runner)

		// when
		result, _ := executor.Run(context.Background(), commandSpec{
			args:      []string{"add"},
			operation: "test-op",
		})

		// then
		assert.False(t, result.Success)
		assert.Equal(t, 1, result.Attempts)
	})
}

func TestBackoffDelay(t *testing.T) {
	t.Parallel()

	t.Run("should double the delay for each completed attempt", func(t *testing.T) {
		t.Parallel()

		// given
		base := 500 * time.Millisecond

		// when / then
		assert.Equal(t, 500*time.Millisecond, backoffDelay(base, 1))
		assert.Equal(t, 1*time.Second, backoffDelay(base, 2))
		assert.Equal(t, 2*time.Second, backoffDelay(base, 3))
	})
}
