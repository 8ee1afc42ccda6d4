package gitsync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBranchDetectorDetect(t *testing.T) {
	t.Parallel()

	t.Run("should resolve the default branch from the symbolic HEAD", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &scriptRunner{responses: map[string][]scriptResponse{
			"ls-remote": {{stdout: "ref: refs/heads/develop\tHEAD\nabc123def\tHEAD\n"}},
		}}
		executor, _ := newTestExecutor(runner)
		detector := NewBranchDetector(executor, t.TempDir())

		// when
		branch := detector.Detect(context.Background(), "https://example.com/repo.git")

		// then
		assert.Equal(t, "develop", branch)
		assert.Len(t, runner.calls, 1)
	})

	t.Run("should probe main then master when the symbolic HEAD is unreadable", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &scriptRunner{responses: map[string][]scriptResponse{
			"ls-remote": {
				{err: errors.New("exit status 128")}, // symref
				{stdout: ""},                         // main probe: no such head
				{stdout: "abc123def\trefs/heads/master\n"},
			},
		}}
		executor, _ := newTestExecutor(runner)
		detector := NewBranchDetector(executor, t.TempDir())

		// when
		branch := detector.Detect(context.Background(), "https://example.com/repo.git")

		// then
		assert.Equal(t, "master", branch)
		assert.Len(t, runner.calls, 3)
	})

	t.Run("should fall back to main when every probe fails", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &scriptRunner{responses: map[string][]scriptResponse{
			"ls-remote": {{err: errors.New("could not resolve host")}},
		}}
		executor, _ := newTestExecutor(runner)
		detector := NewBranchDetector(executor, t.TempDir())

		// when
		branch := detector.Detect(context.Background(), "https://example.com/repo.git")

		// then
		assert.Equal(t, "main", branch)
		assert.Len(t, runner.calls, 3)
	})

	t.Run("should return the default without probing when no remote is configured", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &scriptRunner{}
		executor, _ := newTestExecutor(runner)
		detector := NewBranchDetector(executor, t.TempDir())

		// when
		branch := detector.Detect(context.Background(), "")

		// then
		assert.Equal(t, "main", branch)
		assert.Empty(t, runner.calls)
	})
}

func TestParseSymrefHead(t *testing.T) {
	t.Parallel()

	t.Run("should extract the branch name from symref output", func(t *testing.T) {
		t.Parallel()

		// when
		name := parseSymrefHead("ref: refs/heads/main\tHEAD\nabc123\tHEAD\n")

		// then
		assert.Equal(t, "main", name)
	})

	t.Run("should return empty for output without a symref line", func(t *testing.T) {
		t.Parallel()

		// when
		name := parseSymrefHead("abc123\trefs/heads/main\n")

		// then
		assert.Empty(t, name)
	})
}
