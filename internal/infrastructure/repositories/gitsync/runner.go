package gitsync

import (
	"bytes"
	"context"
	"os/exec"
)

// GitRunner executes a single git invocation in a working directory. It is
// the seam between the sync engine and the git executable: tests inject
// scripted runners, production uses ExecGitRunner.
type GitRunner interface {
	Run(ctx context.Context, dir string, args ...string) (stdout, stderr string, err error)
}

// ExecGitRunner runs git as a subprocess. The context bounds the wall-clock
// time of the invocation; when it expires the process is signalled, though
// not every platform guarantees the process dies immediately.
type ExecGitRunner struct{}

func (ExecGitRunner) Run(ctx context.Context, dir string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
