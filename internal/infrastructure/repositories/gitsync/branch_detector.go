package gitsync

import (
	"context"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
)

const (
	// defaultBranchName is the final fallback when every probe fails.
	defaultBranchName = "main"
	// probeTimeout bounds each individual remote probe.
	probeTimeout = 15 * time.Second
)

// fallbackBranches are probed in order when the remote's symbolic HEAD
// cannot be read.
var fallbackBranches = []string{"main", "master"}

// BranchDetector determines a remote's default branch. Detect never fails:
// every probe tolerates process failure and timeout, and the worst case is
// the literal default.
type BranchDetector struct {
	executor *CommandExecutor
	repoDir  string
}

// NewBranchDetector creates a detector that runs its probes from repoDir.
func NewBranchDetector(executor *CommandExecutor, repoDir string) *BranchDetector {
	return &BranchDetector{
		executor: executor,
		repoDir:  repoDir,
	}
}

// Detect resolves the default branch of the given remote.
//
// Strategy, strictly ordered:
//  1. read the remote's symbolic HEAD via `git ls-remote --symref <url> HEAD`
//  2. probe "main" then "master" with explicit ref lookups
//  3. fall back to "main"
func (d *BranchDetector) Detect(ctx context.Context, remoteURL string) string {
	if remoteURL == "" {
		return defaultBranchName
	}

	result, out := d.executor.Run(ctx, commandSpec{
		args:        []string{"ls-remote", "--symref", remoteURL, "HEAD"},
		operation:   "detect-default-branch",
		dir:         d.repoDir,
		maxAttempts: 1,
		timeout:     probeTimeout,
	})
	if result.Success {
		if name := parseSymrefHead(out); name != "" {
			logger.Debugf("Default branch %q resolved from symbolic HEAD", name)
			return name
		}
	}

	for _, candidate := range fallbackBranches {
		result, out := d.executor.Run(ctx, commandSpec{
			args:        []string{"ls-remote", "--heads", remoteURL, candidate},
			operation:   "probe-branch",
			dir:         d.repoDir,
			maxAttempts: 1,
			timeout:     probeTimeout,
		})
		if result.Success && strings.TrimSpace(out) != "" {
			logger.Debugf("Default branch %q resolved by explicit probe", candidate)
			return candidate
		}
	}

	logger.Debugf("Default branch detection fell back to %q", defaultBranchName)
	return defaultBranchName
}

// parseSymrefHead extracts <name> from a line of the form
// "ref: refs/heads/<name>\tHEAD" in ls-remote --symref output.
func parseSymrefHead(out string) string {
	for _, line := range strings.Split(out, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "ref: refs/heads/")
		if !ok {
			continue
		}
		name, target, ok := strings.Cut(rest, "\t")
		if ok && target == "HEAD" && name != "" {
			return name
		}
	}
	return ""
}
