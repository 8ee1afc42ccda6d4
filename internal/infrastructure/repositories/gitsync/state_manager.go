package gitsync

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	git "github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/recallkit/recall/internal/domain/entities"
)

// StateManager classifies the local/remote repository pair and performs the
// topology-changing operations (clone, tracking setup, reconciliation).
// RepositoryInfo snapshots are cached until ClearCache is called.
type StateManager struct {
	repoDir       string
	remoteURL     string
	executor      *CommandExecutor
	branches      *BranchDetector
	retryAttempts int
	retryDelay    time.Duration

	mu    sync.Mutex
	cache *entities.RepositoryInfo
}

// NewStateManager creates a state manager for one repository directory.
func NewStateManager(
	repoDir, remoteURL string,
	executor *CommandExecutor,
	branches *BranchDetector,
	retryAttempts int,
	retryDelay time.Duration,
) *StateManager {
	return &StateManager{
		repoDir:       repoDir,
		remoteURL:     remoteURL,
		executor:      executor,
		branches:      branches,
		retryAttempts: retryAttempts,
		retryDelay:    retryDelay,
	}
}

// RepositoryInfo returns the cached snapshot, computing it on first use.
// Returning by value keeps the cache immutable from the caller's side.
func (m *StateManager) RepositoryInfo(ctx context.Context) entities.RepositoryInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cache == nil {
		m.cache = m.computeInfo(ctx)
	}
	return *m.cache
}

// ClearCache forces the next RepositoryInfo call to recompute. Call it after
// any operation that changes repository topology.
func (m *StateManager) ClearCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = nil
}

// RemoteURL returns the remote this manager is configured against, falling
// back to the origin URL recorded in the local repository configuration.
func (m *StateManager) RemoteURL() string {
	if m.remoteURL != "" {
		return m.remoteURL
	}
	repo, err := git.PlainOpen(m.repoDir)
	if err != nil {
		return ""
	}
	cfg, err := repo.Config()
	if err != nil {
		return ""
	}
	if origin, ok := cfg.Remotes["origin"]; ok && len(origin.URLs) > 0 {
		return origin.URLs[0]
	}
	return ""
}

func (m *StateManager) computeInfo(ctx context.Context) *entities.RepositoryInfo {
	info := &entities.RepositoryInfo{RemoteURL: m.RemoteURL()}

	var localTip string
	repo, err := git.PlainOpen(m.repoDir)
	if err == nil {
		info.LocalExists = true
		if head, headErr := repo.Head(); headErr == nil {
			info.LocalBranch = head.Name().Short()
			localTip = head.Hash().String()
		}
		if cfg, cfgErr := repo.Config(); cfgErr == nil && info.LocalBranch != "" {
			if branch, ok := cfg.Branches[info.LocalBranch]; ok {
				info.TrackingConfigured = branch.Remote != "" && branch.Merge != ""
			}
		}
	}

	if info.RemoteURL != "" {
		info.DefaultBranch = m.branches.Detect(ctx, info.RemoteURL)
		remoteTip, reachable := m.remoteTip(ctx, info.RemoteURL, info.DefaultBranch)
		info.RemoteExists = reachable
		if reachable && info.LocalExists {
			info.NeedsSync = remoteTip != "" && remoteTip != localTip
		}
	} else if info.LocalBranch != "" {
		info.DefaultBranch = info.LocalBranch
	} else {
		info.DefaultBranch = defaultBranchName
	}

	info.State = entities.ClassifyRepositoryState(
		info.LocalExists, info.RemoteExists, info.TrackingConfigured, info.NeedsSync)

	logger.Debugf("Repository state: %s (local=%t remote=%t tracking=%t needsSync=%t)",
		info.State, info.LocalExists, info.RemoteExists, info.TrackingConfigured, info.NeedsSync)
	return info
}

// remoteTip resolves the remote's tip commit for a branch. The second return
// reports whether the remote was reachable at all.
func (m *StateManager) remoteTip(ctx context.Context, remoteURL, branch string) (string, bool) {
	result, out := m.executor.Run(ctx, commandSpec{
		args:        []string{"ls-remote", "--heads", remoteURL, branch},
		operation:   "query-remote-tip",
		dir:         m.repoDir,
		maxAttempts: 1,
		timeout:     probeTimeout,
	})
	if !result.Success {
		return "", false
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		// Reachable but the branch does not exist yet (empty repository).
		return "", true
	}
	return fields[0], true
}

// CloneExistingRepository clones the configured remote into the target
// directory. The directory must be empty or absent.
func (m *StateManager) CloneExistingRepository(ctx context.Context) entities.SyncResult {
	remoteURL := m.RemoteURL()
	if remoteURL == "" {
		return entities.NewFailureResult(
			"clone-repository", "no remote URL configured", entities.CodeCommandFailed, 1)
	}

	if err := os.MkdirAll(m.repoDir, 0o750); err != nil {
		return entities.NewFailureResult(
			"clone-repository",
			fmt.Sprintf("failed to create repository directory: %v", err),
			entities.CodeCommandUnexpected, 1)
	}

	result, _ := m.executor.Run(ctx, commandSpec{
		args:        []string{"clone", remoteURL, "."},
		operation:   "clone-repository",
		dir:         m.repoDir,
		maxAttempts: m.retryAttempts,
		baseDelay:   m.retryDelay,
		timeout:     longCommandTimeout,
	})
	if result.Success {
		m.ClearCache()
		logger.Infof("Cloned existing memory repository from %s", remoteURL)
	}
	return result
}

// SetupUpstreamTracking configures the local branch to track origin/<branch>.
func (m *StateManager) SetupUpstreamTracking(ctx context.Context, branch string) entities.SyncResult {
	// A fetch first makes origin/<branch> resolvable on fresh repositories.
	fetch, _ := m.executor.Run(ctx, commandSpec{
		args:        []string{"fetch", "origin", branch},
		operation:   "fetch-before-tracking",
		dir:         m.repoDir,
		maxAttempts: 1,
		timeout:     defaultCommandTimeout,
	})
	if !fetch.Success {
		logger.Debugf("Fetch before tracking setup failed: %s", fetch.Message)
	}

	result, _ := m.executor.Run(ctx, commandSpec{
		args:        []string{"branch", "--set-upstream-to=origin/" + branch, branch},
		operation:   "setup-upstream-tracking",
		dir:         m.repoDir,
		maxAttempts: m.retryAttempts,
		baseDelay:   m.retryDelay,
		timeout:     defaultCommandTimeout,
	})
	if result.Success {
		m.ClearCache()
	}
	return result.WithBranch(branch)
}

// SynchronizeWithRemote reconciles the local repository with the remote.
// Remote content takes precedence: when the tips diverge the local branch is
// reset to origin/<branch>, discarding uncommitted local state. The result
// message states this explicitly so callers can surface it.
func (m *StateManager) SynchronizeWithRemote(ctx context.Context) entities.SyncResult {
	branch := m.RepositoryInfo(ctx).DefaultBranch

	fetch, _ := m.executor.Run(ctx, commandSpec{
		args:        []string{"fetch", "origin", branch},
		operation:   "synchronize-with-remote",
		dir:         m.repoDir,
		maxAttempts: m.retryAttempts,
		baseDelay:   m.retryDelay,
		timeout:     longCommandTimeout,
	})
	if !fetch.Success {
		return fetch.WithBranch(branch)
	}

	reset, _ := m.executor.Run(ctx, commandSpec{
		args:        []string{"reset", "--hard", "origin/" + branch},
		operation:   "synchronize-with-remote",
		dir:         m.repoDir,
		maxAttempts: 1,
		timeout:     defaultCommandTimeout,
	})
	if !reset.Success {
		return reset.WithBranch(branch)
	}

	m.ClearCache()
	logger.Warnf("Local repository reset to origin/%s; remote content took precedence over local changes", branch)
	return entities.NewSuccessResult(
		"synchronize-with-remote",
		fmt.Sprintf("synchronized with origin/%s; remote content took precedence, local uncommitted changes were discarded", branch),
		fetch.Attempts,
	).WithBranch(branch)
}
