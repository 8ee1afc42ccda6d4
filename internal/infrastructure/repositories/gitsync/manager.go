package gitsync

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/recallkit/recall/config"
	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/internal/domain/repositories"
)

const (
	identityName  = "recall"
	identityEmail = "recall@localhost"
)

// Manager is the sync engine facade. It composes the executor, branch
// detector, state manager, recovery engine and orchestrator, runs the
// initialization state machine on construction, and implements
// repositories.SyncRepository for the rest of the application.
//
// Construction never fails because of sync problems: initialization errors
// are logged and remembered, and the engine keeps answering status queries.
type Manager struct {
	cfg      config.SyncConfig
	repoDir  string
	executor *CommandExecutor
	state    *StateManager
	recovery *RecoveryEngine
	orch     *Orchestrator
	observer repositories.SyncObserver

	mu          sync.Mutex
	initialized bool
	lastError   string
}

var _ repositories.SyncRepository = (*Manager)(nil)

// NewManager wires the sync engine for the configured repository directory.
func NewManager(cfg *config.Config, runner GitRunner, observer repositories.SyncObserver) *Manager {
	repoDir := cfg.Storage.RepoDir
	baseDelay := time.Duration(cfg.Sync.RetryDelay * float64(time.Second))

	executor := NewCommandExecutor(runner)
	branches := NewBranchDetector(executor, repoDir)
	state := NewStateManager(
		repoDir, cfg.Sync.RemoteURL, executor, branches,
		cfg.Sync.RetryAttempts, baseDelay)
	recovery := NewRecoveryEngine(repoDir, executor)

	m := &Manager{
		cfg:      cfg.Sync,
		repoDir:  repoDir,
		executor: executor,
		state:    state,
		recovery: recovery,
		observer: observer,
	}
	recovery.SetReinitializer(m.reinitializeRepository)
	m.orch = NewOrchestrator(
		cfg.Sync.Enabled, repoDir, cfg.Sync.RetryAttempts, baseDelay,
		executor, state, recovery, observer, m.EnsureInitialized)

	if cfg.Sync.Enabled {
		if result := m.initialize(context.Background()); !result.Success {
			logger.Errorf("Memory sync initialization failed: %s", result.Message)
		}
	}
	return m
}

// IsInitialized reports whether the repository passed initialization.
func (m *Manager) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// SyncMemoryWithRetry runs the add/commit/push sequence for one record,
// blocking until it completes.
func (m *Manager) SyncMemoryWithRetry(ctx context.Context, memoryID, filename string) entities.SyncResult {
	result := m.orch.SyncMemoryWithRetry(ctx, memoryID, filename)
	m.recordResult(result)
	return result
}

// SyncMemoryBackground enqueues the sequence on the background worker.
func (m *Manager) SyncMemoryBackground(memoryID, filename string) repositories.SyncHandle {
	return m.orch.SyncMemoryBackground(memoryID, filename)
}

// RepositoryStatus returns the status snapshot exposed to the application.
func (m *Manager) RepositoryStatus() entities.RepositoryStatus {
	info := m.state.RepositoryInfo(context.Background())

	m.mu.Lock()
	defer m.mu.Unlock()
	return entities.RepositoryStatus{
		Initialized:      m.initialized,
		SyncEnabled:      m.cfg.Enabled,
		RepositoryExists: info.LocalExists,
		RemoteConfigured: info.RemoteURL != "",
		RemoteURL:        info.RemoteURL,
		LastError:        m.lastError,
	}
}

// RecoverFromError categorizes a failed result and runs the recovery
// strategy registered for its category.
func (m *Manager) RecoverFromError(ctx context.Context, failed entities.SyncResult) entities.SyncResult {
	category := Categorize(failed.Message, failed.ErrorCode)
	logger.Infof("Attempting recovery from %s failure (operation %q)", category, failed.Operation)

	var recoveryFn RecoveryFunc
	switch category {
	case entities.CategoryCorruption:
		recoveryFn = m.recovery.RecoverCorruptedRepository
	case entities.CategoryBranch:
		recoveryFn = func(ctx context.Context) entities.SyncResult {
			m.state.ClearCache()
			return m.reinitializeRepository(ctx)
		}
	default:
		// Network and everything else retryable: rebuild the local setup.
		recoveryFn = m.reinitializeRepository
	}

	result := m.recovery.AttemptRecovery(ctx, category, recoveryFn)
	m.recordResult(result)
	return result
}

// ValidateAndRecover checks repository integrity and repairs the repository
// when the check fails.
func (m *Manager) ValidateAndRecover(ctx context.Context) entities.SyncResult {
	check := m.recovery.ValidateRepositoryIntegrity(ctx)
	if check.Success {
		return check
	}

	logger.Warnf("Repository integrity check failed, starting recovery: %s", check.Message)
	result := m.recovery.RecoverCorruptedRepository(ctx)
	m.recordResult(result)
	return result
}

// EnsureInitialized initializes the repository if construction-time
// initialization did not complete (e.g. the remote was unreachable then).
func (m *Manager) EnsureInitialized(ctx context.Context) entities.SyncResult {
	if m.IsInitialized() {
		return entities.NewSuccessResult("ensure-initialized", "repository already initialized", 1)
	}

	result := m.initialize(ctx)
	if !result.Success {
		return entities.NewFailureResult(
			"ensure-initialized",
			fmt.Sprintf("repository is not initialized: %s", result.Message),
			entities.CodeNotInitialized, result.Attempts)
	}
	return result
}

// Close drains the background worker. Safe to call more than once.
func (m *Manager) Close() {
	m.orch.Close()
}

// initialize runs the state machine over the detected repository state.
// Individual setup steps are non-fatal: the manager is marked initialized as
// long as the repository itself exists afterwards.
func (m *Manager) initialize(ctx context.Context) entities.SyncResult {
	m.state.ClearCache()
	info := m.state.RepositoryInfo(ctx)
	logger.Infof("Initializing memory sync (state %s)", info.State)

	var result entities.SyncResult
	switch info.State {
	case entities.StateNewLocal:
		result = m.initializeNewRepository(ctx)
	case entities.StateExistingRemote:
		result = m.initializeFromRemote(ctx)
	case entities.StateExistingLocal:
		result = m.reconcileExistingRepository(ctx, info)
	case entities.StateSynchronized:
		result = m.validateConfiguration()
	default:
		result = entities.NewFailureResult(
			"initialize", fmt.Sprintf("unknown repository state %q", info.State),
			entities.CodeNotInitialized, 1)
	}

	m.state.ClearCache()
	exists := m.state.RepositoryInfo(ctx).LocalExists

	m.mu.Lock()
	m.initialized = result.Success && exists
	if !result.Success {
		m.lastError = result.Message
	}
	m.mu.Unlock()

	return result
}

// initializeNewRepository creates a fresh repository with minimal identity
// configuration and, when a remote is given, wires origin (non-fatal).
func (m *Manager) initializeNewRepository(ctx context.Context) entities.SyncResult {
	if err := os.MkdirAll(m.repoDir, 0o750); err != nil {
		return entities.NewFailureResult(
			"initialize-new",
			fmt.Sprintf("failed to create repository directory: %v", err),
			entities.CodeCommandUnexpected, 1)
	}

	initRes, _ := m.executor.Run(ctx, commandSpec{
		args:        []string{"init", "--initial-branch", defaultBranchName},
		operation:   "init-repository",
		dir:         m.repoDir,
		maxAttempts: 1,
	})
	if !initRes.Success {
		// Older git without --initial-branch.
		initRes, _ = m.executor.Run(ctx, commandSpec{
			args:        []string{"init"},
			operation:   "init-repository",
			dir:         m.repoDir,
			maxAttempts: 1,
		})
		if !initRes.Success {
			return initRes
		}
	}

	if res := m.configureIdentity(ctx); !res.Success {
		return res
	}

	if m.cfg.RemoteURL != "" {
		remote, _ := m.executor.Run(ctx, commandSpec{
			args:        []string{"remote", "add", "origin", m.cfg.RemoteURL},
			operation:   "configure-remote",
			dir:         m.repoDir,
			maxAttempts: 1,
		})
		if !remote.Success {
			logger.Warnf("Failed to configure remote origin: %s", remote.Message)
		}
	}

	m.state.ClearCache()
	return entities.NewSuccessResult(
		"initialize-new", "created a fresh memory repository", initRes.Attempts)
}

// initializeFromRemote clones the reachable remote and sets up upstream
// tracking for the detected default branch (tracking failure is non-fatal).
func (m *Manager) initializeFromRemote(ctx context.Context) entities.SyncResult {
	clone := m.state.CloneExistingRepository(ctx)
	if !clone.Success {
		return clone
	}

	if res := m.configureIdentity(ctx); !res.Success {
		return res
	}

	branch := m.state.RepositoryInfo(ctx).DefaultBranch
	if tracking := m.state.SetupUpstreamTracking(ctx, branch); !tracking.Success {
		logger.Warnf("Upstream tracking setup failed (non-fatal): %s", tracking.Message)
	}

	return entities.NewSuccessResult(
		"initialize-from-remote",
		fmt.Sprintf("cloned remote memory repository (branch %s)", branch),
		clone.Attempts,
	).WithBranch(branch)
}

// reconcileExistingRepository wires the remote, synchronizes divergence and
// sets up tracking for an already-present local repository. Every step is
// individually non-fatal.
func (m *Manager) reconcileExistingRepository(ctx context.Context, info entities.RepositoryInfo) entities.SyncResult {
	if m.cfg.RemoteURL != "" && info.RemoteURL == "" {
		remote, _ := m.executor.Run(ctx, commandSpec{
			args:        []string{"remote", "add", "origin", m.cfg.RemoteURL},
			operation:   "configure-remote",
			dir:         m.repoDir,
			maxAttempts: 1,
		})
		if !remote.Success {
			logger.Warnf("Failed to configure remote origin (non-fatal): %s", remote.Message)
		}
		m.state.ClearCache()
		info = m.state.RepositoryInfo(ctx)
	}

	if info.NeedsSync && info.RemoteURL != "" {
		if reconcile := m.state.SynchronizeWithRemote(ctx); !reconcile.Success {
			logger.Warnf("Remote synchronization failed (non-fatal): %s", reconcile.Message)
		}
	}

	if !info.TrackingConfigured && info.RemoteURL != "" {
		if tracking := m.state.SetupUpstreamTracking(ctx, info.DefaultBranch); !tracking.Success {
			logger.Warnf("Upstream tracking setup failed (non-fatal): %s", tracking.Message)
		}
	}

	return entities.NewSuccessResult(
		"reconcile-existing", "existing memory repository reconciled", 1)
}

// validateConfiguration is the SYNCHRONIZED path: nothing to change, just a
// configuration sanity pass.
func (m *Manager) validateConfiguration() entities.SyncResult {
	if m.cfg.RetryAttempts < 1 {
		return entities.NewFailureResult(
			"validate-configuration",
			fmt.Sprintf("retry_attempts must be >= 1, got %d", m.cfg.RetryAttempts),
			string(entities.CategoryConfiguration)+"_ERROR", 1)
	}
	return entities.NewSuccessResult(
		"validate-configuration", "repository synchronized, configuration valid", 1)
}

// configureIdentity sets the minimal commit identity the sync engine
// commits under.
func (m *Manager) configureIdentity(ctx context.Context) entities.SyncResult {
	for _, kv := range [][2]string{
		{"user.name", identityName},
		{"user.email", identityEmail},
	} {
		result, _ := m.executor.Run(ctx, commandSpec{
			args:        []string{"config", kv[0], kv[1]},
			operation:   "configure-identity",
			dir:         m.repoDir,
			maxAttempts: 1,
		})
		if !result.Success {
			return result
		}
	}
	return entities.NewSuccessResult("configure-identity", "commit identity configured", 1)
}

// reinitializeRepository rebuilds the metadata store in place: fresh init,
// identity, remote, and an initial commit capturing the preserved memory
// files. Used by the recovery engine after a destructive reset.
func (m *Manager) reinitializeRepository(ctx context.Context) entities.SyncResult {
	m.state.ClearCache()

	result := m.initializeNewRepository(ctx)
	if !result.Success {
		return result
	}

	stage, _ := m.executor.Run(ctx, commandSpec{
		args:        []string{"add", "-A"},
		operation:   "stage-preserved-files",
		dir:         m.repoDir,
		maxAttempts: 1,
	})
	if stage.Success {
		commit, _ := m.executor.Run(ctx, commandSpec{
			args:        []string{"commit", "-m", "Restore memory files after repository reset"},
			operation:   "commit-preserved-files",
			dir:         m.repoDir,
			maxAttempts: 1,
		})
		if !commit.Success {
			logger.Debugf("No preserved files to commit after reinitialization: %s", commit.Message)
		}
	}

	m.mu.Lock()
	m.initialized = true
	m.mu.Unlock()
	m.state.ClearCache()

	return entities.NewSuccessResult(
		"reinitialize-repository",
		"repository metadata reinitialized; memory files preserved",
		result.Attempts)
}

func (m *Manager) recordResult(result entities.SyncResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if result.Success {
		m.lastError = ""
	} else {
		m.lastError = result.Message
	}
}
