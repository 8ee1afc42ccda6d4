package gitsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/internal/domain/repositories"
)

// syncTask is one queued add/commit/push sequence. It doubles as the
// SyncHandle handed to background callers.
type syncTask struct {
	ctx      context.Context
	memoryID string
	filename string
	done     chan struct{}
	result   entities.SyncResult
}

func (t *syncTask) Wait() entities.SyncResult {
	<-t.done
	return t.result
}

func (t *syncTask) Done() <-chan struct{} {
	return t.done
}

// Orchestrator runs the add -> commit -> push sequence for memory records.
// All tasks, synchronous and background alike, flow through a single
// consumer goroutine per repository directory: the git metadata store is not
// safe for concurrent writers, so concurrent requests queue instead of
// running in parallel.
type Orchestrator struct {
	enabled    bool
	repoDir    string
	attempts   int
	baseDelay  time.Duration
	executor   *CommandExecutor
	state      *StateManager
	recovery   *RecoveryEngine
	observer   repositories.SyncObserver
	ensureInit RecoveryFunc

	mu     sync.Mutex
	tasks  chan *syncTask
	closed bool
	wg     sync.WaitGroup
}

const taskQueueSize = 16

// NewOrchestrator creates the orchestrator and starts its worker when sync
// is enabled.
func NewOrchestrator(
	enabled bool,
	repoDir string,
	attempts int,
	baseDelay time.Duration,
	executor *CommandExecutor,
	state *StateManager,
	recovery *RecoveryEngine,
	observer repositories.SyncObserver,
	ensureInit RecoveryFunc,
) *Orchestrator {
	o := &Orchestrator{
		enabled:    enabled,
		repoDir:    repoDir,
		attempts:   attempts,
		baseDelay:  baseDelay,
		executor:   executor,
		state:      state,
		recovery:   recovery,
		observer:   observer,
		ensureInit: ensureInit,
	}
	if enabled {
		o.tasks = make(chan *syncTask, taskQueueSize)
		o.wg.Add(1)
		go o.consume()
	}
	return o
}

// SyncMemoryWithRetry runs the sequence for one memory record and blocks
// until it completes. With sync disabled it fails fast without touching the
// filesystem or spawning a process.
func (o *Orchestrator) SyncMemoryWithRetry(ctx context.Context, memoryID, filename string) entities.SyncResult {
	if !o.enabled {
		return entities.NewFailureResult(
			"sync-memory", "git sync is disabled in the configuration",
			entities.CodeSyncDisabled, 1)
	}

	task := o.enqueue(ctx, memoryID, filename)
	if task == nil {
		return entities.NewFailureResult(
			"sync-memory", "sync engine is shut down",
			entities.CodeSyncShutDown, 1)
	}
	return task.Wait()
}

// SyncMemoryBackground enqueues the sequence and returns immediately. The
// worker logs the outcome; the returned handle lets interested callers (and
// tests) await completion. With sync disabled it is a no-op returning nil.
func (o *Orchestrator) SyncMemoryBackground(memoryID, filename string) repositories.SyncHandle {
	if !o.enabled {
		logger.Debugf("Background sync skipped for memory %s: sync disabled", memoryID)
		return nil
	}

	task := o.enqueue(context.Background(), memoryID, filename)
	if task == nil {
		return nil
	}
	return task
}

// Close stops the worker after draining queued tasks.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed || o.tasks == nil {
		o.mu.Unlock()
		return
	}
	o.closed = true
	close(o.tasks)
	o.mu.Unlock()

	o.wg.Wait()
}

func (o *Orchestrator) enqueue(ctx context.Context, memoryID, filename string) *syncTask {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}

	task := &syncTask{
		ctx:      ctx,
		memoryID: memoryID,
		filename: filename,
		done:     make(chan struct{}),
	}
	o.tasks <- task
	return task
}

func (o *Orchestrator) consume() {
	defer o.wg.Done()
	for task := range o.tasks {
		task.result = o.run(task.ctx, task.memoryID, task.filename)
		if task.result.Success {
			logger.Infof("Memory %s synchronized: %s", task.memoryID, task.result.Message)
		} else {
			logger.Errorf("Memory %s sync failed: %s", task.memoryID, task.result.Message)
		}
		close(task.done)
	}
}

// run executes the full sequence for one record. Stage and commit failures
// abort the operation; a push failure degrades to a soft success because a
// durable local commit is worth more than remote availability. Unexpected
// panics are routed through the recovery engine as structured failures.
func (o *Orchestrator) run(ctx context.Context, memoryID, filename string) (result entities.SyncResult) {
	o.observer.SyncStarted("sync-memory")
	defer func() {
		if r := recover(); r != nil {
			result = o.recovery.HandleError(
				fmt.Sprintf("unexpected error during sync: %v", r),
				"sync-memory", entities.CodeCommandUnexpected)
		}
		o.observer.SyncFinished(result)
	}()

	if init := o.ensureInit(ctx); !init.Success {
		return init
	}

	maxAttempts := 0

	stage, _ := o.executor.Run(ctx, commandSpec{
		args:        []string{"add", filename},
		operation:   "stage-memory",
		dir:         o.repoDir,
		maxAttempts: o.attempts,
		baseDelay:   o.baseDelay,
	})
	maxAttempts = max(maxAttempts, stage.Attempts)
	if !stage.Success {
		return stage
	}

	commit, _ := o.executor.Run(ctx, commandSpec{
		args:        []string{"commit", "-m", fmt.Sprintf("Add memory %s", memoryID)},
		operation:   "commit-memory",
		dir:         o.repoDir,
		maxAttempts: o.attempts,
		baseDelay:   o.baseDelay,
	})
	maxAttempts = max(maxAttempts, commit.Attempts)
	if !commit.Success {
		return commit
	}

	remoteURL := o.state.RemoteURL()
	if remoteURL == "" {
		return entities.NewSuccessResult(
			"sync-memory",
			fmt.Sprintf("memory %s committed locally; no remote configured", memoryID),
			maxAttempts)
	}

	branch := o.state.RepositoryInfo(ctx).DefaultBranch
	push, _ := o.executor.Run(ctx, commandSpec{
		args:        []string{"push", "origin", branch},
		operation:   "push-memory",
		dir:         o.repoDir,
		maxAttempts: o.attempts,
		baseDelay:   o.baseDelay,
		timeout:     longCommandTimeout,
	})
	maxAttempts = max(maxAttempts, push.Attempts)
	if !push.Success {
		// Soft success: local durability achieved, remote copy lagging.
		return entities.NewSuccessResult(
			"sync-memory",
			fmt.Sprintf("memory %s committed locally, but push to origin/%s failed: %s",
				memoryID, branch, push.Message),
			maxAttempts,
		).WithBranch(branch)
	}

	return entities.NewSuccessResult(
		"sync-memory",
		fmt.Sprintf("memory %s committed and pushed to origin/%s", memoryID, branch),
		maxAttempts,
	).WithBranch(branch)
}
