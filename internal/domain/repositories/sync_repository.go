package repositories

import (
	"context"

	"github.com/recallkit/recall/internal/domain/entities"
)

// SyncHandle tracks one background sync task. Production callers are free to
// discard it; tests use it to await completion deterministically.
type SyncHandle interface {
	// Wait blocks until the task finishes and returns its result.
	Wait() entities.SyncResult
	// Done is closed when the task has finished.
	Done() <-chan struct{}
}

// SyncRepository is the facade the rest of the application uses to keep the
// memory store synchronized with its git repository.
type SyncRepository interface {
	// SyncMemoryWithRetry runs the add/commit/push sequence for one memory
	// record and blocks until it completes.
	SyncMemoryWithRetry(ctx context.Context, memoryID, filename string) entities.SyncResult
	// SyncMemoryBackground enqueues the same sequence on the background
	// worker. The returned handle is nil when sync is disabled.
	SyncMemoryBackground(memoryID, filename string) SyncHandle

	IsInitialized() bool
	RepositoryStatus() entities.RepositoryStatus

	// RecoverFromError categorizes a failed result and runs the recovery
	// strategy registered for its category.
	RecoverFromError(ctx context.Context, failed entities.SyncResult) entities.SyncResult
	// ValidateAndRecover checks repository integrity and repairs the
	// repository when the check fails.
	ValidateAndRecover(ctx context.Context) entities.SyncResult
}
