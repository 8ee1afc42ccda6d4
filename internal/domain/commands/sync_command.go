package commands

import (
	"context"
	"fmt"

	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/internal/domain/repositories"
)

// Sync is the interface for the sync command.
type Sync interface {
	Execute(ctx context.Context, memoryID string) (entities.SyncResult, error)
}

// SyncCommand re-runs the git synchronization for one stored memory record.
// This is the explicit path for records whose background sync failed.
type SyncCommand struct {
	memories repositories.MemoryRepository
	syncer   repositories.SyncRepository
}

// NewSyncCommand creates a new SyncCommand.
func NewSyncCommand(
	memories repositories.MemoryRepository,
	syncer repositories.SyncRepository,
) *SyncCommand {
	return &SyncCommand{
		memories: memories,
		syncer:   syncer,
	}
}

// Execute blocks until the add/commit/push sequence for the record
// completes.
func (it *SyncCommand) Execute(ctx context.Context, memoryID string) (entities.SyncResult, error) {
	record, err := it.memories.Read(ctx, memoryID)
	if err != nil {
		return entities.SyncResult{}, fmt.Errorf("cannot sync memory %q: %w", memoryID, err)
	}

	return it.syncer.SyncMemoryWithRetry(ctx, record.Meta.ID, record.Filename()), nil
}
