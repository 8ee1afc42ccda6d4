package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/internal/domain/repositories"
)

// Recover is the interface for the recover command.
type Recover interface {
	Execute(ctx context.Context, opts RecoverOptions) entities.SyncResult
}

// RecoverOptions holds runtime options for a recovery run.
type RecoverOptions struct {
	// BackupFirst copies the memory files aside before any repair runs.
	BackupFirst bool
}

// RecoverCommand validates repository integrity and repairs the repository
// when validation fails, optionally taking a plain-copy backup first.
type RecoverCommand struct {
	memories repositories.MemoryRepository
	syncer   repositories.SyncRepository
}

// NewRecoverCommand creates a new RecoverCommand.
func NewRecoverCommand(
	memories repositories.MemoryRepository,
	syncer repositories.SyncRepository,
) *RecoverCommand {
	return &RecoverCommand{
		memories: memories,
		syncer:   syncer,
	}
}

// Execute runs the integrity check and recovery.
func (it *RecoverCommand) Execute(ctx context.Context, opts RecoverOptions) entities.SyncResult {
	if opts.BackupFirst {
		if dir, count, err := it.memories.Backup(ctx); err != nil {
			logger.Warnf("Pre-recovery backup failed: %v", err)
		} else {
			logger.Infof("Pre-recovery backup of %d files at %s", count, dir)
		}
	}

	return it.syncer.ValidateAndRecover(ctx)
}
