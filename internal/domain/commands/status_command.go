package commands

import (
	"context"

	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/internal/domain/repositories"
)

// Status is the interface for the status command.
type Status interface {
	Execute(ctx context.Context) entities.RepositoryStatus
}

// StatusCommand reports the sync engine's view of the memory repository.
type StatusCommand struct {
	syncer repositories.SyncRepository
}

// NewStatusCommand creates a new StatusCommand.
func NewStatusCommand(syncer repositories.SyncRepository) *StatusCommand {
	return &StatusCommand{syncer: syncer}
}

// Execute returns the current repository status snapshot.
func (it *StatusCommand) Execute(_ context.Context) entities.RepositoryStatus {
	return it.syncer.RepositoryStatus()
}
