package commands

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/internal/domain/repositories"
)

// Store is the interface for the store command.
type Store interface {
	Execute(ctx context.Context, opts StoreOptions) (*entities.MemoryRecord, error)
}

// StoreOptions holds runtime options for storing one memory record.
type StoreOptions struct {
	ID        string // Generated by the caller (infrastructure layer)
	Content   string
	Category  entities.MemoryCategory
	SessionID string
	Tags      []string
	Wait      bool // Block on the git sync instead of firing it in background
}

// StoreCommand persists a memory record and hands it to the sync engine.
// Storing never fails because of sync: the record is durable on disk first,
// and synchronization runs in the background unless the caller opts to wait.
type StoreCommand struct {
	memories repositories.MemoryRepository
	syncer   repositories.SyncRepository
}

// NewStoreCommand creates a new StoreCommand.
func NewStoreCommand(
	memories repositories.MemoryRepository,
	syncer repositories.SyncRepository,
) *StoreCommand {
	return &StoreCommand{
		memories: memories,
		syncer:   syncer,
	}
}

// Execute writes the record and triggers synchronization.
func (it *StoreCommand) Execute(ctx context.Context, opts StoreOptions) (*entities.MemoryRecord, error) {
	if opts.Content == "" {
		return nil, fmt.Errorf("memory content must not be empty")
	}

	category := opts.Category
	if category == "" {
		category = entities.MemoryCategoryNote
	}

	now := time.Now().UTC()
	record := &entities.MemoryRecord{
		Meta: entities.MemoryMeta{
			ID:        opts.ID,
			CreatedAt: now,
			UpdatedAt: now,
			Category:  category,
			SessionID: opts.SessionID,
			Tags:      opts.Tags,
		},
		Content: opts.Content,
	}

	if err := it.memories.Write(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store memory: %w", err)
	}
	logger.Infof("Stored memory %s (%s)", record.Meta.ID, record.Meta.Category)

	if opts.Wait {
		result := it.syncer.SyncMemoryWithRetry(ctx, record.Meta.ID, record.Filename())
		if !result.Success {
			logger.Warnf("Memory %s stored but sync failed: %s", record.Meta.ID, result.Message)
		}
	} else {
		it.syncer.SyncMemoryBackground(record.Meta.ID, record.Filename())
	}

	return record, nil
}
