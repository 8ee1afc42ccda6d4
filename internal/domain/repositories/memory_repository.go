package repositories

import (
	"context"

	"github.com/recallkit/recall/internal/domain/entities"
)

// MemoryRepository is the read/write interface for persisted memory records.
type MemoryRepository interface {
	Write(ctx context.Context, record *entities.MemoryRecord) error
	Read(ctx context.Context, id string) (*entities.MemoryRecord, error)
	List(ctx context.Context) ([]*entities.MemoryRecord, error)

	// Backup copies every record into a timestamped backup directory and
	// returns its path together with the number of files copied.
	Backup(ctx context.Context) (string, int, error)
	// Restore copies records back from a backup directory, skipping files
	// that already exist in the store.
	Restore(ctx context.Context, backupDir string) (int, error)
}
