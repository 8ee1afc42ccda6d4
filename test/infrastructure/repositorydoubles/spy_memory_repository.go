// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock
// frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/internal/domain/repositories"
)

// SpyMemoryRepository implements repositories.MemoryRepository as a
// configurable in-memory spy. Configure the response fields for the methods
// your test exercises, then inspect the call-tracking fields.
type SpyMemoryRepository struct {
	// --- Write ---
	WriteErr error
	// spy: records received
	Written []*entities.MemoryRecord

	// --- Read ---
	Records map[string]*entities.MemoryRecord // id -> record
	ReadErr error
	// spy: ids requested
	ReadIDs []string

	// --- List ---
	Listed  []*entities.MemoryRecord
	ListErr error

	// --- Backup ---
	BackupDir   string
	BackupCount int
	BackupErr   error
	BackupCalls int

	// --- Restore ---
	RestoreCount int
	RestoreErr   error
	RestoreDirs  []string
}

var _ repositories.MemoryRepository = (*SpyMemoryRepository)(nil)

func (s *SpyMemoryRepository) Write(_ context.Context, record *entities.MemoryRecord) error {
	s.Written = append(s.Written, record)
	return s.WriteErr
}

func (s *SpyMemoryRepository) Read(_ context.Context, id string) (*entities.MemoryRecord, error) {
	s.ReadIDs = append(s.ReadIDs, id)
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if record, ok := s.Records[id]; ok {
		return record, nil
	}
	return nil, fmt.Errorf("memory not found: %s", id)
}

func (s *SpyMemoryRepository) List(_ context.Context) ([]*entities.MemoryRecord, error) {
	return s.Listed, s.ListErr
}

func (s *SpyMemoryRepository) Backup(_ context.Context) (string, int, error) {
	s.BackupCalls++
	return s.BackupDir, s.BackupCount, s.BackupErr
}

func (s *SpyMemoryRepository) Restore(_ context.Context, backupDir string) (int, error) {
	s.RestoreDirs = append(s.RestoreDirs, backupDir)
	return s.RestoreCount, s.RestoreErr
}
