package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/internal/domain/repositories"
)

// StubSyncHandle is a completed repositories.SyncHandle with a fixed result.
type StubSyncHandle struct {
	Result entities.SyncResult
}

var _ repositories.SyncHandle = (*StubSyncHandle)(nil)

func (h *StubSyncHandle) Wait() entities.SyncResult {
	return h.Result
}

func (h *StubSyncHandle) Done() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}

// SpySyncRepository implements repositories.SyncRepository as a configurable
// spy.
type SpySyncRepository struct {
	// --- SyncMemoryWithRetry ---
	SyncResult entities.SyncResult
	// spy: filenames synced in order
	SyncedFilenames []string
	SyncedIDs       []string

	// --- SyncMemoryBackground ---
	BackgroundResult entities.SyncResult
	BackgroundNil    bool
	// spy: filenames enqueued in order
	BackgroundFilenames []string

	// --- IsInitialized / RepositoryStatus ---
	Initialized bool
	Status      entities.RepositoryStatus

	// --- RecoverFromError ---
	RecoverResult entities.SyncResult
	// spy: failed results handed in
	RecoveredFrom []entities.SyncResult

	// --- ValidateAndRecover ---
	ValidateResult entities.SyncResult
	ValidateCalls  int
}

var _ repositories.SyncRepository = (*SpySyncRepository)(nil)

func (s *SpySyncRepository) SyncMemoryWithRetry(
	_ context.Context, memoryID, filename string,
) entities.SyncResult {
	s.SyncedIDs = append(s.SyncedIDs, memoryID)
	s.SyncedFilenames = append(s.SyncedFilenames, filename)
	return s.SyncResult
}

func (s *SpySyncRepository) SyncMemoryBackground(_, filename string) repositories.SyncHandle {
	s.BackgroundFilenames = append(s.BackgroundFilenames, filename)
	if s.BackgroundNil {
		return nil
	}
	return &StubSyncHandle{Result: s.BackgroundResult}
}

func (s *SpySyncRepository) IsInitialized() bool {
	return s.Initialized
}

func (s *SpySyncRepository) RepositoryStatus() entities.RepositoryStatus {
	return s.Status
}

func (s *SpySyncRepository) RecoverFromError(
	_ context.Context, failed entities.SyncResult,
) entities.SyncResult {
	s.RecoveredFrom = append(s.RecoveredFrom, failed)
	return s.RecoverResult
}

func (s *SpySyncRepository) ValidateAndRecover(_ context.Context) entities.SyncResult {
	s.ValidateCalls++
	return s.ValidateResult
}
