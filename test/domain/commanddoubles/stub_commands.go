// Package commanddoubles provides stub implementations of the domain command
// interfaces for controller tests.
package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/recallkit/recall/internal/domain/commands"
	"github.com/recallkit/recall/internal/domain/entities"
)

// StubStoreCommand is a stub implementation of commands.Store.
type StubStoreCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Record           *entities.MemoryRecord
	LastOpts         commands.StoreOptions
}

var _ commands.Store = (*StubStoreCommand)(nil)

func (s *StubStoreCommand) Execute(
	_ context.Context, opts commands.StoreOptions,
) (*entities.MemoryRecord, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Record != nil {
		return s.Record, nil
	}
	return &entities.MemoryRecord{
		Meta:    entities.MemoryMeta{ID: opts.ID, Category: opts.Category},
		Content: opts.Content,
	}, nil
}

// StubSyncCommand is a stub implementation of commands.Sync.
type StubSyncCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           entities.SyncResult
	LastMemoryID     string
}

var _ commands.Sync = (*StubSyncCommand)(nil)

func (s *StubSyncCommand) Execute(
	_ context.Context, memoryID string,
) (entities.SyncResult, error) {
	s.ExecuteCallCount++
	s.LastMemoryID = memoryID
	if s.ExecuteErr != nil {
		return entities.SyncResult{}, s.ExecuteErr
	}
	return s.Result, nil
}

// StubListCommand is a stub implementation of commands.List.
type StubListCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Records          []*entities.MemoryRecord
}

var _ commands.List = (*StubListCommand)(nil)

func (s *StubListCommand) Execute(_ context.Context) ([]*entities.MemoryRecord, error) {
	s.ExecuteCallCount++
	return s.Records, s.ExecuteErr
}

// StubStatusCommand is a stub implementation of commands.Status.
type StubStatusCommand struct {
	ExecuteCallCount int
	Status           entities.RepositoryStatus
}

var _ commands.Status = (*StubStatusCommand)(nil)

func (s *StubStatusCommand) Execute(_ context.Context) entities.RepositoryStatus {
	s.ExecuteCallCount++
	return s.Status
}

// StubRecoverCommand is a stub implementation of commands.Recover.
type StubRecoverCommand struct {
	ExecuteCallCount int
	Result           entities.SyncResult
	LastOpts         commands.RecoverOptions
}

var _ commands.Recover = (*StubRecoverCommand)(nil)

func (s *StubRecoverCommand) Execute(
	_ context.Context, opts commands.RecoverOptions,
) entities.SyncResult {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Result
}
