package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallkit/recall/internal/domain/commands"
	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/test/domain/entitybuilders"
	"github.com/recallkit/recall/test/infrastructure/repositorydoubles"
)

func storedRecord(id string, createdAt time.Time) *entities.MemoryRecord {
	record := entitybuilders.NewMemoryRecordBuilder().
		WithID(id).
		WithCategory(entities.MemoryCategoryFact).
		WithContent("content of " + id).
		WithCreatedAt(createdAt).
		BuildMemoryRecord()
	return &record
}

func TestSyncCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should sync an existing record by filename", func(t *testing.T) {
		t.Parallel()

		// given
		memories := &repositorydoubles.SpyMemoryRepository{
			Records: map[string]*entities.MemoryRecord{
				"mem_1": storedRecord("mem_1", time.Now()),
			},
		}
		syncer := &repositorydoubles.SpySyncRepository{
			SyncResult: entities.NewSuccessResult("sync-memory", "pushed", 1),
		}
		command := commands.NewSyncCommand(memories, syncer)

		// when
		result, err := command.Execute(context.Background(), "mem_1")

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, []string{"mem_1.md"}, syncer.SyncedFilenames)
	})

	t.Run("should refuse to sync a record that does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		memories := &repositorydoubles.SpyMemoryRepository{}
		syncer := &repositorydoubles.SpySyncRepository{}
		command := commands.NewSyncCommand(memories, syncer)

		// when
		_, err := command.Execute(context.Background(), "mem_ghost")

		// then
		require.Error(t, err)
		assert.Empty(t, syncer.SyncedFilenames)
	})
}

func TestListCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should return records newest first", func(t *testing.T) {
		t.Parallel()

		// given
		now := time.Now()
		memories := &repositorydoubles.SpyMemoryRepository{
			Listed: []*entities.MemoryRecord{
				storedRecord("mem_old", now.Add(-2*time.Hour)),
				storedRecord("mem_new", now),
				storedRecord("mem_mid", now.Add(-1*time.Hour)),
			},
		}
		command := commands.NewListCommand(memories)

		// when
		records, err := command.Execute(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "mem_new", records[0].Meta.ID)
		assert.Equal(t, "mem_mid", records[1].Meta.ID)
		assert.Equal(t, "mem_old", records[2].Meta.ID)
	})

	t.Run("should return an empty slice when nothing is stored", func(t *testing.T) {
		t.Parallel()

		// given
		command := commands.NewListCommand(&repositorydoubles.SpyMemoryRepository{})

		// when
		records, err := command.Execute(context.Background())

		// then
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestStatusCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should expose the repository status snapshot", func(t *testing.T) {
		t.Parallel()

		// given
		syncer := &repositorydoubles.SpySyncRepository{
			Status: entities.RepositoryStatus{
				Initialized: true,
				SyncEnabled: true,
				RemoteURL:   "https://example.com/memories.git",
			},
		}
		command := commands.NewStatusCommand(syncer)

		// when
		status := command.Execute(context.Background())

		// then
		assert.True(t, status.Initialized)
		assert.Equal(t, "https://example.com/memories.git", status.RemoteURL)
	})
}
