package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallkit/recall/internal/domain/commands"
	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/test/infrastructure/repositorydoubles"
)

func TestStoreCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should persist the record and enqueue a background sync", func(t *testing.T) {
		t.Parallel()

		// given
		memories := &repositorydoubles.SpyMemoryRepository{}
		syncer := &repositorydoubles.SpySyncRepository{}
		command := commands.NewStoreCommand(memories, syncer)

		// when
		record, err := command.Execute(context.Background(), commands.StoreOptions{
			ID:        "mem_1",
			Content:   "Prefers tabs over spaces",
			Category:  entities.MemoryCategoryPreference,
			SessionID: "session-1",
			Tags:      []string{"style"},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "mem_1", record.Meta.ID)
		assert.Equal(t, entities.MemoryCategoryPreference, record.Meta.Category)
		assert.False(t, record.Meta.CreatedAt.IsZero())
		require.Len(t, memories.Written, 1)
		assert.Equal(t, []string{"mem_1.md"}, syncer.BackgroundFilenames)
		assert.Empty(t, syncer.SyncedFilenames)
	})

	t.Run("should block on the sync when asked to wait", func(t *testing.T) {
		t.Parallel()

		// given
		memories := &repositorydoubles.SpyMemoryRepository{}
		syncer := &repositorydoubles.SpySyncRepository{
			SyncResult: entities.NewSuccessResult("sync-memory", "pushed", 1),
		}
		command := commands.NewStoreCommand(memories, syncer)

		// when
		_, err := command.Execute(context.Background(), commands.StoreOptions{
			ID:      "mem_1",
			Content: "content",
			Wait:    true,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"mem_1.md"}, syncer.SyncedFilenames)
		assert.Empty(t, syncer.BackgroundFilenames)
	})

	t.Run("should keep the record even when the awaited sync fails", func(t *testing.T) {
		t.Parallel()

		// given
		memories := &repositorydoubles.SpyMemoryRepository{}
		syncer := &repositorydoubles.SpySyncRepository{
			SyncResult: entities.NewFailureResult(
				"sync-memory", "remote down", entities.CodeCommandFailed, 3),
		}
		command := commands.NewStoreCommand(memories, syncer)

		// when
		record, err := command.Execute(context.Background(), commands.StoreOptions{
			ID:      "mem_1",
			Content: "content",
			Wait:    true,
		})

		// then
		require.NoError(t, err)
		assert.NotNil(t, record)
		assert.Len(t, memories.Written, 1)
	})

	t.Run("should default the category to note", func(t *testing.T) {
		t.Parallel()

		// given
		command := commands.NewStoreCommand(
			&repositorydoubles.SpyMemoryRepository{}, &repositorydoubles.SpySyncRepository{})

		// when
		record, err := command.Execute(context.Background(), commands.StoreOptions{
			ID:      "mem_1",
			Content: "content",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.MemoryCategoryNote, record.Meta.Category)
	})

	t.Run("should reject empty content without writing", func(t *testing.T) {
		t.Parallel()

		// given
		memories := &repositorydoubles.SpyMemoryRepository{}
		syncer := &repositorydoubles.SpySyncRepository{}
		command := commands.NewStoreCommand(memories, syncer)

		// when
		record, err := command.Execute(context.Background(), commands.StoreOptions{ID: "mem_1"})

		// then
		require.Error(t, err)
		assert.Nil(t, record)
		assert.Empty(t, memories.Written)
		assert.Empty(t, syncer.BackgroundFilenames)
	})

	t.Run("should not sync when the write fails", func(t *testing.T) {
		t.Parallel()

		// given
		memories := &repositorydoubles.SpyMemoryRepository{WriteErr: errors.New("disk full")}
		syncer := &repositorydoubles.SpySyncRepository{}
		command := commands.NewStoreCommand(memories, syncer)

		// when
		record, err := command.Execute(context.Background(), commands.StoreOptions{
			ID:      "mem_1",
			Content: "content",
		})

		// then
		require.Error(t, err)
		assert.Nil(t, record)
		assert.Empty(t, syncer.BackgroundFilenames)
		assert.Empty(t, syncer.SyncedFilenames)
	})
}
