package controllers_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/internal/infrastructure/controllers"
	"github.com/recallkit/recall/test/domain/commanddoubles"
)

func newCobraCommand() *cobra.Command {
	return &cobra.Command{Use: "test"} //nolint:exhaustruct // test shell only
}

func TestStoreControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should store the joined arguments with the flag values", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubStoreCommand{}
		controller := controllers.NewStoreController(stub)
		cmd := newCobraCommand()
		controller.AddFlags(cmd)
		require.NoError(t, cmd.Flags().Set("category", "decision"))
		require.NoError(t, cmd.Flags().Set("session", "session-7"))
		require.NoError(t, cmd.Flags().Set("tag", "architecture"))
		require.NoError(t, cmd.Flags().Set("wait", "true"))

		// when
		controller.Execute(cmd, []string{"use", "dig", "for", "wiring"})

		// then
		require.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, "use dig for wiring", stub.LastOpts.Content)
		assert.Equal(t, entities.MemoryCategoryDecision, stub.LastOpts.Category)
		assert.Equal(t, "session-7", stub.LastOpts.SessionID)
		assert.Equal(t, []string{"architecture"}, stub.LastOpts.Tags)
		assert.True(t, stub.LastOpts.Wait)
		assert.NotEmpty(t, stub.LastOpts.ID)
	})

	t.Run("should not invoke the command without content", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubStoreCommand{}
		controller := controllers.NewStoreController(stub)
		cmd := newCobraCommand()
		controller.AddFlags(cmd)

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Zero(t, stub.ExecuteCallCount)
	})
}

func TestSyncControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should sync the requested memory", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubSyncCommand{
			Result: entities.NewSuccessResult("sync-memory", "pushed", 1),
		}
		controller := controllers.NewSyncController(stub)

		// when
		controller.Execute(newCobraCommand(), []string{"mem_1"})

		// then
		require.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, "mem_1", stub.LastMemoryID)
	})

	t.Run("should require exactly one memory ID", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubSyncCommand{}
		controller := controllers.NewSyncController(stub)

		// when
		controller.Execute(newCobraCommand(), []string{"mem_1", "mem_2"})

		// then
		assert.Zero(t, stub.ExecuteCallCount)
	})
}

func TestRecoverControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should pass the backup flag through", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRecoverCommand{
			Result: entities.NewSuccessResult("recover-repository", "healthy", 1),
		}
		controller := controllers.NewRecoverController(stub)
		cmd := newCobraCommand()
		controller.AddFlags(cmd)
		require.NoError(t, cmd.Flags().Set("backup", "true"))

		// when
		controller.Execute(cmd, nil)

		// then
		require.Equal(t, 1, stub.ExecuteCallCount)
		assert.True(t, stub.LastOpts.BackupFirst)
	})
}

func TestControllerBinds(t *testing.T) {
	t.Parallel()

	t.Run("should expose usable metadata for every controller", func(t *testing.T) {
		t.Parallel()

		// given
		all := *controllers.NewControllers(
			controllers.NewStoreController(&commanddoubles.StubStoreCommand{}),
			controllers.NewSyncController(&commanddoubles.StubSyncCommand{}),
			controllers.NewListController(&commanddoubles.StubListCommand{}),
			controllers.NewStatusController(&commanddoubles.StubStatusCommand{}),
			controllers.NewRecoverController(&commanddoubles.StubRecoverCommand{}),
		)

		// when / then
		require.Len(t, all, 5)
		for _, controller := range all {
			bind := controller.GetBind()
			assert.NotEmpty(t, bind.Use)
			assert.NotEmpty(t, bind.Short)
		}
	})
}
