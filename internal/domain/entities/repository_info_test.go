package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recallkit/recall/internal/domain/entities"
)

func TestClassifyRepositoryState(t *testing.T) {
	t.Parallel()

	t.Run("should classify a missing local repo with no remote as new local", func(t *testing.T) {
		t.Parallel()

		// when
		state := entities.ClassifyRepositoryState(false, false, false, false)

		// then
		assert.Equal(t, entities.StateNewLocal, state)
	})

	t.Run("should classify a missing local repo with a reachable remote as existing remote", func(t *testing.T) {
		t.Parallel()

		// when
		state := entities.ClassifyRepositoryState(false, true, false, false)

		// then
		assert.Equal(t, entities.StateExistingRemote, state)
	})

	t.Run("should classify a tracked up-to-date local repo as synchronized", func(t *testing.T) {
		t.Parallel()

		// when
		state := entities.ClassifyRepositoryState(true, true, true, false)

		// then
		assert.Equal(t, entities.StateSynchronized, state)
	})

	t.Run("should classify a tracked but divergent local repo as existing local", func(t *testing.T) {
		t.Parallel()

		// when
		state := entities.ClassifyRepositoryState(true, true, true, true)

		// then
		assert.Equal(t, entities.StateExistingLocal, state)
	})

	t.Run("should classify an untracked local repo as existing local", func(t *testing.T) {
		t.Parallel()

		// when
		state := entities.ClassifyRepositoryState(true, false, false, false)

		// then
		assert.Equal(t, entities.StateExistingLocal, state)
	})
}
