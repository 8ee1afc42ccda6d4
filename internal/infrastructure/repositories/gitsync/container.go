package gitsync

import (
	"go.uber.org/dig"

	"github.com/recallkit/recall/internal/domain/repositories"
)

// RegisterProviders registers the sync engine providers with the DIG
// container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() GitRunner { return ExecGitRunner{} }); err != nil {
		return err
	}
	if err := container.Provide(func() repositories.SyncObserver {
		return repositories.NoopSyncObserver{}
	}); err != nil {
		return err
	}
	if err := container.Provide(NewManager); err != nil {
		return err
	}
	if err := container.Provide(func(m *Manager) repositories.SyncRepository { return m }); err != nil {
		return err
	}
	return nil
}
