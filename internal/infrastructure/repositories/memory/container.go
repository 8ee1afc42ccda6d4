package memory

import (
	"go.uber.org/dig"

	"github.com/recallkit/recall/config"
	"github.com/recallkit/recall/internal/domain/repositories"
)

// RegisterProviders registers the memory store providers with the DIG
// container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func(cfg *config.Config) (*FileStore, error) {
		return NewFileStore(cfg.Storage.RepoDir)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(fs *FileStore) repositories.MemoryRepository { return fs }); err != nil {
		return err
	}
	return nil
}
