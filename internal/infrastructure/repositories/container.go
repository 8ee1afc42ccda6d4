package repositories

import (
	"os"

	"go.uber.org/dig"

	"github.com/recallkit/recall/config"
	"github.com/recallkit/recall/internal/infrastructure/repositories/gitsync"
	"github.com/recallkit/recall/internal/infrastructure/repositories/memory"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Configuration feeds both the file store and the sync engine
	if err := container.Provide(loadConfig); err != nil {
		return err
	}

	if err := memory.RegisterProviders(container); err != nil {
		return err
	}
	if err := gitsync.RegisterProviders(container); err != nil {
		return err
	}

	return nil
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("RECALL_CONFIG"); path != "" {
		return config.Load(path)
	}
	path, err := config.FindConfigFile()
	if err != nil {
		return config.Default(), nil
	}
	return config.Load(path)
}
