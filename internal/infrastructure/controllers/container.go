package controllers

import (
	"go.uber.org/dig"

	"github.com/recallkit/recall/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	constructors := []any{
		NewStoreController,
		NewSyncController,
		NewListController,
		NewStatusController,
		NewRecoverController,
		NewControllers,
	}
	for _, c := range constructors {
		if err := container.Provide(c); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	storeController *StoreController,
	syncController *SyncController,
	listController *ListController,
	statusController *StatusController,
	recoverController *RecoverController,
) *[]entities.Controller {
	return &[]entities.Controller{
		storeController,
		syncController,
		listController,
		statusController,
		recoverController,
	}
}
