package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []any{
		NewStoreCommand,
		NewSyncCommand,
		NewListCommand,
		NewStatusCommand,
		NewRecoverCommand,
	}
	for _, c := range constructors {
		if err := container.Provide(c); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *StoreCommand) Store { return impl }); err != nil {
		return err
	}
	if err := container.Provide(func(impl *SyncCommand) Sync { return impl }); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ListCommand) List { return impl }); err != nil {
		return err
	}
	if err := container.Provide(func(impl *StatusCommand) Status { return impl }); err != nil {
		return err
	}
	if err := container.Provide(func(impl *RecoverCommand) Recover { return impl }); err != nil {
		return err
	}

	return nil
}
