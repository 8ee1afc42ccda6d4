package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recallkit/recall/internal/domain/commands"
	"github.com/recallkit/recall/internal/domain/entities"
)

// StatusController handles the "status" subcommand.
type StatusController struct {
	command commands.Status
}

// NewStatusController creates a new StatusController.
func NewStatusController(command commands.Status) *StatusController {
	return &StatusController{command: command}
}

// GetBind returns the Cobra command metadata for the status controller.
func (it *StatusController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "status",
		Short: "Show the sync engine status",
		Long:  `Show whether synchronization is enabled, the repository is initialized, and the last sync error if any.`,
	}
}

// Execute prints the repository status snapshot.
func (it *StatusController) Execute(_ *cobra.Command, _ []string) {
	status := it.command.Execute(context.Background())

	fmt.Printf("Sync enabled:      %s\n", yesNo(status.SyncEnabled))
	fmt.Printf("Initialized:       %s\n", yesNo(status.Initialized))
	fmt.Printf("Repository exists: %s\n", yesNo(status.RepositoryExists))
	fmt.Printf("Remote configured: %s\n", yesNo(status.RemoteConfigured))
	if status.RemoteURL != "" {
		fmt.Printf("Remote URL:        %s\n", status.RemoteURL)
	}
	if status.LastError != "" {
		fmt.Printf("Last error:        %s\n", status.LastError)
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
