package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recallkit/recall/internal/domain/commands"
	"github.com/recallkit/recall/internal/domain/entities"
)

// SyncController handles the "sync" subcommand.
type SyncController struct {
	command commands.Sync
}

// NewSyncController creates a new SyncController.
func NewSyncController(command commands.Sync) *SyncController {
	return &SyncController{command: command}
}

// GetBind returns the Cobra command metadata for the sync controller.
func (it *SyncController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sync <memory-id>",
		Short: "Synchronize a stored memory with the remote",
		Long: `Re-run the git add/commit/push sequence for one stored memory record.

Use this for records whose background synchronization failed.`,
	}
}

// Execute synchronizes one memory record and reports the outcome.
func (it *SyncController) Execute(_ *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) != 1 {
		logger.Error("sync requires exactly one memory ID")
		return
	}

	result, err := it.command.Execute(ctx, args[0])
	if err != nil {
		logger.Errorf("Failed to sync memory: %v", err)
		return
	}

	if result.Success {
		logger.Infof("Memory %s synchronized: %s", args[0], result.Message)
	} else {
		logger.Errorf("Memory %s sync failed [%s]: %s", args[0], result.ErrorCode, result.Message)
	}
}
