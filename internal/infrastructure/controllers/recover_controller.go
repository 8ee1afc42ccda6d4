package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recallkit/recall/internal/domain/commands"
	"github.com/recallkit/recall/internal/domain/entities"
)

// RecoverController handles the "recover" subcommand.
type RecoverController struct {
	command commands.Recover
}

// NewRecoverController creates a new RecoverController.
func NewRecoverController(command commands.Recover) *RecoverController {
	return &RecoverController{command: command}
}

// GetBind returns the Cobra command metadata for the recover controller.
func (it *RecoverController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "recover",
		Short: "Validate and repair the memory repository",
		Long: `Run a git integrity check on the memory repository and repair it when
the check fails. Repair tries garbage collection first and falls back to
re-creating the repository metadata; memory files themselves are kept.`,
	}
}

// Execute validates the repository and repairs it if needed.
func (it *RecoverController) Execute(cmd *cobra.Command, _ []string) {
	backup, _ := cmd.Flags().GetBool("backup")

	result := it.command.Execute(context.Background(), commands.RecoverOptions{
		BackupFirst: backup,
	})

	if result.Success {
		logger.Infof("Repository healthy: %s", result.Message)
	} else {
		logger.Errorf("Recovery failed [%s]: %s", result.ErrorCode, result.Message)
	}
}

// AddFlags adds the recover-specific flags to the given Cobra command.
func (it *RecoverController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("backup", false, "Copy memory files aside before attempting any repair")
}
