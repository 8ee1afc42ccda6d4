package controllers

import (
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recallkit/recall/internal/domain/commands"
	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/internal/infrastructure/repositories/memory"
)

// StoreController handles the "store" subcommand.
type StoreController struct {
	command commands.Store
}

// NewStoreController creates a new StoreController.
func NewStoreController(command commands.Store) *StoreController {
	return &StoreController{command: command}
}

// GetBind returns the Cobra command metadata for the store controller.
func (it *StoreController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "store <content>",
		Short: "Store a new memory record",
		Long: `Store a new memory record as a Markdown file and synchronize it
with the configured git remote.

The record is durable on disk immediately; synchronization runs in the
background unless --wait is given.`,
	}
}

// Execute stores one memory record.
func (it *StoreController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) == 0 {
		logger.Error("store requires the memory content as an argument")
		return
	}

	category, _ := cmd.Flags().GetString("category")
	session, _ := cmd.Flags().GetString("session")
	tags, _ := cmd.Flags().GetStringSlice("tag")
	wait, _ := cmd.Flags().GetBool("wait")

	record, err := it.command.Execute(ctx, commands.StoreOptions{
		ID:        memory.NewID(),
		Content:   strings.Join(args, " "),
		Category:  entities.MemoryCategory(category),
		SessionID: session,
		Tags:      tags,
		Wait:      wait,
	})
	if err != nil {
		logger.Errorf("Failed to store memory: %v", err)
		return
	}

	logger.Infof("Memory stored as %s", record.Meta.ID)
}

// AddFlags adds the store-specific flags to the given Cobra command.
func (it *StoreController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("category", string(entities.MemoryCategoryNote),
		"Memory category (fact, preference, decision, correction, note)")
	cmd.Flags().String("session", "", "Session identifier to attach to the record")
	cmd.Flags().StringSlice("tag", nil, "Tag to attach to the record (repeatable)")
	cmd.Flags().Bool("wait", false, "Block until the git sync completes")
}
