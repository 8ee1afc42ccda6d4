package controllers

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recallkit/recall/internal/domain/commands"
	"github.com/recallkit/recall/internal/domain/entities"
)

// ListController handles the "list" subcommand.
type ListController struct {
	command commands.List
}

// NewListController creates a new ListController.
func NewListController(command commands.List) *ListController {
	return &ListController{command: command}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list",
		Short: "List stored memory records",
		Long:  `List every stored memory record, newest first. Unreadable files are skipped.`,
	}
}

// Execute prints all stored memory records.
func (it *ListController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	records, err := it.command.Execute(ctx)
	if err != nil {
		logger.Errorf("Failed to list memories: %v", err)
		return
	}

	if len(records) == 0 {
		fmt.Println("No memories stored.")
		return
	}

	full, _ := cmd.Flags().GetBool("full")
	for _, record := range records {
		fmt.Printf("%s  %-10s  %s  %s\n",
			record.Meta.ID,
			record.Meta.Category,
			record.Meta.CreatedAt.Format("2006-01-02 15:04"),
			summarize(record.Content, full))
		if len(record.Meta.Tags) > 0 {
			fmt.Printf("    tags: %s\n", strings.Join(record.Meta.Tags, ", "))
		}
	}
}

// AddFlags adds the list-specific flags to the given Cobra command.
func (it *ListController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("full", false, "Print full memory content instead of a one-line summary")
}

func summarize(content string, full bool) string {
	if full {
		return content
	}
	line := strings.SplitN(strings.TrimSpace(content), "\n", 2)[0]
	const maxLen = 80
	if len(line) > maxLen {
		return line[:maxLen-3] + "..."
	}
	return line
}
