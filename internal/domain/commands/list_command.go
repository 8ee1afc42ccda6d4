package commands

import (
	"context"
	"sort"

	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/internal/domain/repositories"
)

// List is the interface for the list command.
type List interface {
	Execute(ctx context.Context) ([]*entities.MemoryRecord, error)
}

// ListCommand returns all stored memory records, newest first.
type ListCommand struct {
	memories repositories.MemoryRepository
}

// NewListCommand creates a new ListCommand.
func NewListCommand(memories repositories.MemoryRepository) *ListCommand {
	return &ListCommand{memories: memories}
}

// Execute lists every readable record.
func (it *ListCommand) Execute(ctx context.Context) ([]*entities.MemoryRecord, error) {
	records, err := it.memories.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Meta.CreatedAt.After(records[j].Meta.CreatedAt)
	})
	return records, nil
}
