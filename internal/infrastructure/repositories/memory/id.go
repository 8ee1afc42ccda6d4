package memory

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a unique memory record identifier. The "mem_" prefix
// keeps IDs recognizable in commit messages and directory listings.
func NewID() string {
	return "mem_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
