package entities

import (
	"fmt"
	"time"
)

// MemoryCategory classifies what kind of knowledge a memory record encodes.
type MemoryCategory string

const (
	MemoryCategoryFact       MemoryCategory = "fact"
	MemoryCategoryPreference MemoryCategory = "preference"
	MemoryCategoryDecision   MemoryCategory = "decision"
	MemoryCategoryCorrection MemoryCategory = "correction"
	MemoryCategoryNote       MemoryCategory = "note"
)

// MemoryMeta holds the YAML front-matter fields of a memory record.
type MemoryMeta struct {
	ID        string         `yaml:"id"`
	CreatedAt time.Time      `yaml:"created_at"`
	UpdatedAt time.Time      `yaml:"updated_at"`
	Category  MemoryCategory `yaml:"category"`
	SessionID string         `yaml:"session_id,omitempty"`
	Tags      []string       `yaml:"tags,omitempty"`
}

// Validate checks that the required metadata fields are populated.
func (m *MemoryMeta) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("memory: missing ID")
	}
	if m.Category == "" {
		return fmt.Errorf("memory: missing Category")
	}
	if m.CreatedAt.IsZero() {
		return fmt.Errorf("memory: missing CreatedAt")
	}
	return nil
}

// MemoryRecord is the fully parsed in-memory representation of one memory
// file: YAML front-matter metadata plus a Markdown body.
type MemoryRecord struct {
	Meta    MemoryMeta
	Content string
}

// Filename returns the file name the record is persisted under, relative to
// the repository directory.
func (r *MemoryRecord) Filename() string {
	return r.Meta.ID + ".md"
}
