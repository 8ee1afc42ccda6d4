// Package entitybuilders provides fluent builders for test entities.
package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/recallkit/recall/internal/domain/entities"
)

// MemoryRecordBuilder helps create test memory records with a fluent interface.
type MemoryRecordBuilder struct {
	*testkit.BaseBuilder
	id        string
	category  entities.MemoryCategory
	sessionID string
	tags      []string
	content   string
	createdAt time.Time
}

// NewMemoryRecordBuilder creates a new memory record builder with sensible defaults.
func NewMemoryRecordBuilder() *MemoryRecordBuilder {
	return &MemoryRecordBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		id:          "mem_0123456789abcdef0123456789abcdef",
		category:    entities.MemoryCategoryNote,
		content:     "test memory content",
		createdAt:   time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

// WithID sets the memory identifier.
func (b *MemoryRecordBuilder) WithID(id string) *MemoryRecordBuilder {
	b.id = id
	return b
}

// WithCategory sets the memory category.
func (b *MemoryRecordBuilder) WithCategory(category entities.MemoryCategory) *MemoryRecordBuilder {
	b.category = category
	return b
}

// WithSessionID sets the originating session identifier.
func (b *MemoryRecordBuilder) WithSessionID(sessionID string) *MemoryRecordBuilder {
	b.sessionID = sessionID
	return b
}

// WithTags sets the memory tags.
func (b *MemoryRecordBuilder) WithTags(tags ...string) *MemoryRecordBuilder {
	b.tags = tags
	return b
}

// WithContent sets the Markdown body.
func (b *MemoryRecordBuilder) WithContent(content string) *MemoryRecordBuilder {
	b.content = content
	return b
}

// WithCreatedAt sets the creation timestamp (also used as the update time).
func (b *MemoryRecordBuilder) WithCreatedAt(createdAt time.Time) *MemoryRecordBuilder {
	b.createdAt = createdAt
	return b
}

// Build creates the memory record (satisfies testkit.Builder interface).
func (b *MemoryRecordBuilder) Build() interface{} {
	return b.BuildMemoryRecord()
}

// BuildMemoryRecord creates the memory record with a concrete return type.
func (b *MemoryRecordBuilder) BuildMemoryRecord() entities.MemoryRecord {
	return entities.MemoryRecord{
		Meta: entities.MemoryMeta{
			ID:        b.id,
			CreatedAt: b.createdAt,
			UpdatedAt: b.createdAt,
			Category:  b.category,
			SessionID: b.sessionID,
			Tags:      b.tags,
		},
		Content: b.content,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *MemoryRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = "mem_0123456789abcdef0123456789abcdef"
	b.category = entities.MemoryCategoryNote
	b.sessionID = ""
	b.tags = nil
	b.content = "test memory content"
	b.createdAt = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	return b
}

// Clone creates a deep copy of the MemoryRecordBuilder.
func (b *MemoryRecordBuilder) Clone() testkit.Builder {
	tags := make([]string, len(b.tags))
	copy(tags, b.tags)
	return &MemoryRecordBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:          b.id,
		category:    b.category,
		sessionID:   b.sessionID,
		tags:        tags,
		content:     b.content,
		createdAt:   b.createdAt,
	}
}
