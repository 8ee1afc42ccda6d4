package memory

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/recallkit/recall/internal/domain/entities"
)

const frontMatterDelimiter = "---"

// Serialize renders a memory record as Markdown with YAML front-matter.
func Serialize(record *entities.MemoryRecord) ([]byte, error) {
	if err := record.Meta.Validate(); err != nil {
		return nil, err
	}

	meta, err := yaml.Marshal(&record.Meta)
	if err != nil {
		return nil, fmt.Errorf("memory: marshal front-matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(frontMatterDelimiter + "\n")
	buf.Write(meta)
	buf.WriteString(frontMatterDelimiter + "\n\n")
	buf.WriteString(strings.TrimLeft(record.Content, "\n"))
	if !strings.HasSuffix(record.Content, "\n") {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// Parse reads a memory record back from its on-disk form.
func Parse(data []byte) (*entities.MemoryRecord, error) {
	text := string(data)
	if !strings.HasPrefix(text, frontMatterDelimiter+"\n") {
		return nil, fmt.Errorf("memory: missing front-matter delimiter")
	}

	rest := text[len(frontMatterDelimiter)+1:]
	metaText, content, found := strings.Cut(rest, "\n"+frontMatterDelimiter+"\n")
	if !found {
		return nil, fmt.Errorf("memory: unterminated front-matter")
	}

	var meta entities.MemoryMeta
	if err := yaml.Unmarshal([]byte(metaText+"\n"), &meta); err != nil {
		return nil, fmt.Errorf("memory: parse front-matter: %w", err)
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	return &entities.MemoryRecord{
		Meta:    meta,
		Content: strings.TrimLeft(content, "\n"),
	}, nil
}
