package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/recallkit/recall/internal/domain/entities"
	"github.com/recallkit/recall/internal/domain/repositories"
)

var (
	ErrNotFound      = errors.New("memory: record not found")
	ErrAlreadyExists = errors.New("memory: record already exists")
)

// FileStore persists memory records as Markdown files with YAML
// front-matter inside the repository directory. Writes are atomic (temp
// file + rename) and append-only: an existing ID is never overwritten.
type FileStore struct {
	dir string
}

var _ repositories.MemoryRepository = (*FileStore)(nil)

// NewFileStore bootstraps the storage directory and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("memory: init directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory records are stored in.
func (fs *FileStore) Dir() string {
	return fs.dir
}

func (fs *FileStore) pathForID(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("memory: invalid record id (empty)")
	}
	if strings.ContainsAny(id, "/\\") {
		return "", fmt.Errorf("memory: invalid record id %q (contains path separator)", id)
	}
	dir, err := filepath.Abs(fs.dir)
	if err != nil {
		return "", fmt.Errorf("memory: abs dir: %w", err)
	}
	resolved := filepath.Join(dir, id+".md")
	if !strings.HasPrefix(resolved, dir+string(filepath.Separator)) {
		return "", fmt.Errorf("memory: path traversal detected for id %q", id)
	}
	return resolved, nil
}

// Write persists a new record atomically, returning ErrAlreadyExists when
// the ID is already present on disk.
func (fs *FileStore) Write(_ context.Context, record *entities.MemoryRecord) error {
	data, err := Serialize(record)
	if err != nil {
		return err
	}
	path, err := fs.pathForID(record.Meta.ID)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return ErrAlreadyExists
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("memory: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("memory: atomic rename %s: %w", path, err)
	}
	return nil
}

// Read retrieves a record by ID, returning ErrNotFound when it does not
// exist.
func (fs *FileStore) Read(_ context.Context, id string) (*entities.MemoryRecord, error) {
	path, err := fs.pathForID(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("memory: read %s: %w", path, err)
	}
	return Parse(data)
}

// List returns all valid records. Corrupt or unreadable files are skipped
// with a debug log rather than failing the whole listing.
func (fs *FileStore) List(_ context.Context) ([]*entities.MemoryRecord, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("memory: list %s: %w", fs.dir, err)
	}

	var out []*entities.MemoryRecord
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		path := filepath.Join(fs.dir, e.Name())
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			logger.Debugf("Skipping unreadable memory file %s: %v", path, readErr)
			continue
		}
		record, parseErr := Parse(data)
		if parseErr != nil {
			logger.Debugf("Skipping corrupt memory file %s: %v", path, parseErr)
			continue
		}
		out = append(out, record)
	}
	return out, nil
}
