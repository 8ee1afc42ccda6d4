package memory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"
)

const backupTimeFormat = "20060102-150405"

// Backup copies every record file into a timestamped sibling directory and
// returns its path and the number of files copied. This is the plain-copy
// safety net next to the git history, not a replacement for it.
func (fs *FileStore) Backup(_ context.Context) (string, int, error) {
	parent := filepath.Dir(fs.dir)
	backupDir := filepath.Join(parent,
		fmt.Sprintf("%s-backup-%s", filepath.Base(fs.dir), time.Now().Format(backupTimeFormat)))
	if err := os.MkdirAll(backupDir, 0o750); err != nil {
		return "", 0, fmt.Errorf("memory: create backup directory: %w", err)
	}

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return "", 0, fmt.Errorf("memory: list %s: %w", fs.dir, err)
	}

	copied := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		if err := copyFile(
			filepath.Join(fs.dir, e.Name()),
			filepath.Join(backupDir, e.Name()),
		); err != nil {
			return "", copied, err
		}
		copied++
	}

	logger.Infof("Backed up %d memory files to %s", copied, backupDir)
	return backupDir, copied, nil
}

// Restore copies record files back from a backup directory, skipping files
// that already exist in the store.
func (fs *FileStore) Restore(_ context.Context, backupDir string) (int, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return 0, fmt.Errorf("memory: list backup %s: %w", backupDir, err)
	}

	restored := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		target := filepath.Join(fs.dir, e.Name())
		if _, statErr := os.Stat(target); statErr == nil {
			continue // never clobber a live record
		}
		if err := copyFile(filepath.Join(backupDir, e.Name()), target); err != nil {
			return restored, err
		}
		restored++
	}

	logger.Infof("Restored %d memory files from %s", restored, backupDir)
	return restored, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("memory: read %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		return fmt.Errorf("memory: write %s: %w", dst, err)
	}
	return nil
}
