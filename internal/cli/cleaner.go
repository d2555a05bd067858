package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/fielder/internal/errors"
)

// Cleaner removes previously generated fielder files
type Cleaner struct{}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// CleanGeneratedFiles removes all *_fielder_gen.go files from the specified
// directories and returns the removed paths. A failure in one directory does
// not stop the others; all failures are returned together.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	var removed []string
	failures := errors.NewMultipleErrors()

	for _, dir := range directories {
		if err := c.cleanDirectory(dir, &removed); err != nil {
			failures.Add(errors.WrapFileSystemError("clean", dir, err))
		}
	}

	if !failures.IsEmpty() {
		return removed, failures
	}
	return removed, nil
}

// cleanDirectory cleans a single directory argument, honoring ./... patterns
func (c *Cleaner) cleanDirectory(dir string, removed *[]string) error {
	if strings.HasSuffix(dir, "/...") {
		baseDir := strings.TrimSuffix(dir, "/...")
		if baseDir == "" {
			baseDir = "."
		}
		return filepath.WalkDir(baseDir, func(path string, entry os.DirEntry, err error) error {
			if err != nil {
				// Skip directories that disappeared or can't be accessed
				return nil
			}
			if entry.IsDir() {
				return c.cleanSingleDirectory(path, removed)
			}
			return nil
		})
	}

	return c.cleanSingleDirectory(dir, removed)
}

// cleanSingleDirectory removes generated files from one directory
func (c *Cleaner) cleanSingleDirectory(dir string, removed *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_fielder_gen.go") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		*removed = append(*removed, path)
	}

	return nil
}
