package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/fielder/internal/errors"
)

// DirectoryScanner expands directory arguments into the concrete list of
// package directories to discover. It understands the Go-style "./..."
// pattern for recursive scanning.
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories resolves the provided arguments to directories that
// contain Go files. The result preserves the order of the input arguments;
// recursive expansions are sorted so repeated runs see the same order.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	var result []string
	seen := make(map[string]bool)

	for _, rootDir := range rootDirs {
		var dirs []string
		var err error

		if strings.HasSuffix(rootDir, "/...") {
			baseDir := strings.TrimSuffix(rootDir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
			dirs, err = s.scanRecursively(baseDir)
		} else {
			dirs, err = s.scanSingle(rootDir)
		}
		if err != nil {
			return nil, err
		}

		for _, dir := range dirs {
			if !seen[dir] {
				seen[dir] = true
				result = append(result, dir)
			}
		}
	}

	return result, nil
}

// scanSingle checks one directory for Go files
func (s *DirectoryScanner) scanSingle(dir string) ([]string, error) {
	cleanPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", dir), err)
	}

	if _, err := os.Stat(cleanPath); err != nil {
		return nil, errors.WrapFileSystemError("stat", cleanPath, err)
	}

	hasGo, err := containsGoFiles(cleanPath)
	if err != nil {
		return nil, err
	}
	if !hasGo {
		return nil, nil
	}

	return []string{cleanPath}, nil
}

// scanRecursively walks a directory tree collecting every directory that
// contains Go files, skipping vendor, testdata and hidden directories.
func (s *DirectoryScanner) scanRecursively(baseDir string) ([]string, error) {
	cleanPath, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", baseDir), err)
	}

	var dirs []string
	err = filepath.WalkDir(cleanPath, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}

		name := entry.Name()
		if path != cleanPath && (name == "vendor" || name == "testdata" ||
			strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			return filepath.SkipDir
		}

		hasGo, err := containsGoFiles(path)
		if err != nil {
			return err
		}
		if hasGo {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("walk", cleanPath, err)
	}

	sort.Strings(dirs)
	return dirs, nil
}

// containsGoFiles reports whether the directory has at least one Go source
// file that is not a test or previously generated output
func containsGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, errors.WrapFileSystemError("read", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			!strings.HasSuffix(name, "_fielder_gen.go") {
			return true, nil
		}
	}

	return false, nil
}
