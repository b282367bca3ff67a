package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tsplit/internal/domain"
)

// Scanner scans for test files in a directory
type Scanner struct {
	projectPath string
	skipDirs    map[string]bool
}

// NewScanner creates a new Scanner rooted at the project path, skipping the
// given directory names while walking
func NewScanner(projectPath string, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{projectPath: projectPath, skipDirs: skipMap}
}

// Scan finds all test files in the given root directory. Item IDs are
// project-relative slash paths, which keeps durations files portable
// between machines; the absolute path rides along for execution.
func (s *Scanner) Scan(root string) ([]domain.Item, error) {
	var items []domain.Item

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		// Check if file ends with Test.php
		if strings.HasSuffix(d.Name(), "Test.php") {
			items = append(items, s.item(path))
		}

		return nil
	})

	return items, err
}

// item builds the domain item for one discovered file.
func (s *Scanner) item(path string) domain.Item {
	abs := path
	if a, err := filepath.Abs(path); err == nil {
		abs = a
	}

	id := path
	if s.projectPath != "" {
		if rel, err := filepath.Rel(s.projectPath, path); err == nil && !strings.HasPrefix(rel, "..") {
			id = rel
		}
	}
	return domain.Item{ID: filepath.ToSlash(id), Path: abs}
}
