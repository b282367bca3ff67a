package discovery

import (
	"path"
	"strings"

	"tsplit/internal/domain"
)

// Filter filters test items by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test items by file name using wildcard matching.
// Supports patterns like "*UserTest.php" or "*Payment*"; a pattern without
// wildcards matches as a substring of the file name.
func (f *Filter) FilterByName(items []domain.Item, pattern string) []domain.Item {
	if pattern == "" {
		return items
	}

	var filtered []domain.Item
	for _, item := range items {
		if matchesName(path.Base(item.ID), pattern) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// matchesName reports whether a file name matches the pattern.
func matchesName(name, pattern string) bool {
	// path.Match handles * and ? wildcards
	if matched, err := path.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// Fall back to piecewise substring matching so "*Payment*" also
		// matches names where Match anchors differently
		parts := strings.Split(pattern, "*")
		hasNonEmptyPart := false
		for _, part := range parts {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
