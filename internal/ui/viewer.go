package ui

import "tsplit/internal/domain"

// Viewer displays test results in an interactive TUI
type Viewer interface {
	View(results *domain.RunOutput) error
}
