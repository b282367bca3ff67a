package execution

import (
	"time"

	"tsplit/internal/domain"
	"tsplit/internal/ui"
)

// Executor executes test items and returns results
type Executor interface {
	Execute(items []domain.Item) ([]domain.TestResult, time.Duration, error)
	ExecuteWithOptions(items []domain.Item, failFast bool) ([]domain.TestResult, time.Duration, error)
	SetProgress(progress *ui.ProgressBar)
}
