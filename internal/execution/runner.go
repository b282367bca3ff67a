package execution

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"tsplit/internal/config"
	"tsplit/internal/domain"
)

// Runner executes a single PHPUnit test file
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Run executes PHPUnit for a single test file. Every stage is timed into
// a phase report so recorded durations cover the full cost of the file,
// not just the PHPUnit process runtime.
func (r *Runner) Run(item domain.Item, workerID int) domain.TestResult {
	setupStart := time.Now()
	phpunitPath := r.config.GetPHPUnitPath()
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, phpunitPath, item.Path)

	// Each worker runs against its own database
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("DB_DATABASE=%s", r.config.GetDatabaseName(workerID)))
	cmd.Dir = r.config.ProjectPath
	setup := time.Since(setupStart).Seconds()

	callStart := time.Now()
	rawOutput, err := cmd.CombinedOutput()
	call := time.Since(callStart).Seconds()

	teardownStart := time.Now()
	output := string(rawOutput)
	teardown := time.Since(teardownStart).Seconds()

	return domain.TestResult{
		Item:    item,
		Success: err == nil,
		Output:  output,
		Err:     err,
		Phases: []domain.PhaseReport{
			{ItemID: item.ID, Phase: domain.PhaseSetup, Seconds: setup},
			{ItemID: item.ID, Phase: domain.PhaseCall, Seconds: call},
			{ItemID: item.ID, Phase: domain.PhaseTeardown, Seconds: teardown},
		},
	}
}
