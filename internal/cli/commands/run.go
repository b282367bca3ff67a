package commands

import (
	"fmt"

	"tsplit/internal/config"
	"tsplit/internal/database"
	"tsplit/internal/discovery"
	"tsplit/internal/domain"
	"tsplit/internal/execution"
	"tsplit/internal/parser"
	"tsplit/internal/record"
	"tsplit/internal/split"
	"tsplit/internal/storage"
	"tsplit/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	executor  execution.Executor
	parser    *parser.PHPUnitParser
	storage   storage.Storage
	formatter *ui.Formatter
	recorder  *record.Recorder
	preparer  database.Preparer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	executor execution.Executor,
	phpunitParser *parser.PHPUnitParser,
	st storage.Storage,
	formatter *ui.Formatter,
	recorder *record.Recorder,
	preparer database.Preparer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		executor:  executor,
		parser:    phpunitParser,
		storage:   st,
		formatter: formatter,
		recorder:  recorder,
		preparer:  preparer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Prepare databases if flag is set
	if rc.config.Flags.Prepare {
		if err := rc.preparer.Prepare(rc.config.Processors, rc.config.Flags.KeepData); err != nil {
			return fmt.Errorf("database preparation failed: %w", err)
		}
		fmt.Println()
	}

	// Discover tests
	items, err := rc.scanner.Scan(rc.config.GetTestPath())
	if err != nil {
		return err
	}

	// Filter tests
	items = rc.filter.FilterByName(items, rc.config.Flags.NameFilter)

	if len(items) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	// Validate the splits/group pair before anything is scheduled
	selection := split.Selection{
		Splits:    rc.config.Flags.Splits,
		Group:     rc.config.Flags.Group,
		SplitsSet: rc.config.Flags.SplitsSet,
		GroupSet:  rc.config.Flags.GroupSet,
	}
	if err := selection.Validate(); err != nil {
		return err
	}

	store := storage.NewDurationStore(rc.config.GetDurationsPath())
	var durations domain.Durations
	if selection.Enabled() || rc.config.Flags.StoreDurations {
		durations, err = store.Load()
		if err != nil {
			return err
		}
	}

	// Reduce the suite to the selected group
	if selection.Enabled() {
		algorithm, err := split.ByName(rc.config.GetAlgorithm())
		if err != nil {
			return err
		}

		if len(durations) == 0 {
			rc.formatter.PrintEmptyHistoryNotice()
		}

		groups := algorithm(selection.Splits, items, durations)
		group := selection.Pick(groups)
		rc.formatter.PrintGroupAnnouncement(selection.Group, selection.Splits, group.Duration)

		items = group.Selected
		if len(items) == 0 {
			color.Yellow("No tests to execute in this group")
			return nil
		}
	}

	// Create and set progress bar
	progressBar := ui.NewProgressBar(len(items))
	rc.executor.SetProgress(progressBar)

	// Execute tests
	results, duration, err := rc.executor.ExecuteWithOptions(items, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	// Parse failures
	var failures []domain.TestFailure
	for _, result := range results {
		if !result.Success {
			failures = append(failures, rc.parser.ParseFailure(result)...)
		}
	}

	// Save results
	settings := storage.RunSettings{
		Workers:   rc.config.Processors,
		Splits:    selection.Splits,
		Group:     selection.Group,
		Algorithm: rc.config.GetAlgorithm(),
	}
	if !selection.Enabled() {
		settings.Splits = 0
		settings.Group = 0
		settings.Algorithm = ""
	}
	if err := rc.storage.Save(results, failures, duration, settings); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	// Record durations for future splits
	var storedPath string
	if rc.config.Flags.StoreDurations {
		var reports []domain.PhaseReport
		for _, result := range results {
			reports = append(reports, result.Phases...)
		}
		updated := rc.recorder.Record(durations, reports)
		if err := store.Save(updated); err != nil {
			return fmt.Errorf("failed to store test durations: %w", err)
		}
		storedPath = store.Path()
	}

	// Print stats
	output, err := rc.storage.Load()
	if err != nil {
		return err
	}
	rc.formatter.PrintRunStats(output)
	if storedPath != "" {
		fmt.Println()
		rc.formatter.PrintStoredDurations(storedPath)
	}
	return nil
}
