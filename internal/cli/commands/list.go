package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"tsplit/internal/config"
	"tsplit/internal/discovery"
	"tsplit/internal/storage"
	"tsplit/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	items, err := lc.scanner.Scan(lc.config.GetTestPath())
	if err != nil {
		return err
	}

	// Filter tests
	items = lc.filter.FilterByName(items, lc.config.Flags.NameFilter)

	if len(items) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	// Mark files that failed in the last run, when results exist
	var failedPaths map[string]struct{}
	if output, err := lc.storage.Load(); err == nil && output != nil {
		failedPaths = make(map[string]struct{})
		for _, failure := range output.Details {
			failedPaths[ui.PathKey(failure.FilePath)] = struct{}{}
		}
	}

	return lc.formatter.PrintTestList(items, lc.config.Flags.TestCases, failedPaths)
}
