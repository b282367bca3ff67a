package commands

import (
	"errors"
	"fmt"

	"tsplit/internal/config"
	"tsplit/internal/discovery"
	"tsplit/internal/split"
	"tsplit/internal/storage"
	"tsplit/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// GroupsCommand handles the groups command
type GroupsCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewGroupsCommand creates a new GroupsCommand
func NewGroupsCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *GroupsCommand {
	return &GroupsCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (gc *GroupsCommand) Execute(cmd *cobra.Command, args []string) error {
	flags := gc.config.Flags

	if !flags.SplitsSet {
		return errors.New("argument `--splits` is required")
	}
	if flags.Splits < 1 {
		return errors.New("argument `--splits` must be >= 1")
	}
	if flags.GroupSet && (flags.Group < 1 || flags.Group > flags.Splits) {
		return fmt.Errorf("argument `--group` must be >= 1 and <= %d", flags.Splits)
	}

	algorithm, err := split.ByName(gc.config.GetAlgorithm())
	if err != nil {
		return err
	}

	items, err := gc.scanner.Scan(gc.config.GetTestPath())
	if err != nil {
		return err
	}
	items = gc.filter.FilterByName(items, flags.NameFilter)

	if len(items) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	store := storage.NewDurationStore(gc.config.GetDurationsPath())
	durations, err := store.Load()
	if err != nil {
		return err
	}

	groups := algorithm(flags.Splits, items, durations)

	// With --group the output is just that group's files, pipeable into
	// other tools
	if flags.GroupSet {
		gc.formatter.PrintGroupItems(groups[flags.Group-1])
		return nil
	}

	if len(durations) == 0 {
		gc.formatter.PrintEmptyHistoryNotice()
	}
	gc.formatter.PrintGroupSummary(groups)
	return nil
}
