package commands

import (
	"tsplit/internal/config"
	"tsplit/internal/record"
	"tsplit/internal/storage"
	"tsplit/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SlowestCommand handles the slowest command
type SlowestCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewSlowestCommand creates a new SlowestCommand
func NewSlowestCommand(cfg *config.Config, formatter *ui.Formatter) *SlowestCommand {
	return &SlowestCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (sc *SlowestCommand) Execute(cmd *cobra.Command, args []string) error {
	store := storage.NewDurationStore(sc.config.GetDurationsPath())
	durations, err := store.Load()
	if err != nil {
		return err
	}

	if len(durations) == 0 {
		color.Yellow("No test durations recorded yet. Run with --store-durations first.")
		return nil
	}

	entries := record.Slowest(durations, sc.config.Flags.Count)
	sc.formatter.PrintSlowest(entries)
	return nil
}
