package main

import (
	"fmt"
	"os"

	"tsplit/internal/cli"
	"tsplit/internal/cli/commands"
	"tsplit/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "tsplit",
		Short:   "Duration-balanced PHPUnit test splitter and parallel runner",
		Long:    `tsplit splits a PHPUnit test suite into groups with near-equal estimated runtime, using durations recorded from previous runs, and executes tests in parallel across workers. Run one group per CI machine to cut wall-clock time.`,
		Version: version,
	}

	// Create initial config with defaults and the project config file
	cfg := config.New()
	if err := cfg.LoadFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
