package commands

import (
	"tsplit/internal/cli"
	"tsplit/internal/config"
	"tsplit/internal/database"
	"tsplit/internal/discovery"
	"tsplit/internal/execution"
	"tsplit/internal/parser"
	"tsplit/internal/record"
	"tsplit/internal/storage"
	"tsplit/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	Groups   *GroupsCommand
	Slowest  *SlowestCommand
	List     *ListCommand
	Failures *FailuresCommand
	Prepare  *PrepareCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.ProjectPath, cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	testCaseParser := discovery.NewParser()
	runner := execution.NewRunner(cfg)
	phpunitParser := parser.NewPHPUnitParser()
	executor := execution.NewWorkerPool(cfg, runner, phpunitParser)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, testCaseParser)
	recorder := record.NewRecorder()
	if cfg.SetupTeardownMax > 0 {
		recorder.SetupTeardownMax = cfg.SetupTeardownMax
	}
	dbManager := database.NewManager(cfg)
	preparer := database.NewLaravelPreparer(cfg, dbManager)
	failureViewer := ui.NewFailureViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, scanner, filter, executor, phpunitParser, jsonStorage, formatter, recorder, preparer),
		Groups:   NewGroupsCommand(cfg, scanner, filter, formatter),
		Slowest:  NewSlowestCommand(cfg, formatter),
		List:     NewListCommand(cfg, scanner, filter, formatter, jsonStorage),
		Failures: NewFailuresCommand(cfg, jsonStorage, failureViewer),
		Prepare:  NewPrepareCommand(cfg, preparer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run PHPUnit tests in parallel",
		Long:  "Discover and execute PHPUnit tests using parallel workers, optionally running only one duration-balanced group of the suite",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			flags.SplitsSet = cmd.Flags().Changed("splits")
			flags.GroupSet = cmd.Flags().Changed("group")
			cfg.Flags = flags.ToConfigFlags()
			if flags.Processors > 0 {
				cfg.Processors = flags.Processors
			}
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of processors to use")
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*UserTest.php' or '*Payment*')")
	runCmd.Flags().IntVar(&flags.Splits, "splits", 0, "Number of groups to split the test suite into")
	runCmd.Flags().IntVar(&flags.Group, "group", 0, "Group of tests to run (1-based, requires --splits)")
	runCmd.Flags().StringVar(&flags.Algorithm, "algorithm", "", "Splitting algorithm: balanced or chunks")
	runCmd.Flags().StringVar(&flags.DurationsPath, "durations-path", "", "Path to the test durations file")
	runCmd.Flags().BoolVar(&flags.StoreDurations, "store-durations", false, "Store measured test durations for future splits")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	runCmd.Flags().BoolVar(&flags.Prepare, "prepare", false, "Prepare worker databases before executing tests")
	runCmd.Flags().BoolVar(&flags.KeepData, "keep-data", false, "Prepare databases without rebuilding them (only pending migrations)")
	rootCmd.AddCommand(runCmd)

	// Groups command
	groupsCmd := &cobra.Command{
		Use:   "groups",
		Short: "Show how the test suite would be split",
		Long:  "Schedule the suite into duration-balanced groups without running anything; with --group, print that group's files one per line",
		RunE:  c.Groups.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			flags.SplitsSet = cmd.Flags().Changed("splits")
			flags.GroupSet = cmd.Flags().Changed("group")
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	groupsCmd.Flags().IntVar(&flags.Splits, "splits", 0, "Number of groups to split the test suite into")
	groupsCmd.Flags().IntVar(&flags.Group, "group", 0, "Print only this group's test files (1-based)")
	groupsCmd.Flags().StringVar(&flags.Algorithm, "algorithm", "", "Splitting algorithm: balanced or chunks")
	groupsCmd.Flags().StringVar(&flags.DurationsPath, "durations-path", "", "Path to the test durations file")
	groupsCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	groupsCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*UserTest.php' or '*Payment*')")
	rootCmd.AddCommand(groupsCmd)

	// Slowest command
	slowestCmd := &cobra.Command{
		Use:   "slowest",
		Short: "Show the slowest recorded tests",
		Long:  "Print the slowest test files from the stored duration history, slowest first",
		RunE:  c.Slowest.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	slowestCmd.Flags().IntVarP(&flags.Count, "count", "n", 10, "Number of slowest tests to show")
	slowestCmd.Flags().StringVar(&flags.DurationsPath, "durations-path", "", "Path to the test durations file")
	rootCmd.AddCommand(slowestCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered tests",
		Long:  "Scan and list all PHPUnit tests without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*UserTest.php' or '*Payment*')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases inside each test file")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last test run in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)

	// Prepare command
	prepareCmd := &cobra.Command{
		Use:   "prepare",
		Short: "Prepare worker test databases",
		Long:  "Create one database per worker and run migrations for each in parallel",
		RunE:  c.Prepare.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			if flags.Processors > 0 {
				cfg.Processors = flags.Processors
			}
			return nil
		},
	}
	prepareCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of processors/workers to use")
	prepareCmd.Flags().BoolVar(&flags.KeepData, "keep-data", false, "Prepare databases without rebuilding them (only pending migrations)")
	rootCmd.AddCommand(prepareCmd)
}
