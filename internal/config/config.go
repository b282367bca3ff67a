package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestPath    string

	// Durations settings
	DurationsFile string

	// Output settings
	ResultsFile string
	ResultsDir  string

	// Execution settings
	Processors int
	Algorithm  string

	// Recording settings; 0 means the recorder's default ceiling
	SetupTeardownMax float64

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors     int
	TestPath       string
	NameFilter     string
	TestCases      bool
	Splits         int
	SplitsSet      bool
	Group          int
	GroupSet       bool
	Algorithm      string
	DurationsPath  string
	StoreDurations bool
	FailFast       bool
	Prepare        bool
	KeepData       bool
	Count          int
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:   DefaultProjectPath,
		TestPath:      DefaultTestPath,
		DurationsFile: DefaultDurationsFile,
		ResultsFile:   DefaultResultsFile,
		ResultsDir:    DefaultResultsDir,
		Processors:    DefaultProcessors,
		Algorithm:     DefaultAlgorithm,
		Flags:         Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		// If TestPath is provided, make it relative to the project path
		// unless it is already absolute
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}

	// Default: combine project path and test path
	return filepath.Join(c.ProjectPath, c.TestPath)
}

// GetDurationsPath returns the path to the durations file, using flag if
// provided. Resolves to an absolute path so the splitting and recording
// sides of a run always share the same file regardless of cwd.
func (c *Config) GetDurationsPath() string {
	p := c.Flags.DurationsPath
	if p == "" {
		p = c.DurationsFile
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.ProjectPath, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetResultsPath returns the full path to the results JSON file (under the
// project so run and failures use the same file).
func (c *Config) GetResultsPath() string {
	p := filepath.Join(c.ProjectPath, c.ResultsDir, c.ResultsFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetAlgorithm returns the splitting algorithm name, using flag if provided
func (c *Config) GetAlgorithm() string {
	if c.Flags.Algorithm != "" {
		return c.Flags.Algorithm
	}
	return c.Algorithm
}

// GetPHPUnitPath returns the path to PHPUnit binary
func (c *Config) GetPHPUnitPath() string {
	return filepath.Join(c.ProjectPath, "vendor", "bin", "phpunit")
}

// GetDatabaseName returns the database name for a worker
func (c *Config) GetDatabaseName(workerID int) string {
	prefix := os.Getenv("DB_DATABASE_PREFIX")
	if prefix == "" {
		prefix = "testing"
	}
	return fmt.Sprintf("%s_%d", prefix, workerID)
}
