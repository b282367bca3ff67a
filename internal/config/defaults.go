package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestPath is the default test path
	DefaultTestPath = "."
	// DefaultDurationsFile is the default durations file name
	DefaultDurationsFile = ".test_durations"
	// DefaultResultsFile is the default results JSON file name
	DefaultResultsFile = "test-results.json"
	// DefaultResultsDir is the default results directory
	DefaultResultsDir = "storage"
	// DefaultProcessors is the default number of processors
	DefaultProcessors = 4
	// DefaultAlgorithm is the default splitting algorithm
	DefaultAlgorithm = "balanced"
	// FileName is the project configuration file name
	FileName = "tsplit.yaml"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"public",
	"storage",
	"bootstrap",
	"config",
	"database",
	"resources",
	"routes",
}
