package domain

// TestResult represents the result of executing a test file
type TestResult struct {
	Item    Item          // The test file that was executed
	Success bool          // Whether the file's tests passed
	Output  string        // Raw output from PHPUnit
	Err     error         // Error if execution failed
	Phases  []PhaseReport // Timed phases of this execution
}

// RunMeta contains metadata about a test run
type RunMeta struct {
	TotalTestFiles  int     `json:"total_test_files"`
	FailedTestFiles int     `json:"failed_test_files"`
	PassedTestFiles int     `json:"passed_test_files"`
	FailedTestCases int     `json:"failed_test_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Splits          int     `json:"splits,omitempty"`
	Group           int     `json:"group,omitempty"`
	Algorithm       string  `json:"algorithm,omitempty"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete persisted structure for a test run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []TestFailure `json:"details"`
}
