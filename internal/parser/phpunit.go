package parser

import (
	"fmt"
	"regexp"
	"strings"

	"tsplit/internal/domain"
)

// Summary lines printed at the end of a PHPUnit run.
var (
	okPattern       = regexp.MustCompile(`OK\s*\(\s*(\d+)\s+tests`)
	totalPattern    = regexp.MustCompile(`Tests:\s*(\d+)`)
	failuresPattern = regexp.MustCompile(`Failures:\s*(\d+)`)
	errorsPattern   = regexp.MustCompile(`Errors:\s*(\d+)`)
)

// PHPUnitParser parses PHPUnit test output
type PHPUnitParser struct{}

// NewPHPUnitParser creates a new PHPUnitParser
func NewPHPUnitParser() *PHPUnitParser {
	return &PHPUnitParser{}
}

// ParseTestCounts extracts passed and failed test case counts from PHPUnit output.
// Returns (passed, failed). If parsing fails, returns (1,0) for success or (0,1) for failure (file-level fallback).
func (p *PHPUnitParser) ParseTestCounts(result domain.TestResult) (passed, failed int) {
	output := result.Output

	// OK (N tests, ...) - all passed
	if m := okPattern.FindStringSubmatch(output); len(m) >= 2 {
		var total int
		fmt.Sscanf(m[1], "%d", &total)
		return total, 0
	}

	// FAILURES! or ERRORS! - Tests: N, Assertions: ..., Failures: F, Errors: E
	var total, failures, errors int
	if m := totalPattern.FindStringSubmatch(output); len(m) >= 2 {
		fmt.Sscanf(m[1], "%d", &total)
	}
	if m := failuresPattern.FindStringSubmatch(output); len(m) >= 2 {
		fmt.Sscanf(m[1], "%d", &failures)
	}
	if m := errorsPattern.FindStringSubmatch(output); len(m) >= 2 {
		fmt.Sscanf(m[1], "%d", &errors)
	}
	failed = failures + errors
	if total >= failed {
		passed = total - failed
	}
	if passed > 0 || failed > 0 {
		return passed, failed
	}

	// Fallback: one "test" per file
	if result.Success {
		return 1, 0
	}
	return 0, 1
}

// ParseFailure extracts per-case failures from PHPUnit output. Failure
// headers print the namespaced class ("1) Tests\Unit\UserTest::testFoo"),
// so the matcher is built from the item's project-relative ID.
func (p *PHPUnitParser) ParseFailure(result domain.TestResult) []domain.TestFailure {
	var failures []domain.TestFailure
	lines := strings.Split(result.Output, "\n")

	className := strings.TrimSuffix(result.Item.ID, ".php")
	className = strings.ReplaceAll(className, "/", "\\")
	match := regexp.MustCompile("(?i)" + regexp.QuoteMeta(className+"::"))

	for i := 0; i < len(lines); i++ {
		if match.MatchString(lines[i]) {
			failures = append(failures, *p.parseTestFailureCase(i, lines, match))
		}
	}

	return failures
}

func (p *PHPUnitParser) parseTestFailureCase(i int, lines []string, match *regexp.Regexp) *domain.TestFailure {
	filePath, name := p.parseTestFailureLine(lines[i])
	testFailure := &domain.TestFailure{
		TestName: name,
		FilePath: filePath,
	}

	var messageLines []string
	var jsonLines []string
	stackTrace := []string{}
	inJSONBlock := false
	jsonBraceCount := 0
	jsonBlockComplete := false

	// Parse from line after test name until next test or end
	for j := i + 1; j < len(lines); j++ {
		line := lines[j]
		trimmedLine := strings.TrimSpace(line)

		// Check if we hit the next test case
		if match.MatchString(line) {
			break
		}

		// Detect start of JSON block
		if trimmedLine == "{" && !inJSONBlock {
			inJSONBlock = true
			jsonBraceCount = 1
			jsonLines = append(jsonLines, line)
			continue
		}

		// If we're in JSON block, collect JSON lines
		if inJSONBlock {
			jsonLines = append(jsonLines, line)
			// Count braces to detect end of JSON
			jsonBraceCount += strings.Count(line, "{") - strings.Count(line, "}")
			if jsonBraceCount == 0 {
				// End of JSON block
				testFailure.ErrorDetails = strings.Join(jsonLines, "\n")
				inJSONBlock = false
				jsonBlockComplete = true
			}
			continue
		}

		// After JSON block, collect stack trace (file paths with line numbers)
		if jsonBlockComplete {
			// Stack trace lines are file paths with line numbers: /path/to/file.php:123
			if strings.Contains(line, ".php:") && (strings.HasPrefix(line, "/") || strings.Contains(line, "tests/")) {
				stackTrace = append(stackTrace, line)
				// Extract file and line from test file (not vendor files)
				if strings.Contains(line, "tests/") && testFailure.File == "" {
					parts := strings.Split(line, ":")
					if len(parts) >= 2 {
						testFailure.File = parts[0]
						fmt.Sscanf(parts[len(parts)-1], "%d", &testFailure.Line)
					}
				}
			}
			continue
		}

		// Before JSON block, collect message lines
		// Skip empty lines at the very start
		if len(messageLines) == 0 && trimmedLine == "" {
			continue
		}
		messageLines = append(messageLines, line)
	}

	// Join message lines (trim trailing empty lines)
	for len(messageLines) > 0 && strings.TrimSpace(messageLines[len(messageLines)-1]) == "" {
		messageLines = messageLines[:len(messageLines)-1]
	}
	testFailure.Message = strings.Join(messageLines, "\n")
	testFailure.StackTrace = stackTrace

	return testFailure
}

func (p *PHPUnitParser) parseTestFailureLine(line string) (filePath string, name string) {
	split := strings.Split(line, "::")
	name = strings.TrimSpace(split[len(split)-1])

	head := split[0]
	// Strip the "N) " counter PHPUnit prints before the class name.
	if idx := strings.Index(head, ")"); idx >= 0 {
		head = head[idx+1:]
	}
	head = strings.TrimSpace(head)
	filePath = strings.ReplaceAll(head, "\\", "/")

	return filePath, name
}
