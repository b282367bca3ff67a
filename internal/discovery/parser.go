package discovery

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Test methods are either test-prefixed or carry a @test annotation. The
// modifier group covers public/protected/private/static/final in any order.
var (
	testMethodPattern = regexp.MustCompile(`(?m)^\s*(?:(?:public|protected|private|static|final)\s+)*(?:public|protected|private)?\s*function\s+(test\w+)\s*\(`)

	annotatedPatterns = []*regexp.Regexp{
		// @test on the line(s) before the function
		regexp.MustCompile(`(?m)@test\s*\n\s*(?:/\*\*.*?\*/)?\s*(?:(?:public|protected|private|static|final)\s+)*(?:public|protected|private)?\s*function\s+(\w+)\s*\(`),
		// @test inside a multi-line docblock
		regexp.MustCompile(`(?m)/\*\*[\s\S]*?@test[\s\S]*?\*/\s*(?:(?:public|protected|private|static|final)\s+)*(?:public|protected|private)?\s*function\s+(\w+)\s*\(`),
		// @test on the same line as the function
		regexp.MustCompile(`(?m)@test.*?function\s+(\w+)\s*\(`),
	}
)

// Parser parses test files to extract test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTestCases finds all test case names in a test file, sorted for stable
// output.
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	fileContent := string(content)
	seen := make(map[string]bool)

	for _, match := range testMethodPattern.FindAllStringSubmatch(fileContent, -1) {
		seen[match[1]] = true
	}

	for _, pattern := range annotatedPatterns {
		for _, match := range pattern.FindAllStringSubmatch(fileContent, -1) {
			name := match[1]
			// test-prefixed methods are already covered above
			if !strings.HasPrefix(name, "test") {
				seen[name] = true
			}
		}
	}

	cases := make([]string, 0, len(seen))
	for name := range seen {
		cases = append(cases, name)
	}
	sort.Strings(cases)
	return cases, nil
}
