package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"tsplit/internal/config"
	"tsplit/internal/discovery"
	"tsplit/internal/domain"
	"tsplit/internal/record"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
	}
}

type statRow struct {
	label string
	value string
	paint *color.Color
}

// PrintRunStats displays the summary table for a finished run, followed by
// a tree of failed tests when there are failures.
func (f *Formatter) PrintRunStats(output *domain.RunOutput) {
	// Clear terminal screen
	fmt.Print("\033[2J\033[H")

	meta := output.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                    Test Execution Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	white := color.New(color.FgWhite)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	rows := []statRow{
		{"Total Test Files", fmt.Sprintf("%d", meta.TotalTestFiles), white},
		{"Passed Test Files", fmt.Sprintf("%d", meta.PassedTestFiles), green},
		{"Failed Test Files", fmt.Sprintf("%d", meta.FailedTestFiles), red},
		{"Failed Test Cases", fmt.Sprintf("%d", meta.FailedTestCases), red},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Workers", fmt.Sprintf("%d", meta.Workers), white},
	}
	if meta.Splits > 0 {
		rows = append(rows,
			statRow{"Group", fmt.Sprintf("%d/%d", meta.Group, meta.Splits), white},
			statRow{"Algorithm", meta.Algorithm, white},
		)
	}
	rows = append(rows, statRow{"Timestamp", meta.Timestamp, white})

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Printf("│ %-31s │ ", row.label)
		row.paint.Printf("%-27s │\n", row.value)
		if i < len(rows)-1 {
			fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.FailedTestFiles == 0 {
		color.Green("✓ All tests passed!")
	} else {
		color.Red("✗ %d test file(s) failed with %d test case failure(s)", meta.FailedTestFiles, meta.FailedTestCases)
		fmt.Println()
		f.printFailedTestsTree(output.Details)
	}
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.TestFailure
	IsFile   bool
}

// printFailedTestsTree prints failed tests grouped by their path segments.
func (f *Formatter) printFailedTestsTree(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	fileMap := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		fileMap[failure.FilePath] = append(fileMap[failure.FilePath], failure)
	}

	root := &TreeNode{Children: make(map[string]*TreeNode)}

	for filePath, fileFailures := range fileMap {
		parts := strings.Split(strings.TrimPrefix(filePath, "./"), "/")
		current := root

		for i, part := range parts {
			if part == "" {
				continue
			}

			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}

			current = current.Children[part]

			if i == len(parts)-1 {
				current.Failures = fileFailures
			}
		}
	}

	f.printTreeNode(root, "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	var keys []string
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(keys)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}

		if child.IsFile {
			color.Yellow("%s%s%s", prefix, connector, child.Name)
		} else {
			color.Cyan("%s%s%s", prefix, connector, child.Name)
		}

		for j, failure := range child.Failures {
			caseConnector := "├── "
			if j == len(child.Failures)-1 {
				caseConnector = "└── "
			}
			color.Red("%s%s%s", childPrefix, caseConnector, failure.TestName)
		}

		f.printTreeNode(child, childPrefix)
	}
}

// CountTestCases returns the total number of test cases across the given test files.
func (f *Formatter) CountTestCases(items []domain.Item) (int, error) {
	var total int
	for _, item := range items {
		cases, err := f.parser.FindTestCases(item.Path)
		if err != nil {
			return 0, err
		}
		total += len(cases)
	}
	return total, nil
}

// PathKey normalizes a path for matching recorded failures against
// discovered files. Failure paths come from PHP namespaces, item IDs from
// the filesystem; lowercasing and dropping the extension aligns the two.
func PathKey(path string) string {
	p := filepath.ToSlash(path)
	p = strings.TrimSuffix(p, ".php")
	return strings.ToLower(p)
}

// PrintTestList prints a list of test files, optionally with test cases.
// failedPaths is optional; files in this set are marked with [F] in red (from last run).
func (f *Formatter) PrintTestList(items []domain.Item, showTestCases bool, failedPaths map[string]struct{}) error {
	if !showTestCases {
		color.Green("Found %d test file(s):\n", len(items))

		for i, item := range items {
			if i == len(items)-1 {
				color.Cyan("└── %s%s", item.ID, f.failMarker(item, failedPaths))
			} else {
				color.Cyan("├── %s%s", item.ID, f.failMarker(item, failedPaths))
			}
		}
		return nil
	}

	color.Green("Found %d test file(s) with test cases:\n", len(items))

	for i, item := range items {
		testCases, err := f.parser.FindTestCases(item.Path)
		if err != nil {
			color.Red("Error reading test file %s: %v", item.ID, err)
			continue
		}

		isLastFile := i == len(items)-1
		if isLastFile {
			color.Cyan("└── %s%s", item.ID, f.failMarker(item, failedPaths))
		} else {
			color.Cyan("├── %s%s", item.ID, f.failMarker(item, failedPaths))
		}

		filePrefix := "│   "
		if isLastFile {
			filePrefix = "    "
		}

		if len(testCases) == 0 {
			fmt.Printf("%s└── %s\n", filePrefix, color.RedString("(no test cases found)"))
		} else {
			for j, testCase := range testCases {
				casePrefix := filePrefix + "├── "
				if j == len(testCases)-1 {
					casePrefix = filePrefix + "└── "
				}
				fmt.Printf("%s%s\n", casePrefix, color.YellowString(testCase))
			}
		}

		if i < len(items)-1 {
			fmt.Println()
		}
	}

	return nil
}

func (f *Formatter) failMarker(item domain.Item, failedPaths map[string]struct{}) string {
	if len(failedPaths) == 0 {
		return ""
	}
	if _, ok := failedPaths[PathKey(item.ID)]; ok {
		return " " + color.RedString("[F]")
	}
	return ""
}

// PrintGroupAnnouncement reports which slice of the suite this run covers.
func (f *Formatter) PrintGroupAnnouncement(group, splits int, estimatedSeconds float64) {
	color.Cyan("[tsplit] Running group %d/%d (estimated duration: %.2fs)", group, splits, estimatedSeconds)
}

// PrintEmptyHistoryNotice warns that no duration history exists yet.
func (f *Formatter) PrintEmptyHistoryNotice() {
	color.Yellow("[tsplit] No test durations found. Tests will be split evenly between groups.")
	color.Yellow("[tsplit] You can expect better results in consequent runs, when test timings have been documented.")
}

// PrintStoredDurations confirms where the duration history was written.
func (f *Formatter) PrintStoredDurations(path string) {
	color.Green("[tsplit] Stored test durations in %s", path)
}

// PrintGroupSummary prints one line per group of a dry-run partition.
func (f *Formatter) PrintGroupSummary(groups []domain.Group) {
	for i, group := range groups {
		color.Cyan("Group %d/%d: %d file(s), estimated %.2fs", i+1, len(groups), len(group.Selected), group.Duration)
	}
}

// PrintGroupItems prints the IDs of one group's items, one per line.
// Plain output so it can be piped into other tools.
func (f *Formatter) PrintGroupItems(group domain.Group) {
	for _, item := range group.Selected {
		fmt.Println(item.ID)
	}
}

// PrintSlowest prints a slowest-items report, slowest first.
func (f *Formatter) PrintSlowest(entries []record.SlowestEntry) {
	for _, entry := range entries {
		fmt.Printf("%.2fs\t%s\n", entry.Seconds, entry.ID)
	}
}
