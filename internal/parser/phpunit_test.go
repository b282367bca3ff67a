package parser

import (
	"strings"
	"testing"

	"tsplit/internal/domain"
)

func TestParseTestCounts(t *testing.T) {
	parser := NewPHPUnitParser()

	tests := []struct {
		name       string
		output     string
		success    bool
		wantPassed int
		wantFailed int
	}{
		{
			name:       "all tests passing",
			output:     "PHPUnit 10.5.20 by Sebastian Bergmann and contributors.\n\n............\n\nOK (12 tests, 30 assertions)\n",
			success:    true,
			wantPassed: 12,
			wantFailed: 0,
		},
		{
			name:       "failures and errors",
			output:     "FAILURES!\nTests: 10, Assertions: 25, Failures: 2, Errors: 1.\n",
			success:    false,
			wantPassed: 7,
			wantFailed: 3,
		},
		{
			name:       "unparsable output counts the file as one passed test",
			output:     "some unrelated output",
			success:    true,
			wantPassed: 1,
			wantFailed: 0,
		},
		{
			name:       "unparsable output counts the file as one failed test",
			output:     "segmentation fault",
			success:    false,
			wantPassed: 0,
			wantFailed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := domain.TestResult{Output: tt.output, Success: tt.success}
			passed, failed := parser.ParseTestCounts(result)
			if passed != tt.wantPassed || failed != tt.wantFailed {
				t.Errorf("ParseTestCounts() = (%d, %d), want (%d, %d)", passed, failed, tt.wantPassed, tt.wantFailed)
			}
		})
	}
}

func TestParseFailure(t *testing.T) {
	parser := NewPHPUnitParser()
	item := domain.Item{
		ID:   "tests/Feature/UserApiTest.php",
		Path: "/var/www/app/tests/Feature/UserApiTest.php",
	}

	output := `PHPUnit 10.5.20 by Sebastian Bergmann and contributors.

F.F                                                                 3 / 3 (100%)

Time: 00:01.245, Memory: 42.00 MB

There were 2 failures:

1) Tests\Feature\UserApiTest::test_creates_user
Expected response status code [201] but received 500.
The following exception occurred during the request:

{
    "message": "Server Error",
    "exception": "RuntimeException"
}

/var/www/app/vendor/laravel/framework/src/Illuminate/Testing/TestResponse.php:150
/var/www/app/tests/Feature/UserApiTest.php:24

2) Tests\Feature\UserApiTest::test_deletes_user
Failed asserting that null is an instance of class App\Models\User.

/var/www/app/tests/Feature/UserApiTest.php:42

FAILURES!
Tests: 3, Assertions: 5, Failures: 2.
`

	result := domain.TestResult{Item: item, Output: output, Success: false}
	failures := parser.ParseFailure(result)

	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failures))
	}

	first := failures[0]
	if first.TestName != "test_creates_user" {
		t.Errorf("expected test name test_creates_user, got %q", first.TestName)
	}
	if first.FilePath != "Tests/Feature/UserApiTest" {
		t.Errorf("unexpected file path %q", first.FilePath)
	}
	if !strings.Contains(first.Message, "Expected response status code [201]") {
		t.Errorf("message missing assertion text: %q", first.Message)
	}
	if !strings.Contains(first.ErrorDetails, `"exception": "RuntimeException"`) {
		t.Errorf("error details missing JSON body: %q", first.ErrorDetails)
	}
	if len(first.StackTrace) != 2 {
		t.Errorf("expected 2 stack trace lines, got %d", len(first.StackTrace))
	}
	if first.File != "/var/www/app/tests/Feature/UserApiTest.php" || first.Line != 24 {
		t.Errorf("expected test file location at line 24, got %s:%d", first.File, first.Line)
	}

	second := failures[1]
	if second.TestName != "test_deletes_user" {
		t.Errorf("expected test name test_deletes_user, got %q", second.TestName)
	}
	if !strings.Contains(second.Message, "Failed asserting that null") {
		t.Errorf("message missing assertion text: %q", second.Message)
	}
}

func TestParseFailureCleanRun(t *testing.T) {
	parser := NewPHPUnitParser()
	result := domain.TestResult{
		Item:    domain.Item{ID: "tests/Unit/CartTest.php"},
		Output:  "OK (4 tests, 9 assertions)\n",
		Success: true,
	}

	if failures := parser.ParseFailure(result); len(failures) != 0 {
		t.Errorf("expected no failures, got %d", len(failures))
	}
}
