package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParser_FindTestCases(t *testing.T) {
	parser := NewParser()

	// Create a temporary PHP test file
	tmpDir, err := os.MkdirTemp("", "tsplit-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	testFile := filepath.Join(tmpDir, "UserTest.php")
	phpContent := `<?php

class UserTest extends TestCase
{
    public function testCreateUser()
    {
        // test code
    }

    protected function testUpdateUser()
    {
        // test code
    }

    private function test_deletes_user()
    {
        // test code
    }

    /**
     * @test
     */
    public function createsAdminUser()
    {
        // test code
    }

    public function helperMethod()
    {
        // not a test
    }
}
`
	if err := os.WriteFile(testFile, []byte(phpContent), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	t.Run("finds test methods", func(t *testing.T) {
		testCases, err := parser.FindTestCases(testFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found := make(map[string]bool)
		for _, tc := range testCases {
			found[tc] = true
		}

		expectedTests := []string{"testCreateUser", "testUpdateUser", "test_deletes_user", "createsAdminUser"}
		for _, expected := range expectedTests {
			if !found[expected] {
				t.Errorf("expected to find test case %s, got %v", expected, testCases)
			}
		}

		// Should not find helperMethod
		if found["helperMethod"] {
			t.Error("should not find helperMethod as a test case")
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := parser.FindTestCases("/non/existent/file.php")
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})
}
