package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tsplit/internal/domain"
)

// Save writes test results and failures to the configured JSON results file.
func (s *JSONStorage) Save(results []domain.TestResult, failures []domain.TestFailure, duration time.Duration, settings RunSettings) error {
	passed := 0
	failed := 0
	for _, r := range results {
		if r.Success {
			passed++
		} else {
			failed++
		}
	}

	output := domain.RunOutput{
		Meta: domain.RunMeta{
			TotalTestFiles:  len(results),
			FailedTestFiles: failed,
			PassedTestFiles: passed,
			FailedTestCases: len(failures),
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Workers:         settings.Workers,
			Splits:          settings.Splits,
			Group:           settings.Group,
			Algorithm:       settings.Algorithm,
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: failures,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	path := s.cfg.GetResultsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads the last test results from the configured JSON results file.
func (s *JSONStorage) Load() (*domain.RunOutput, error) {
	path := s.cfg.GetResultsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file (e.g. after
// the failures viewer toggles resolved markers).
func (s *JSONStorage) SaveOutput(output *domain.RunOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetResultsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
