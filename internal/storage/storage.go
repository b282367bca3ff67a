package storage

import (
	"time"

	"tsplit/internal/config"
	"tsplit/internal/domain"
)

// Storage persists and loads test run results (e.g. for the failures viewer).
type Storage interface {
	Save(results []domain.TestResult, failures []domain.TestFailure, duration time.Duration, settings RunSettings) error
	Load() (*domain.RunOutput, error)
	// SaveOutput writes the full output (e.g. after resolved-state updates).
	SaveOutput(output *domain.RunOutput) error
}

// RunSettings captures the execution parameters recorded alongside results.
type RunSettings struct {
	Workers   int
	Splits    int
	Group     int
	Algorithm string
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's results path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
