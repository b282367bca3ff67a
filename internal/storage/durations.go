package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tsplit/internal/domain"
)

// DurationStore persists the per-item duration mapping as a JSON file.
type DurationStore struct {
	path string
}

// NewDurationStore returns a store bound to the given file path.
func NewDurationStore(path string) *DurationStore {
	return &DurationStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *DurationStore) Path() string {
	return s.path
}

// Load reads the durations file. A missing file means empty history, not an
// error; an unreadable or unparsable file is an error. Files in the legacy
// list-of-pairs layout are converted to the mapping form, later pairs
// overriding earlier ones.
func (s *DurationStore) Load() (domain.Durations, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Durations{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read durations file: %w", err)
	}
	return decodeDurations(data, s.path)
}

// Save writes the full mapping to the store's path as indented JSON,
// replacing any previous contents.
func (s *DurationStore) Save(durations domain.Durations) error {
	data, err := json.MarshalIndent(durations, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal durations: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create durations dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write durations file: %w", err)
	}
	return nil
}

// decodeDurations parses either the mapping form or the legacy list of
// [id, seconds] pairs. The first non-space byte tells the two apart.
func decodeDurations(data []byte, path string) (domain.Durations, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pairs []json.RawMessage
		if err := json.Unmarshal(data, &pairs); err != nil {
			return nil, fmt.Errorf("parse durations file %s: %w", path, err)
		}
		durations := make(domain.Durations, len(pairs))
		for _, raw := range pairs {
			var id string
			var seconds float64
			entry := []any{&id, &seconds}
			if err := json.Unmarshal(raw, &entry); err != nil {
				return nil, fmt.Errorf("parse durations file %s: %w", path, err)
			}
			if len(entry) != 2 {
				return nil, fmt.Errorf("parse durations file %s: legacy entry must be an [id, seconds] pair", path)
			}
			durations[id] = seconds
		}
		return durations, nil
	}

	var durations domain.Durations
	if err := json.Unmarshal(data, &durations); err != nil {
		return nil, fmt.Errorf("parse durations file %s: %w", path, err)
	}
	if durations == nil {
		durations = domain.Durations{}
	}
	return durations, nil
}
