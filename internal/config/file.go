package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the subset of settings readable from the project's
// tsplit.yaml. Flags still override anything set here.
type FileConfig struct {
	TestPath         string   `yaml:"test_path"`
	DurationsPath    string   `yaml:"durations_path"`
	Processors       int      `yaml:"processors"`
	Algorithm        string   `yaml:"algorithm"`
	Ignore           []string `yaml:"ignore"`
	SetupTeardownMax float64  `yaml:"setup_teardown_max"`
}

// LoadFile merges tsplit.yaml from the project path into the config. A
// missing file leaves the defaults untouched; an unparsable one is an error.
func (c *Config) LoadFile() error {
	path := filepath.Join(c.ProjectPath, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var file FileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if file.TestPath != "" {
		c.TestPath = file.TestPath
	}
	if file.DurationsPath != "" {
		c.DurationsFile = file.DurationsPath
	}
	if file.Processors > 0 {
		c.Processors = file.Processors
	}
	if file.Algorithm != "" {
		c.Algorithm = file.Algorithm
	}
	if len(file.Ignore) > 0 {
		c.PathsToIgnore = append([]string(nil), file.Ignore...)
	}
	if file.SetupTeardownMax > 0 {
		c.SetupTeardownMax = file.SetupTeardownMax
	}
	return nil
}
