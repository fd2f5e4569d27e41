// Package config loads vlint's configuration from a fixed JSON search
// path, the same shape the teacher's internal/config uses: cwd, then
// project root, then a user config directory, falling back to
// DefaultConfig if nothing is found. Loaded config is validated against
// an embedded CUE schema before use.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is vlint's top-level configuration. It only exposes what this
// linter's fixed rule set leaves configurable — never which checks run;
// the check set is a fixed part of internal/lint, not a config knob.
type Config struct {
	// OutputFormat is "text" or "json". Anything else is rejected by
	// the schema. The value is stored and saved only: the report is
	// always printed in the text format, whatever this field holds.
	OutputFormat string `json:"outputFormat,omitempty"`

	// Color is stored and saved only: the report printer does not read
	// it, and the report is never ANSI-highlighted.
	Color bool `json:"color,omitempty"`

	// TraceFile, if set, receives a JSON-lines timing trace of the
	// pipeline's phases. Empty disables tracing.
	TraceFile string `json:"traceFile,omitempty"`

	// FailOnViolation makes the CLI exit 2 when any violation is
	// found. Default false preserves spec's "exit 0 regardless of
	// violations" contract.
	FailOnViolation bool `json:"failOnViolation,omitempty"`
}

// DefaultConfig returns the configuration used when no config file is
// found. It reproduces the CLI's spec'd default behavior exactly.
func DefaultConfig() *Config {
	return &Config{
		OutputFormat:    "text",
		Color:           false,
		TraceFile:       "",
		FailOnViolation: false,
	}
}

func (c *Config) applyDefaults() {
	if c.OutputFormat == "" {
		c.OutputFormat = "text"
	}
}

// Load finds and loads vlint's configuration.
// Search order:
//  1. ./vlint.json (current working directory)
//  2. ./.vlint.json (current working directory)
//  3. <rootPath>/vlint.json (if rootPath is a directory different from cwd)
//  4. <rootPath>/.vlint.json (same condition)
//  5. ~/.config/vlint/config.json
//
// Returns DefaultConfig if no config file is found.
func Load(rootPath string) (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, "vlint.json"),
		filepath.Join(cwd, ".vlint.json"),
	}

	if info, err := os.Stat(rootPath); err == nil && info.IsDir() {
		absRoot, _ := filepath.Abs(rootPath)
		if absRoot != cwd {
			searchPaths = append(searchPaths,
				filepath.Join(rootPath, "vlint.json"),
				filepath.Join(rootPath, ".vlint.json"),
			)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "vlint", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads and validates configuration from a specific file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("config %s failed schema validation: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the configuration to path as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
