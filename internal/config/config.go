// Package config loads interpreter settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceFileExt is the canonical source file extension.
const SourceFileExt = ".nerd"

// Settings are the tunables of the interpreter and its REPL. Zero
// values mean "use the default".
type Settings struct {
	// Prompt is printed before each interactive line.
	Prompt string `yaml:"prompt"`

	// HistoryFile is the path the REPL history is persisted to. Empty
	// keeps history in memory only.
	HistoryFile string `yaml:"history_file"`

	// HistorySize caps the number of remembered lines.
	HistorySize int `yaml:"history_size"`

	// ScratchSize is the initial capacity of the VM scratch arena, in
	// bytes.
	ScratchSize int64 `yaml:"scratch_size"`
}

// Default returns the baseline settings.
func Default() Settings {
	return Settings{
		Prompt:      "> ",
		HistorySize: 500,
	}
}

// Load reads settings from path, layered over the defaults. A missing
// file is not an error; a malformed one is.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	if s.Prompt == "" {
		s.Prompt = Default().Prompt
	}
	if s.HistorySize <= 0 {
		s.HistorySize = Default().HistorySize
	}
	return s, nil
}

// DefaultPath returns the conventional config location under the
// user's home directory, or "" when the home is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nerdrc.yaml")
}
