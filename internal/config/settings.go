package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds tool-level defaults loaded from the settings file, with
// environment variables taking precedence over file values.
type Settings struct {
	ActiveProfile string `yaml:"active_profile"`
	AreaPath      string `yaml:"area_path"`
	Iteration     string `yaml:"iteration"`
	CaseType      string `yaml:"case_type"`
}

// DefaultSettingsPath returns ~/.planpush/config.yaml, or the value of
// PLANPUSH_CONFIG when set.
func DefaultSettingsPath() (string, error) {
	if p := os.Getenv("PLANPUSH_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".planpush", "config.yaml"), nil
}

// LoadSettings reads the settings file at path, falling back to zero-value
// settings when the file does not exist, then applies env overrides.
func LoadSettings(path string) (Settings, error) {
	var s Settings

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file is fine; env vars may carry everything.
	case err != nil:
		return Settings{}, fmt.Errorf("reading settings file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parsing settings file: %w", err)
		}
	}

	if v := os.Getenv("PLANPUSH_PROFILE"); v != "" {
		s.ActiveProfile = v
	}
	if v := os.Getenv("PLANPUSH_AREA_PATH"); v != "" {
		s.AreaPath = v
	}
	if v := os.Getenv("PLANPUSH_ITERATION"); v != "" {
		s.Iteration = v
	}
	if v := os.Getenv("PLANPUSH_CASE_TYPE"); v != "" {
		s.CaseType = v
	}
	return s, nil
}
