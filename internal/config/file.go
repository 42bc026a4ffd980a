package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFilePath returns the default config file location
// (~/.config/mkvkit/config.yaml), or empty when the home directory cannot
// be determined.
func DefaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mkvkit", "config.yaml")
}

// LoadFile overlays cfg with values from the YAML file at path. A missing
// file is not an error when explicit is false (the default location simply
// may not exist); when the user asked for a specific file, it must exist.
func LoadFile(cfg *Config, path string, explicit bool) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}
