// Package config loads the planlog configuration file. Configuration is a
// small YAML document at ~/.planlog/config.yaml; a missing file means
// defaults, a malformed file is an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-level settings.
type Config struct {
	// JJBinary is the jj executable to invoke. Empty means "jj" on PATH.
	JJBinary string `yaml:"jj_binary"`

	// Repository is the default repository directory. Empty means the
	// current working directory.
	Repository string `yaml:"repository"`

	// Color toggles styled CLI output.
	Color bool `yaml:"color"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Color: true}
}

// DefaultPath returns ~/.planlog/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".planlog", "config.yaml"), nil
}

// Load reads the configuration at path. An empty path means DefaultPath.
// A missing file yields Default() without error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
