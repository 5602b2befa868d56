// Package config loads the optional tuload.yaml project file.
//
// The file is looked up in the working directory and only carries defaults
// that CLI flags may override. Connection strings never live here; they come
// from the DATABASE_URL environment variable (typically via a local .env).
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig holds project-level defaults for a load run.
type ProjectConfig struct {
	// CSV is the default path to the tuition log CSV file.
	CSV string `yaml:"csv,omitempty"`

	// Timeout is the whole-run timeout as a Go duration string, e.g. "5m".
	Timeout string `yaml:"timeout,omitempty"`
}

const ConfigFileName = "tuload.yaml"

// Load reads tuload.yaml from dir. A missing file yields ErrConfigNotFound,
// which callers treat as "use defaults".
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
