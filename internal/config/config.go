package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// FileConfig is the optional transform.yaml configuration. Every field is
// a default that CLI flags and environment variables override.
type FileConfig struct {
	InputDir     string   `yaml:"input_dir"`
	OutputDir    string   `yaml:"output_dir"`
	Processes    int      `yaml:"processes"`
	PathContains string   `yaml:"path_contains"`
	Fields       []string `yaml:"fields"`
}

const ConfigFileName = "transform.yaml"

// Load reads transform.yaml from dir. Returns ErrConfigNotFound when the
// file is absent, which callers treat as "no file-level defaults".
func Load(dir string) (*FileConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}
	return &cfg, nil
}
