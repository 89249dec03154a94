// Package config — .xmlres.yaml configuration file support.
//
// When a .xmlres.yaml file exists in the working root, the CLI takes the
// storage base directory (and optionally the solution path it resolves
// against) from it instead of command-line defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name.
const FileName = ".xmlres.yaml"

// Config is the top-level .xmlres.yaml structure.
type Config struct {
	// BaseDir is the storage base directory, absolute or relative to the
	// solution path. Required when the file is present.
	BaseDir string `yaml:"base_dir"`
	// Solution is the path relative base directories resolve against
	// (default: the directory holding the config file).
	Solution string `yaml:"solution,omitempty"`
}

// Load reads .xmlres.yaml from the given directory. Returns nil if the
// file does not exist.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.BaseDir == "" {
		return nil, fmt.Errorf("%s: base_dir is required", path)
	}
	if cfg.Solution == "" {
		cfg.Solution = root
	}

	return &cfg, nil
}
