package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// searchFileName is the per-user file remembering which folder the search
// command indexes.
const searchFileName = ".podcast-digest.yaml"

// SearchConfig is the persisted search command configuration.
type SearchConfig struct {
	Folder string `yaml:"folder"`
}

// SearchConfigPath returns the location of the search configuration file,
// in the user's home directory when resolvable, otherwise the working
// directory.
func SearchConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return searchFileName
	}
	return filepath.Join(home, searchFileName)
}

// LoadSearchConfig reads the persisted search configuration. A missing file
// is not an error; it returns an empty config so the caller can prompt for
// a folder and save it.
func LoadSearchConfig(path string) (*SearchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &SearchConfig{}, nil
		}
		return nil, fmt.Errorf("read search config: %w", err)
	}

	var cfg SearchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse search config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveSearchConfig writes the search configuration to path.
func SaveSearchConfig(path string, cfg *SearchConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal search config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write search config %s: %w", path, err)
	}
	return nil
}
