package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/gcfg.v1"
	"gopkg.in/yaml.v3"
)

// Load reads a configuration file on top of Default. The decoder is picked
// from the extension: .yaml/.yml or .ini/.gcfg/.cfg.
func Load(path string) (StepConfig, error) {
	return LoadInto(path, Default())
}

// LoadInto reads a configuration file on top of base. Keys the file leaves
// out keep base's values.
func LoadInto(path string, base StepConfig) (StepConfig, error) {
	cfg := base
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".ini", ".gcfg", ".cfg":
		if err := gcfg.FatalOnly(gcfg.ReadFileInto(&cfg, path)); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return cfg, nil
}

func Save(path string, cfg StepConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
