package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "shooter.yaml"

// Load loads the shooter configuration.
// Search order: customPath -> ~/.shooter/configs/shooter.yaml -> ./configs/shooter.yaml -> embedded default.
// Files are layered over the defaults, so a file only needs the keys it changes.
func Load(customPath string) (Config, error) {
	cfg := embedded()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := overlay(&cfg, data); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(fileName), filepath.Join("configs", fileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := embedded()
		if err := overlay(&candidate, data); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	return cfg, nil
}

// overlay decodes data on top of cfg. Mode entries are merged field by
// field instead of replacing the whole entry.
func overlay(cfg *Config, data []byte) error {
	base := cfg.Modes
	cfg.Modes = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Modes = base
		return err
	}

	var raw struct {
		Modes map[string]yaml.Node `yaml:"modes"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	merged := maps.Clone(base)
	if merged == nil {
		merged = make(map[string]ModeConfig, len(raw.Modes))
	}
	for id, node := range raw.Modes {
		m := merged[id]
		if err := node.Decode(&m); err != nil {
			return fmt.Errorf("mode %s: %w", id, err)
		}
		merged[id] = m
	}
	cfg.Modes = merged
	return nil
}

// embedded parses the embedded default YAML, falling back to DefaultConfig.
func embedded() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultShooterYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultConfig()
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shooter", "configs", filename)
}
