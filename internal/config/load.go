package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name searched in the standard locations.
const FileName = "animbake.yaml"

// Load loads configuration with priority: defaults < file < flags.
//
// flags may be nil, in which case only defaults and the discovered file apply.
func Load(flags *Flags) (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over discovery
	configPath := ""
	if flags != nil {
		configPath = flags.ConfigPath()
	}
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	if flags != nil {
		flags.apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "animbake")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "animbake")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "animbake")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "animbake")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
//
// Mapping tables (parts, cameras) given in the file replace the defaults
// instead of merging into them.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var tables struct {
		Parts   map[string]map[string]string `yaml:"parts"`
		Cameras map[string]string            `yaml:"cameras"`
	}
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return err
	}
	if tables.Parts != nil {
		cfg.Parts = nil
	}
	if tables.Cameras != nil {
		cfg.Cameras = nil
	}

	return yaml.Unmarshal(data, cfg)
}
