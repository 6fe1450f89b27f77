package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultTempo is the playback tempo at load time
const DefaultTempo = 120

// OutputConfig selects where events are played. A SoundFont path wins over
// a port name.
type OutputConfig struct {
	Port      string `yaml:"port,omitempty"`
	SoundFont string `yaml:"soundfont,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Output  OutputConfig `yaml:"output,omitempty"`
	Tempo   float64      `yaml:"tempo,omitempty"`
	Kit     string       `yaml:"kit,omitempty"`
	Palette string       `yaml:"palette,omitempty"` // GIMP .gpl file
	Debug   bool         `yaml:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tempo: DefaultTempo,
		Kit:   "beatbox",
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "beatbox"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default location, or returns defaults if
// not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file yields defaults; fields
// left out of the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Tempo <= 0 {
		return nil, fmt.Errorf("parse %s: tempo must be positive, got %v", path, cfg.Tempo)
	}

	return cfg, nil
}
