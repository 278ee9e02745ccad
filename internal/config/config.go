package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LegacyTextLimit in a config file selects the classic fixed body buffer.
const LegacyTextLimit = -1

// settings read from the optional YAML file; flags take precedence
type Config struct {
	// bytes kept per subtitle body: 0 unbounded, -1 legacy cap
	TextLimit int  `yaml:"text_limit"`
	Verbose   bool `yaml:"verbose"`

	path string
}

func defaultConfig() *Config {
	return &Config{
		TextLimit: 0,
		Verbose:   false,
	}
}

// DefaultPath is subsync/config.yaml under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "subsync", "config.yaml")
}

// Load reads the config at path. An empty path means DefaultPath, which
// may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TextLimit < LegacyTextLimit {
		return fmt.Errorf("text_limit must be -1, 0 or positive, got %d", c.TextLimit)
	}
	return nil
}

// file the config was loaded from, empty for built-in defaults
func (c *Config) Path() string {
	return c.path
}
