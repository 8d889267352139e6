// Package config handles the application configuration file: where the
// interface description lives, which controller and resource are selected,
// and where logs go. Flags override anything loaded from the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file looked up in the working
// directory when no --config flag is given.
const DefaultFileName = "loom.yaml"

// Config models loom.yaml.
type Config struct {
	// Interface is the path to the project's interface description.
	Interface string `yaml:"interface"`

	// Controller and Resource name the scope selectors compiles run with
	// when the flags are absent.
	Controller string `yaml:"controller,omitempty"`
	Resource   string `yaml:"resource,omitempty"`

	// LogDir receives loom.log. Defaults next to the config file.
	LogDir string `yaml:"log_dir,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Interface: "interface.json",
		LogDir:    "logs",
	}
}

// Load reads the configuration file at path, applying defaults for absent
// fields and resolving relative paths against the file's directory. A
// missing file is not an error; the defaults come back as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.normalize(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports structurally unusable configurations.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Interface) == "" {
		return fmt.Errorf("interface path is required")
	}
	return nil
}

func (c *Config) normalize(base string) {
	c.Interface = resolvePath(base, c.Interface)
	if c.Interface == "" {
		c.Interface = resolvePath(base, Default().Interface)
	}
	c.Controller = strings.TrimSpace(c.Controller)
	c.Resource = strings.TrimSpace(c.Resource)
	c.LogDir = resolvePath(base, c.LogDir)
	if c.LogDir == "" {
		c.LogDir = resolvePath(base, Default().LogDir)
	}
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
