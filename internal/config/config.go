// Package config loads and validates the contask.yaml command table.
//
// The command table is declarative data, never executable
// configuration code: it is parsed once, validated, and handed to the
// rest of the program as an immutable value.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/contask/contask/internal/errors"
)

// ConfigFileName is the command table file read from the watched root.
const ConfigFileName = "contask.yaml"

// Config is the complete contask configuration.
type Config struct {
	Version  int           `yaml:"version"`
	Watch    WatchConfig   `yaml:"watch"`
	Commands []CommandSpec `yaml:"commands"`
}

// WatchConfig configures the change-detection loop.
type WatchConfig struct {
	// Method selects change detection: "mtime" (cheap stat) or
	// "hash" (content digest).
	Method string `yaml:"method"`

	// Interval is the polling interval as a duration string.
	Interval string `yaml:"interval"`
}

// CommandSpec is one named shell command. Commands run sequentially
// in list order; a "{changed_files}" token in Run is replaced with
// the space-joined changed-path list at dispatch time.
type CommandSpec struct {
	Name string `yaml:"name"`
	Run  string `yaml:"run"`
}

// NewConfig returns a Config with defaults and an empty command table.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Watch: WatchConfig{
			Method:   "mtime",
			Interval: "300ms",
		},
	}
}

// Exists reports whether dir contains a contask.yaml.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// Load reads contask.yaml from dir, applies environment overrides,
// and validates the result. A missing file is a fatal configuration
// error: without a command table there is nothing to run.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeConfigNotFound,
				fmt.Sprintf("%s not found", ConfigFileName), err).
				WithDetail("directory", dir).
				WithSuggestion("run 'contask init' to create a command table")
		}
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("parsing %s", path), err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies CONTASK_* environment variables on top of
// the file values. Env wins over file, file wins over defaults.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CONTASK_METHOD"); v != "" {
		c.Watch.Method = v
	}
	if v := os.Getenv("CONTASK_INTERVAL"); v != "" {
		c.Watch.Interval = v
	}
}

// Validate checks the configuration and returns the first problem.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return errors.ConfigError(
			fmt.Sprintf("unsupported config version %d", c.Version), nil)
	}

	switch c.Watch.Method {
	case "hash", "mtime":
	default:
		return errors.New(errors.ErrCodeInvalidMethod,
			fmt.Sprintf("unknown watch method %q", c.Watch.Method), nil).
			WithSuggestion(`use "hash" or "mtime"`)
	}

	if _, err := c.Interval(); err != nil {
		return err
	}

	if len(c.Commands) == 0 {
		return errors.ConfigError("command table is empty", nil).
			WithSuggestion("add at least one entry under 'commands'")
	}
	seen := make(map[string]bool, len(c.Commands))
	for i, cmd := range c.Commands {
		if cmd.Name == "" {
			return errors.ConfigError(
				fmt.Sprintf("command #%d has no name", i+1), nil)
		}
		if cmd.Run == "" {
			return errors.ConfigError(
				fmt.Sprintf("command %q has no run template", cmd.Name), nil)
		}
		if seen[cmd.Name] {
			return errors.ConfigError(
				fmt.Sprintf("duplicate command name %q", cmd.Name), nil)
		}
		seen[cmd.Name] = true
	}

	return nil
}

// Interval parses the polling interval.
func (c *Config) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watch.Interval)
	if err != nil {
		return 0, errors.ConfigError(
			fmt.Sprintf("invalid watch interval %q", c.Watch.Interval), err)
	}
	if d <= 0 {
		return 0, errors.ConfigError(
			fmt.Sprintf("watch interval must be positive, got %q", c.Watch.Interval), nil)
	}
	return d, nil
}
