package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
}

func TestLoad_ReadsCommandTableInOrder(t *testing.T) {
	// Given: a config with several commands
	dir := t.TempDir()
	writeConfig(t, dir, `
version: 1
watch:
  method: hash
  interval: 150ms
commands:
  - name: fmt
    run: gofmt -l {changed_files}
  - name: vet
    run: go vet ./...
  - name: test
    run: go test ./...
`)

	// When: loading it
	cfg, err := Load(dir)
	require.NoError(t, err)

	// Then: values and command order survive
	assert.Equal(t, "hash", cfg.Watch.Method)
	interval, err := cfg.Interval()
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, interval)
	require.Len(t, cfg.Commands, 3)
	assert.Equal(t, "fmt", cfg.Commands[0].Name)
	assert.Equal(t, "vet", cfg.Commands[1].Name)
	assert.Equal(t, "test", cfg.Commands[2].Name)
}

func TestLoad_DefaultsApplyWhenWatchSectionOmitted(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
version: 1
commands:
  - name: test
    run: go test ./...
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "mtime", cfg.Watch.Method)
	interval, err := cfg.Interval()
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, interval)
}

func TestLoad_MissingFileIsFatalWithSuggestion(t *testing.T) {
	// Given: an empty directory

	// When: loading
	_, err := Load(t.TempDir())

	// Then: a config-not-found error pointing at 'contask init'
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERR_101_CONFIG_NOT_FOUND")
}

func TestLoad_EnvOverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
version: 1
watch:
  method: mtime
  interval: 300ms
commands:
  - name: test
    run: go test ./...
`)
	t.Setenv("CONTASK_METHOD", "hash")
	t.Setenv("CONTASK_INTERVAL", "1s")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "hash", cfg.Watch.Method)
	interval, err := cfg.Interval()
	require.NoError(t, err)
	assert.Equal(t, time.Second, interval)
}

func TestValidate_RejectsBadInputs(t *testing.T) {
	base := func() *Config {
		cfg := NewConfig()
		cfg.Commands = []CommandSpec{{Name: "test", Run: "go test ./..."}}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown method",
			mutate:  func(c *Config) { c.Watch.Method = "inotify" },
			wantErr: "unknown watch method",
		},
		{
			name:    "unparseable interval",
			mutate:  func(c *Config) { c.Watch.Interval = "fast" },
			wantErr: "invalid watch interval",
		},
		{
			name:    "non-positive interval",
			mutate:  func(c *Config) { c.Watch.Interval = "0s" },
			wantErr: "must be positive",
		},
		{
			name:    "empty command table",
			mutate:  func(c *Config) { c.Commands = nil },
			wantErr: "command table is empty",
		},
		{
			name:    "unnamed command",
			mutate:  func(c *Config) { c.Commands[0].Name = "" },
			wantErr: "has no name",
		},
		{
			name:    "command without run template",
			mutate:  func(c *Config) { c.Commands[0].Run = "" },
			wantErr: "has no run template",
		},
		{
			name: "duplicate command name",
			mutate: func(c *Config) {
				c.Commands = append(c.Commands, CommandSpec{Name: "test", Run: "true"})
			},
			wantErr: "duplicate command name",
		},
		{
			name:    "unsupported version",
			mutate:  func(c *Config) { c.Version = 2 },
			wantErr: "unsupported config version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, Exists(dir))
	writeConfig(t, dir, "version: 1\n")
	assert.True(t, Exists(dir))
}
