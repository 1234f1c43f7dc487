package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contask/contask/internal/config"
)

func TestInit_CreatesCommandTable(t *testing.T) {
	// Given: an empty project directory
	dir := t.TempDir()

	// When: running init
	out, err := execute(t, context.Background(), "init", "-d", dir)
	require.NoError(t, err)

	// Then: a valid starter command table exists
	assert.Contains(t, out, "Created")
	require.True(t, config.Exists(dir))
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Commands)
}

func TestInit_RefusesToOverwriteWithoutForce(t *testing.T) {
	// Given: an existing command table
	dir := t.TempDir()
	custom := "version: 1\ncommands:\n  - name: mine\n    run: make check\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(custom), 0o644))

	// When: running init again
	_, err := execute(t, context.Background(), "init", "-d", dir)

	// Then: the existing table is untouched
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	data, readErr := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, readErr)
	assert.Equal(t, custom, string(data))
}

func TestInit_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("version: 1\n"), 0o644))

	_, err := execute(t, context.Background(), "init", "-d", dir, "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "commands:"))
}
