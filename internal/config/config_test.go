// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesDefaultConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Config.Host)
	assert.Equal(t, 7475, cfg.Config.Port)
	assert.Equal(t, "INFO", cfg.Config.LogLevel)
	assert.False(t, cfg.Config.MetricsEnabled)
	assert.FileExists(t, filepath.Join(dir, "config.toml"))

	// Database defaults next to the config file.
	assert.Equal(t, filepath.Join(dir, "gizitrack.db"), cfg.Config.ResolveDatabasePath())
}

func TestNewReadsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
host = "0.0.0.0"
port = 9000
logLevel = "DEBUG"
databasePath = "/var/lib/gizitrack/data.db"
metricsEnabled = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Config.Host)
	assert.Equal(t, 9000, cfg.Config.Port)
	assert.Equal(t, "DEBUG", cfg.Config.LogLevel)
	assert.True(t, cfg.Config.MetricsEnabled)
	assert.Equal(t, "/var/lib/gizitrack/data.db", cfg.Config.ResolveDatabasePath())
	assert.Equal(t, "0.0.0.0:9000", cfg.Config.ListenAddr())
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = 9000\n"), 0644))

	t.Setenv("GIZITRACK_PORT", "9100")
	t.Setenv("GIZITRACK_LOGLEVEL", "ERROR")

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Config.Port)
	assert.Equal(t, "ERROR", cfg.Config.LogLevel)
}

func TestNewRejectsMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = = 9000\n"), 0644))

	_, err := New(path)
	assert.Error(t, err)
}
