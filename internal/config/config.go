// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package config loads the application configuration from a TOML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/gizitrack/gizitrack/internal/domain"
)

const envPrefix = "GIZITRACK"

// AppConfig wraps the loaded configuration and where it came from.
type AppConfig struct {
	Config     *domain.Config
	ConfigPath string

	v *viper.Viper
}

// New loads configuration from configPath (a file or a directory holding
// config.toml). An empty path uses the default location and writes a
// default config file on first run. Environment variables prefixed with
// GIZITRACK_ override file values.
func New(configPath string) (*AppConfig, error) {
	c := &AppConfig{
		Config: &domain.Config{},
		v:      viper.New(),
	}

	c.defaults()

	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	c.v.AutomaticEnv()

	if err := c.load(configPath); err != nil {
		return nil, err
	}

	if err := c.v.Unmarshal(c.Config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.Config.DataDir == "" {
		c.Config.DataDir = filepath.Dir(c.ConfigPath)
	}

	return c, nil
}

func (c *AppConfig) defaults() {
	c.v.SetDefault("host", "127.0.0.1")
	c.v.SetDefault("port", 7475)
	c.v.SetDefault("logLevel", "INFO")
	c.v.SetDefault("logPath", "")
	c.v.SetDefault("logMaxSize", 50)
	c.v.SetDefault("logMaxBackups", 3)
	c.v.SetDefault("dataDir", "")
	c.v.SetDefault("databasePath", "")
	c.v.SetDefault("metricsEnabled", false)
}

func (c *AppConfig) load(configPath string) error {
	c.v.SetConfigType("toml")

	if configPath == "" {
		dir, err := defaultConfigDir()
		if err != nil {
			return err
		}
		configPath = dir
	}

	if isDir(configPath) {
		configPath = filepath.Join(configPath, "config.toml")
	}
	c.ConfigPath = configPath
	c.v.SetConfigFile(configPath)

	if err := c.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("read config %s: %w", configPath, err)
		}
		if err := c.writeDefault(configPath); err != nil {
			return err
		}
	}
	return nil
}

func (c *AppConfig) writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := c.v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("write default config %s: %w", path, err)
	}
	return nil
}

func defaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "gizitrack"), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
