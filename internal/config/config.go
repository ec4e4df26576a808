// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles schemamap project configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dacolabs/schemamap/internal/translate"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the name of the configuration file looked up in the working directory.
const FileName = "schemamap.yaml"

// EnvVar names the environment variable that points at a configuration file.
const EnvVar = "SCHEMAMAP_CONFIG"

// Config represents the schemamap.yaml project configuration file.
type Config struct {
	Version int `yaml:"version"`
	// Source and Target are the default format identifiers for convert.
	Source string `yaml:"source,omitempty"`
	Target string `yaml:"target,omitempty"`
	// Timeout bounds one parse, as a Go duration string such as "2s".
	Timeout       string `yaml:"timeout,omitempty"`
	MaxInputBytes int    `yaml:"max_input_bytes,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{Version: CurrentConfigVersion}
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	for _, id := range []string{c.Source, c.Target} {
		if id == "" {
			continue
		}
		if _, err := translate.ParseFormat(id); err != nil {
			return err
		}
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.MaxInputBytes < 0 {
		return errors.New("max_input_bytes must not be negative")
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty Timeout yields zero, which
// selects the converter default.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, errors.Wrap(err, "invalid timeout")
	}
	if d <= 0 {
		return 0, errors.Newf("timeout must be positive, got %s", c.Timeout)
	}
	return d, nil
}

// Locate returns the configuration file to load: the explicit path when set,
// then the file named by SCHEMAMAP_CONFIG, then schemamap.yaml in dir when it
// exists. It returns "" when no configuration applies.
func Locate(explicit string, getenv func(string) string, dir string) string {
	if explicit != "" {
		return explicit
	}
	if getenv != nil {
		if p := getenv(EnvVar); p != "" {
			return p
		}
	}
	candidate := filepath.Join(dir, FileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

// Resolve locates, loads and validates the configuration. Without a file it
// returns Default.
func Resolve(explicit string, getenv func(string) string, dir string) (*Config, string, error) {
	path := Locate(explicit, getenv, dir)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, errors.Wrapf(err, "invalid configuration %s", path)
	}
	return cfg, path, nil
}
