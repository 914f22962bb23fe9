// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

// Package config loads the optional user configuration file holding
// modulation defaults and named sensor presets. Missing file means
// defaults; commands merge flag values over whatever is loaded here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "tpms-tools"
	configFile = "config.yaml"
)

var (
	global     *Config
	globalOnce sync.Once
	globalErr  error
)

// Modulation holds default modulation parameters applied when the
// corresponding flags are not given.
type Modulation struct {
	SampleRate int     `yaml:"samplerate"`
	Deviation  float64 `yaml:"deviation"`
	Carrier    float64 `yaml:"carrier"`
	Amplitude  float64 `yaml:"amplitude"`
	Padding    float64 `yaml:"padding"`
}

// SensorPreset is a named reading the CLI can reference instead of raw
// flag values.
type SensorPreset struct {
	SensorID    uint32  `yaml:"sensor_id"`
	Pressure    float64 `yaml:"pressure"`
	Temperature int     `yaml:"temperature"`
}

// Config is the on-disk configuration document.
type Config struct {
	Version    int                     `yaml:"version"`
	Modulation Modulation              `yaml:"modulation"`
	Sensors    map[string]SensorPreset `yaml:"sensors"`
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: 1,
		Modulation: Modulation{
			SampleRate: 250000,
			Deviation:  35000,
			Carrier:    0,
			Amplitude:  0.9,
			Padding:    0,
		},
		Sensors: make(map[string]SensorPreset),
	}
}

// GetConfigDir returns the configuration directory, following XDG
// conventions on Unix-like systems.
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// Load reads the configuration file once per process. A missing file is not
// an error; the defaults are returned.
func Load() (*Config, error) {
	globalOnce.Do(func() {
		global, globalErr = loadFromDisk()
	})
	return global, globalErr
}

func loadFromDisk() (*Config, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a configuration document, filling unset
// modulation parameters from the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", cfg.Version)
	}
	if cfg.Sensors == nil {
		cfg.Sensors = make(map[string]SensorPreset)
	}

	// Carrier and padding are not backfilled: zero is their default and a
	// meaningful setting (baseband carrier, no leading silence).
	def := Default().Modulation
	if cfg.Modulation.SampleRate == 0 {
		cfg.Modulation.SampleRate = def.SampleRate
	}
	if cfg.Modulation.Deviation == 0 {
		cfg.Modulation.Deviation = def.Deviation
	}
	if cfg.Modulation.Amplitude == 0 {
		cfg.Modulation.Amplitude = def.Amplitude
	}
	return cfg, nil
}
