// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// config is the rsinfo configuration file.
//
//	module_paths   = ["/opt/rendersys/modules"]
//	default_module = "Vulkan"
//
//	[log]
//	level  = "debug"  # debug|info|warn|error
//	format = "json"   # text|json
//
//	[debug]
//	enabled        = true
//	break_on_error = false
type config struct {
	ModulePaths   []string    `toml:"module_paths"`
	DefaultModule string      `toml:"default_module"`
	Log           logConfig   `toml:"log"`
	Debug         debugConfig `toml:"debug"`
}

type logConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type debugConfig struct {
	Enabled      bool `toml:"enabled"`
	BreakOnError bool `toml:"break_on_error"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

func defaultConfig() config {
	return config{
		DefaultModule: "Null",
		Log:           logConfig{Level: "warn", Format: "text"},
	}
}

// loadConfig reads path on top of the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("default_module") && strings.TrimSpace(cfg.DefaultModule) == "" {
		return config{}, fmt.Errorf("%s: default_module is empty", path)
	}
	if meta.IsDefined("debug", "break_on_error") && cfg.Debug.BreakOnError && !cfg.Debug.Enabled {
		return config{}, fmt.Errorf("%s: [debug].break_on_error requires [debug].enabled", path)
	}
	if err := cfg.validate(); err != nil {
		return config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c config) validate() error {
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("unsupported log level %q (must be one of %s)", c.Log.Level, strings.Join(logLevels, "|"))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("unsupported log format %q (must be one of %s)", c.Log.Format, strings.Join(logFormats, "|"))
	}
	return nil
}
