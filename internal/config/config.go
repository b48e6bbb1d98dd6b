// Package config loads nbup settings from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the per-project config file looked up in the working directory.
const FileName = "nbup.toml"

// Config holds provisioning settings. Zero values mean "use the default";
// flags override file values, file values override defaults.
type Config struct {
	// Port the notebook server listens on.
	Port int `toml:"port"`
	// IP is the bind address passed to the server.
	IP string `toml:"ip"`
	// EnvsRoot is the directory containing per-project environments,
	// each with a bin/jupyter.
	EnvsRoot string `toml:"envs_root"`
	// PollAttempts bounds the readiness poll loop.
	PollAttempts int `toml:"poll_attempts"`
	// PollIntervalSeconds is the sleep between poll attempts.
	PollIntervalSeconds int `toml:"poll_interval_seconds"`
	// CaptureLines is how much pane output the timeout diagnostics capture.
	CaptureLines int `toml:"capture_lines"`
}

// Default returns the built-in settings.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Port:                8888,
		IP:                  "0.0.0.0",
		EnvsRoot:            filepath.Join(home, "miniconda3", "envs"),
		PollAttempts:        90,
		PollIntervalSeconds: 1,
		CaptureLines:        80,
	}
}

// Interval returns the poll interval as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// Load reads a TOML file and merges it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault finds the effective config for a working directory: an
// nbup.toml in workDir wins, then ~/.config/nbup/config.toml, then the
// built-in defaults. A missing file is not an error; a malformed one is.
func LoadDefault(workDir string) (Config, error) {
	candidates := []string{filepath.Join(workDir, FileName)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "nbup", "config.toml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return Load(path)
	}
	return Default(), nil
}
