package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config controls the watch command. All fields are optional in the file;
// zero values fall back to defaults.
type Config struct {
	// Path is the directory to watch.
	Path string `toml:"path"`

	// DebounceMS is the quiet period before a change summary is printed.
	DebounceMS int `toml:"debounce_ms"`

	// StatsMS is the minimum interval between stats lines.
	StatsMS int `toml:"stats_ms"`

	// Capacity is the advisory listeners-per-pattern threshold.
	Capacity int `toml:"capacity"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Path:       ".",
		DebounceMS: 500,
		StatsMS:    2000,
		Capacity:   10,
		LogLevel:   "info",
	}
}

// LoadConfig reads a TOML config file, returning defaults when the path is
// empty or the file does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Debounce returns the debounce interval as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// StatsInterval returns the stats interval as a duration.
func (c Config) StatsInterval() time.Duration {
	return time.Duration(c.StatsMS) * time.Millisecond
}
