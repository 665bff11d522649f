// Package config loads tracker settings from an optional YAML file and
// validates them against sane bounds.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/serene-interactive/seagreen/pkg/types"
)

// Bounds for user-supplied settings.
const (
	MinPollInterval  = 100 * time.Millisecond
	MaxTrackSeconds  = 3600
	defaultFileName  = "seagreen.yaml"
	defaultConfigDir = ".config/seagreen"
)

// Config holds the runtime settings of the tracker.
type Config struct {
	PollInterval time.Duration // cadence of the sampling loop
	TrackSeconds int           // default /track window
	ListLimit    int           // max rows printed by /list
	ListFilter   string        // case-insensitive substring filter for /list
	NoColor      bool
}

// fileConfig mirrors the YAML document. Durations are Go duration strings
// such as "500ms" or "2s".
type fileConfig struct {
	PollInterval string `yaml:"poll_interval"`
	TrackSeconds int    `yaml:"track_seconds"`
	ListLimit    int    `yaml:"list_limit"`
	ListFilter   string `yaml:"list_filter"`
	NoColor      bool   `yaml:"no_color"`
}

// Default returns the built-in settings: one sample per second, 10s track
// window, 20 listing rows.
func Default() Config {
	return Config{
		PollInterval: time.Second,
		TrackSeconds: types.DefaultTrackSeconds,
		ListLimit:    types.DefaultListLimit,
	}
}

// Load reads settings from path. An empty path checks the default location
// (~/.config/seagreen/seagreen.yaml) and quietly falls back to Default when
// no file exists there; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, defaultConfigDir, defaultFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML settings over the defaults.
func Parse(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	cfg := Default()
	if fc.PollInterval != "" {
		interval, err := time.ParseDuration(fc.PollInterval)
		if err != nil {
			return Config{}, fmt.Errorf("parsing poll_interval: %w", err)
		}
		cfg.PollInterval = interval
	}
	if fc.TrackSeconds != 0 {
		cfg.TrackSeconds = fc.TrackSeconds
	}
	if fc.ListLimit != 0 {
		cfg.ListLimit = fc.ListLimit
	}
	cfg.ListFilter = fc.ListFilter
	cfg.NoColor = fc.NoColor

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings outside the supported bounds.
func (c Config) Validate() error {
	if c.PollInterval < MinPollInterval {
		return fmt.Errorf("poll_interval %v below minimum %v", c.PollInterval, MinPollInterval)
	}
	if c.TrackSeconds <= 0 || c.TrackSeconds > MaxTrackSeconds {
		return fmt.Errorf("track_seconds %d outside 1..%d", c.TrackSeconds, MaxTrackSeconds)
	}
	if c.ListLimit <= 0 {
		return fmt.Errorf("list_limit %d must be positive", c.ListLimit)
	}
	return nil
}
