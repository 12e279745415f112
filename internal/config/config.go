// Package config loads the optional raider configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/raider"
	configFile = "config.json"
	cacheDir   = ".cache/raider"
	logFile    = "raider.log"
)

const (
	DefaultKeyTimeout     = 100 * time.Millisecond
	DefaultWatchTimeout   = time.Millisecond
	DefaultThumbnailWidth = 400

	minKeyTimeout   = 10 * time.Millisecond
	maxLoopTimeout  = 190 * time.Millisecond
	minWatchTimeout = 0
)

// Config holds the user settings. Flags given on the command line override
// PreviewMode and LogLevel.
type Config struct {
	PreviewMode    string
	KeyTimeout     time.Duration
	WatchTimeout   time.Duration
	CacheDir       string
	LogLevel       string
	LogFile        string
	ShowHidden     bool
	ThumbnailWidth int
}

type rawConfig struct {
	PreviewMode    string `json:"previewMode"`
	KeyTimeout     string `json:"keyTimeout"`
	WatchTimeout   string `json:"watchTimeout"`
	CacheDir       string `json:"cacheDir"`
	LogLevel       string `json:"logLevel"`
	LogFile        string `json:"logFile"`
	ShowHidden     *bool  `json:"showHidden"`
	ThumbnailWidth *int   `json:"thumbnailWidth"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		PreviewMode:    "none",
		KeyTimeout:     DefaultKeyTimeout,
		WatchTimeout:   DefaultWatchTimeout,
		CacheDir:       filepath.Join(home, cacheDir),
		LogLevel:       "warn",
		LogFile:        filepath.Join(home, cacheDir, logFile),
		ThumbnailWidth: DefaultThumbnailWidth,
	}
}

// Path returns the default config file location.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// Load reads the config file at path, or at Path() when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := merge(cfg, &raw); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func merge(cfg *Config, raw *rawConfig) error {
	if raw.PreviewMode != "" {
		cfg.PreviewMode = raw.PreviewMode
	}
	if raw.KeyTimeout != "" {
		d, err := time.ParseDuration(raw.KeyTimeout)
		if err != nil {
			return fmt.Errorf("keyTimeout: %w", err)
		}
		cfg.KeyTimeout = clamp(d, minKeyTimeout, maxLoopTimeout)
	}
	if raw.WatchTimeout != "" {
		d, err := time.ParseDuration(raw.WatchTimeout)
		if err != nil {
			return fmt.Errorf("watchTimeout: %w", err)
		}
		cfg.WatchTimeout = clamp(d, minWatchTimeout, maxLoopTimeout)
	}
	if raw.CacheDir != "" {
		cfg.CacheDir = ExpandPath(raw.CacheDir)
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(raw.LogLevel)
	}
	if raw.LogFile != "" {
		cfg.LogFile = ExpandPath(raw.LogFile)
	}
	if raw.ShowHidden != nil {
		cfg.ShowHidden = *raw.ShowHidden
	}
	if raw.ThumbnailWidth != nil {
		if *raw.ThumbnailWidth <= 0 {
			return fmt.Errorf("thumbnailWidth must be positive, got %d", *raw.ThumbnailWidth)
		}
		cfg.ThumbnailWidth = *raw.ThumbnailWidth
	}
	return nil
}

func clamp(d, lo, hi time.Duration) time.Duration {
	return min(max(d, lo), hi)
}

// ExpandPath replaces a leading "~/" with the home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
