package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds lexisphere configuration.
type Config struct {
	Viewer ViewerConfig `toml:"viewer"`
	Loader LoaderConfig `toml:"loader"`
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
}

// ViewerConfig controls the interactive window and interaction tuning.
type ViewerConfig struct {
	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
	ShowFPS        bool    `toml:"show_fps"`
	Sensitivity    float64 `toml:"drag_sensitivity"`
	InertiaDecay   float64 `toml:"inertia_decay"`
	ClickThreshold float64 `toml:"click_threshold"`
	HitTolerance   float64 `toml:"hit_tolerance"`
	TransitionMode string  `toml:"transition_mode"` // "serial" or "parallel"
	TranslateSec   float64 `toml:"translate_sec"`
	ExpandSec      float64 `toml:"expand_sec"`
	ScreenshotDir  string  `toml:"screenshot_dir"`
}

// LoaderConfig controls where the viewer fetches term records from.
type LoaderConfig struct {
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"`
	MaxRetries int    `toml:"max_retries"`
}

// ServerConfig controls the term API server.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	Metrics bool   `toml:"metrics"`
}

// StoreConfig controls the sqlite term store.
type StoreConfig struct {
	Path string `toml:"path"`
}

// CacheConfig controls the optional redis read-through cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
	TTLSec  int    `toml:"ttl_sec"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:          960,
			Height:         720,
			ShowFPS:        false,
			Sensitivity:    0.005,
			InertiaDecay:   0.95,
			ClickThreshold: 4,
			HitTolerance:   1.5,
			TransitionMode: "serial",
			TranslateSec:   1.0,
			ExpandSec:      0.8,
			ScreenshotDir:  "screenshots",
		},
		Loader: LoaderConfig{
			BaseURL:    "http://localhost:8876",
			TimeoutSec: 10,
			MaxRetries: 3,
		},
		Server: ServerConfig{
			Addr:    ":8876",
			Metrics: true,
		},
		Store: StoreConfig{
			Path: "lexisphere.db",
		},
		Cache: CacheConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			TTLSec:  300,
		},
	}
}

// Dir returns the lexisphere config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "lexisphere")
}

func path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, falling back to defaults if it doesn't
// exist or fails to parse.
func Load() *Config {
	cfg := Default()
	data, err := os.ReadFile(path())
	if err != nil {
		return cfg
	}
	_ = toml.Unmarshal(data, cfg)
	return cfg
}

// LoadFile reads a specific config file. Unlike Load, a missing or
// malformed file is reported.
func LoadFile(p string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	p := path()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	f, err := os.Create(p)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(path()); err == nil {
		return nil // already exists
	}
	return Save(Default())
}
