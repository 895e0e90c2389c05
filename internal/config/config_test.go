package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Viewer.Width != 960 || cfg.Viewer.Height != 720 {
		t.Errorf("window size = %dx%d, want 960x720", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if cfg.Viewer.Sensitivity != 0.005 {
		t.Errorf("drag sensitivity = %v, want 0.005", cfg.Viewer.Sensitivity)
	}
	if cfg.Viewer.InertiaDecay != 0.95 {
		t.Errorf("inertia decay = %v, want 0.95", cfg.Viewer.InertiaDecay)
	}
	if cfg.Viewer.ClickThreshold != 4 {
		t.Errorf("click threshold = %v, want 4", cfg.Viewer.ClickThreshold)
	}
	if cfg.Viewer.TransitionMode != "serial" {
		t.Errorf("transition mode = %q, want serial", cfg.Viewer.TransitionMode)
	}
	if cfg.Loader.BaseURL != "http://localhost:8876" {
		t.Errorf("loader base url = %q", cfg.Loader.BaseURL)
	}
	if cfg.Server.Addr != ":8876" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled by default")
	}
}

func TestDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	want := filepath.Join("/tmp/xdg-test", "lexisphere")
	if got := Dir(); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Viewer.Width = 1280
	cfg.Viewer.TransitionMode = "parallel"
	cfg.Store.Path = "custom.db"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got := Load()
	if got.Viewer.Width != 1280 {
		t.Errorf("width = %d, want 1280", got.Viewer.Width)
	}
	if got.Viewer.TransitionMode != "parallel" {
		t.Errorf("transition mode = %q, want parallel", got.Viewer.TransitionMode)
	}
	if got.Store.Path != "custom.db" {
		t.Errorf("store path = %q, want custom.db", got.Store.Path)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	got := Load()
	if got.Viewer.Width != 960 {
		t.Errorf("width = %d, want default 960", got.Viewer.Width)
	}
}

func TestLoadFilePartialOverridesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	data := "[viewer]\nwidth = 640\n"
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Viewer.Width != 640 {
		t.Errorf("width = %d, want 640", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 720 {
		t.Errorf("height = %d, want default 720", cfg.Viewer.Height)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadFile() on missing file should error")
	}

	p := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(p, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(p); err == nil {
		t.Error("LoadFile() on malformed file should error")
	}
}

func TestEnsureExists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error: %v", err)
	}
	p := filepath.Join(Dir(), "config.toml")
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// A second call leaves the existing file alone.
	if err := os.WriteFile(p, []byte("[viewer]\nwidth = 111\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() second call error: %v", err)
	}
	if got := Load(); got.Viewer.Width != 111 {
		t.Errorf("width = %d, existing file should be preserved", got.Viewer.Width)
	}
}
