package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PagesDir != DefaultPagesDir {
		t.Errorf("PagesDir = %q, want %q", cfg.PagesDir, DefaultPagesDir)
	}
	if cfg.Extension != DefaultExtension {
		t.Errorf("Extension = %q, want %q", cfg.Extension, DefaultExtension)
	}
	if cfg.Address() != "localhost:3000" {
		t.Errorf("Address() = %q, want localhost:3000", cfg.Address())
	}
	if !cfg.Dev.HotReload {
		t.Error("Dev.HotReload = false, want true by default")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := `{
  "name": "demo",
  "pagesDir": "site",
  "port": 8080,
  "caseInsensitive": true,
  "dev": {"hotReload": false, "debounceMs": 250}
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Name != "demo" {
		t.Errorf("Name = %q, want demo", cfg.Name)
	}
	if cfg.PagesDir != "site" {
		t.Errorf("PagesDir = %q, want site", cfg.PagesDir)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if !cfg.CaseInsensitive {
		t.Error("CaseInsensitive = false, want true")
	}
	if cfg.Dev.HotReload {
		t.Error("Dev.HotReload = true, want false")
	}
	if cfg.Debounce() != 250*time.Millisecond {
		t.Errorf("Debounce() = %v, want 250ms", cfg.Debounce())
	}
	// Host was omitted and falls back to the default.
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Host, DefaultHost)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("Load() = nil error, want parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := New()
	cfg.Name = "demo"
	cfg.Port = 4000
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if loaded.Name != "demo" || loaded.Port != 4000 {
		t.Errorf("round trip = %+v, want saved values", loaded)
	}
	if loaded.Path() != path {
		t.Errorf("Path() = %q, want %q", loaded.Path(), path)
	}
}
