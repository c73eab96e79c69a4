// Package config loads the rhtml.json project configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "rhtml.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultPagesDir is the default templates directory.
	DefaultPagesDir = "pages"

	// DefaultExtension is the default template file extension.
	DefaultExtension = ".rhtml"

	// DefaultDebounce is the default watcher debounce window.
	DefaultDebounce = 100 * time.Millisecond
)

// Config represents the complete rhtml.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// PagesDir is the directory containing RHTML templates.
	PagesDir string `json:"pagesDir,omitempty"`

	// Extension is the template file extension.
	Extension string `json:"extension,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to serve on.
	Port int `json:"port,omitempty"`

	// CaseInsensitive makes route matching ignore case in static
	// segments.
	CaseInsensitive bool `json:"caseInsensitive,omitempty"`

	// Dev contains development server settings.
	Dev DevConfig `json:"dev,omitempty"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// DevConfig contains development server settings.
type DevConfig struct {
	// HotReload enables template watching and browser livereload.
	HotReload bool `json:"hotReload,omitempty"`

	// DebounceMS is the watcher debounce window in milliseconds.
	DebounceMS int `json:"debounceMs,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		PagesDir:  DefaultPagesDir,
		Extension: DefaultExtension,
		Host:      DefaultHost,
		Port:      DefaultPort,
		Dev:       DevConfig{HotReload: true},
	}
}

// Load reads rhtml.json from the specified directory. A missing file
// yields the defaults, so a bare pages/ directory is a valid project.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFromWorkingDir reads rhtml.json from the current directory.
func LoadFromWorkingDir() (*Config, error) {
	return Load(".")
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from, if any.
func (c *Config) Path() string {
	return c.configPath
}

// Address returns the host:port listen address.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return fmt.Sprintf("http://%s", c.Address())
}

// Debounce returns the watcher debounce window.
func (c *Config) Debounce() time.Duration {
	if c.Dev.DebounceMS > 0 {
		return time.Duration(c.Dev.DebounceMS) * time.Millisecond
	}
	return DefaultDebounce
}

// applyDefaults fills in defaults for fields the file left empty.
func (c *Config) applyDefaults() {
	if c.PagesDir == "" {
		c.PagesDir = DefaultPagesDir
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
}
