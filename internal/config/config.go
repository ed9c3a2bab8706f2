// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/webmatic-tui/internal/model"
	"github.com/jeranaias/webmatic-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete webmatic client configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Backend configuration
	Backend BackendConfig `toml:"backend" json:"backend"`

	// Generation configuration
	Generation GenerationConfig `toml:"generation" json:"generation"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Cache configuration
	Cache CacheConfig `toml:"cache" json:"cache"`
}

// BackendConfig contains backend endpoint configuration.
type BackendConfig struct {
	// URL is the base URL of the backend, without the /api suffix.
	URL string `toml:"url" json:"url"`
	// TimeoutSecs is the timeout for ordinary requests.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// GenerationConfig contains defaults for generation requests.
type GenerationConfig struct {
	// Provider is the default provider: "claude" or "gpt".
	Provider string `toml:"provider" json:"provider"`
	// Model is an optional model override. Blank lets the backend pick.
	Model string `toml:"model" json:"model"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// Theme is the color theme name.
	Theme string `toml:"theme" json:"theme"`
	// ShowStatusBar toggles the bottom status bar.
	ShowStatusBar bool `toml:"show_status_bar" json:"show_status_bar"`
}

// CacheConfig contains the transcript warm-start cache configuration.
type CacheConfig struct {
	// Enabled toggles the per-project transcript cache.
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the cache database path (empty = default under the config dir).
	Path string `toml:"path" json:"path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Backend: BackendConfig{
			URL:         "http://localhost:8000",
			TimeoutSecs: 30,
		},
		Generation: GenerationConfig{
			Provider: string(model.ProviderClaude),
		},
		UI: UIConfig{
			Theme:         "dark",
			ShowStatusBar: true,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// ConfigDir returns the webmatic configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".webmatic"), nil
}

// ConfigPathTOML returns the TOML config file path.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the JSON config file path.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// CachePath returns the effective transcript cache path.
func (c *Config) CachePath() (string, error) {
	if c.Cache.Path != "" {
		return c.Cache.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "transcripts.db"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from the standard locations, falling back to
// defaults, then applies environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := loadTOML(cfg, path); err != nil {
				return nil, err
			}
			cfg.ApplyEnvOverrides()
			return cfg, cfg.Validate()
		}
	}

	if path, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := loadJSON(cfg, path); err != nil {
				return nil, err
			}
			cfg.ApplyEnvOverrides()
			return cfg, cfg.Validate()
		}
	}

	cfg.ApplyEnvOverrides()
	return cfg, cfg.Validate()
}

// LoadFromPath loads configuration from an explicit file, choosing the
// format by extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = loadTOML(cfg, path)
	case ".json":
		err = loadJSON(cfg, path)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	return cfg, cfg.Validate()
}

func loadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func loadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to the TOML path atomically.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path as TOML.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// =============================================================================
// VALIDATION & OVERRIDES
// =============================================================================

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.url %q is not a valid URL", c.Backend.URL)
	}
	if c.Backend.TimeoutSecs <= 0 {
		return fmt.Errorf("backend.timeout_secs must be positive, got %d", c.Backend.TimeoutSecs)
	}
	if !model.Provider(c.Generation.Provider).Valid() {
		return fmt.Errorf("generation.provider %q is not a known provider", c.Generation.Provider)
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides:
//   - WEBMATIC_BACKEND_URL: overrides backend.url
//   - WEBMATIC_PROVIDER: overrides generation.provider
//   - WEBMATIC_MODEL: overrides generation.model
//   - WEBMATIC_THEME: overrides ui.theme
//   - WEBMATIC_NO_CACHE: set to "1" or "true" to disable the transcript cache
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("WEBMATIC_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("WEBMATIC_PROVIDER"); v != "" {
		c.Generation.Provider = v
	}
	if v := os.Getenv("WEBMATIC_MODEL"); v != "" {
		c.Generation.Model = v
	}
	if v := os.Getenv("WEBMATIC_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("WEBMATIC_NO_CACHE"); v == "1" || strings.EqualFold(v, "true") {
		c.Cache.Enabled = false
	}
}

// Provider returns the configured default provider.
func (c *Config) Provider() model.Provider {
	return model.Provider(c.Generation.Provider)
}
