// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jeranaias/webmatic-tui/internal/model"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Provider() != model.ProviderClaude {
		t.Errorf("expected claude default, got %q", cfg.Provider())
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should default to enabled")
	}
}

func TestLoadFromPathTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1.0"

[backend]
url = "https://webmatic.example.com"
timeout_secs = 60

[generation]
provider = "gpt"
model = "gpt-5"

[ui]
theme = "light"
show_status_bar = false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Backend.URL != "https://webmatic.example.com" {
		t.Errorf("unexpected backend url: %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSecs != 60 {
		t.Errorf("unexpected timeout: %d", cfg.Backend.TimeoutSecs)
	}
	if cfg.Provider() != model.ProviderGPT || cfg.Generation.Model != "gpt-5" {
		t.Errorf("unexpected generation config: %+v", cfg.Generation)
	}
	if cfg.UI.Theme != "light" || cfg.UI.ShowStatusBar {
		t.Errorf("unexpected ui config: %+v", cfg.UI)
	}
}

func TestLoadFromPathJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"backend": {"url": "http://10.0.0.1:8000", "timeout_secs": 15}, "generation": {"provider": "claude"}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Backend.URL != "http://10.0.0.1:8000" {
		t.Errorf("unexpected backend url: %q", cfg.Backend.URL)
	}
	// Omitted sections keep their defaults.
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected default theme, got %q", cfg.UI.Theme)
	}
}

func TestLoadFromPathUnsupportedFormat(t *testing.T) {
	if _, err := LoadFromPath("/tmp/config.yaml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.Backend.URL = "" }},
		{"relative url", func(c *Config) { c.Backend.URL = "not-a-url" }},
		{"zero timeout", func(c *Config) { c.Backend.TimeoutSecs = 0 }},
		{"unknown provider", func(c *Config) { c.Generation.Provider = "grok" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WEBMATIC_BACKEND_URL", "https://staging.example.com")
	t.Setenv("WEBMATIC_PROVIDER", "gpt")
	t.Setenv("WEBMATIC_NO_CACHE", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.URL != "https://staging.example.com" {
		t.Errorf("env url override not applied: %q", cfg.Backend.URL)
	}
	if cfg.Provider() != model.ProviderGPT {
		t.Errorf("env provider override not applied: %q", cfg.Provider())
	}
	if cfg.Cache.Enabled {
		t.Error("WEBMATIC_NO_CACHE must disable the cache")
	}
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Backend.URL = "https://saved.example.com"
	cfg.Generation.Model = "claude-4-sonnet"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.Backend.URL != cfg.Backend.URL || loaded.Generation.Model != cfg.Generation.Model {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
