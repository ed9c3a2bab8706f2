// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"zero max", "hello", 0, ""},
		{"tiny max no ellipsis", "hello", 2, "he"},
		{"unicode not split", "héllo wörld", 8, "héllo..."},
		{"cjk counted as runes", "日本語のテキスト", 5, "日本..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.input, tt.max); got != tt.expected {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("hello", 10); got != "hello" {
		t.Errorf("expected unchanged, got %q", got)
	}
	// Each CJK character is 2 columns wide.
	got := TruncateWidth("日本語テキスト", 7)
	if got != "日本..." {
		t.Errorf("expected width-aware truncation, got %q", got)
	}
	if got := TruncateWidth("hello", 0); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestCollapseSpace(t *testing.T) {
	got := CollapseSpace("  a\nb\t c  ")
	if got != "a b c" {
		t.Errorf("expected %q, got %q", "a b c", got)
	}
}

func TestDeriveProjectName(t *testing.T) {
	tests := []struct {
		name     string
		prompt   string
		expected string
	}{
		{"empty prompt", "", "New Project"},
		{"whitespace only", "   \n ", "New Project"},
		{"short prompt", "todo app", "Todo App"},
		{"capped at six words", "build a todo app with dark mode and sync", "Build A Todo App With Dark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveProjectName(tt.prompt); got != tt.expected {
				t.Errorf("DeriveProjectName(%q) = %q, want %q", tt.prompt, got, tt.expected)
			}
		})
	}
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "out.txt")

	if err := AtomicWriteFile(path, []byte("first"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("expected %q, got %q", "first", data)
	}

	// Overwrite replaces content, never appends.
	if err := AtomicWriteFile(path, []byte("second"), 0600); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("expected %q, got %q", "second", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected 1 file in dir, got %d", len(entries))
	}
}
