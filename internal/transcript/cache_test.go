// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jeranaias/webmatic-tui/internal/model"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "transcripts.db"))
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheSaveLoad(t *testing.T) {
	c := newTestCache(t)

	msgs := []model.Message{
		{Role: model.RoleUser, Content: "build a todo app", Timestamp: time.Unix(1700000000, 0)},
		{Role: model.RoleAssistant, Content: "Plan ready.", Timestamp: time.Unix(1700000060, 0)},
	}
	if err := c.Save("p1", msgs); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := c.Load("p1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Role != model.RoleUser || got[0].Content != "build a todo app" {
		t.Errorf("unexpected first message: %+v", got[0])
	}
	if got[1].Role != model.RoleAssistant {
		t.Errorf("unexpected second message: %+v", got[1])
	}
	if !got[0].Timestamp.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("timestamp not preserved: %v", got[0].Timestamp)
	}
}

func TestCacheSaveReplacesPrevious(t *testing.T) {
	c := newTestCache(t)

	if err := c.Save("p1", []model.Message{model.NewUserMessage("old")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := c.Save("p1", []model.Message{
		model.NewUserMessage("new one"),
		model.NewAssistantMessage("new two"),
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := c.Load("p1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[0].Content != "new one" {
		t.Errorf("expected wholesale replacement, got %+v", got)
	}
}

func TestCacheProjectsIsolated(t *testing.T) {
	c := newTestCache(t)

	c.Save("p1", []model.Message{model.NewUserMessage("p1 msg")})
	c.Save("p2", []model.Message{model.NewUserMessage("p2 msg")})

	got, err := c.Load("p1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].Content != "p1 msg" {
		t.Errorf("expected only p1 messages, got %+v", got)
	}
}

func TestCacheLoadUnknownProject(t *testing.T) {
	c := newTestCache(t)
	got, err := c.Load("nope")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty transcript, got %+v", got)
	}
}

func TestCacheDelete(t *testing.T) {
	c := newTestCache(t)
	c.Save("p1", []model.Message{model.NewUserMessage("msg")})
	if err := c.Delete("p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ := c.Load("p1")
	if len(got) != 0 {
		t.Errorf("expected empty transcript after delete, got %+v", got)
	}
}
