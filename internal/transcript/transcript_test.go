// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"errors"
	"testing"

	"github.com/jeranaias/webmatic-tui/internal/model"
)

func TestAppendOptimisticConfirm(t *testing.T) {
	tr := New("p1")
	handle := tr.AppendOptimistic(model.NewUserMessage("hello"))

	if !tr.HasPending() {
		t.Error("expected pending entry")
	}
	if err := tr.Confirm(handle); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if tr.HasPending() {
		t.Error("expected no pending entries after confirm")
	}
	if tr.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", tr.Len())
	}
}

func TestRollbackTargetsExactlyOneEntry(t *testing.T) {
	tr := New("p1")
	tr.Append(model.NewUserMessage("first"))
	handle := tr.AppendOptimistic(model.NewUserMessage("doomed"))
	tr.Append(model.NewAssistantMessage("later"))

	if err := tr.Rollback(handle); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	msgs := tr.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "first" || msgs[1].Content != "later" {
		t.Errorf("rollback removed the wrong entry: %+v", msgs)
	}
}

func TestRollbackUnknownHandle(t *testing.T) {
	tr := New("p1")
	if err := tr.Rollback("nope"); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("expected ErrUnknownHandle, got %v", err)
	}
	if err := tr.Confirm("nope"); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("expected ErrUnknownHandle, got %v", err)
	}
}

func TestReplaceDropsPending(t *testing.T) {
	tr := New("p1")
	tr.AppendOptimistic(model.NewUserMessage("optimistic"))

	tr.Replace([]model.Message{
		model.NewUserMessage("server one"),
		model.NewAssistantMessage("server two"),
	})

	if tr.HasPending() {
		t.Error("replace must drop pending entries")
	}
	msgs := tr.Messages()
	if len(msgs) != 2 || msgs[0].Content != "server one" || msgs[1].Content != "server two" {
		t.Errorf("expected backend ordering preserved, got %+v", msgs)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	tr := New("p1")
	tr.Append(model.NewUserMessage("a"))
	entries := tr.Entries()
	entries[0].Message.Content = "mutated"
	if tr.Messages()[0].Content != "a" {
		t.Error("Entries must return a copy")
	}
}
