// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"
)

func TestToastStackDismissTargetsByID(t *testing.T) {
	var s ToastStack
	a := NewStatusToast("a")
	b := NewErrorToast("b")
	c := NewWarningToast("c")
	s.Push(a)
	s.Push(b)
	s.Push(c)

	s.Dismiss(b.ID)

	active := s.Active()
	if len(active) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(active))
	}
	if active[0].Message != "a" || active[1].Message != "c" {
		t.Errorf("wrong toast removed: %+v", active)
	}
}

func TestToastDurationsByKind(t *testing.T) {
	if NewErrorToast("x").Duration <= NewStatusToast("x").Duration {
		t.Error("errors should outlive status toasts")
	}
}

func TestToastExpired(t *testing.T) {
	toast := NewStatusToast("x")
	if toast.Expired(toast.CreatedAt.Add(time.Second)) {
		t.Error("toast expired too early")
	}
	if !toast.Expired(toast.CreatedAt.Add(StatusToastDuration)) {
		t.Error("toast should expire after its duration")
	}
}

func TestToastIDsUnique(t *testing.T) {
	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		id := NewStatusToast("x").ID
		if seen[id] {
			t.Fatalf("duplicate toast id %d", id)
		}
		seen[id] = true
	}
}
