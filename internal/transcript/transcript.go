// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/webmatic-tui/internal/model"
)

// ErrUnknownHandle is returned when a confirm or rollback targets an entry
// that no longer exists, typically because a wholesale replace already
// superseded it.
var ErrUnknownHandle = errors.New("unknown transcript entry")

// Entry is a transcript message plus its local bookkeeping state.
type Entry struct {
	// Handle identifies the entry for targeted confirm and rollback.
	Handle string

	Message model.Message

	// Pending marks an optimistic entry the backend has not acknowledged.
	Pending bool
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript holds the ordered chat history for one project.
type Transcript struct {
	mu        sync.RWMutex
	projectID string
	entries   []Entry
}

// New creates an empty transcript for the given project.
func New(projectID string) *Transcript {
	return &Transcript{projectID: projectID}
}

// ProjectID returns the project this transcript belongs to.
func (t *Transcript) ProjectID() string {
	return t.projectID
}

// Len returns the number of entries, pending included.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Entries returns a copy of all entries in order.
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Messages returns a copy of all messages in order, pending included.
func (t *Transcript) Messages() []model.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]model.Message, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Message
	}
	return out
}

// HasPending reports whether any optimistic entry is still unacknowledged.
func (t *Transcript) HasPending() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, e := range t.entries {
		if e.Pending {
			return true
		}
	}
	return false
}

// Replace swaps the whole transcript for backend truth. Any pending
// entries are dropped; the backend's ordering is authoritative.
func (t *Transcript) Replace(msgs []model.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make([]Entry, len(msgs))
	for i, m := range msgs {
		t.entries[i] = Entry{Handle: uuid.NewString(), Message: m}
	}
}

// AppendOptimistic adds a message before the backend has acknowledged it
// and returns the handle for later confirm or rollback.
func (t *Transcript) AppendOptimistic(msg model.Message) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	handle := uuid.NewString()
	t.entries = append(t.entries, Entry{Handle: handle, Message: msg, Pending: true})
	return handle
}

// Append adds an already-acknowledged message, such as an assistant reply
// delivered with a generation result.
func (t *Transcript) Append(msg model.Message) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	handle := uuid.NewString()
	t.entries = append(t.entries, Entry{Handle: handle, Message: msg})
	return handle
}

// Confirm marks the entry as acknowledged by the backend.
func (t *Transcript) Confirm(handle string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.entries {
		if t.entries[i].Handle == handle {
			t.entries[i].Pending = false
			return nil
		}
	}
	return ErrUnknownHandle
}

// Rollback removes exactly the entry under handle. Entries appended after
// it are preserved, so a failed send never erases later history.
func (t *Transcript) Rollback(handle string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.entries {
		if t.entries[i].Handle == handle {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return nil
		}
	}
	return ErrUnknownHandle
}
