// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/webmatic-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastKindStatus is an informational toast
	ToastKindStatus ToastKind = iota
	// ToastKindError is an error toast
	ToastKindError
	// ToastKindWarning is a warning toast
	ToastKindWarning
)

// Auto-dismiss durations. Errors stay longer so they can be read.
const (
	StatusToastDuration  = 4 * time.Second
	WarningToastDuration = 6 * time.Second
	ErrorToastDuration   = 8 * time.Second
)

// Toast is a non-blocking transient notification. It appears above the
// status bar and auto-dismisses; the UI stays interactive throughout.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

var (
	toastIDMu sync.Mutex
	toastID   int
)

func nextToastID() int {
	toastIDMu.Lock()
	defer toastIDMu.Unlock()
	toastID++
	return toastID
}

// NewStatusToast creates an informational toast.
func NewStatusToast(message string) Toast {
	return Toast{
		ID:        nextToastID(),
		Message:   message,
		Kind:      ToastKindStatus,
		CreatedAt: time.Now(),
		Duration:  StatusToastDuration,
	}
}

// NewWarningToast creates a warning toast, used for degraded-success
// outcomes like stub-mode generation.
func NewWarningToast(message string) Toast {
	return Toast{
		ID:        nextToastID(),
		Message:   message,
		Kind:      ToastKindWarning,
		CreatedAt: time.Now(),
		Duration:  WarningToastDuration,
	}
}

// NewErrorToast creates an error toast.
func NewErrorToast(message string) Toast {
	return Toast{
		ID:        nextToastID(),
		Message:   message,
		Kind:      ToastKindError,
		CreatedAt: time.Now(),
		Duration:  ErrorToastDuration,
	}
}

// Expired reports whether the toast has outlived its duration.
func (t Toast) Expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// ToastExpiredMsg is delivered when a toast's timer elapses.
type ToastExpiredMsg struct{ ID int }

// ExpireCmd returns a command that fires when the toast should dismiss.
func (t Toast) ExpireCmd() tea.Cmd {
	id := t.ID
	return tea.Tick(t.Duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Render renders the toast with the style matching its kind.
func (t Toast) Render(theme *styles.Theme) string {
	switch t.Kind {
	case ToastKindError:
		return theme.ToastError.Render(t.Message)
	case ToastKindWarning:
		return theme.ToastWarn.Render(t.Message)
	default:
		return theme.ToastInfo.Render(t.Message)
	}
}

// =============================================================================
// TOAST STACK
// =============================================================================

// ToastStack holds the active toasts in arrival order.
type ToastStack struct {
	toasts []Toast
}

// Push adds a toast.
func (s *ToastStack) Push(t Toast) {
	s.toasts = append(s.toasts, t)
}

// Dismiss removes the toast with the given id.
func (s *ToastStack) Dismiss(id int) {
	for i := range s.toasts {
		if s.toasts[i].ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// DismissOldest removes the oldest toast, for manual dismissal.
func (s *ToastStack) DismissOldest() {
	if len(s.toasts) > 0 {
		s.toasts = s.toasts[1:]
	}
}

// Active returns the toasts in arrival order.
func (s *ToastStack) Active() []Toast {
	return s.toasts
}

// Empty reports whether no toasts are showing.
func (s *ToastStack) Empty() bool {
	return len(s.toasts) == 0
}
