// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"context"
	"fmt"
	"sync"

	"github.com/jeranaias/webmatic-tui/internal/api"
	"github.com/jeranaias/webmatic-tui/internal/model"
	"github.com/jeranaias/webmatic-tui/internal/transcript"
)

// State is the lifecycle state of the open project.
type State int

const (
	// StateClosed means no project is open.
	StateClosed State = iota
	// StateLoading means the project is open and its loads are in flight.
	StateLoading
	// StateReady means the project is displayed; plan and artifacts may
	// still be absent.
	StateReady
	// StateGenerating means a generation for the open project is in flight.
	StateGenerating
	// StateFailed means the last generation failed; the workspace returns
	// to ready once the error has been surfaced.
	StateFailed
)

// String returns a display label for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateGenerating:
		return "generating"
	case StateFailed:
		return "generation failed"
	default:
		return "unknown"
	}
}

// Backend is the slice of the API surface the workspace needs. *api.Client
// satisfies it; tests substitute fakes.
type Backend interface {
	GetProject(ctx context.Context, id string) (*model.Project, error)
	GetChat(ctx context.Context, projectID string) ([]model.Message, error)
	AppendChat(ctx context.Context, projectID string, msg model.Message) error
	Generate(ctx context.Context, id string, req api.GenerateRequest) (*model.Artifacts, error)
	Scaffold(ctx context.Context, id string, req api.ScaffoldRequest) (*model.Project, error)
	CompareProviders(ctx context.Context, id string) (*model.ProviderComparison, error)
}

// Auth reports whether a user is signed in. *session.Session satisfies it.
type Auth interface {
	Authenticated() bool
}

// =============================================================================
// WORKSPACE
// =============================================================================

// Workspace is the state of the currently open project.
type Workspace struct {
	mu      sync.RWMutex
	backend Backend
	auth    Auth
	cache   *transcript.Cache // nil disables warm-start

	state      State
	project    *model.Project
	transcript *transcript.Transcript

	// lastError holds the most recent surfaced failure, verbatim from the
	// backend when it provided a message.
	lastError string

	// stubWarning is set when the last generation used the fallback path.
	stubWarning string

	// inFlight tracks projects with an unresolved generation, including
	// projects the user has navigated away from.
	inFlight map[string]bool
}

// New creates a workspace. cache may be nil to disable transcript
// warm-start.
func New(backend Backend, auth Auth, cache *transcript.Cache) *Workspace {
	return &Workspace{
		backend:  backend,
		auth:     auth,
		cache:    cache,
		state:    StateClosed,
		inFlight: make(map[string]bool),
	}
}

// State returns the current lifecycle state.
func (w *Workspace) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Project returns the open project, or nil.
func (w *Workspace) Project() *model.Project {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.project == nil {
		return nil
	}
	p := *w.project
	return &p
}

// ProjectID returns the open project's id, or "".
func (w *Workspace) ProjectID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.project == nil {
		return ""
	}
	return w.project.ID
}

// Transcript returns the open project's transcript, or nil.
func (w *Workspace) Transcript() *transcript.Transcript {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.transcript
}

// LastError returns the most recent surfaced failure message, or "".
func (w *Workspace) LastError() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastError
}

// StubWarning returns the fallback warning from the last generation, or "".
func (w *Workspace) StubWarning() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stubWarning
}

// =============================================================================
// OPEN / LOAD
// =============================================================================

// Open switches the workspace to a project, discarding all state of the
// previously open one. The transcript starts from the warm-start cache
// when available and is replaced by backend truth once LoadTranscript
// completes. Metadata, transcript and directory loads are then issued
// independently by the caller.
func (w *Workspace) Open(projectID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.project = &model.Project{ID: projectID}
	w.transcript = transcript.New(projectID)
	w.state = StateLoading
	w.lastError = ""
	w.stubWarning = ""

	if w.cache != nil {
		if cached, err := w.cache.Load(projectID); err == nil && len(cached) > 0 {
			w.transcript.Replace(cached)
		}
	}

	// A generation abandoned by an earlier switch may still resolve later;
	// its ticket no longer matches and will be discarded on arrival.
	if w.inFlight[projectID] {
		w.state = StateGenerating
	}
}

// Close discards the open project entirely.
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.project = nil
	w.transcript = nil
	w.state = StateClosed
	w.lastError = ""
	w.stubWarning = ""
}

// LoadProject fetches the open project's metadata. The result is applied
// only if the same project is still open when it arrives.
func (w *Workspace) LoadProject(ctx context.Context, projectID string) error {
	project, err := w.backend.GetProject(ctx, projectID)
	if err != nil {
		w.mu.Lock()
		if w.project != nil && w.project.ID == projectID {
			w.lastError = err.Error()
			if w.state == StateLoading {
				w.state = StateReady
			}
		}
		w.mu.Unlock()
		return fmt.Errorf("failed to load project: %w", err)
	}

	w.mu.Lock()
	if w.project != nil && w.project.ID == projectID {
		w.project = project
		if w.state == StateLoading {
			w.state = StateReady
		}
		if w.inFlight[projectID] {
			w.state = StateGenerating
		}
	}
	w.mu.Unlock()
	return nil
}

// LoadTranscript fetches the authoritative transcript, replacing any
// optimistic or cached local state. Applied only if the project is still
// open; the warm-start cache is refreshed on success either way.
func (w *Workspace) LoadTranscript(ctx context.Context, projectID string) error {
	msgs, err := w.backend.GetChat(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to load transcript: %w", err)
	}

	w.mu.Lock()
	if w.transcript != nil && w.transcript.ProjectID() == projectID {
		w.transcript.Replace(msgs)
	}
	w.mu.Unlock()

	if w.cache != nil {
		if err := w.cache.Save(projectID, msgs); err != nil {
			// Cache refresh failure is not user-visible; the backend copy
			// was already applied.
			return nil
		}
	}
	return nil
}
