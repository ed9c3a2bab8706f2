// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/webmatic-tui/internal/api"
	"github.com/jeranaias/webmatic-tui/internal/model"
	"github.com/jeranaias/webmatic-tui/internal/session"
)

var (
	// ErrEmptyPrompt is raised locally when the prompt is blank after
	// trimming. Nothing was sent to the backend.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrGenerationInFlight rejects a second generation for a project
	// whose previous one is unresolved.
	ErrGenerationInFlight = errors.New("a generation for this project is already running")

	// ErrNoProject is raised when no project is open.
	ErrNoProject = errors.New("no project open")

	// ErrStaleResult reports a generation that finished after its project
	// was closed or switched; the result was discarded unseen.
	ErrStaleResult = errors.New("project changed while generating, result discarded")
)

// Ticket carries one generation between its phases. The project id lets
// the reconcile phase detect a result that arrived after the user
// switched projects.
type Ticket struct {
	ProjectID string
	Handle    string
	Provider  model.Provider
	Message   model.Message
}

// Result is the outcome of a successful generation.
type Result struct {
	Artifacts *model.Artifacts
	Mode      model.GenerationMode
	// Warning is non-empty when the backend used the fallback path.
	Warning string
}

// =============================================================================
// GENERATION ORCHESTRATOR
// =============================================================================

// BeginGenerate validates locally and appends the user message to the
// transcript optimistically. It fails without contacting the backend when
// the session is signed out, the prompt is blank, or a generation for the
// open project is already in flight.
func (w *Workspace) BeginGenerate(prompt string, provider model.Provider) (*Ticket, error) {
	if !w.auth.Authenticated() {
		return nil, session.ErrNotAuthenticated
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.project == nil || w.transcript == nil {
		return nil, ErrNoProject
	}
	projectID := w.project.ID
	if w.inFlight[projectID] {
		return nil, ErrGenerationInFlight
	}

	msg := model.NewUserMessage(prompt)
	handle := w.transcript.AppendOptimistic(msg)

	w.inFlight[projectID] = true
	w.state = StateGenerating
	w.lastError = ""
	w.stubWarning = ""

	return &Ticket{
		ProjectID: projectID,
		Handle:    handle,
		Provider:  provider,
		Message:   msg,
	}, nil
}

// RunGenerate performs the network phase: record the message in the
// backend chat log, then request generation. Safe to call off the UI
// loop; it touches no workspace state.
func (w *Workspace) RunGenerate(ctx context.Context, t *Ticket) (*model.Artifacts, error) {
	if err := w.backend.AppendChat(ctx, t.ProjectID, t.Message); err != nil {
		return nil, fmt.Errorf("failed to record message: %w", err)
	}
	artifacts, err := w.backend.Generate(ctx, t.ProjectID, api.GenerateRequest{
		Provider: t.Provider,
		Prompt:   t.Message.Content,
	})
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// ApplyGenerate reconciles a finished generation into the workspace.
//
// A result for a project that is no longer open is discarded without
// touching visible state (applied=false). On failure the optimistic
// message is rolled back by handle, so messages appended in the interim
// survive, and prior artifacts stay untouched. On success the returned
// artifacts replace the previous ones wholesale; the caller must then
// reload the transcript so server-recorded assistant messages become
// visible.
func (w *Workspace) ApplyGenerate(t *Ticket, artifacts *model.Artifacts, runErr error) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.inFlight, t.ProjectID)

	current := w.project != nil && w.project.ID == t.ProjectID &&
		w.transcript != nil && w.transcript.ProjectID() == t.ProjectID
	if !current {
		return false, nil
	}

	if runErr != nil {
		// The handle may already be gone if a reload superseded the
		// optimistic entry; that reload carried backend truth.
		_ = w.transcript.Rollback(t.Handle)
		w.state = StateFailed
		w.lastError = surfacedMessage(runErr)
		return true, runErr
	}

	_ = w.transcript.Confirm(t.Handle)

	w.project.Artifacts = artifacts
	if artifacts != nil {
		w.project.Status = model.StatusGenerated
		if artifacts.IsStub() {
			if artifacts.Error != "" {
				w.stubWarning = fmt.Sprintf("fallback generation used: %s", artifacts.Error)
			} else {
				w.stubWarning = "fallback generation was used"
			}
		}
	}
	w.state = StateReady
	w.lastError = ""
	return true, nil
}

// AckError acknowledges a surfaced generation failure and returns the
// workspace to ready. The error message stays available via LastError.
func (w *Workspace) AckError() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateFailed {
		w.state = StateReady
	}
}

// Generate runs all three phases plus the transcript reload in sequence.
// Interactive callers that need the network phase off the UI loop use the
// phases directly.
func (w *Workspace) Generate(ctx context.Context, prompt string, provider model.Provider) (*Result, error) {
	ticket, err := w.BeginGenerate(prompt, provider)
	if err != nil {
		return nil, err
	}

	artifacts, runErr := w.RunGenerate(ctx, ticket)
	applied, err := w.ApplyGenerate(ticket, artifacts, runErr)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrStaleResult
	}

	// The generation itself succeeded even if the reload fails; the pane
	// then shows the optimistic copy until the next reload.
	_ = w.LoadTranscript(ctx, ticket.ProjectID)

	res := &Result{Artifacts: artifacts}
	if artifacts != nil {
		res.Mode = artifacts.Mode
	}
	res.Warning = w.StubWarning()
	return res, nil
}

// surfacedMessage extracts the backend's own message when present, else a
// generic failure.
func surfacedMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, api.ErrBackendUnavailable) {
		return "backend unreachable"
	}
	return "generation failed"
}

// =============================================================================
// SCAFFOLD / COMPARE
// =============================================================================

// claimFlight marks projectID as having an unresolved backend run. It
// fails when one is already in flight, so a scaffold or comparison can
// never race an unresolved generation for the same project.
func (w *Workspace) claimFlight(projectID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight[projectID] {
		return ErrGenerationInFlight
	}
	w.inFlight[projectID] = true
	return nil
}

func (w *Workspace) releaseFlight(projectID string) {
	w.mu.Lock()
	delete(w.inFlight, projectID)
	w.mu.Unlock()
}

// Scaffold requests a plan for the open project. The returned project
// replaces the workspace copy wholesale when it is still open. modelName
// is an optional override; blank lets the backend pick.
func (w *Workspace) Scaffold(ctx context.Context, provider model.Provider, modelName, prompt string) (*model.Project, error) {
	if !w.auth.Authenticated() {
		return nil, session.ErrNotAuthenticated
	}

	projectID := w.ProjectID()
	if projectID == "" {
		return nil, ErrNoProject
	}
	if err := w.claimFlight(projectID); err != nil {
		return nil, err
	}
	defer w.releaseFlight(projectID)

	project, err := w.backend.Scaffold(ctx, projectID, api.ScaffoldRequest{
		Provider: provider,
		Model:    modelName,
		Prompt:   strings.TrimSpace(prompt),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scaffold plan: %w", err)
	}

	w.mu.Lock()
	if w.project != nil && w.project.ID == projectID {
		w.project = project
	}
	w.mu.Unlock()
	return project, nil
}

// CompareProviders asks the backend to generate with every provider and
// returns the comparison. Read-only with respect to workspace state.
func (w *Workspace) CompareProviders(ctx context.Context) (*model.ProviderComparison, error) {
	if !w.auth.Authenticated() {
		return nil, session.ErrNotAuthenticated
	}

	projectID := w.ProjectID()
	if projectID == "" {
		return nil, ErrNoProject
	}
	if err := w.claimFlight(projectID); err != nil {
		return nil, err
	}
	defer w.releaseFlight(projectID)

	cmp, err := w.backend.CompareProviders(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to compare providers: %w", err)
	}
	return cmp, nil
}
