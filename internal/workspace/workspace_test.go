// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/webmatic-tui/internal/api"
	"github.com/jeranaias/webmatic-tui/internal/model"
	"github.com/jeranaias/webmatic-tui/internal/session"
)

// fakeAuth implements Auth.
type fakeAuth struct{ signedIn bool }

func (f fakeAuth) Authenticated() bool { return f.signedIn }

// fakeBackend implements Backend over in-memory project and chat state.
type fakeBackend struct {
	projects map[string]*model.Project
	chats    map[string][]model.Message

	failAppend    error
	failGenerate  error
	generated     *model.Artifacts
	generateCalls int
	appendCalls   int
	scaffoldCalls int
	compareCalls  int

	// onGenerate, when set, runs inside the generate call, standing in
	// for things the user does while the request is on the wire.
	onGenerate func()

	// assistantReply, when set, is appended server-side on generate, the
	// way the real backend records its response.
	assistantReply string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		projects: make(map[string]*model.Project),
		chats:    make(map[string][]model.Message),
	}
}

func (f *fakeBackend) GetProject(_ context.Context, id string) (*model.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeBackend) GetChat(_ context.Context, projectID string) ([]model.Message, error) {
	out := make([]model.Message, len(f.chats[projectID]))
	copy(out, f.chats[projectID])
	return out, nil
}

func (f *fakeBackend) AppendChat(_ context.Context, projectID string, msg model.Message) error {
	f.appendCalls++
	if f.failAppend != nil {
		return f.failAppend
	}
	f.chats[projectID] = append(f.chats[projectID], msg)
	return nil
}

func (f *fakeBackend) Generate(_ context.Context, id string, req api.GenerateRequest) (*model.Artifacts, error) {
	f.generateCalls++
	if f.onGenerate != nil {
		f.onGenerate()
	}
	if f.failGenerate != nil {
		return nil, f.failGenerate
	}
	if f.assistantReply != "" {
		f.chats[id] = append(f.chats[id], model.NewAssistantMessage(f.assistantReply))
	}
	a := *f.generated
	a.ProjectID = id
	return &a, nil
}

func (f *fakeBackend) Scaffold(_ context.Context, id string, req api.ScaffoldRequest) (*model.Project, error) {
	f.scaffoldCalls++
	p, ok := f.projects[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	cp := *p
	cp.Status = model.StatusPlanned
	cp.Plan = &model.Plan{Frontend: []string{"landing page"}}
	return &cp, nil
}

func (f *fakeBackend) CompareProviders(_ context.Context, id string) (*model.ProviderComparison, error) {
	f.compareCalls++
	return &model.ProviderComparison{}, nil
}

func newTestWorkspace(backend *fakeBackend, signedIn bool) *Workspace {
	return New(backend, fakeAuth{signedIn: signedIn}, nil)
}

func openReady(t *testing.T, w *Workspace, backend *fakeBackend, id string) {
	t.Helper()
	if _, ok := backend.projects[id]; !ok {
		backend.projects[id] = &model.Project{ID: id, Name: id, Status: model.StatusCreated}
	}
	w.Open(id)
	if err := w.LoadProject(context.Background(), id); err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if err := w.LoadTranscript(context.Background(), id); err != nil {
		t.Fatalf("LoadTranscript: %v", err)
	}
}

func TestGenerateRequiresAuth(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWorkspace(backend, false)
	openReady(t, w, backend, "p1")
	before := w.Transcript().Messages()

	_, err := w.BeginGenerate("add payments", model.ProviderClaude)
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if backend.appendCalls != 0 || backend.generateCalls != 0 {
		t.Error("unauthenticated generate must not contact the backend")
	}
	if len(w.Transcript().Messages()) != len(before) {
		t.Error("transcript must be unchanged")
	}
}

func TestGenerateRequiresPrompt(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWorkspace(backend, true)
	openReady(t, w, backend, "p1")

	_, err := w.BeginGenerate("   \n", model.ProviderClaude)
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
	if backend.appendCalls != 0 {
		t.Error("blank prompt must not reach the backend")
	}
}

func TestGenerateSuccessReplacesArtifactsAndReloads(t *testing.T) {
	backend := newFakeBackend()
	backend.generated = &model.Artifacts{
		Files:       []model.ArtifactFile{{Path: "index.html", Content: "<html/>"}},
		HTMLPreview: "<html/>",
		Mode:        model.ModeAI,
		GeneratedAt: time.Now(),
	}
	backend.assistantReply = "Here is your app."
	w := newTestWorkspace(backend, true)
	openReady(t, w, backend, "p1")

	// Stale artifacts from an earlier cycle.
	w.mu.Lock()
	w.project.Artifacts = &model.Artifacts{HTMLPreview: "<old/>", Mode: model.ModeStub}
	w.mu.Unlock()

	res, err := w.Generate(context.Background(), "build a todo app", model.ProviderClaude)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res == nil || res.Mode != model.ModeAI || res.Warning != "" {
		t.Errorf("unexpected result: %+v", res)
	}

	p := w.Project()
	if p.Artifacts == nil || p.Artifacts.HTMLPreview != "<html/>" {
		t.Error("artifacts must be replaced wholesale")
	}
	if p.Status != model.StatusGenerated {
		t.Errorf("expected generated status, got %q", p.Status)
	}

	// Transcript was reloaded: user message and assistant reply visible.
	msgs := w.Transcript().Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages after reload, got %d", len(msgs))
	}
	if msgs[0].Content != "build a todo app" || msgs[1].Role != model.RoleAssistant {
		t.Errorf("unexpected transcript: %+v", msgs)
	}
	if w.State() != StateReady {
		t.Errorf("expected ready state, got %v", w.State())
	}
}

func TestGenerateFailureTargetedRollback(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWorkspace(backend, true)
	openReady(t, w, backend, "p1")

	// An earlier confirmed message sits in the transcript.
	w.Transcript().Append(model.NewUserMessage("earlier"))
	before := w.Transcript().Messages()

	ticket, err := w.BeginGenerate("doomed prompt", model.ProviderGPT)
	if err != nil {
		t.Fatalf("BeginGenerate: %v", err)
	}

	// Another optimistic message lands while the call is in flight.
	w.Transcript().AppendOptimistic(model.NewUserMessage("later"))

	runErr := &api.APIError{Status: 500, Message: "model exploded"}
	applied, err := w.ApplyGenerate(ticket, nil, runErr)
	if !applied {
		t.Fatal("result for the open project must be applied")
	}
	if err == nil {
		t.Fatal("expected the failure to propagate")
	}

	// Exactly the doomed entry is gone; earlier and later survive.
	after := w.Transcript().Messages()
	if len(after) != len(before)+1 {
		t.Fatalf("expected %d messages, got %d", len(before)+1, len(after))
	}
	if after[0].Content != "earlier" || after[1].Content != "later" {
		t.Errorf("rollback removed the wrong entry: %+v", after)
	}

	if w.State() != StateFailed {
		t.Errorf("expected failed state, got %v", w.State())
	}
	if w.LastError() != "model exploded" {
		t.Errorf("backend message must surface verbatim, got %q", w.LastError())
	}

	w.AckError()
	if w.State() != StateReady {
		t.Errorf("expected ready after ack, got %v", w.State())
	}
}

func TestGenerateFailureGenericMessage(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWorkspace(backend, true)
	openReady(t, w, backend, "p1")

	ticket, _ := w.BeginGenerate("prompt", model.ProviderClaude)
	w.ApplyGenerate(ticket, nil, errors.New("tcp reset"))
	if w.LastError() != "generation failed" {
		t.Errorf("expected generic message, got %q", w.LastError())
	}
}

func TestGenerateFailureLeavesArtifacts(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWorkspace(backend, true)
	openReady(t, w, backend, "p1")
	w.mu.Lock()
	w.project.Artifacts = &model.Artifacts{HTMLPreview: "<keep/>"}
	w.mu.Unlock()

	ticket, _ := w.BeginGenerate("prompt", model.ProviderClaude)
	w.ApplyGenerate(ticket, nil, errors.New("boom"))

	if w.Project().Artifacts == nil || w.Project().Artifacts.HTMLPreview != "<keep/>" {
		t.Error("failed generation must leave prior artifacts untouched")
	}
}

func TestSingleFlightPerProject(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWorkspace(backend, true)
	openReady(t, w, backend, "p1")

	ticket, err := w.BeginGenerate("first", model.ProviderClaude)
	if err != nil {
		t.Fatalf("BeginGenerate: %v", err)
	}
	if _, err := w.BeginGenerate("second", model.ProviderClaude); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected ErrGenerationInFlight, got %v", err)
	}

	// Resolving the first frees the slot.
	w.ApplyGenerate(ticket, nil, errors.New("boom"))
	if _, err := w.BeginGenerate("third", model.ProviderClaude); err != nil {
		t.Fatalf("expected third generate to start, got %v", err)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	backend := newFakeBackend()
	backend.generated = &model.Artifacts{HTMLPreview: "<a/>", Mode: model.ModeAI}
	w := newTestWorkspace(backend, true)
	openReady(t, w, backend, "projA")

	ticket, err := w.BeginGenerate("for project A", model.ProviderClaude)
	if err != nil {
		t.Fatalf("BeginGenerate: %v", err)
	}

	// User switches to project B before A's response arrives.
	openReady(t, w, backend, "projB")
	bBefore := w.Project()

	artifacts, runErr := w.RunGenerate(context.Background(), ticket)
	applied, err := w.ApplyGenerate(ticket, artifacts, runErr)
	if applied {
		t.Error("result for an abandoned project must not be applied")
	}
	if err != nil {
		t.Errorf("stale discard is not an error, got %v", err)
	}

	bAfter := w.Project()
	if bAfter.Artifacts != nil {
		t.Error("project B's artifacts must remain unchanged")
	}
	if bAfter.ID != bBefore.ID {
		t.Error("workspace must still show project B")
	}
	if w.State() == StateGenerating {
		t.Error("abandoned generation must not render as generating")
	}
}

func TestStubModeSurfacesWarning(t *testing.T) {
	backend := newFakeBackend()
	backend.generated = &model.Artifacts{
		HTMLPreview: "<fallback/>",
		Mode:        model.ModeStub,
		Error:       "LLM unavailable",
	}
	w := newTestWorkspace(backend, true)
	openReady(t, w, backend, "p1")

	res, err := w.Generate(context.Background(), "build it", model.ProviderClaude)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Mode != model.ModeStub {
		t.Errorf("expected stub mode, got %q", res.Mode)
	}
	if !strings.Contains(res.Warning, "LLM unavailable") {
		t.Errorf("warning must contain the backend error, got %q", res.Warning)
	}
	// Artifacts still shown despite the degraded path.
	if w.Project().Artifacts == nil || w.Project().Artifacts.HTMLPreview != "<fallback/>" {
		t.Error("stub artifacts must still be displayed")
	}
}

func TestOpenDiscardsPreviousProjectState(t *testing.T) {
	backend := newFakeBackend()
	backend.chats["p1"] = []model.Message{model.NewUserMessage("p1 history")}
	w := newTestWorkspace(backend, true)
	openReady(t, w, backend, "p1")

	if w.Transcript().Len() != 1 {
		t.Fatalf("expected p1 history loaded, got %d", w.Transcript().Len())
	}

	openReady(t, w, backend, "p2")
	if w.Transcript().ProjectID() != "p2" {
		t.Error("transcript must be keyed to the new project")
	}
	if w.Transcript().Len() != 0 {
		t.Error("no transcript state may leak between projects")
	}
}

func TestLoadProjectIgnoredAfterSwitch(t *testing.T) {
	backend := newFakeBackend()
	backend.projects["p1"] = &model.Project{ID: "p1", Name: "one"}
	backend.projects["p2"] = &model.Project{ID: "p2", Name: "two"}
	w := newTestWorkspace(backend, true)

	w.Open("p1")
	w.Open("p2")

	// p1's metadata arrives late; it must not clobber p2.
	if err := w.LoadProject(context.Background(), "p1"); err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if w.ProjectID() != "p2" {
		t.Errorf("late load must not switch the open project, got %q", w.ProjectID())
	}
}

func TestScaffoldReplacesProject(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWorkspace(backend, true)
	openReady(t, w, backend, "p1")

	p, err := w.Scaffold(context.Background(), model.ProviderClaude, "", "build a crm")
	if err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	if p.Status != model.StatusPlanned || p.Plan == nil {
		t.Errorf("expected planned project with plan, got %+v", p)
	}
	if w.Project().Status != model.StatusPlanned {
		t.Error("workspace copy must be replaced")
	}
}

func TestScaffoldAndCompareBlockedWhileGenerating(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWorkspace(backend, true)
	openReady(t, w, backend, "p1")

	ticket, err := w.BeginGenerate("first", model.ProviderClaude)
	if err != nil {
		t.Fatalf("BeginGenerate: %v", err)
	}

	if _, err := w.Scaffold(context.Background(), model.ProviderClaude, "", "plan it"); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected ErrGenerationInFlight from Scaffold, got %v", err)
	}
	if _, err := w.CompareProviders(context.Background()); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected ErrGenerationInFlight from CompareProviders, got %v", err)
	}
	if backend.scaffoldCalls != 0 || backend.compareCalls != 0 {
		t.Error("neither call may reach the backend while a generation is unresolved")
	}

	// Resolving the generation frees the slot for both.
	w.ApplyGenerate(ticket, nil, errors.New("boom"))
	if _, err := w.Scaffold(context.Background(), model.ProviderClaude, "", "plan it"); err != nil {
		t.Fatalf("Scaffold after resolve: %v", err)
	}
	if _, err := w.CompareProviders(context.Background()); err != nil {
		t.Fatalf("CompareProviders after resolve: %v", err)
	}
}

func TestGenerateSurfacesStaleResult(t *testing.T) {
	backend := newFakeBackend()
	backend.generated = &model.Artifacts{HTMLPreview: "<a/>", Mode: model.ModeAI}
	backend.projects["p2"] = &model.Project{ID: "p2", Name: "two"}
	w := newTestWorkspace(backend, true)
	openReady(t, w, backend, "p1")

	// The user switches projects while the request is on the wire.
	backend.onGenerate = func() { w.Open("p2") }

	if _, err := w.Generate(context.Background(), "for p1", model.ProviderClaude); !errors.Is(err, ErrStaleResult) {
		t.Fatalf("expected ErrStaleResult, got %v", err)
	}
	if w.Project() != nil && w.Project().Artifacts != nil {
		t.Error("discarded result must not reach the newly opened project")
	}
}

func TestScaffoldRequiresAuth(t *testing.T) {
	backend := newFakeBackend()
	w := newTestWorkspace(backend, false)
	openReady(t, w, backend, "p1")

	if _, err := w.Scaffold(context.Background(), model.ProviderClaude, "", "x"); !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}
