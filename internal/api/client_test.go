// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jeranaias/webmatic-tui/internal/model"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// tokenFunc adapts a function to the TokenSource interface.
type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, tokens), server
}

// =============================================================================
// REQUEST PLUMBING TESTS
// =============================================================================

func TestClient_BaseURLPrefix(t *testing.T) {
	c := NewClient("http://localhost:8000", nil)
	if c.BaseURL() != "http://localhost:8000/api" {
		t.Errorf("BaseURL = %q, want /api suffix", c.BaseURL())
	}

	// A trailing slash or an explicit /api must not double the prefix.
	c = NewClient("http://localhost:8000/api", nil)
	if c.BaseURL() != "http://localhost:8000/api" {
		t.Errorf("BaseURL = %q, want single /api", c.BaseURL())
	}
}

func TestClient_BearerHeader(t *testing.T) {
	var sawAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]model.Project{})
	}), StaticToken("tok123"))

	if _, err := client.ListProjects(context.Background()); err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if sawAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want %q", sawAuth, "Bearer tok123")
	}
}

func TestClient_TokenReadPerRequest(t *testing.T) {
	// The token source is consulted on every request, so a session change
	// takes effect before the next call with no stale-credential race.
	var sawAuth []string
	current := "first"
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = append(sawAuth, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]model.Project{})
	}), tokenFunc(func() string { return current }))

	client.ListProjects(context.Background())
	current = ""
	client.ListProjects(context.Background())

	if len(sawAuth) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(sawAuth))
	}
	if sawAuth[0] != "Bearer first" {
		t.Errorf("first request auth = %q", sawAuth[0])
	}
	if sawAuth[1] != "" {
		t.Errorf("second request should carry no credential, got %q", sawAuth[1])
	}
}

func TestClient_NoRetry(t *testing.T) {
	// Failures surface once; the client never retries automatically.
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "boom"}`))
	}), nil)

	_, err := client.ListProjects(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 request, got %d", calls.Load())
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "boom" {
		t.Errorf("detail not preserved verbatim: %q", apiErr.Message)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte(`{"detail": "nope"}`))
		}), nil)

		_, err := client.GetProject(context.Background(), "p1")
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: error = %v, want errors.Is %v", tt.status, err, tt.want)
		}
	}
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(server.URL, nil)
	server.Close()

	_, err := client.ListProjects(context.Background())
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("error = %v, want ErrBackendUnavailable", err)
	}
}

// =============================================================================
// ENDPOINT TESTS
// =============================================================================

func TestClient_CreateProject(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/projects" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req CreateProjectRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(model.Project{
			ID:          "p1",
			Name:        req.Name,
			Description: req.Description,
			Status:      model.StatusCreated,
		})
	}), nil)

	p, err := client.CreateProject(context.Background(), "SaaS CRM", "Build a SaaS CRM with auth and billing")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if p.Name != "SaaS CRM" || p.Status != model.StatusCreated || p.Plan != nil {
		t.Errorf("unexpected project: %+v", p)
	}
}

func TestClient_Generate_SetsProjectID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/p9/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(model.Artifacts{
			Files: []model.ArtifactFile{{Path: "index.html", Content: "<html></html>"}},
			Mode:  model.ModeStub,
			Error: "LLM unavailable",
		})
	}), StaticToken("tok"))

	a, err := client.Generate(context.Background(), "p9", GenerateRequest{Provider: model.ProviderClaude, Prompt: "add payments"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if a.ProjectID != "p9" {
		t.Errorf("ProjectID = %q, want p9", a.ProjectID)
	}
	if !a.IsStub() || a.Error != "LLM unavailable" {
		t.Errorf("stub mode and error not preserved: %+v", a)
	}
}

func TestClient_GetChat(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"messages": [
			{"role": "user", "content": "build it"},
			{"role": "assistant", "content": "Generated 3 file(s) and preview"}
		]}`))
	}), nil)

	msgs, err := client.GetChat(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetChat failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[1].Role != model.RoleAssistant {
		t.Errorf("message order not preserved: %+v", msgs)
	}
}

func TestClient_AppendChat_RejectsInvalidRole(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the backend for an invalid role")
	}), nil)

	err := client.AppendChat(context.Background(), "p1", model.Message{Role: "system", Content: "hi"})
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestClient_Health_RateLimited(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"status": "ok"}`))
	}), nil)

	hs, err := client.Health(context.Background())
	if err != nil || hs == nil || hs.Status != "ok" {
		t.Fatalf("first probe: hs=%v err=%v", hs, err)
	}

	// Immediately repeated probes are suppressed client-side.
	hs, err = client.Health(context.Background())
	if err != nil {
		t.Fatalf("suppressed probe returned error: %v", err)
	}
	if hs != nil {
		t.Error("suppressed probe should return nil status")
	}
	if calls.Load() != 1 {
		t.Errorf("backend saw %d probes, want 1", calls.Load())
	}
}

func TestClient_ListTemplates(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "t1", "name": "CRM Starter", "category": "crm", "tags": ["auth", "billing"]}]`))
	}), nil)

	ts, err := client.ListTemplates(context.Background())
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(ts) != 1 || !ts[0].HasTag("billing") {
		t.Errorf("unexpected templates: %+v", ts)
	}
}

func TestReadResponse_SizeLimit(t *testing.T) {
	makeResp := func(n int) *http.Response {
		return &http.Response{Body: io.NopCloser(bytes.NewReader(make([]byte, n)))}
	}

	// A body of exactly the limit is legitimate, not truncation.
	body, err := readResponse(makeResp(MaxResponseSize))
	if err != nil {
		t.Fatalf("readResponse at the limit: %v", err)
	}
	if len(body) != MaxResponseSize {
		t.Errorf("body length = %d, want %d", len(body), MaxResponseSize)
	}

	if _, err := readResponse(makeResp(MaxResponseSize + 1)); err == nil {
		t.Error("a body over the limit must be rejected")
	}
}
