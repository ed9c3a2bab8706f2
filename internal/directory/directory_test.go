// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package directory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jeranaias/webmatic-tui/internal/api"
	"github.com/jeranaias/webmatic-tui/internal/model"
)

// fakeBackend implements Backend over an in-memory project list.
type fakeBackend struct {
	projects    []model.Project
	nextID      int
	failCreate  error
	failDelete  error
	failUpdate  error
	createCalls int
	deleteCalls int
	updateCalls int
}

func (f *fakeBackend) ListProjects(_ context.Context) ([]model.Project, error) {
	out := make([]model.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

func (f *fakeBackend) CreateProject(_ context.Context, name, description string) (*model.Project, error) {
	f.createCalls++
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.nextID++
	p := model.Project{
		ID:          fmt.Sprintf("p%d", f.nextID),
		Name:        name,
		Description: description,
		Status:      model.StatusCreated,
	}
	f.projects = append(f.projects, p)
	return &p, nil
}

func (f *fakeBackend) UpdateProject(_ context.Context, id string, req api.UpdateProjectRequest) (*model.Project, error) {
	f.updateCalls++
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			if req.Name != nil {
				f.projects[i].Name = *req.Name
			}
			p := f.projects[i]
			return &p, nil
		}
	}
	return nil, api.ErrNotFound
}

func (f *fakeBackend) DeleteProject(_ context.Context, id string) error {
	f.deleteCalls++
	if f.failDelete != nil {
		return f.failDelete
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return api.ErrNotFound
}

func (f *fakeBackend) CreateFromTemplate(_ context.Context, req api.FromTemplateRequest) (*model.Project, error) {
	f.nextID++
	p := model.Project{
		ID:     fmt.Sprintf("p%d", f.nextID),
		Name:   req.Name,
		Status: model.StatusCreated,
	}
	f.projects = append(f.projects, p)
	return &p, nil
}

func TestCreateThenListExactlyOnce(t *testing.T) {
	backend := &fakeBackend{}
	d := New(backend)

	created, err := d.Create(context.Background(), "SaaS CRM", "Build a SaaS CRM with auth and billing")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != model.StatusCreated || created.Plan != nil {
		t.Errorf("expected created status and nil plan, got %+v", created)
	}

	// Visible once from the optimistic append.
	if n := countID(d.Projects(), created.ID); n != 1 {
		t.Errorf("expected project once before reload, got %d", n)
	}

	// Still exactly once after a reload.
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n := countID(d.Projects(), created.ID); n != 1 {
		t.Errorf("expected project once after reload, got %d", n)
	}
}

func countID(projects []model.Project, id string) int {
	n := 0
	for _, p := range projects {
		if p.ID == id {
			n++
		}
	}
	return n
}

func TestCreateBlankFieldsFailLocally(t *testing.T) {
	backend := &fakeBackend{}
	d := New(backend)

	tests := []struct {
		name, desc string
	}{
		{"", "desc"},
		{"   ", "desc"},
		{"name", ""},
		{"name", "  \n "},
	}
	for _, tt := range tests {
		_, err := d.Create(context.Background(), tt.name, tt.desc)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Create(%q, %q): expected ErrValidation, got %v", tt.name, tt.desc, err)
		}
	}
	if backend.createCalls != 0 {
		t.Errorf("validation failures must not reach the backend, got %d calls", backend.createCalls)
	}
}

func TestDeleteRemovesOnlyAfterConfirmation(t *testing.T) {
	backend := &fakeBackend{projects: []model.Project{
		{ID: "p1", Name: "one"},
		{ID: "p2", Name: "two"},
	}}
	d := New(backend)
	d.Load(context.Background())

	// Failed delete leaves the list untouched.
	backend.failDelete = errors.New("backend down")
	if err := d.Delete(context.Background(), "p1"); err == nil {
		t.Fatal("expected delete failure")
	}
	if len(d.Projects()) != 2 {
		t.Errorf("failed delete must not remove locally, got %d projects", len(d.Projects()))
	}

	// Confirmed delete removes immediately.
	backend.failDelete = nil
	if err := d.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if countID(d.Projects(), "p1") != 0 {
		t.Error("confirmed delete must remove the project from the visible list")
	}
	if countID(d.Projects(), "p2") != 1 {
		t.Error("delete must not disturb other projects")
	}
}

func TestRenameBlankIsNoOp(t *testing.T) {
	backend := &fakeBackend{projects: []model.Project{{ID: "p1", Name: "keep"}}}
	d := New(backend)
	d.Load(context.Background())

	if err := d.Rename(context.Background(), "p1", "   "); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if backend.updateCalls != 0 {
		t.Error("blank rename must not reach the backend")
	}
	if d.Get("p1").Name != "keep" {
		t.Error("blank rename must leave the name unchanged")
	}
}

func TestRenameUpdatesCachedEntry(t *testing.T) {
	backend := &fakeBackend{projects: []model.Project{{ID: "p1", Name: "old"}}}
	d := New(backend)
	d.Load(context.Background())

	if err := d.Rename(context.Background(), "p1", " new name "); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got := d.Get("p1").Name; got != "new name" {
		t.Errorf("expected trimmed new name, got %q", got)
	}
}

func TestLoadPreservesBackendOrder(t *testing.T) {
	backend := &fakeBackend{projects: []model.Project{
		{ID: "z", Name: "zeta"},
		{ID: "a", Name: "alpha"},
		{ID: "m", Name: "mid"},
	}}
	d := New(backend)
	d.Load(context.Background())

	got := d.Projects()
	if got[0].ID != "z" || got[1].ID != "a" || got[2].ID != "m" {
		t.Errorf("backend order must be preserved, got %+v", got)
	}
}

func TestCreateFromTemplateValidation(t *testing.T) {
	d := New(&fakeBackend{})
	_, err := d.CreateFromTemplate(context.Background(), api.FromTemplateRequest{TemplateID: "t1"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for blank name, got %v", err)
	}
	_, err = d.CreateFromTemplate(context.Background(), api.FromTemplateRequest{Name: "app"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for blank template id, got %v", err)
	}
}
