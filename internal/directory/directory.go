// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jeranaias/webmatic-tui/internal/api"
	"github.com/jeranaias/webmatic-tui/internal/model"
)

// ErrValidation marks a request rejected locally for an empty required
// field. Nothing was sent to the backend.
var ErrValidation = errors.New("validation failed")

// Backend is the slice of the API surface the directory needs. *api.Client
// satisfies it; tests substitute fakes.
type Backend interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, name, description string) (*model.Project, error)
	UpdateProject(ctx context.Context, id string, req api.UpdateProjectRequest) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) error
	CreateFromTemplate(ctx context.Context, req api.FromTemplateRequest) (*model.Project, error)
}

// =============================================================================
// DIRECTORY
// =============================================================================

// Directory is the cached project list. It reflects backend state as of
// the last Load; it does not poll.
type Directory struct {
	mu       sync.RWMutex
	backend  Backend
	projects []model.Project
	loaded   bool
}

// New creates a directory over the given backend.
func New(backend Backend) *Directory {
	return &Directory{backend: backend}
}

// Load fetches the project list, replacing the cached copy. Backend
// ordering is preserved as-is.
func (d *Directory) Load(ctx context.Context) error {
	projects, err := d.backend.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	d.mu.Lock()
	d.projects = projects
	d.loaded = true
	d.mu.Unlock()
	return nil
}

// Loaded reports whether at least one Load has completed.
func (d *Directory) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// Projects returns a copy of the cached list in backend order.
func (d *Directory) Projects() []model.Project {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.Project, len(d.projects))
	copy(out, d.projects)
	return out
}

// Get returns the cached project with the given id, or nil.
func (d *Directory) Get(id string) *model.Project {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.projects {
		if d.projects[i].ID == id {
			p := d.projects[i]
			return &p
		}
	}
	return nil
}

// Create creates a project. Both fields are required; blank input fails
// locally with ErrValidation. The new project is appended to the cached
// list so it is visible exactly once without a reload.
func (d *Directory) Create(ctx context.Context, name, description string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: project description is required", ErrValidation)
	}

	project, err := d.backend.CreateProject(ctx, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	d.mu.Lock()
	d.projects = append(d.projects, *project)
	d.mu.Unlock()
	return project, nil
}

// CreateFromTemplate seeds a project from a template blueprint and appends
// it to the cached list.
func (d *Directory) CreateFromTemplate(ctx context.Context, req api.FromTemplateRequest) (*model.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}
	if strings.TrimSpace(req.TemplateID) == "" {
		return nil, fmt.Errorf("%w: template id is required", ErrValidation)
	}

	project, err := d.backend.CreateFromTemplate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create project from template: %w", err)
	}

	d.mu.Lock()
	d.projects = append(d.projects, *project)
	d.mu.Unlock()
	return project, nil
}

// Delete removes a project. The cached list keeps the entry until the
// backend confirms, so a failed delete leaves the directory unchanged.
// Callers are responsible for confirming the destructive action with the
// user before invoking this.
func (d *Directory) Delete(ctx context.Context, id string) error {
	if err := d.backend.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	d.mu.Lock()
	for i := range d.projects {
		if d.projects[i].ID == id {
			d.projects = append(d.projects[:i], d.projects[i+1:]...)
			break
		}
	}
	d.mu.Unlock()
	return nil
}

// Rename updates a project's name. A name that is empty after trimming is
// a silent no-op: nothing is sent and the cached entry is untouched.
func (d *Directory) Rename(ctx context.Context, id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil
	}

	updated, err := d.backend.UpdateProject(ctx, id, api.UpdateProjectRequest{Name: &newName})
	if err != nil {
		return fmt.Errorf("failed to rename project: %w", err)
	}

	d.mu.Lock()
	for i := range d.projects {
		if d.projects[i].ID == id {
			d.projects[i] = *updated
			break
		}
	}
	d.mu.Unlock()
	return nil
}
