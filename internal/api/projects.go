// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/jeranaias/webmatic-tui/internal/model"
)

// =============================================================================
// PROJECT ENDPOINTS
// =============================================================================

// CreateProjectRequest is the body for project creation.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProjectRequest carries partial project fields for PATCH. Only
// non-nil fields are sent.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ScaffoldRequest asks the backend to produce or refresh a project plan.
// Model is an optional override; the backend defaults it per provider.
type ScaffoldRequest struct {
	Provider model.Provider `json:"provider"`
	Model    string         `json:"model,omitempty"`
	Prompt   string         `json:"prompt,omitempty"`
}

// GenerateRequest asks the backend to generate code and a preview.
type GenerateRequest struct {
	Provider model.Provider `json:"provider"`
	Prompt   string         `json:"prompt"`
}

// ListProjects returns the user's projects in backend order. The client
// never re-sorts the listing.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.get(ctx, "/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a new project from a name and build prompt.
func (c *Client) CreateProject(ctx context.Context, name, description string) (*model.Project, error) {
	var p model.Project
	req := CreateProjectRequest{Name: name, Description: description}
	if err := c.post(ctx, "/projects", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	if err := c.get(ctx, "/projects/"+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProject patches project fields and returns the updated record.
func (c *Client) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*model.Project, error) {
	var p model.Project
	if err := c.do(ctx, c.httpClient, http.MethodPatch, "/projects/"+id, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject removes a project. The caller is responsible for user
// confirmation before issuing the destructive call.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, c.httpClient, http.MethodDelete, "/projects/"+id, nil, nil)
}

// Scaffold runs the plan generation for a project and returns the updated
// project, now carrying a plan and a "planned" status.
func (c *Client) Scaffold(ctx context.Context, id string, req ScaffoldRequest) (*model.Project, error) {
	var p model.Project
	if err := c.do(ctx, c.genClient, http.MethodPost, "/projects/"+id+"/scaffold", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Generate runs code generation for a project. The response is the new
// artifacts object; prior artifacts on the project are replaced wholesale by
// the caller, never merged.
func (c *Client) Generate(ctx context.Context, id string, req GenerateRequest) (*model.Artifacts, error) {
	var a model.Artifacts
	if err := c.do(ctx, c.genClient, http.MethodPost, "/projects/"+id+"/generate", req, &a); err != nil {
		return nil, err
	}
	a.ProjectID = id
	return &a, nil
}

// CompareProviders asks the backend to plan the project with each provider
// and report the differences.
func (c *Client) CompareProviders(ctx context.Context, id string) (*model.ProviderComparison, error) {
	var cmp model.ProviderComparison
	if err := c.do(ctx, c.genClient, http.MethodPost, "/projects/"+id+"/compare-providers", nil, &cmp); err != nil {
		return nil, err
	}
	return &cmp, nil
}
