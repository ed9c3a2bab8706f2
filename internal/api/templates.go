// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"

	"github.com/jeranaias/webmatic-tui/internal/model"
)

// =============================================================================
// TEMPLATE ENDPOINTS
// =============================================================================

// FromTemplateRequest seeds a new project from a template. Overrides is a
// client-constructed key/value mapping parameterizing the template prompts.
type FromTemplateRequest struct {
	TemplateID string            `json:"template_id"`
	Name       string            `json:"name"`
	Provider   model.Provider    `json:"provider"`
	Model      string            `json:"model,omitempty"`
	Overrides  map[string]string `json:"overrides,omitempty"`
}

// ListTemplates returns template summaries in backend order.
func (c *Client) ListTemplates(ctx context.Context) ([]model.Template, error) {
	var templates []model.Template
	if err := c.get(ctx, "/templates", &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// GetTemplate fetches the expandable detail for one template.
func (c *Client) GetTemplate(ctx context.Context, id string) (*model.TemplateDetail, error) {
	var detail model.TemplateDetail
	if err := c.get(ctx, "/templates/"+id, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateFromTemplate creates a project seeded from a template.
func (c *Client) CreateFromTemplate(ctx context.Context, req FromTemplateRequest) (*model.Project, error) {
	var p model.Project
	if err := c.post(ctx, "/projects/from-template", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
