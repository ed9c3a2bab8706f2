// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// TEMPLATE TYPES
// =============================================================================

// Template is the summary entry returned by the template listing.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// TemplateDetail is the expandable detail for one template. All lists are
// read-only descriptive metadata fetched on demand.
type TemplateDetail struct {
	Template

	Entities           []map[string]any `json:"entities,omitempty"`
	APIEndpoints       []string         `json:"api_endpoints,omitempty"`
	UIStructure        []string         `json:"ui_structure,omitempty"`
	Integrations       []string         `json:"integrations,omitempty"`
	AcceptanceCriteria []string         `json:"acceptance_criteria,omitempty"`
	Version            string           `json:"version,omitempty"`
	CreatedAt          time.Time        `json:"created_at,omitempty"`
	UpdatedAt          time.Time        `json:"updated_at,omitempty"`
}

// HasTag returns true if the template carries the given tag.
func (t Template) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}
