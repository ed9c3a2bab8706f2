// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"
)

// =============================================================================
// PROJECT STATUS
// =============================================================================

// Status reflects how far a project has progressed on the backend.
type Status string

const (
	// StatusCreated is a freshly created project with no plan yet.
	StatusCreated Status = "created"
	// StatusPlanned means a scaffold run has produced a plan.
	StatusPlanned Status = "planned"
	// StatusGenerated means a generation run has produced artifacts.
	StatusGenerated Status = "generated"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// =============================================================================
// PLAN
// =============================================================================

// Plan is the structured breakdown of a project's intended feature set,
// produced by the backend scaffold operation.
type Plan struct {
	Frontend []string `json:"frontend"`
	Backend  []string `json:"backend"`
	Database []string `json:"database"`
}

// IsEmpty returns true if the plan has no items in any section.
func (p *Plan) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.Frontend) == 0 && len(p.Backend) == 0 && len(p.Database) == 0
}

// ItemCount returns the total number of plan items across all sections.
func (p *Plan) ItemCount() int {
	if p == nil {
		return 0
	}
	return len(p.Frontend) + len(p.Backend) + len(p.Database)
}

// =============================================================================
// ARTIFACTS
// =============================================================================

// GenerationMode indicates whether generation used a real provider call or
// the backend's fallback path.
type GenerationMode string

const (
	// ModeAI means the backend generated artifacts with a real provider call.
	ModeAI GenerationMode = "ai"
	// ModeStub means the backend fell back to placeholder generation.
	ModeStub GenerationMode = "stub"
)

// ArtifactFile is a single generated file.
type ArtifactFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Artifacts holds the output of one generation cycle for a project.
type Artifacts struct {
	Files       []ArtifactFile `json:"files"`
	HTMLPreview string         `json:"html_preview,omitempty"`
	Mode        GenerationMode `json:"mode,omitempty"`
	GeneratedAt time.Time      `json:"generated_at,omitempty"`
	Provider    string         `json:"provider,omitempty"`
	Error       string         `json:"error,omitempty"`

	// ProjectID records which project requested this generation. It is set
	// client-side when a generate response is reconciled, so a response that
	// arrives after switching projects can be detected and discarded.
	ProjectID string `json:"-"`
}

// IsStub returns true if the artifacts came from the fallback path.
func (a *Artifacts) IsStub() bool {
	return a != nil && a.Mode == ModeStub
}

// FileCount returns the number of generated files.
func (a *Artifacts) FileCount() int {
	if a == nil {
		return 0
	}
	return len(a.Files)
}

// =============================================================================
// PROJECT
// =============================================================================

// Project is one app-builder project owned by the authenticated user.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Plan        *Plan      `json:"plan,omitempty"`
	Artifacts   *Artifacts `json:"artifacts,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HasPlan returns true if the project carries a non-empty plan.
func (p *Project) HasPlan() bool {
	return p != nil && !p.Plan.IsEmpty()
}

// ConsistentStatus reports whether the status field agrees with the presence
// of a plan. A project must never claim "planned" while its plan is null.
func (p *Project) ConsistentStatus() bool {
	if p == nil {
		return false
	}
	switch p.Status {
	case StatusPlanned, StatusGenerated:
		return p.Plan != nil
	default:
		return true
	}
}

// =============================================================================
// PROVIDERS
// =============================================================================

// Provider identifies the upstream model service used for generation. It is
// opaque to the client beyond being a pass-through parameter.
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderGPT    Provider = "gpt"
)

// Providers lists the selectable providers in display order.
var Providers = []Provider{ProviderClaude, ProviderGPT}

// Valid reports whether p names a selectable provider.
func (p Provider) Valid() bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

// ModelsFor returns the model identifiers a provider accepts. The backend
// picks a default when no model override is sent; this list exists only for
// the optional override selector.
func ModelsFor(p Provider) []string {
	switch p {
	case ProviderClaude:
		return []string{"claude-4-sonnet"}
	case ProviderGPT:
		return []string{"gpt-5"}
	default:
		return []string{"claude-4-sonnet", "gpt-5"}
	}
}

// =============================================================================
// PROVIDER COMPARISON
// =============================================================================

// ProviderComparison is the response of the compare-providers operation:
// the project's baseline plan next to per-provider variants.
type ProviderComparison struct {
	Baseline *Plan            `json:"baseline"`
	Variants map[string]*Plan `json:"variants"`
	Diff     []string         `json:"diff"`
}
