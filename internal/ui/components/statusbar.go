// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/webmatic-tui/internal/ui/styles"
	"github.com/jeranaias/webmatic-tui/internal/util"
)

// StatusBarData is the state rendered into the bottom status bar.
type StatusBarData struct {
	// UserEmail is empty when signed out.
	UserEmail string
	// ProjectName is empty when no project is open.
	ProjectName string
	// WorkspaceState is the display label of the workspace state.
	WorkspaceState string
	// Provider is the selected generation provider.
	Provider string
	// BackendHealthy reflects the last health probe. Nil means unknown.
	BackendHealthy *bool
	// KeyHint is a short context-sensitive key hint.
	KeyHint string
}

// RenderStatusBar renders a single status line fitted to width.
func RenderStatusBar(theme *styles.Theme, width int, data StatusBarData) string {
	var left []string

	if data.UserEmail != "" {
		left = append(left, theme.StatusGood.Render("●")+" "+data.UserEmail)
	} else {
		left = append(left, theme.Muted.Render("○ signed out"))
	}

	if data.ProjectName != "" {
		left = append(left, util.TruncateWidth(data.ProjectName, 24))
	}
	if data.WorkspaceState != "" {
		left = append(left, theme.Muted.Render(data.WorkspaceState))
	}
	if data.Provider != "" {
		left = append(left, "provider:"+data.Provider)
	}

	if data.BackendHealthy != nil {
		if *data.BackendHealthy {
			left = append(left, theme.StatusGood.Render("backend ok"))
		} else {
			left = append(left, theme.StatusBad.Render("backend down"))
		}
	}

	leftStr := strings.Join(left, theme.Muted.Render(" │ "))
	rightStr := theme.Help.Render(data.KeyHint)

	gap := width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr) - 2
	if gap < 1 {
		gap = 1
		leftStr = util.TruncateWidth(leftStr, width-lipgloss.Width(rightStr)-3)
	}

	return theme.StatusBar.Width(width).Render(leftStr + strings.Repeat(" ", gap) + rightStr)
}
