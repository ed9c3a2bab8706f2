// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/jeranaias/webmatic-tui/internal/ui/components"
)

func (a *App) viewStatusBar() string {
	data := components.StatusBarData{
		Provider:       string(a.provider),
		BackendHealthy: a.healthy,
	}
	if u := a.sess.User(); u != nil {
		data.UserEmail = u.Email
	}
	if a.page == pageWorkspace {
		if p := a.ws.Project(); p != nil {
			data.ProjectName = p.Name
		}
		data.WorkspaceState = a.ws.State().String()
	}
	switch a.page {
	case pageLogin:
		data.KeyHint = "enter sign in"
	case pageHome:
		data.KeyHint = "enter open · n new"
	case pageWorkspace:
		data.KeyHint = "enter send · esc back"
	case pageTemplates:
		data.KeyHint = "n use template"
	}
	return components.RenderStatusBar(a.theme, a.width, data)
}

func (a *App) viewToasts() string {
	if a.toasts.Empty() {
		return ""
	}
	var b strings.Builder
	for i, t := range a.toasts.Active() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.Render(a.theme))
	}
	return b.String()
}
