// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/webmatic-tui/internal/api"
	"github.com/jeranaias/webmatic-tui/internal/util"
)

func (a *App) updateTemplates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.tmplNaming {
		switch msg.Type {
		case tea.KeyEsc:
			a.tmplNaming = false
			return a, nil
		case tea.KeyEnter:
			if a.tmplCursor >= len(a.templates) {
				return a, nil
			}
			return a, a.createFromTemplateCmd(api.FromTemplateRequest{
				TemplateID: a.templates[a.tmplCursor].ID,
				Name:       a.tmplName.Value(),
				Provider:   a.provider,
			})
		}
		var cmd tea.Cmd
		a.tmplName, cmd = a.tmplName.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Back):
		a.page = pageHome
		return a, nil
	case key.Matches(msg, a.keys.Up):
		if a.tmplCursor > 0 {
			a.tmplCursor--
			a.tmplDetail = nil
		}
	case key.Matches(msg, a.keys.Down):
		if a.tmplCursor < len(a.templates)-1 {
			a.tmplCursor++
			a.tmplDetail = nil
		}
	case key.Matches(msg, a.keys.Enter):
		if a.tmplCursor < len(a.templates) {
			return a, a.loadTemplateDetailCmd(a.templates[a.tmplCursor].ID)
		}
	case key.Matches(msg, a.keys.New):
		if a.tmplCursor < len(a.templates) {
			a.tmplNaming = true
			a.tmplName.SetValue(a.templates[a.tmplCursor].Name)
			a.tmplName.Focus()
		}
	case key.Matches(msg, a.keys.Reload):
		return a, a.loadTemplatesCmd()
	}
	return a, nil
}

func (a *App) viewTemplates() string {
	var b strings.Builder
	b.WriteString(a.theme.Header.Width(a.width).Render(
		a.theme.Brand.Render("WEBMATIC") + "  templates"))
	b.WriteString("\n\n")

	if len(a.templates) == 0 {
		b.WriteString(a.theme.Muted.Render("no templates available"))
		b.WriteString("\n")
	}

	for i, t := range a.templates {
		line := fmt.Sprintf("%-28s %s",
			util.TruncateWidth(t.Name, 28),
			a.theme.ListItemStatus.Render(t.Category))
		if i == a.tmplCursor {
			b.WriteString(a.theme.ListItemSelected.Render(line))
		} else {
			b.WriteString(a.theme.ListItem.Render(line))
		}
		b.WriteString("\n")
	}

	if a.tmplNaming {
		b.WriteString("\n")
		b.WriteString(a.theme.InputContainer.Render(a.tmplName.View()))
		b.WriteString("\n")
		b.WriteString(a.theme.Help.Render("enter create project · esc cancel"))
		b.WriteString("\n")
	}

	if a.tmplDetail != nil {
		b.WriteString("\n")
		b.WriteString(a.viewTemplateDetail())
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Help.Render("enter details · n use template · ctrl+r reload · esc back"))
	return b.String()
}

func (a *App) viewTemplateDetail() string {
	d := a.tmplDetail
	var b strings.Builder
	b.WriteString(a.theme.PanelTitle.Render(d.Name))
	b.WriteString("\n")
	b.WriteString(d.Description)
	b.WriteString("\n")
	if len(d.Tags) > 0 {
		b.WriteString(a.theme.Muted.Render("tags: " + strings.Join(d.Tags, ", ")))
		b.WriteString("\n")
	}
	if len(d.APIEndpoints) > 0 {
		b.WriteString(a.theme.PanelTitle.Render("Endpoints"))
		b.WriteString("\n")
		for _, e := range d.APIEndpoints {
			b.WriteString("  " + e + "\n")
		}
	}
	if len(d.AcceptanceCriteria) > 0 {
		b.WriteString(a.theme.PanelTitle.Render("Acceptance criteria"))
		b.WriteString("\n")
		for _, c := range d.AcceptanceCriteria {
			b.WriteString("  · " + c + "\n")
		}
	}
	return a.theme.Panel.Render(b.String())
}
