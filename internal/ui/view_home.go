// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/webmatic-tui/internal/util"
)

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal forms swallow keys first.
	if a.creating {
		return a.updateCreateForm(msg)
	}
	if a.renaming {
		return a.updateRenameForm(msg)
	}
	if a.confirmDelete != "" {
		return a.updateDeleteConfirm(msg)
	}

	projects := a.dir.Projects()

	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(projects)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Enter):
		if a.cursor < len(projects) {
			return a, a.openWorkspace(projects[a.cursor].ID)
		}
	case key.Matches(msg, a.keys.New):
		a.creating = true
		a.createFocus = 0
		a.nameInput.Focus()
		a.descInput.Blur()
	case key.Matches(msg, a.keys.Rename):
		if a.cursor < len(projects) {
			a.renaming = true
			a.renameInput.SetValue(projects[a.cursor].Name)
			a.renameInput.Focus()
		}
	case key.Matches(msg, a.keys.Delete):
		// Destructive call needs explicit confirmation first.
		if a.cursor < len(projects) {
			a.confirmDelete = projects[a.cursor].ID
		}
	case key.Matches(msg, a.keys.Templ):
		a.page = pageTemplates
		a.tmplDetail = nil
		return a, a.loadTemplatesCmd()
	case key.Matches(msg, a.keys.Reload):
		return a, a.loadProjectsCmd()
	case key.Matches(msg, a.keys.Logout):
		return a, a.logoutCmd()
	}
	return a, nil
}

func (a *App) updateCreateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.creating = false
		return a, nil
	case tea.KeyTab:
		a.createFocus = (a.createFocus + 1) % 2
		if a.createFocus == 0 {
			a.nameInput.Focus()
			a.descInput.Blur()
		} else {
			a.nameInput.Blur()
			a.descInput.Focus()
		}
		return a, nil
	case tea.KeyEnter:
		name := a.nameInput.Value()
		desc := a.descInput.Value()
		if strings.TrimSpace(name) == "" && strings.TrimSpace(desc) != "" {
			// Let a name be derived from the prompt when left blank.
			name = util.DeriveProjectName(desc)
			a.nameInput.SetValue(name)
		}
		return a, a.createProjectCmd(name, desc)
	}

	var cmd tea.Cmd
	if a.createFocus == 0 {
		a.nameInput, cmd = a.nameInput.Update(msg)
	} else {
		a.descInput, cmd = a.descInput.Update(msg)
	}
	return a, cmd
}

func (a *App) updateRenameForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.renaming = false
		return a, nil
	case tea.KeyEnter:
		a.renaming = false
		projects := a.dir.Projects()
		if a.cursor < len(projects) {
			// Blank input is a no-op by contract.
			return a, a.renameProjectCmd(projects[a.cursor].ID, a.renameInput.Value())
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.renameInput, cmd = a.renameInput.Update(msg)
	return a, cmd
}

func (a *App) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := a.confirmDelete
		return a, a.deleteProjectCmd(id)
	case "n", "N", "esc":
		a.confirmDelete = ""
	}
	return a, nil
}

func (a *App) viewHome() string {
	var b strings.Builder

	b.WriteString(a.theme.Header.Width(a.width).Render(
		a.theme.Brand.Render("WEBMATIC") + "  projects"))
	b.WriteString("\n\n")

	if a.creating {
		b.WriteString(a.theme.PanelTitle.Render("New project"))
		b.WriteString("\n")
		b.WriteString(a.theme.InputContainer.Render(a.nameInput.View()))
		b.WriteString("\n")
		b.WriteString(a.theme.InputContainer.Render(a.descInput.View()))
		b.WriteString("\n")
		b.WriteString(a.theme.Help.Render("enter create · tab switch field · esc cancel"))
		return b.String()
	}

	projects := a.dir.Projects()
	if !a.dir.Loaded() {
		b.WriteString(a.spin.View() + " loading projects")
		return b.String()
	}
	if len(projects) == 0 {
		b.WriteString(a.theme.Muted.Render("no projects yet, press n to create one"))
		b.WriteString("\n")
	}

	for i, p := range projects {
		line := fmt.Sprintf("%-30s %s",
			util.TruncateWidth(p.Name, 30),
			a.theme.ListItemStatus.Render(string(p.Status)))
		if i == a.cursor {
			b.WriteString(a.theme.ListItemSelected.Render(line))
		} else {
			b.WriteString(a.theme.ListItem.Render(line))
		}
		b.WriteString("\n")

		if a.confirmDelete == p.ID {
			b.WriteString(a.theme.Error.Render("  delete " + p.Name + "? (y/n)"))
			b.WriteString("\n")
		}
		if a.renaming && i == a.cursor {
			b.WriteString("  " + a.theme.InputContainer.Render(a.renameInput.View()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Help.Render("enter open · n new · r rename · d delete · t templates · ctrl+r reload · ctrl+l log out"))
	return b.String()
}
