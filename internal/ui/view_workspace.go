// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/webmatic-tui/internal/model"
	"github.com/jeranaias/webmatic-tui/internal/ui/components"
	"github.com/jeranaias/webmatic-tui/internal/workspace"
)

func (a *App) updateWorkspace(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.page = pageHome
		return a, a.loadProjectsCmd()

	case key.Matches(msg, a.keys.Tab):
		a.activeTab = (a.activeTab + 1) % tabCount
		return a, nil

	case key.Matches(msg, a.keys.Provider):
		a.provider = nextProvider(a.provider)
		return a, nil

	case key.Matches(msg, a.keys.Plan):
		return a, a.scaffoldCmd(a.provider, a.cfg.Generation.Model, a.promptInput.Value())

	case key.Matches(msg, a.keys.Compare):
		return a, a.compareCmd()

	case key.Matches(msg, a.keys.NextFile):
		a.moveFileCursor(1)
		return a, nil
	case key.Matches(msg, a.keys.PrevFile):
		a.moveFileCursor(-1)
		return a, nil

	case key.Matches(msg, a.keys.Enter):
		return a.sendPrompt()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.promptInput, cmd = a.promptInput.Update(msg)
	cmds = append(cmds, cmd)
	a.transcriptView, cmd = a.transcriptView.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// sendPrompt starts a generation for the open project. Local failures
// (signed out, blank prompt, one already running) surface as toasts
// without a network call.
func (a *App) sendPrompt() (tea.Model, tea.Cmd) {
	ticket, err := a.ws.BeginGenerate(a.promptInput.Value(), a.provider)
	if err != nil {
		return a, a.toast(components.NewErrorToast(err.Error()))
	}
	a.promptInput.SetValue("")
	a.refreshTranscriptView()
	return a, a.generateCmd(ticket)
}

func (a *App) moveFileCursor(delta int) {
	p := a.ws.Project()
	if p == nil || p.Artifacts == nil || len(p.Artifacts.Files) == 0 {
		return
	}
	a.fileIndex += delta
	if a.fileIndex < 0 {
		a.fileIndex = 0
	}
	if a.fileIndex >= len(p.Artifacts.Files) {
		a.fileIndex = len(p.Artifacts.Files) - 1
	}
}

func nextProvider(p model.Provider) model.Provider {
	for i, known := range model.Providers {
		if known == p {
			return model.Providers[(i+1)%len(model.Providers)]
		}
	}
	return model.Providers[0]
}

// refreshTranscriptView re-renders the chat pane from the transcript.
func (a *App) refreshTranscriptView() {
	tr := a.ws.Transcript()
	if tr == nil {
		a.transcriptView.SetContent("")
		return
	}

	var b strings.Builder
	for _, e := range tr.Entries() {
		label := e.Message.Role.DisplayName()
		bubble := a.theme.AssistantBubble
		if e.Message.Role == model.RoleUser {
			bubble = a.theme.UserBubble
		}
		if e.Pending {
			bubble = a.theme.PendingBubble
			label += " (sending)"
		}
		b.WriteString(a.theme.Muted.Render(label))
		b.WriteString("\n")
		b.WriteString(bubble.Width(a.transcriptWidth() - 2).Render(e.Message.Content))
		b.WriteString("\n")
	}

	a.transcriptView.SetContent(b.String())
	a.transcriptView.GotoBottom()
}

// =============================================================================
// VIEW
// =============================================================================

func (a *App) viewWorkspace() string {
	p := a.ws.Project()
	if p == nil {
		return a.theme.Muted.Render("no project open")
	}

	title := p.Name
	if title == "" {
		title = p.ID
	}
	header := a.theme.Header.Width(a.width).Render(
		a.theme.Brand.Render("WEBMATIC") + "  " + title +
			"  " + a.theme.Muted.Render(a.ws.State().String()))

	chat := a.viewChatPane()
	detail := a.viewDetailPane(p)

	var body string
	if a.theme.Narrow() {
		body = chat + "\n" + detail
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, chat, detail)
	}

	input := a.theme.InputContainer.Width(a.width - 4).Render(
		a.theme.InputPrompt.Render("> ") + a.promptInput.View())

	help := a.theme.Help.Render(
		"enter send · tab panes · [/] files · ctrl+p provider(" + string(a.provider) +
			") · ctrl+s plan · ctrl+b compare · esc back")

	return header + "\n" + body + "\n" + input + "\n" + help
}

func (a *App) viewChatPane() string {
	var b strings.Builder
	b.WriteString(a.theme.PanelTitle.Render("Chat"))
	b.WriteString("\n")
	if a.ws.State() == workspace.StateGenerating {
		b.WriteString(a.spin.View() + " generating\n")
	}
	b.WriteString(a.transcriptView.View())
	return a.theme.Panel.Width(a.transcriptWidth()).Render(b.String())
}

func (a *App) viewDetailPane(p *model.Project) string {
	tabs := []string{"Plan", "Files", "Preview"}
	var tabRow strings.Builder
	for i, name := range tabs {
		if i == a.activeTab {
			tabRow.WriteString(a.theme.ActiveTab.Render(name))
		} else {
			tabRow.WriteString(a.theme.InactiveTab.Render(name))
		}
	}

	var content string
	switch a.activeTab {
	case tabPlan:
		content = a.viewPlan(p)
	case tabFiles:
		content = a.viewFiles(p)
	case tabPreview:
		content = a.viewPreview(p)
	}

	width := a.width - a.transcriptWidth() - 6
	if a.theme.Narrow() {
		width = a.width - 4
	}
	return a.theme.Panel.Width(width).Render(tabRow.String() + "\n" + content)
}

func (a *App) viewPlan(p *model.Project) string {
	if a.comparison != nil {
		return a.viewComparison()
	}
	if !p.HasPlan() {
		return a.theme.Muted.Render("no plan yet, press ctrl+s to scaffold one")
	}

	score, _ := model.ScorePlan(p.Plan)
	md := planMarkdown(p.Plan, score)
	if a.planRenderer != nil {
		if rendered, err := a.planRenderer.Render(md); err == nil {
			return rendered
		}
	}
	return md
}

// planMarkdown formats a plan for the markdown renderer.
func planMarkdown(plan *model.Plan, score int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Plan (quality %d/100)\n\n", score)
	section := func(name string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("## " + name + "\n\n")
		for _, item := range items {
			b.WriteString("- " + item + "\n")
		}
		b.WriteString("\n")
	}
	section("Frontend", plan.Frontend)
	section("Backend", plan.Backend)
	section("Database", plan.Database)
	return b.String()
}

func (a *App) viewComparison() string {
	var b strings.Builder
	b.WriteString(a.theme.PanelTitle.Render("Provider comparison"))
	b.WriteString("\n")
	for name, plan := range a.comparison.Variants {
		score, _ := model.ScorePlan(plan)
		fmt.Fprintf(&b, "%s: %d items, quality %d/100\n", name, plan.ItemCount(), score)
	}
	for _, d := range a.comparison.Diff {
		b.WriteString(a.theme.Muted.Render("· "+d) + "\n")
	}
	return b.String()
}

func (a *App) viewFiles(p *model.Project) string {
	if p.Artifacts == nil || len(p.Artifacts.Files) == 0 {
		return a.theme.Muted.Render("no generated files yet")
	}

	files := p.Artifacts.Files
	idx := a.fileIndex
	if idx >= len(files) {
		idx = len(files) - 1
	}

	var b strings.Builder
	if p.Artifacts.IsStub() {
		b.WriteString(a.theme.Warning.Render("fallback output"))
		if p.Artifacts.Error != "" {
			b.WriteString(a.theme.Warning.Render(": " + p.Artifacts.Error))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s (%d/%d)\n", a.theme.Muted.Render("file"), idx+1, len(files))
	b.WriteString(components.RenderArtifactFile(a.theme, files[idx]))
	return b.String()
}

func (a *App) viewPreview(p *model.Project) string {
	if p.Artifacts == nil || p.Artifacts.HTMLPreview == "" {
		return a.theme.Muted.Render("no preview yet")
	}
	// Raw markup; terminals don't render HTML.
	return p.Artifacts.HTMLPreview
}
