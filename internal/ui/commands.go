// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/webmatic-tui/internal/api"
	"github.com/jeranaias/webmatic-tui/internal/model"
	"github.com/jeranaias/webmatic-tui/internal/workspace"
)

// healthProbeInterval drives the periodic backend health check shown in
// the status bar.
const healthProbeInterval = 30 * time.Second

// Commands run backend calls off the update loop and resolve into a
// single message each. No command retries; a failure is surfaced once.

func (a *App) restoreSessionCmd() tea.Cmd {
	return func() tea.Msg {
		return sessionRestoredMsg{err: a.sess.Restore(context.Background())}
	}
}

func (a *App) loginCmd(email, password string, register bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if register {
			err = a.sess.Register(context.Background(), email, password)
		} else {
			err = a.sess.Login(context.Background(), email, password)
		}
		return authDoneMsg{register: register, err: err}
	}
}

func (a *App) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		a.sess.Logout()
		return loggedOutMsg{}
	}
}

func (a *App) loadProjectsCmd() tea.Cmd {
	return func() tea.Msg {
		return projectsLoadedMsg{err: a.dir.Load(context.Background())}
	}
}

func (a *App) createProjectCmd(name, description string) tea.Cmd {
	return func() tea.Msg {
		p, err := a.dir.Create(context.Background(), name, description)
		return projectCreatedMsg{project: p, err: err}
	}
}

func (a *App) deleteProjectCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return projectDeletedMsg{id: id, err: a.dir.Delete(context.Background(), id)}
	}
}

func (a *App) renameProjectCmd(id, newName string) tea.Cmd {
	return func() tea.Msg {
		return projectRenamedMsg{err: a.dir.Rename(context.Background(), id, newName)}
	}
}

// openProjectCmds returns the three independent loads issued on opening a
// workspace. None blocks the others; each failure surfaces on its own.
func (a *App) openProjectCmds(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			return projectLoadedMsg{id: id, err: a.ws.LoadProject(context.Background(), id)}
		},
		func() tea.Msg {
			return transcriptLoadedMsg{id: id, err: a.ws.LoadTranscript(context.Background(), id)}
		},
		a.loadProjectsCmd(),
	)
}

func (a *App) generateCmd(ticket *workspace.Ticket) tea.Cmd {
	return func() tea.Msg {
		artifacts, err := a.ws.RunGenerate(context.Background(), ticket)
		return generateDoneMsg{ticket: ticket, artifacts: artifacts, err: err}
	}
}

func (a *App) reloadTranscriptCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return transcriptLoadedMsg{id: id, err: a.ws.LoadTranscript(context.Background(), id)}
	}
}

func (a *App) scaffoldCmd(provider model.Provider, modelName, prompt string) tea.Cmd {
	return func() tea.Msg {
		p, err := a.ws.Scaffold(context.Background(), provider, modelName, prompt)
		return scaffoldDoneMsg{project: p, err: err}
	}
}

func (a *App) compareCmd() tea.Cmd {
	return func() tea.Msg {
		cmp, err := a.ws.CompareProviders(context.Background())
		return compareDoneMsg{cmp: cmp, err: err}
	}
}

func (a *App) loadTemplatesCmd() tea.Cmd {
	return func() tea.Msg {
		templates, err := a.client.ListTemplates(context.Background())
		return templatesLoadedMsg{templates: templates, err: err}
	}
}

func (a *App) loadTemplateDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := a.client.GetTemplate(context.Background(), id)
		return templateDetailMsg{detail: detail, err: err}
	}
}

func (a *App) createFromTemplateCmd(req api.FromTemplateRequest) tea.Cmd {
	return func() tea.Msg {
		p, err := a.dir.CreateFromTemplate(context.Background(), req)
		return projectCreatedMsg{project: p, err: err}
	}
}

// healthCmd probes backend health once. Failures are reflected in the
// status bar only, never as a toast.
func (a *App) healthCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := a.client.Health(context.Background())
		if err != nil {
			return healthMsg{healthy: false, probed: true}
		}
		if status == nil {
			// Probe suppressed by the rate limiter.
			return healthMsg{probed: false}
		}
		return healthMsg{healthy: true, probed: true}
	}
}

func healthTickCmd() tea.Cmd {
	return tea.Tick(healthProbeInterval, func(time.Time) tea.Msg {
		return healthTickMsg{}
	})
}
