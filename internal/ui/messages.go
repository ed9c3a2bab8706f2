// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/jeranaias/webmatic-tui/internal/config"
	"github.com/jeranaias/webmatic-tui/internal/model"
	"github.com/jeranaias/webmatic-tui/internal/workspace"
)

// ConfigReloadedMsg delivers a config file change picked up by the
// watcher while the program is running.
type ConfigReloadedMsg struct{ Config *config.Config }

// Messages delivered by commands back into the update loop. Every
// backend call resolves into exactly one of these; failures carry the
// error so the update loop can surface them as toasts.

type sessionRestoredMsg struct{ err error }

type authDoneMsg struct {
	register bool
	err      error
}

type loggedOutMsg struct{}

type projectsLoadedMsg struct{ err error }

type projectCreatedMsg struct {
	project *model.Project
	err     error
}

type projectDeletedMsg struct {
	id  string
	err error
}

type projectRenamedMsg struct{ err error }

type projectLoadedMsg struct {
	id  string
	err error
}

type transcriptLoadedMsg struct {
	id  string
	err error
}

type generateDoneMsg struct {
	ticket    *workspace.Ticket
	artifacts *model.Artifacts
	err       error
}

type scaffoldDoneMsg struct {
	project *model.Project
	err     error
}

type compareDoneMsg struct {
	cmp *model.ProviderComparison
	err error
}

type templatesLoadedMsg struct {
	templates []model.Template
	err       error
}

type templateDetailMsg struct {
	detail *model.TemplateDetail
	err    error
}

type healthMsg struct {
	healthy bool
	probed  bool
}

type healthTickMsg struct{}
