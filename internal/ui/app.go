// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/webmatic-tui/internal/api"
	"github.com/jeranaias/webmatic-tui/internal/config"
	"github.com/jeranaias/webmatic-tui/internal/directory"
	"github.com/jeranaias/webmatic-tui/internal/model"
	"github.com/jeranaias/webmatic-tui/internal/session"
	"github.com/jeranaias/webmatic-tui/internal/ui/components"
	"github.com/jeranaias/webmatic-tui/internal/ui/styles"
	"github.com/jeranaias/webmatic-tui/internal/workspace"
)

// page identifies the visible screen.
type page int

const (
	pageLogin page = iota
	pageHome
	pageWorkspace
	pageTemplates
)

// workspace tabs
const (
	tabPlan = iota
	tabFiles
	tabPreview
	tabCount
)

// App is the root bubbletea model.
type App struct {
	theme *styles.Theme
	keys  KeyMap
	cfg   *config.Config

	client *api.Client
	sess   *session.Session
	dir    *directory.Directory
	ws     *workspace.Workspace

	page    page
	width   int
	height  int
	toasts  components.ToastStack
	healthy *bool

	provider model.Provider

	// Login form
	emailInput textinput.Model
	passInput  textinput.Model
	loginFocus int
	register   bool
	authBusy   bool

	// Home page
	cursor        int
	creating      bool
	nameInput     textinput.Model
	descInput     textinput.Model
	createFocus   int
	renaming      bool
	renameInput   textinput.Model
	confirmDelete string // project id awaiting delete confirmation

	// Workspace page
	promptInput    textinput.Model
	transcriptView viewport.Model
	spin           spinner.Model
	activeTab      int
	fileIndex      int
	comparison     *model.ProviderComparison
	planRenderer   *glamour.TermRenderer

	// Templates page
	templates  []model.Template
	tmplCursor int
	tmplDetail *model.TemplateDetail
	tmplName   textinput.Model
	tmplNaming bool
}

// NewApp wires the root model from the shared components.
func NewApp(cfg *config.Config, client *api.Client, sess *session.Session, dir *directory.Directory, ws *workspace.Workspace) *App {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword

	name := textinput.New()
	name.Placeholder = "project name"

	desc := textinput.New()
	desc.Placeholder = "describe the app to build"

	rename := textinput.New()
	rename.Placeholder = "new name"

	prompt := textinput.New()
	prompt.Placeholder = "describe what to build or change"

	tmplName := textinput.New()
	tmplName.Placeholder = "name for the new project"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	// Plan tab renders as markdown; plain text is the fallback.
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		renderer = nil
	}

	return &App{
		theme:        styles.NewTheme(),
		keys:         DefaultKeyMap(),
		cfg:          cfg,
		client:       client,
		sess:         sess,
		dir:          dir,
		ws:           ws,
		page:         pageLogin,
		provider:     cfg.Provider(),
		emailInput:   email,
		passInput:    pass,
		nameInput:    name,
		descInput:    desc,
		renameInput:  rename,
		promptInput:  prompt,
		tmplName:     tmplName,
		spin:         sp,
		planRenderer: renderer,
	}
}

// Init restores the stored session and starts the health probe loop.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.restoreSessionCmd(),
		a.healthCmd(),
		healthTickCmd(),
		a.spin.Tick,
	)
}

// Update is the single event dispatcher.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		a.transcriptView.Width = a.transcriptWidth()
		a.transcriptView.Height = a.transcriptHeight()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		return a.updatePage(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case components.ToastExpiredMsg:
		a.toasts.Dismiss(msg.ID)
		return a, nil

	case ConfigReloadedMsg:
		// Only generation and UI settings take effect live; the backend
		// URL stays fixed for the life of the process.
		a.cfg.Generation = msg.Config.Generation
		a.cfg.UI = msg.Config.UI
		a.provider = msg.Config.Provider()
		return a, a.toast(components.NewStatusToast("configuration reloaded"))

	case healthTickMsg:
		return a, tea.Batch(a.healthCmd(), healthTickCmd())

	case healthMsg:
		if msg.probed {
			h := msg.healthy
			a.healthy = &h
		}
		return a, nil

	case sessionRestoredMsg:
		return a.onSessionRestored(msg)
	case authDoneMsg:
		return a.onAuthDone(msg)
	case loggedOutMsg:
		a.page = pageLogin
		a.ws.Close()
		return a, a.toast(components.NewStatusToast("signed out"))

	case projectsLoadedMsg:
		if msg.err != nil {
			return a, a.toast(components.NewErrorToast(msg.err.Error()))
		}
		a.clampCursor()
		return a, nil
	case projectCreatedMsg:
		return a.onProjectCreated(msg)
	case projectDeletedMsg:
		return a.onProjectDeleted(msg)
	case projectRenamedMsg:
		if msg.err != nil {
			return a, a.toast(components.NewErrorToast(msg.err.Error()))
		}
		return a, nil

	case projectLoadedMsg:
		if msg.err != nil && a.ws.ProjectID() == msg.id {
			return a, a.toast(components.NewErrorToast(msg.err.Error()))
		}
		return a, nil
	case transcriptLoadedMsg:
		// A transcript failure must not block the metadata view.
		if msg.err != nil && a.ws.ProjectID() == msg.id {
			return a, a.toast(components.NewWarningToast("chat history unavailable"))
		}
		a.refreshTranscriptView()
		return a, nil

	case generateDoneMsg:
		return a.onGenerateDone(msg)
	case scaffoldDoneMsg:
		if msg.err != nil {
			return a, a.toast(components.NewErrorToast(msg.err.Error()))
		}
		return a, a.toast(components.NewStatusToast("plan ready"))
	case compareDoneMsg:
		if msg.err != nil {
			return a, a.toast(components.NewErrorToast(msg.err.Error()))
		}
		a.comparison = msg.cmp
		return a, nil

	case templatesLoadedMsg:
		if msg.err != nil {
			return a, a.toast(components.NewErrorToast(msg.err.Error()))
		}
		a.templates = msg.templates
		if a.tmplCursor >= len(a.templates) {
			a.tmplCursor = 0
		}
		return a, nil
	case templateDetailMsg:
		if msg.err != nil {
			return a, a.toast(components.NewErrorToast(msg.err.Error()))
		}
		a.tmplDetail = msg.detail
		return a, nil
	}

	return a, nil
}

// updatePage routes key events to the visible page.
func (a *App) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.page {
	case pageLogin:
		return a.updateLogin(msg)
	case pageHome:
		return a.updateHome(msg)
	case pageWorkspace:
		return a.updateWorkspace(msg)
	case pageTemplates:
		return a.updateTemplates(msg)
	}
	return a, nil
}

// View renders the visible page plus toasts and the status bar.
func (a *App) View() string {
	var body string
	switch a.page {
	case pageLogin:
		body = a.viewLogin()
	case pageHome:
		body = a.viewHome()
	case pageWorkspace:
		body = a.viewWorkspace()
	case pageTemplates:
		body = a.viewTemplates()
	}

	footer := ""
	if a.cfg.UI.ShowStatusBar {
		footer = a.viewStatusBar()
	}
	toasts := a.viewToasts()

	out := body
	if toasts != "" {
		out += "\n" + toasts
	}
	if footer != "" {
		out += "\n" + footer
	}
	return out
}

// =============================================================================
// SHARED HANDLERS
// =============================================================================

func (a *App) onSessionRestored(msg sessionRestoredMsg) (tea.Model, tea.Cmd) {
	if a.sess.Authenticated() {
		a.page = pageHome
		return a, a.loadProjectsCmd()
	}
	if msg.err != nil && errors.Is(msg.err, api.ErrBackendUnavailable) {
		return a, a.toast(components.NewWarningToast("backend unreachable, sign-in kept for later"))
	}
	return a, nil
}

func (a *App) onAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	a.authBusy = false
	if msg.err != nil {
		return a, a.toast(components.NewErrorToast(msg.err.Error()))
	}
	a.page = pageHome
	a.passInput.SetValue("")
	return a, a.loadProjectsCmd()
}

func (a *App) onProjectCreated(msg projectCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return a, a.toast(components.NewErrorToast(msg.err.Error()))
	}
	a.creating = false
	a.tmplNaming = false
	a.nameInput.SetValue("")
	a.descInput.SetValue("")
	a.tmplName.SetValue("")
	return a, tea.Batch(
		a.toast(components.NewStatusToast("project created: "+msg.project.Name)),
		a.openWorkspace(msg.project.ID),
	)
}

func (a *App) onProjectDeleted(msg projectDeletedMsg) (tea.Model, tea.Cmd) {
	a.confirmDelete = ""
	if msg.err != nil {
		return a, a.toast(components.NewErrorToast(msg.err.Error()))
	}
	a.clampCursor()
	return a, a.toast(components.NewStatusToast("project deleted"))
}

func (a *App) onGenerateDone(msg generateDoneMsg) (tea.Model, tea.Cmd) {
	applied, err := a.ws.ApplyGenerate(msg.ticket, msg.artifacts, msg.err)
	if !applied {
		// Result belongs to a project the user has left; nothing visible
		// changes.
		return a, nil
	}
	if err != nil {
		a.ws.AckError()
		a.refreshTranscriptView()
		return a, a.toast(components.NewErrorToast(a.ws.LastError()))
	}

	cmds := []tea.Cmd{a.reloadTranscriptCmd(msg.ticket.ProjectID)}
	if warn := a.ws.StubWarning(); warn != "" {
		cmds = append(cmds, a.toast(components.NewWarningToast(warn)))
	}
	a.activeTab = tabFiles
	a.fileIndex = 0
	return a, tea.Batch(cmds...)
}

// openWorkspace switches to a project, discarding the previous one.
func (a *App) openWorkspace(id string) tea.Cmd {
	a.ws.Open(id)
	a.page = pageWorkspace
	a.activeTab = tabPlan
	a.fileIndex = 0
	a.comparison = nil
	a.promptInput.Focus()
	a.refreshTranscriptView()
	return a.openProjectCmds(id)
}

func (a *App) toast(t components.Toast) tea.Cmd {
	a.toasts.Push(t)
	return t.ExpireCmd()
}

func (a *App) clampCursor() {
	n := len(a.dir.Projects())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) transcriptWidth() int {
	if a.theme.Narrow() {
		return a.width - 4
	}
	return a.width/2 - 4
}

func (a *App) transcriptHeight() int {
	h := a.height - 8
	if h < 5 {
		h = 5
	}
	return h
}
