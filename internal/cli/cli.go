// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - command parsing and dispatch for the webmatic CLI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/webmatic-tui/internal/api"
	"github.com/jeranaias/webmatic-tui/internal/config"
	"github.com/jeranaias/webmatic-tui/internal/directory"
	"github.com/jeranaias/webmatic-tui/internal/session"
	"github.com/jeranaias/webmatic-tui/internal/workspace"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdRegister
	CmdLogout
	CmdWhoami
	CmdProjects
	CmdGenerate
	CmdScaffold
	CmdCompare
	CmdTemplates
	CmdHealth
	CmdVersion
	CmdHelp
)

const usageText = `webmatic - terminal client for the Webmatic app builder

Webmatic turns a plain-language description into a planned, generated
web application. This client talks to a Webmatic backend from the
terminal, either interactively (TUI) or through subcommands.

Usage:
  webmatic                        Start TUI (default)
  webmatic login                  Sign in with email and password
  webmatic register               Create an account and sign in
  webmatic logout                 Discard the stored credential
  webmatic whoami                 Show the signed-in account
  webmatic projects [subcommand]  Project management
  webmatic generate <id> "prompt" Generate an application
  webmatic scaffold <id> "prompt" Plan a project without generating
  webmatic compare <id>           Compare provider plans for a project
  webmatic templates [subcommand] Template browsing
  webmatic health                 Check backend reachability
  webmatic version                Show version information

Project Commands:
  webmatic projects list            List your projects
  webmatic projects show <id>       Show project details and plan
  webmatic projects create          Create a project
    --name NAME                     Project name (required)
    --desc TEXT                     Project description (required)
  webmatic projects rename <id> --name NAME
                                    Rename a project
  webmatic projects delete <id>     Delete a project
    --confirm                       Skip the confirmation prompt

Generation Commands:
  webmatic generate <id> "prompt"   Generate app code for a project
    --provider NAME                 Override the configured provider
  webmatic scaffold <id> "prompt"   Produce a plan only
    --provider NAME                 Override the configured provider
    --model NAME                    Override the provider's default model
  webmatic compare <id>             Plan with every provider and diff

Template Commands:
  webmatic templates list           List available templates
  webmatic templates show <id>      Show template details
  webmatic templates use <id>       Create a project from a template
    --name NAME                     Name for the new project (required)
    --provider NAME                 Override the configured provider

Global Flags:
  --json          Output machine-readable JSON
  --backend URL   Override the configured backend URL

Examples:
  webmatic login
  webmatic projects create --name "CRM" --desc "Customer tracker"
  webmatic generate 42 "Add a kanban board for deals"
  webmatic templates use crm-basic --name "Sales CRM"
  webmatic compare 42 --json

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "webmatic version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse maps the first argument to a command. Unknown or absent
// commands fall through to the TUI.
func Parse(args []string) (Command, *ArgParser) {
	if len(args) == 0 {
		return CmdTUI, NewArgParser(nil)
	}

	cmd := strings.ToLower(args[0])
	parser := NewArgParser(args[1:])

	switch cmd {
	case "tui":
		return CmdTUI, parser
	case "login":
		return CmdLogin, parser
	case "register", "signup":
		return CmdRegister, parser
	case "logout":
		return CmdLogout, parser
	case "whoami", "me":
		return CmdWhoami, parser
	case "projects", "project", "p":
		return CmdProjects, parser
	case "generate", "gen":
		return CmdGenerate, parser
	case "scaffold", "plan":
		return CmdScaffold, parser
	case "compare":
		return CmdCompare, parser
	case "templates", "template", "tmpl":
		return CmdTemplates, parser
	case "health", "status":
		return CmdHealth, parser
	case "version", "-v", "--version":
		return CmdVersion, parser
	case "help", "-h", "--help":
		return CmdHelp, parser
	default:
		return CmdTUI, NewArgParser(args)
	}
}

// IsCommand reports whether name dispatches to a subcommand rather
// than the TUI.
func IsCommand(name string) bool {
	cmd, _ := Parse([]string{name})
	return cmd != CmdTUI
}

// CLI wires the shared components behind the subcommand surface.
type CLI struct {
	Config    *config.Config
	Client    *api.Client
	Session   *session.Session
	Directory *directory.Directory
	Workspace *workspace.Workspace

	Stdout io.Writer
	Stderr io.Writer
}

func (c *CLI) out() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *CLI) errOut() io.Writer {
	if c.Stderr != nil {
		return c.Stderr
	}
	return os.Stderr
}

// Run executes a parsed command and returns a process exit code.
func (c *CLI) Run(ctx context.Context, cmd Command, args *ArgParser) int {
	var err error

	switch cmd {
	case CmdLogin:
		err = c.handleLogin(ctx, args, false)
	case CmdRegister:
		err = c.handleLogin(ctx, args, true)
	case CmdLogout:
		err = c.handleLogout(args)
	case CmdWhoami:
		err = c.handleWhoami(ctx, args)
	case CmdProjects:
		err = c.handleProjects(ctx, args)
	case CmdGenerate:
		err = c.handleGenerate(ctx, args)
	case CmdScaffold:
		err = c.handleScaffold(ctx, args)
	case CmdCompare:
		err = c.handleCompare(ctx, args)
	case CmdTemplates:
		err = c.handleTemplates(ctx, args)
	case CmdHealth:
		err = c.handleHealth(ctx, args)
	case CmdVersion:
		c.handleVersion(args)
	case CmdHelp:
		PrintUsage(c.out())
	default:
		PrintUsage(c.out())
	}

	if err != nil {
		fmt.Fprintf(c.errOut(), "Error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// Exit codes distinguish auth and connectivity failures for scripts.
const (
	exitUsage       = 2
	exitAuth        = 3
	exitUnreachable = 4
)

var errUsage = errors.New("invalid usage")

func exitCode(err error) int {
	switch {
	case errors.Is(err, errUsage):
		return exitUsage
	case errors.Is(err, session.ErrNotAuthenticated), errors.Is(err, api.ErrUnauthorized):
		return exitAuth
	case errors.Is(err, api.ErrBackendUnavailable):
		return exitUnreachable
	default:
		return 1
	}
}

func (c *CLI) handleVersion(args *ArgParser) {
	if args.BoolFlag("json") {
		printJSON(c.out(), map[string]string{
			"version":    Version,
			"git_commit": GitCommit,
			"build_date": BuildDate,
		})
		return
	}
	PrintVersion(c.out())
}

// requireAuth restores any stored credential, then fails fast when the
// session is still signed out.
func (c *CLI) requireAuth(ctx context.Context) error {
	if !c.Session.Authenticated() {
		if err := c.Session.Restore(ctx); err != nil {
			return err
		}
	}
	if !c.Session.Authenticated() {
		return fmt.Errorf("%w: run 'webmatic login' first", session.ErrNotAuthenticated)
	}
	return nil
}
