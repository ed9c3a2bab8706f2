// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// projects.go - project management and generation subcommands.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/webmatic-tui/internal/model"
)

// handleProjects dispatches the "projects" subcommands.
func (c *CLI) handleProjects(ctx context.Context, args *ArgParser) error {
	if err := c.requireAuth(ctx); err != nil {
		return err
	}

	switch args.Subcommand() {
	case "", "list", "ls", "l":
		return c.projectsList(ctx, args)
	case "show":
		return c.projectsShow(ctx, args)
	case "create", "new":
		return c.projectsCreate(ctx, args)
	case "rename":
		return c.projectsRename(ctx, args)
	case "delete", "rm":
		return c.projectsDelete(ctx, args)
	default:
		return fmt.Errorf("%w: unknown projects subcommand %q", errUsage, args.Subcommand())
	}
}

func (c *CLI) projectsList(ctx context.Context, args *ArgParser) error {
	if err := c.Directory.Load(ctx); err != nil {
		return err
	}
	projects := c.Directory.Projects()

	if args.BoolFlag("json") {
		printJSON(c.out(), projects)
		return nil
	}
	if len(projects) == 0 {
		fmt.Fprintln(c.out(), "No projects yet. Create one with 'webmatic projects create'.")
		return nil
	}
	fmt.Fprintf(c.out(), "  %-10s %-28s %-10s %s\n", "ID", "NAME", "STATUS", "DESCRIPTION")
	for _, p := range projects {
		printProjectRow(c.out(), p)
	}
	return nil
}

func (c *CLI) projectsShow(ctx context.Context, args *ArgParser) error {
	id := args.Positional(1)
	if id == "" {
		return fmt.Errorf("%w: projects show requires a project id", errUsage)
	}
	p, err := c.Client.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if args.BoolFlag("json") {
		printJSON(c.out(), p)
		return nil
	}
	fmt.Fprintf(c.out(), "%s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(c.out(), "  Status: %s\n", p.Status)
	if desc := strings.TrimSpace(p.Description); desc != "" {
		fmt.Fprintf(c.out(), "  %s\n", desc)
	}
	fmt.Fprintln(c.out(), "Plan:")
	printPlan(c.out(), p.Plan)
	if p.Artifacts != nil {
		fmt.Fprintln(c.out(), "Artifacts:")
		printArtifacts(c.out(), p.Artifacts)
	}
	return nil
}

func (c *CLI) projectsCreate(ctx context.Context, args *ArgParser) error {
	name := args.Flag("name")
	desc := args.FlagOrDefault("desc", args.Flag("description"))

	p, err := c.Directory.Create(ctx, name, desc)
	if err != nil {
		return err
	}
	if args.BoolFlag("json") {
		printJSON(c.out(), p)
		return nil
	}
	fmt.Fprintf(c.out(), "Created project %s (%s)\n", p.Name, p.ID)
	return nil
}

func (c *CLI) projectsRename(ctx context.Context, args *ArgParser) error {
	id := args.Positional(1)
	if id == "" {
		return fmt.Errorf("%w: projects rename requires a project id", errUsage)
	}
	name := args.Flag("name")
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: projects rename requires --name", errUsage)
	}
	if err := c.Directory.Rename(ctx, id, name); err != nil {
		return err
	}
	fmt.Fprintf(c.out(), "Renamed project %s\n", id)
	return nil
}

func (c *CLI) projectsDelete(ctx context.Context, args *ArgParser) error {
	id := args.Positional(1)
	if id == "" {
		return fmt.Errorf("%w: projects delete requires a project id", errUsage)
	}
	// Destructive call needs explicit confirmation first.
	if !args.BoolFlag("confirm") {
		if !IsStdinTTY() {
			return fmt.Errorf("%w: pass --confirm to delete without a prompt", errUsage)
		}
		if !confirm(fmt.Sprintf("Delete project %s? This cannot be undone.", id)) {
			fmt.Fprintln(c.out(), "Aborted.")
			return nil
		}
	}
	if err := c.Directory.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out(), "Deleted project %s\n", id)
	return nil
}

// =============================================================================
// GENERATION
// =============================================================================

// provider resolves the provider for a command, flag over config.
func (c *CLI) provider(args *ArgParser) (model.Provider, error) {
	p := model.Provider(args.FlagOrDefault("provider", string(c.Config.Provider())))
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown provider %q", errUsage, p)
	}
	return p, nil
}

// handleGenerate runs a full generation for a project and reports the
// resulting artifacts.
func (c *CLI) handleGenerate(ctx context.Context, args *ArgParser) error {
	if err := c.requireAuth(ctx); err != nil {
		return err
	}
	id := args.Positional(1)
	prompt := args.Rest(2)
	if id == "" || strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("%w: generate requires a project id and a prompt", errUsage)
	}
	provider, err := c.provider(args)
	if err != nil {
		return err
	}

	c.Workspace.Open(id)
	defer c.Workspace.Close()
	if err := c.Workspace.LoadProject(ctx, id); err != nil {
		return err
	}
	if err := c.Workspace.LoadTranscript(ctx, id); err != nil {
		fmt.Fprintln(c.errOut(), "Warning: chat history unavailable")
	}

	if !args.BoolFlag("json") {
		fmt.Fprintf(c.out(), "Generating with %s...\n", provider)
	}
	result, err := c.Workspace.Generate(ctx, prompt, provider)
	if err != nil {
		return err
	}

	if args.BoolFlag("json") {
		printJSON(c.out(), result)
		return nil
	}
	if result.Warning != "" {
		fmt.Fprintf(c.errOut(), "Warning: %s\n", result.Warning)
	}
	printArtifacts(c.out(), result.Artifacts)
	return nil
}

// handleScaffold plans a project without generating code.
func (c *CLI) handleScaffold(ctx context.Context, args *ArgParser) error {
	if err := c.requireAuth(ctx); err != nil {
		return err
	}
	id := args.Positional(1)
	prompt := args.Rest(2)
	if id == "" || strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("%w: scaffold requires a project id and a prompt", errUsage)
	}
	provider, err := c.provider(args)
	if err != nil {
		return err
	}
	modelName := args.FlagOrDefault("model", c.Config.Generation.Model)

	c.Workspace.Open(id)
	defer c.Workspace.Close()
	p, err := c.Workspace.Scaffold(ctx, provider, modelName, prompt)
	if err != nil {
		return err
	}

	if args.BoolFlag("json") {
		printJSON(c.out(), p)
		return nil
	}
	fmt.Fprintf(c.out(), "Planned %s (%s)\n", p.Name, p.ID)
	printPlan(c.out(), p.Plan)
	return nil
}

// handleCompare plans with every provider and prints the differences.
func (c *CLI) handleCompare(ctx context.Context, args *ArgParser) error {
	if err := c.requireAuth(ctx); err != nil {
		return err
	}
	id := args.Positional(1)
	if id == "" {
		return fmt.Errorf("%w: compare requires a project id", errUsage)
	}

	c.Workspace.Open(id)
	defer c.Workspace.Close()
	cmp, err := c.Workspace.CompareProviders(ctx)
	if err != nil {
		return err
	}

	if args.BoolFlag("json") {
		printJSON(c.out(), cmp)
		return nil
	}
	for name, plan := range cmp.Variants {
		score, _ := model.ScorePlan(plan)
		fmt.Fprintf(c.out(), "%s (%d items, quality %d/100)\n", name, plan.ItemCount(), score)
		printPlan(c.out(), plan)
	}
	if len(cmp.Diff) > 0 {
		fmt.Fprintln(c.out(), "Differences:")
		for _, d := range cmp.Diff {
			fmt.Fprintf(c.out(), "  - %s\n", d)
		}
	}
	return nil
}
