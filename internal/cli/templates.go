// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// templates.go - template browsing and project-from-template subcommands.
package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/webmatic-tui/internal/api"
	"github.com/jeranaias/webmatic-tui/internal/util"
)

// handleTemplates dispatches the "templates" subcommands.
func (c *CLI) handleTemplates(ctx context.Context, args *ArgParser) error {
	if err := c.requireAuth(ctx); err != nil {
		return err
	}

	switch args.Subcommand() {
	case "", "list", "ls", "l":
		return c.templatesList(ctx, args)
	case "show":
		return c.templatesShow(ctx, args)
	case "use":
		return c.templatesUse(ctx, args)
	default:
		return fmt.Errorf("%w: unknown templates subcommand %q", errUsage, args.Subcommand())
	}
}

func (c *CLI) templatesList(ctx context.Context, args *ArgParser) error {
	templates, err := c.Client.ListTemplates(ctx)
	if err != nil {
		return err
	}
	if args.BoolFlag("json") {
		printJSON(c.out(), templates)
		return nil
	}
	if len(templates) == 0 {
		fmt.Fprintln(c.out(), "No templates available.")
		return nil
	}
	fmt.Fprintf(c.out(), "  %-16s %-24s %-12s %s\n", "ID", "NAME", "CATEGORY", "TAGS")
	for _, t := range templates {
		fmt.Fprintf(c.out(), "  %-16s %-24s %-12s %s\n",
			t.ID, util.TruncateWidth(t.Name, 24), t.Category, joinTags(t.Tags))
	}
	return nil
}

func (c *CLI) templatesShow(ctx context.Context, args *ArgParser) error {
	id := args.Positional(1)
	if id == "" {
		return fmt.Errorf("%w: templates show requires a template id", errUsage)
	}
	detail, err := c.Client.GetTemplate(ctx, id)
	if err != nil {
		return err
	}
	if args.BoolFlag("json") {
		printJSON(c.out(), detail)
		return nil
	}

	fmt.Fprintf(c.out(), "%s (%s)\n", detail.Name, detail.ID)
	fmt.Fprintf(c.out(), "  Category: %s    Tags: %s\n", detail.Category, joinTags(detail.Tags))
	fmt.Fprintf(c.out(), "  %s\n", detail.Description)
	if len(detail.APIEndpoints) > 0 {
		fmt.Fprintln(c.out(), "  Endpoints:")
		for _, ep := range detail.APIEndpoints {
			fmt.Fprintf(c.out(), "    %s\n", ep)
		}
	}
	if len(detail.AcceptanceCriteria) > 0 {
		fmt.Fprintln(c.out(), "  Acceptance criteria:")
		for _, ac := range detail.AcceptanceCriteria {
			fmt.Fprintf(c.out(), "    - %s\n", ac)
		}
	}
	return nil
}

func (c *CLI) templatesUse(ctx context.Context, args *ArgParser) error {
	id := args.Positional(1)
	if id == "" {
		return fmt.Errorf("%w: templates use requires a template id", errUsage)
	}
	name := args.Flag("name")
	provider, err := c.provider(args)
	if err != nil {
		return err
	}

	p, err := c.Directory.CreateFromTemplate(ctx, api.FromTemplateRequest{
		TemplateID: id,
		Name:       name,
		Provider:   provider,
	})
	if err != nil {
		return err
	}
	if args.BoolFlag("json") {
		printJSON(c.out(), p)
		return nil
	}
	fmt.Fprintf(c.out(), "Created project %s (%s) from template %s\n", p.Name, p.ID, id)
	return nil
}
