// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/webmatic-tui/internal/model"
	"github.com/jeranaias/webmatic-tui/internal/util"
)

// printJSON writes v as indented JSON for script consumption.
func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(w, `{"error": %q}`+"\n", err.Error())
	}
}

// printProjectRow writes one project as a fixed-width table row.
func printProjectRow(w io.Writer, p model.Project) {
	fmt.Fprintf(w, "  %-10s %-28s %-10s %s\n",
		p.ID,
		util.TruncateWidth(p.Name, 28),
		p.Status,
		util.TruncateWidth(util.CollapseSpace(p.Description), 40))
}

// printPlan writes a project plan section by section.
func printPlan(w io.Writer, plan *model.Plan) {
	if plan.IsEmpty() {
		fmt.Fprintln(w, "  (no plan yet)")
		return
	}
	score, _ := model.ScorePlan(plan)
	fmt.Fprintf(w, "  Quality: %d/100\n", score)
	printPlanSection(w, "Frontend", plan.Frontend)
	printPlanSection(w, "Backend", plan.Backend)
	printPlanSection(w, "Database", plan.Database)
}

func printPlanSection(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "    - %s\n", item)
	}
}

// printArtifacts summarizes a generation result without dumping file bodies.
func printArtifacts(w io.Writer, a *model.Artifacts) {
	if a == nil {
		fmt.Fprintln(w, "  (no artifacts)")
		return
	}
	fmt.Fprintf(w, "  Mode: %s    Provider: %s    Files: %d\n", a.Mode, a.Provider, a.FileCount())
	for _, f := range a.Files {
		fmt.Fprintf(w, "    %s (%d bytes)\n", f.Path, len(f.Content))
	}
	if a.HTMLPreview != "" {
		fmt.Fprintf(w, "    preview: %d bytes of markup\n", len(a.HTMLPreview))
	}
}

// joinTags renders a tag list for single-line display.
func joinTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}
