// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxNameWords caps how much of a prompt becomes a project name.
const maxNameWords = 6

var titleCaser = cases.Title(language.English)

// DeriveProjectName builds a human-readable project name from the first
// words of a free-form prompt. Empty prompts fall back to "New Project".
func DeriveProjectName(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) == 0 {
		return "New Project"
	}
	if len(words) > maxNameWords {
		words = words[:maxNameWords]
	}
	return titleCaser.String(strings.Join(words, " "))
}
