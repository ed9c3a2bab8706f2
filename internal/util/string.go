// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: Rune-aware truncation preserves multi-byte characters.
// These helpers count characters or terminal columns, never bytes, so
// UTF-8 strings are never cut mid-character.

// TruncateRunes truncates s to at most maxRunes characters, appending
// "..." when the string was shortened.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateWidth truncates s to at most maxWidth terminal columns,
// accounting for double-width (CJK) characters. Appends "..." when the
// string was shortened and there is room for it.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth > 3 {
		return runewidth.Truncate(s, maxWidth, "...")
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// CollapseSpace replaces all runs of whitespace (including newlines) with
// a single space and trims the ends. Used for single-line previews.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
