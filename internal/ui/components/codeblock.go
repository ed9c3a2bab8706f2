// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/webmatic-tui/internal/model"
	"github.com/jeranaias/webmatic-tui/internal/ui/styles"
)

// USABILITY: Syntax highlighting for better readability of generated files

// RenderArtifactFile renders one generated file with a path header and
// syntax-highlighted content. The lexer is chosen from the file path.
func RenderArtifactFile(theme *styles.Theme, file model.ArtifactFile) string {
	var b strings.Builder
	b.WriteString(theme.PanelTitle.Render(file.Path))
	b.WriteString("\n")
	b.WriteString(highlightFile(file.Path, file.Content))
	return b.String()
}

// highlightFile applies chroma highlighting, falling back to plain text
// when the content cannot be tokenized.
func highlightFile(path, content string) string {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return content
	}
	return buf.String()
}
