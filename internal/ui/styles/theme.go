// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application. It detects the
// terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// Application container
	App    lipgloss.Style
	Header lipgloss.Style
	Brand  lipgloss.Style

	// Message bubbles
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	PendingBubble   lipgloss.Style

	// Panels
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	// Project list
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemStatus   lipgloss.Style

	// Input
	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusSegment lipgloss.Style
	StatusGood    lipgloss.Style
	StatusBad     lipgloss.Style

	// Notifications
	ToastInfo  lipgloss.Style
	ToastWarn  lipgloss.Style
	ToastError lipgloss.Style

	// Misc
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

// NewTheme creates a theme tuned to the current terminal.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextPrimary).
		Padding(0, 1)

	t.Brand = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Violet).
		Padding(0, 1)

	t.PendingBubble = t.UserBubble.
		Foreground(TextMuted).
		BorderForeground(Overlay)

	t.Panel = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PanelTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.ActiveTab = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Violet).
		Padding(0, 2)

	t.InactiveTab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)

	t.ListItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ListItemSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Violet).
		Padding(0, 1)

	t.ListItemStatus = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.InputContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusSegment = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusGood = lipgloss.NewStyle().
		Foreground(Emerald)

	t.StatusBad = lipgloss.NewStyle().
		Foreground(Rose)

	t.ToastInfo = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Padding(0, 1)

	t.ToastWarn = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Amber).
		Padding(0, 1)

	t.ToastError = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Rose).
		Padding(0, 1)

	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
	t.Success = lipgloss.NewStyle().Foreground(Emerald)
	t.Warning = lipgloss.NewStyle().Foreground(Amber)
	t.Error = lipgloss.NewStyle().Foreground(Rose)
	t.Help = lipgloss.NewStyle().Foreground(TextMuted)
}

// SetSize records the terminal dimensions for layout decisions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// Narrow reports whether the terminal is too narrow for a split layout.
func (t *Theme) Narrow() bool {
	return t.Width > 0 && t.Width < 100
}
