// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/webmatic-tui/internal/ui/components"
)

func (a *App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyTab:
		a.loginFocus = (a.loginFocus + 1) % 2
		if a.loginFocus == 0 {
			a.emailInput.Focus()
			a.passInput.Blur()
		} else {
			a.emailInput.Blur()
			a.passInput.Focus()
		}
		return a, nil

	case msg.Type == tea.KeyCtrlT:
		a.register = !a.register
		return a, nil

	case key.Matches(msg, a.keys.Enter):
		if a.authBusy {
			return a, nil
		}
		email := strings.TrimSpace(a.emailInput.Value())
		password := a.passInput.Value()
		if email == "" || password == "" {
			return a, a.toast(components.NewErrorToast("email and password are required"))
		}
		a.authBusy = true
		return a, a.loginCmd(email, password, a.register)
	}

	var cmd tea.Cmd
	if a.loginFocus == 0 {
		a.emailInput, cmd = a.emailInput.Update(msg)
	} else {
		a.passInput, cmd = a.passInput.Update(msg)
	}
	return a, cmd
}

func (a *App) viewLogin() string {
	var b strings.Builder

	b.WriteString(a.theme.Brand.Render("WEBMATIC"))
	b.WriteString("  ")
	if a.register {
		b.WriteString(a.theme.Muted.Render("create an account"))
	} else {
		b.WriteString(a.theme.Muted.Render("sign in"))
	}
	b.WriteString("\n\n")

	b.WriteString(a.theme.InputContainer.Render(a.emailInput.View()))
	b.WriteString("\n")
	b.WriteString(a.theme.InputContainer.Render(a.passInput.View()))
	b.WriteString("\n\n")

	if a.authBusy {
		b.WriteString(a.spin.View() + " authenticating")
	} else {
		b.WriteString(a.theme.Help.Render("enter sign in · tab switch field · ctrl+t toggle register · ctrl+c quit"))
	}

	box := a.theme.Panel.Render(b.String())
	if a.width > 0 && a.height > 0 {
		return lipgloss.Place(a.width, a.height-2, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
