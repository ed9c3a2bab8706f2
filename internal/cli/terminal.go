// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// IsStdinTTY reports whether stdin is an interactive terminal.
func IsStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY reports whether stdout is an interactive terminal.
// Used to decide between human-readable and plain output.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// promptLine asks for a single line of input with line-editing support.
func promptLine(prompt string) (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	input, err := line.Prompt(prompt)
	if err != nil {
		if err == liner.ErrPromptAborted {
			return "", fmt.Errorf("aborted")
		}
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// promptPassword asks for a password without echoing it.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	// SECURITY: read without echo so the password never lands in scrollback.
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// confirm asks a yes/no question and returns true only on an explicit yes.
func confirm(prompt string) bool {
	answer, err := promptLine(prompt + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
