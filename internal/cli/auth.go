// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"
)

// handleLogin signs in, or registers first when register is true. Email and
// password come from flags when given, otherwise from interactive prompts.
func (c *CLI) handleLogin(ctx context.Context, args *ArgParser, register bool) error {
	email := strings.TrimSpace(args.Flag("email"))
	password := args.Flag("password")

	if email == "" {
		if !IsStdinTTY() {
			return fmt.Errorf("%w: --email is required when stdin is not a terminal", errUsage)
		}
		var err error
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	if password == "" {
		if !IsStdinTTY() {
			return fmt.Errorf("%w: --password is required when stdin is not a terminal", errUsage)
		}
		var err error
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password must not be empty", errUsage)
	}

	var err error
	if register {
		err = c.Session.Register(ctx, email, password)
	} else {
		err = c.Session.Login(ctx, email, password)
	}
	if err != nil {
		return err
	}

	user := c.Session.User()
	if args.BoolFlag("json") {
		printJSON(c.out(), user)
		return nil
	}
	fmt.Fprintf(c.out(), "Signed in as %s\n", user.Email)
	return nil
}

// handleLogout discards the stored credential. Logout is purely local, so it
// succeeds even when the backend is down.
func (c *CLI) handleLogout(args *ArgParser) error {
	c.Session.Logout()
	if args.BoolFlag("json") {
		printJSON(c.out(), map[string]bool{"signed_out": true})
		return nil
	}
	fmt.Fprintln(c.out(), "Signed out.")
	return nil
}

// handleWhoami reports the signed-in account after restoring any stored
// credential.
func (c *CLI) handleWhoami(ctx context.Context, args *ArgParser) error {
	if !c.Session.Authenticated() {
		if err := c.Session.Restore(ctx); err != nil {
			return err
		}
	}
	user := c.Session.User()
	if user == nil {
		return fmt.Errorf("not signed in")
	}
	if args.BoolFlag("json") {
		printJSON(c.out(), user)
		return nil
	}
	fmt.Fprintf(c.out(), "%s (id %s)\n", user.Email, user.ID)
	return nil
}
