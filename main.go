// webmatic - a terminal client for the Webmatic app builder.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/webmatic-tui/internal/api"
	"github.com/jeranaias/webmatic-tui/internal/cli"
	"github.com/jeranaias/webmatic-tui/internal/config"
	"github.com/jeranaias/webmatic-tui/internal/directory"
	"github.com/jeranaias/webmatic-tui/internal/session"
	"github.com/jeranaias/webmatic-tui/internal/transcript"
	"github.com/jeranaias/webmatic-tui/internal/ui"
	"github.com/jeranaias/webmatic-tui/internal/workspace"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

// deps bundles the shared components behind both front ends.
type deps struct {
	cfg    *config.Config
	client *api.Client
	sess   *session.Session
	dir    *directory.Directory
	ws     *workspace.Workspace
	cache  *transcript.Cache
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.Default()
	}
	if backend := args.Flag("backend"); backend != "" {
		cfg.Backend.URL = backend
	}

	d, err := buildDeps(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if d.cache != nil {
			d.cache.Close()
		}
	}()

	if cmd == cli.CmdTUI {
		runTUI(d)
		return
	}

	c := &cli.CLI{
		Config:    d.cfg,
		Client:    d.client,
		Session:   d.sess,
		Directory: d.dir,
		Workspace: d.ws,
	}
	code := c.Run(context.Background(), cmd, args)
	if d.cache != nil {
		d.cache.Close()
	}
	os.Exit(code)
}

// buildDeps wires the session, API client and stateful components.
func buildDeps(cfg *config.Config) (*deps, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	store, err := session.NewCredStore(dir)
	if err != nil {
		return nil, err
	}

	sess := session.New(store)
	client := api.NewClient(cfg.Backend.URL, sess).
		WithTimeout(time.Duration(cfg.Backend.TimeoutSecs) * time.Second)
	sess.SetBackend(client)

	var cache *transcript.Cache
	if cfg.Cache.Enabled {
		path, pathErr := cfg.CachePath()
		if pathErr == nil {
			// A broken cache degrades to cold starts, never to a dead client.
			if c, openErr := transcript.OpenCache(path); openErr == nil {
				cache = c
			} else {
				fmt.Fprintf(os.Stderr, "Warning: transcript cache unavailable: %v\n", openErr)
			}
		}
	}

	return &deps{
		cfg:    cfg,
		client: client,
		sess:   sess,
		dir:    directory.New(client),
		ws:     workspace.New(client, sess, cache),
		cache:  cache,
	}, nil
}

// runTUI starts the interactive interface with config hot reload.
func runTUI(d *deps) {
	app := ui.NewApp(d.cfg, d.client, d.sess, d.dir, d.ws)
	program := tea.NewProgram(app, tea.WithAltScreen())

	if path, err := config.ConfigPathTOML(); err == nil {
		watcher, werr := config.NewWatcher(path, func(next *config.Config) {
			program.Send(ui.ConfigReloadedMsg{Config: next})
		})
		if werr == nil && watcher.Watch() == nil {
			defer watcher.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
