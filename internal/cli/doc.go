// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-interactive command surface: auth,
// project and template management, generation, and backend health from
// scripts or a plain shell. The interactive TUI lives in internal/ui;
// both share the same session, directory and workspace components.
package cli
