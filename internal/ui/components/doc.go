// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable TUI widgets: transient toast
// notifications, the bottom status bar, and syntax-highlighted rendering
// of generated files.
package components
