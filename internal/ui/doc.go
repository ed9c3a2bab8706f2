// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the interactive terminal interface.
//
// A single root model drives four pages (sign-in, project directory,
// project workspace, templates) over shared session, directory and
// workspace state. All backend calls run as commands off the update
// loop; each resolves into exactly one message, and no call is retried
// automatically. Failures surface as transient toasts and the affected
// optimistic state is reverted, so the application never wedges on a
// single failed request.
package ui
