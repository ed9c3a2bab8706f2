// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript maintains the per-project chat transcript.
//
// The in-memory Transcript is the single rendering source for the chat
// pane. Messages sent while a generation is in flight are appended
// optimistically under a unique handle; the handle later confirms the
// entry or rolls back exactly that entry, leaving the rest of the
// transcript untouched.
//
// A SQLite-backed Cache warm-starts the pane: the last known transcript
// for a project is shown immediately on open, then replaced wholesale by
// backend truth when the fetch completes.
package transcript
