// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workspace holds the state of one open project: metadata, plan,
// chat transcript and generated artifacts.
//
// The workspace is a small state machine (loading, ready, generating,
// generation failed) plus the generation orchestrator. Opening a project
// discards all state of the previous one; metadata, transcript and
// directory loads proceed independently so a failure in one never blocks
// the others.
//
// Generation is split in three phases so the network call can run off the
// UI loop: BeginGenerate validates locally and appends the user message
// optimistically, RunGenerate talks to the backend, and ApplyGenerate
// reconciles the outcome. The ticket handed between phases carries the
// project id, so a result arriving after the user switched projects is
// detected and discarded instead of mutating the wrong workspace.
package workspace
