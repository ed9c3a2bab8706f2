// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the application:
// crash-safe file writes, width-aware string truncation for terminal
// rendering, and project name derivation from free-form prompts.
package util
