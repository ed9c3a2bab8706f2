// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package directory maintains the signed-in user's project list.
//
// The list mirrors backend state at load time and is never re-sorted
// locally. Mutations are pessimistic: a project leaves the visible list
// only after the backend confirms its deletion, and a rename shows the
// new name only once the backend accepted it. Validation failures are
// raised locally, before any network call.
package directory
