// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the JSON-over-HTTP client for the Webmatic backend.
//
// The backend is mounted under an /api prefix and performs all real work:
// authentication, planning, code generation, persistence. This package only
// moves JSON; it never retries failed calls (a failed operation is surfaced
// once and requires an explicit user-initiated retry), and it never caches
// responses.
//
// Authentication is a bearer token supplied by an injectable TokenSource, so
// session changes take effect on the very next request with no hidden global
// state.
package api
