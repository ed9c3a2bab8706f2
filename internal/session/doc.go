// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks whether a user is authenticated and owns the bearer
// credential used on backend requests.
//
// The Session is an explicit, injectable object: the HTTP client reads the
// token from it per request, and everything that depends on auth state
// receives the Session rather than consulting a process-wide singleton. The
// durable credential store is read once at startup and written only by
// explicit login/logout actions.
package session
