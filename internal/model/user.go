// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// User is the authenticated user record returned by /auth/me.
type User struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
}
