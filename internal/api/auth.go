// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"

	"github.com/jeranaias/webmatic-tui/internal/model"
)

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// credentials is the request body for register and login.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the backend's reply to a successful register or login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Register creates a new account and returns its bearer credential.
func (c *Client) Register(ctx context.Context, email, password string) (*TokenResponse, error) {
	var tr TokenResponse
	if err := c.post(ctx, "/auth/register", credentials{Email: email, Password: password}, &tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var tr TokenResponse
	if err := c.post(ctx, "/auth/login", credentials{Email: email, Password: password}, &tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

// Me validates the current credential and returns the user it belongs to.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
