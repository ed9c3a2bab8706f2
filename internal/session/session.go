// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jeranaias/webmatic-tui/internal/api"
	"github.com/jeranaias/webmatic-tui/internal/model"
)

// ErrNotAuthenticated is returned by operations that require a signed-in
// user. It is raised locally, before any network call.
var ErrNotAuthenticated = errors.New("not signed in")

// Backend is the slice of the API surface the session needs. *api.Client
// satisfies it; tests substitute fakes.
type Backend interface {
	Login(ctx context.Context, email, password string) (*api.TokenResponse, error)
	Register(ctx context.Context, email, password string) (*api.TokenResponse, error)
	Me(ctx context.Context) (*model.User, error)
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the authentication state shared by the whole client. It
// implements api.TokenSource so session changes reach the HTTP layer before
// the next request is issued.
type Session struct {
	mu      sync.RWMutex
	token   string
	user    *model.User
	store   *CredStore
	backend Backend
}

// New creates a session backed by the given credential store. The backend is
// attached separately because the API client itself needs the session as its
// token source.
func New(store *CredStore) *Session {
	return &Session{store: store}
}

// SetBackend attaches the API surface used for login, register and
// validation.
func (s *Session) SetBackend(b Backend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend = b
}

// Token implements api.TokenSource. Empty when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a validated user is signed in.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns the signed-in user, or nil.
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Restore loads any stored credential and validates it against the backend.
// An invalid or rejected credential is discarded from durable storage; the
// session then reports unauthenticated. Only genuine validation failures are
// treated this way: if the backend is simply unreachable the credential is
// kept for a later attempt.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil || token == "" {
		return nil // nothing stored, nothing to validate
	}

	s.mu.Lock()
	s.token = token
	backend := s.backend
	s.mu.Unlock()

	user, err := backend.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrBackendUnavailable) {
			// Keep the credential; stay signed out for now.
			s.mu.Lock()
			s.token = ""
			s.mu.Unlock()
			return err
		}
		s.discard()
		return fmt.Errorf("stored credential rejected: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Login signs in and persists the returned credential. Any failure is a
// generic authentication failure; the backend's message is carried verbatim.
func (s *Session) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, email, password, false)
}

// Register creates an account, then behaves exactly like Login.
func (s *Session) Register(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, email, password, true)
}

func (s *Session) authenticate(ctx context.Context, email, password string, register bool) error {
	s.mu.RLock()
	backend := s.backend
	s.mu.RUnlock()
	if backend == nil {
		return errors.New("session has no backend attached")
	}

	var (
		tr  *api.TokenResponse
		err error
	)
	if register {
		tr, err = backend.Register(ctx, email, password)
	} else {
		tr, err = backend.Login(ctx, email, password)
	}
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if tr.AccessToken == "" {
		return errors.New("authentication failed: backend returned no token")
	}

	s.mu.Lock()
	s.token = tr.AccessToken
	s.mu.Unlock()

	// Re-validate so the user record matches the new credential.
	user, err := backend.Me(ctx)
	if err != nil {
		s.discard()
		return fmt.Errorf("authentication failed: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if err := s.store.Save(tr.AccessToken); err != nil {
		// The session is still valid for this run; only persistence failed.
		return fmt.Errorf("signed in, but storing the credential failed: %w", err)
	}
	return nil
}

// Logout clears the credential locally and removes it from durable storage.
// It takes effect synchronously: no backend call is required to succeed.
func (s *Session) Logout() {
	s.discard()
}

func (s *Session) discard() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	s.store.Clear()
}
