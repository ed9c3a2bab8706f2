// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures exchanged with the Webmatic
// backend: projects, plans, generated artifacts, chat messages, templates,
// and user records.
//
// All types mirror the JSON shapes of the /api endpoints. The client never
// invents fields the backend does not return; optional backend fields are
// pointers or omitempty values so that absence round-trips faithfully.
package model
