// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"

	"github.com/jeranaias/webmatic-tui/internal/model"
)

// =============================================================================
// CHAT ENDPOINTS
// =============================================================================

// chatHistory is the wire shape of the chat log for one project.
type chatHistory struct {
	Messages []model.Message `json:"messages"`
}

// appendChatRequest is the body for appending a message.
type appendChatRequest struct {
	Role    model.Role `json:"role"`
	Content string     `json:"content"`
}

// GetChat returns the authoritative ordered message list for a project.
func (c *Client) GetChat(ctx context.Context, projectID string) ([]model.Message, error) {
	var history chatHistory
	if err := c.get(ctx, "/projects/"+projectID+"/chat", &history); err != nil {
		return nil, err
	}
	return history.Messages, nil
}

// AppendChat records a message in the project's backend chat log.
func (c *Client) AppendChat(ctx context.Context, projectID string, msg model.Message) error {
	if !msg.Role.Valid() {
		return fmt.Errorf("invalid chat role %q", msg.Role)
	}
	req := appendChatRequest{Role: msg.Role, Content: msg.Content}
	return c.post(ctx, "/projects/"+projectID+"/chat", req, nil)
}
