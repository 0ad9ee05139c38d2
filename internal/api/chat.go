package api

import (
	"context"
	"fmt"

	"github.com/pakaura/paktui/internal/model"
)

type chatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the agent backend's reply: free-form text plus the tool
// calls it executed, and the server-issued conversation id.
type ChatResponse struct {
	Response       string              `json:"response"`
	ActionsTaken   []model.ActionTaken `json:"actions_taken"`
	ConversationID string              `json:"conversation_id"`
}

// ChatHistoryMessage is one stored transcript entry returned by the backend.
type ChatHistoryMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	ToolCalls map[string]any `json:"tool_calls,omitempty"`
}

// ChatHistory is the stored conversation for a user.
type ChatHistory struct {
	ConversationID string               `json:"conversation_id"`
	Messages       []ChatHistoryMessage `json:"messages"`
	Count          int                  `json:"count"`
}

// ChatClearResult reports the outcome of a history deletion.
type ChatClearResult struct {
	Message string `json:"message"`
	Cleared bool   `json:"cleared"`
}

// SendChat submits one turn to the agent backend for the given user.
func (c *Client) SendChat(ctx context.Context, userID, message string) (ChatResponse, error) {
	var resp ChatResponse
	err := c.post(ctx, fmt.Sprintf("/api/%s/chat", userID), chatRequest{Message: message}, &resp)
	return resp, err
}

// GetChatHistory fetches up to limit stored messages for the user.
func (c *Client) GetChatHistory(ctx context.Context, userID string, limit int) (ChatHistory, error) {
	var history ChatHistory
	err := c.get(ctx, fmt.Sprintf("/api/%s/chat/history?limit=%d", userID, limit), &history)
	return history, err
}

// ClearChatHistory deletes the user's stored conversation.
func (c *Client) ClearChatHistory(ctx context.Context, userID string) (ChatClearResult, error) {
	var result ChatClearResult
	err := c.delete(ctx, fmt.Sprintf("/api/%s/chat/history", userID), &result)
	return result, err
}
