package api

import (
	"context"

	"github.com/pakaura/paktui/internal/model"
)

// AssistantRequest is the legacy /ai/chat payload. The conversation id is
// generated client-side and kept stable across turns.
type AssistantRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// AssistantData is the optional structured payload on an intent-classified
// reply.
type AssistantData struct {
	Task   *model.Task  `json:"task,omitempty"`
	Tasks  []model.Task `json:"tasks,omitempty"`
	Filter string       `json:"filter,omitempty"`
	Count  int          `json:"count,omitempty"`
}

// AssistantAction describes what the backend did (or proposes) for a turn.
type AssistantAction struct {
	Type     string         `json:"type"`
	Endpoint string         `json:"endpoint,omitempty"`
	Method   string         `json:"method,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// AssistantResponse is the legacy backend's reply shape.
type AssistantResponse struct {
	Intent  model.Intent    `json:"intent"`
	Message string          `json:"message"`
	Action  AssistantAction `json:"action"`
	Data    *AssistantData  `json:"data"`
}

// AssistantStatus reports whether the AI service is configured or running in
// demo mode.
type AssistantStatus struct {
	Provider   string `json:"provider"`
	DemoMode   bool   `json:"demo_mode"`
	Configured bool   `json:"configured"`
	Message    string `json:"message"`
}

// SendAssistantMessage submits one turn to the legacy intent backend.
func (c *Client) SendAssistantMessage(ctx context.Context, message, conversationID string) (AssistantResponse, error) {
	var resp AssistantResponse
	err := c.post(ctx, "/api/v1/ai/chat", AssistantRequest{Message: message, ConversationID: conversationID}, &resp)
	return resp, err
}

// GetAssistantStatus fetches the AI provider status.
func (c *Client) GetAssistantStatus(ctx context.Context) (AssistantStatus, error) {
	var status AssistantStatus
	err := c.get(ctx, "/api/v1/ai/status", &status)
	return status, err
}
