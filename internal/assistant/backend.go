// Package assistant adapts the two conversation contracts the backend
// exposes (the legacy intent-classified /ai/chat endpoint and the per-user
// agent /chat endpoints) behind one interface, so the chat screen neither
// knows nor cares which deployment it is talking to.
package assistant

import (
	"context"

	"github.com/google/uuid"

	"github.com/pakaura/paktui/internal/api"
	"github.com/pakaura/paktui/internal/model"
)

// Reply is a backend-agnostic assistant turn result.
type Reply struct {
	ConversationID string
	Content        string
	Intent         model.Intent
	Tasks          []model.Task
	Actions        []model.ActionTaken
}

// Backend is one conversation contract. History reports ok=false both when
// the deployment has no server-side history and when the fetch failed; the
// caller starts fresh either way, silently.
type Backend interface {
	// Send submits one turn. conversationID may be empty for a fresh
	// conversation; the returned Reply carries the id to use from now on.
	Send(ctx context.Context, conversationID, message string) (Reply, error)
	// History fetches the stored transcript, if the deployment keeps one.
	History(ctx context.Context, limit int) (conversationID string, msgs []model.ChatMessage, ok bool)
	// Clear deletes server-side history where it exists. Callers clear the
	// local transcript regardless of the returned error.
	Clear(ctx context.Context) error
}

// AgentBackend speaks the per-user /api/{userId}/chat contract.
type AgentBackend struct {
	client *api.Client
	userID string
}

func NewAgentBackend(client *api.Client, userID string) *AgentBackend {
	return &AgentBackend{client: client, userID: userID}
}

func (b *AgentBackend) Send(ctx context.Context, conversationID, message string) (Reply, error) {
	resp, err := b.client.SendChat(ctx, b.userID, message)
	if err != nil {
		return Reply{}, err
	}
	id := resp.ConversationID
	if id == "" {
		id = conversationID
	}
	return Reply{
		ConversationID: id,
		Content:        resp.Response,
		Actions:        resp.ActionsTaken,
	}, nil
}

func (b *AgentBackend) History(ctx context.Context, limit int) (string, []model.ChatMessage, bool) {
	history, err := b.client.GetChatHistory(ctx, b.userID, limit)
	if err != nil || len(history.Messages) == 0 {
		return "", nil, false
	}
	msgs := make([]model.ChatMessage, 0, len(history.Messages))
	for _, m := range history.Messages {
		role := model.Role(m.Role)
		if role != model.RoleUser && role != model.RoleAssistant {
			// System entries are backend bookkeeping, not transcript turns.
			continue
		}
		msgs = append(msgs, model.ChatMessage{
			ID:      uuid.NewString(),
			Role:    role,
			Content: m.Content,
		})
	}
	return history.ConversationID, msgs, true
}

func (b *AgentBackend) Clear(ctx context.Context) error {
	_, err := b.client.ClearChatHistory(ctx, b.userID)
	return err
}

// LegacyBackend speaks the /api/v1/ai/chat contract. Conversation ids are
// minted client-side, and there is no server-side history to load or clear.
type LegacyBackend struct {
	client *api.Client
}

func NewLegacyBackend(client *api.Client) *LegacyBackend {
	return &LegacyBackend{client: client}
}

func (b *LegacyBackend) Send(ctx context.Context, conversationID, message string) (Reply, error) {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	resp, err := b.client.SendAssistantMessage(ctx, message, conversationID)
	if err != nil {
		return Reply{}, err
	}
	reply := Reply{
		ConversationID: conversationID,
		Content:        resp.Message,
		Intent:         resp.Intent,
	}
	if resp.Data != nil {
		if resp.Data.Task != nil {
			reply.Tasks = []model.Task{*resp.Data.Task}
		}
		if len(resp.Data.Tasks) > 0 {
			reply.Tasks = resp.Data.Tasks
		}
	}
	return reply, nil
}

func (b *LegacyBackend) History(ctx context.Context, limit int) (string, []model.ChatMessage, bool) {
	return "", nil, false
}

func (b *LegacyBackend) Clear(ctx context.Context) error {
	return nil
}

// Status reports the AI provider configuration for the status badge. Only
// the legacy deployment exposes this endpoint.
func (b *LegacyBackend) Status(ctx context.Context) (api.AssistantStatus, error) {
	return b.client.GetAssistantStatus(ctx)
}
