package update

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pakaura/paktui/internal/api"
	"github.com/pakaura/paktui/internal/assistant"
	"github.com/pakaura/paktui/internal/model"
)

type fakeBackend struct {
	reply     assistant.Reply
	sendErr   error
	historyID string
	history   []model.ChatMessage
	historyOK bool
	cleared   int
}

func (f *fakeBackend) Send(ctx context.Context, conversationID, message string) (assistant.Reply, error) {
	return f.reply, f.sendErr
}

func (f *fakeBackend) History(ctx context.Context, limit int) (string, []model.ChatMessage, bool) {
	return f.historyID, f.history, f.historyOK
}

func (f *fakeBackend) Clear(ctx context.Context) error {
	f.cleared++
	return nil
}

func assistantModel(backend assistant.Backend) Model {
	m := newTestModel()
	updated, _ := m.Update(BootstrapMsg{User: &model.User{ID: "u1", Email: "a@b.com"}})
	next := updated.(Model)
	next.backend = backend
	updated, _ = next.Update(keyRunes("c"))
	return updated.(Model)
}

func submitMessage(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	updated, _ := m.Update(keyRunes(text))
	next := updated.(Model)
	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func placeholderID(t *testing.T, m Model) string {
	t.Helper()
	msgs := m.Assistant.Transcript.Messages()
	if len(msgs) == 0 || !msgs[len(msgs)-1].Loading {
		t.Fatalf("expected trailing loading placeholder, got %+v", msgs)
	}
	return msgs[len(msgs)-1].ID
}

func TestSubmitAppendsUserEntryAndPlaceholder(t *testing.T) {
	m := assistantModel(&fakeBackend{})
	next, cmd := submitMessage(t, m, "  show my tasks  ")
	if cmd == nil {
		t.Fatal("expected send request")
	}
	msgs := next.Assistant.Transcript.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected user entry plus placeholder, got %d", len(msgs))
	}
	if msgs[0].Content != "show my tasks" {
		t.Fatalf("expected trimmed content, got %q", msgs[0].Content)
	}
	if !next.Assistant.Transcript.InFlight() {
		t.Fatal("expected exchange in flight")
	}
	if next.Assistant.Input.Value() != "" {
		t.Fatal("expected input cleared on submit")
	}
}

func TestSubmitIsSingleFlight(t *testing.T) {
	m := assistantModel(&fakeBackend{})
	next, _ := submitMessage(t, m, "first")
	next, cmd := submitMessage(t, next, "second")
	if cmd != nil {
		t.Fatal("second submit while in flight must not issue a request")
	}
	if next.Assistant.Transcript.Len() != 2 {
		t.Fatalf("expected transcript unchanged, got %d entries", next.Assistant.Transcript.Len())
	}
}

func TestReplyResolvesPlaceholderInPlace(t *testing.T) {
	m := assistantModel(&fakeBackend{})
	next, _ := submitMessage(t, m, "hello")
	id := placeholderID(t, next)

	reply := assistant.Reply{
		ConversationID: "conv-1",
		Content:        "Here are your tasks",
		Intent:         model.IntentList,
		Actions:        []model.ActionTaken{{Tool: "list_tasks"}},
	}
	updated, _ := next.Update(AssistantReplyMsg{PlaceholderID: id, Reply: reply})
	next = updated.(Model)

	msgs := next.Assistant.Transcript.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(msgs))
	}
	last := msgs[1]
	if last.ID != id {
		t.Fatal("reply must keep the placeholder identifier")
	}
	if last.Loading || last.Content != "Here are your tasks" {
		t.Fatalf("unexpected resolved entry: %+v", last)
	}
	if next.Assistant.ConversationID != "conv-1" {
		t.Fatalf("expected conversation id recorded, got %q", next.Assistant.ConversationID)
	}
	if next.Assistant.Transcript.InFlight() {
		t.Fatal("expected gate reopened")
	}
}

func TestReplyWithActionsReloadsTasks(t *testing.T) {
	m := assistantModel(&fakeBackend{})
	next, _ := submitMessage(t, m, "add a task")
	id := placeholderID(t, next)
	gen := next.Dashboard.Gen

	reply := assistant.Reply{Content: "Done", Actions: []model.ActionTaken{{Tool: "add_task"}}}
	updated, cmd := next.Update(AssistantReplyMsg{PlaceholderID: id, Reply: reply})
	next = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a task reload after a mutating action")
	}
	if next.Dashboard.Gen != gen+1 {
		t.Fatal("expected a new load generation")
	}
}

func TestUnauthorizedReplyDropsPlaceholderSilently(t *testing.T) {
	m := assistantModel(&fakeBackend{})
	next, _ := submitMessage(t, m, "hello")
	id := placeholderID(t, next)

	unauthorized := &api.Error{Status: 401, Code: "UNAUTHORIZED", Message: "session expired"}
	updated, _ := next.Update(AssistantReplyMsg{PlaceholderID: id, Err: unauthorized})
	next = updated.(Model)

	msgs := next.Assistant.Transcript.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected only the user entry to remain, got %d", len(msgs))
	}
	if next.Status.Text != "" {
		t.Fatalf("expiry handling is silent here, got status %+v", next.Status)
	}
}

func TestFailedReplyMarksEntryAndStatus(t *testing.T) {
	m := assistantModel(&fakeBackend{})
	next, _ := submitMessage(t, m, "hello")
	id := placeholderID(t, next)

	updated, _ := next.Update(AssistantReplyMsg{PlaceholderID: id, Err: errors.New("boom")})
	next = updated.(Model)

	msgs := next.Assistant.Transcript.Messages()
	last := msgs[len(msgs)-1]
	if !last.Err || last.Loading {
		t.Fatalf("expected failed entry, got %+v", last)
	}
	if !next.Status.IsError {
		t.Fatal("expected error status")
	}
	if next.Assistant.Transcript.InFlight() {
		t.Fatal("expected gate reopened after failure")
	}
}

func TestHistoryLoadedWholesale(t *testing.T) {
	backend := &fakeBackend{}
	m := assistantModel(backend)
	history := []model.ChatMessage{
		{ID: "h1", Role: model.RoleUser, Content: "earlier"},
		{ID: "h2", Role: model.RoleAssistant, Content: "reply"},
	}
	updated, _ := m.Update(HistoryLoadedMsg{ConversationID: "conv-9", Msgs: history, OK: true})
	next := updated.(Model)
	if next.Assistant.Transcript.Len() != 2 {
		t.Fatalf("expected history loaded, got %d entries", next.Assistant.Transcript.Len())
	}
	if next.Assistant.ConversationID != "conv-9" {
		t.Fatalf("expected conversation id from history, got %q", next.Assistant.ConversationID)
	}
}

func TestHistoryLoadFailureStartsFresh(t *testing.T) {
	m := assistantModel(&fakeBackend{})
	updated, _ := m.Update(HistoryLoadedMsg{OK: false})
	next := updated.(Model)
	if !next.Assistant.Transcript.IsEmpty() {
		t.Fatal("expected empty transcript on silent fallback")
	}
	if next.Status.Text != "" {
		t.Fatalf("history fallback is silent, got %+v", next.Status)
	}
}

func TestClearCommandEmptiesTranscript(t *testing.T) {
	backend := &fakeBackend{}
	m := assistantModel(backend)
	m.Assistant.Transcript.Load([]model.ChatMessage{{ID: "h1", Role: model.RoleUser, Content: "x"}})

	updated, _ := m.Update(keyRunes("/clear"))
	next := updated.(Model)
	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if !next.Assistant.Transcript.IsEmpty() {
		t.Fatal("expected transcript cleared locally")
	}
	if next.Assistant.ConversationID != "" {
		t.Fatal("expected conversation id reset")
	}
	if cmd == nil {
		t.Fatal("expected server-side clear request")
	}
}

func TestUnknownSlashCommandSetsErrorStatus(t *testing.T) {
	m := assistantModel(&fakeBackend{})
	updated, _ := m.Update(keyRunes("/dance"))
	next := updated.(Model)
	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if cmd != nil {
		t.Fatal("unknown command must not issue a request")
	}
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestQuickActionSubmits(t *testing.T) {
	m := assistantModel(&fakeBackend{})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}, Alt: true})
	next := updated.(Model)
	if cmd == nil {
		t.Fatal("expected quick action to send")
	}
	msgs := next.Assistant.Transcript.Messages()
	if len(msgs) == 0 || msgs[0].Content != "Show all my tasks" {
		t.Fatalf("expected first quick action submitted, got %+v", msgs)
	}
}

func TestEscapeReturnsToDashboardAndReloads(t *testing.T) {
	m := assistantModel(&fakeBackend{})
	gen := m.Dashboard.Gen
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next := updated.(Model)
	if next.CurrentScreen != ScreenDashboard {
		t.Fatalf("expected dashboard, got %q", next.CurrentScreen)
	}
	if cmd == nil {
		t.Fatal("expected a task reload on dashboard re-entry")
	}
	if next.Dashboard.Gen != gen+1 || !next.Dashboard.Loading {
		t.Fatal("expected a new load generation in flight")
	}
}
