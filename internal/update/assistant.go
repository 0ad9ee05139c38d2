package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/pakaura/paktui/internal/api"
	"github.com/pakaura/paktui/internal/assistant"
	"github.com/pakaura/paktui/internal/commands"
	"github.com/pakaura/paktui/internal/config"
	"github.com/pakaura/paktui/internal/model"
	"github.com/pakaura/paktui/internal/views"
)

func (m Model) sendAssistantCmd(conversationID, message, placeholderID string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		reply, err := backend.Send(context.Background(), conversationID, message)
		return AssistantReplyMsg{PlaceholderID: placeholderID, Reply: reply, Err: err}
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	backend := m.backend
	limit := m.cfg.HistoryLimit
	if backend == nil {
		return nil
	}
	return func() tea.Msg {
		conversationID, msgs, ok := backend.History(context.Background(), limit)
		return HistoryLoadedMsg{ConversationID: conversationID, Msgs: msgs, OK: ok}
	}
}

func (m Model) clearHistoryCmd() tea.Cmd {
	backend := m.backend
	if backend == nil {
		return nil
	}
	return func() tea.Msg {
		return HistoryClearedMsg{Err: backend.Clear(context.Background())}
	}
}

func (m Model) assistantStatusCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		status, err := client.GetAssistantStatus(context.Background())
		return AssistantStatusMsg{Status: status, Err: err}
	}
}

func (m Model) handleAssistantKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Alt && msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(quickActions) {
			return m.submitAssistantMessage(quickActions[idx])
		}
	}

	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc":
		m.CurrentScreen = ScreenDashboard
		m.Assistant.Input.Blur()
		// Fresh fetch per dashboard activation; the assistant may have
		// changed tasks without reporting an action.
		return m.reloadTasks()
	case m.Keys.Help:
		if m.Assistant.Input.Value() == "" {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
	case "enter":
		value := m.Assistant.Input.Value()
		if commands.IsCommand(value) {
			return m.runSlashCommand(value)
		}
		return m.submitAssistantMessage(value)
	case "pgup", "pgdown", "ctrl+u":
		var cmd tea.Cmd
		m.Assistant.Viewport, cmd = m.Assistant.Viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Assistant.Input, cmd = m.Assistant.Input.Update(msg)
	return m, cmd
}

func (m Model) submitAssistantMessage(value string) (Model, tea.Cmd) {
	if m.backend == nil {
		return m, nil
	}
	trimmed, placeholderID, ok := m.Assistant.Transcript.Begin(value)
	if !ok {
		return m, nil
	}
	m.Assistant.Input.Reset()
	m.refreshTranscriptView(true)
	return m, m.sendAssistantCmd(m.Assistant.ConversationID, trimmed, placeholderID)
}

func (m Model) runSlashCommand(value string) (Model, tea.Cmd) {
	cmd, err := commands.Parse(value)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.Assistant.Input.Reset()

	var next tea.Cmd
	res, execErr := commands.Execute(cmd, commands.Handlers{
		Clear: func() (commands.Result, error) {
			m.Assistant.Transcript.Reset()
			m.Assistant.ConversationID = ""
			m.refreshTranscriptView(false)
			next = m.clearHistoryCmd()
			return commands.Result{Message: "conversation cleared"}, nil
		},
		Status: func() (commands.Result, error) {
			if m.cfg.ChatBackend == config.BackendLegacy {
				next = m.assistantStatusCmd()
				return commands.Result{Message: "checking assistant status"}, nil
			}
			return commands.Result{Message: "assistant ready"}, nil
		},
		Logout: func() (commands.Result, error) {
			next = m.logoutCmd()
			return commands.Result{Message: "signing out"}, nil
		},
		Help: func() (commands.Result, error) {
			m.HelpVisible = true
			return commands.Result{Message: "help shown"}, nil
		},
	})
	if execErr != nil {
		m.setStatus(execErr.Error(), true)
		return m, nil
	}
	m.setStatus(res.Message, false)
	return m, next
}

func (m Model) handleAssistantReply(msg AssistantReplyMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		if api.IsUnauthorized(msg.Err) {
			// The expiry broadcast routes the UI back to login; the
			// half-finished exchange just disappears.
			m.Assistant.Transcript.Drop(msg.PlaceholderID)
			m.refreshTranscriptView(false)
			return m, nil
		}
		m.Assistant.Transcript.Fail(msg.PlaceholderID, api.Message(msg.Err))
		m.setStatus(api.Message(msg.Err), true)
		m.refreshTranscriptView(true)
		return m, nil
	}

	m.Assistant.ConversationID = msg.Reply.ConversationID
	m.Assistant.Transcript.Resolve(msg.PlaceholderID, replyToChatMessage(msg.Reply))
	m.refreshTranscriptView(true)

	if len(msg.Reply.Actions) > 0 {
		// The assistant changed tasks server-side; reconcile the list.
		next, cmd := m.reloadTasks()
		return next, cmd
	}
	return m, nil
}

func replyToChatMessage(reply assistant.Reply) model.ChatMessage {
	return model.ChatMessage{
		Role:      model.RoleAssistant,
		Content:   reply.Content,
		Timestamp: nowUTC(),
		Intent:    reply.Intent,
		Tasks:     reply.Tasks,
		Actions:   reply.Actions,
	}
}

func (m Model) handleHistoryLoaded(msg HistoryLoadedMsg) (Model, tea.Cmd) {
	m.Assistant.HistoryLoaded = true
	if !msg.OK {
		// No stored history, or the fetch failed; either way start fresh.
		return m, nil
	}
	m.Assistant.Transcript.Load(msg.Msgs)
	m.Assistant.ConversationID = msg.ConversationID
	m.refreshTranscriptView(false)
	m.Assistant.Viewport.GotoBottom()
	return m, nil
}

func (m Model) handleHistoryCleared(msg HistoryClearedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		// Local transcript is already empty; the server copy is best effort.
		m.log.Warn("history clear failed", zap.Error(msg.Err))
	}
	return m, nil
}

func (m Model) handleAssistantStatus(msg AssistantStatusMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn("assistant status fetch failed", zap.Error(msg.Err))
		if !api.IsUnauthorized(msg.Err) {
			m.Assistant.Status = &api.AssistantStatus{DemoMode: true}
		}
		return m, nil
	}
	status := msg.Status
	m.Assistant.Status = &status
	return m, nil
}

// refreshTranscriptView rebuilds the viewport content. When autoScroll is
// set and the reader was already near the bottom, the view follows the
// newest entry; a reader scrolled up stays put.
func (m *Model) refreshTranscriptView(autoScroll bool) {
	nearBottom := m.Assistant.Viewport.AtBottom() || m.Assistant.Viewport.ScrollPercent() > 0.9
	m.Assistant.Viewport.SetContent(views.RenderTranscript(m.transcriptData()))
	if autoScroll && nearBottom {
		m.Assistant.Viewport.GotoBottom()
	}
}

func (m Model) transcriptData() []views.AssistantMessageData {
	now := nowUTC()
	msgs := m.Assistant.Transcript.Messages()
	data := make([]views.AssistantMessageData, 0, len(msgs))
	for _, msg := range msgs {
		entry := views.AssistantMessageData{
			Role:    string(msg.Role),
			Content: msg.Content,
			Time:    model.FormatMessageTime(msg.Timestamp, now),
			Intent:  string(msg.Intent),
			Loading: msg.Loading,
			Err:     msg.Err,
		}
		for _, action := range msg.Actions {
			entry.Actions = append(entry.Actions, model.ToolDisplayName(action.Tool))
		}
		for _, task := range msg.Tasks {
			entry.Tasks = append(entry.Tasks, views.TaskItemData{
				ID:        task.ID,
				Title:     task.Title,
				Completed: task.Completed,
			})
		}
		data = append(data, entry)
	}
	return data
}

func (m Model) renderAssistantView() string {
	badge := ""
	if status := m.Assistant.Status; status != nil {
		if status.DemoMode {
			badge = "demo mode"
		} else if status.Configured {
			badge = fmt.Sprintf("%s ready", status.Provider)
		} else {
			badge = "not configured"
		}
	}
	data := views.AssistantPanelData{
		Badge:      badge,
		Transcript: m.Assistant.Viewport.View(),
		InputView:  m.Assistant.Input.View(),
		InFlight:   m.Assistant.Transcript.InFlight(),
		HelpText:   "actions: [enter] send | [esc] back | /clear /status /logout /help",
	}
	if m.Assistant.Transcript.IsEmpty() {
		data.QuickActions = quickActions
	}
	return views.RenderAssistantPanel(data)
}
