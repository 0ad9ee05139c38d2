package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/pakaura/paktui/internal/config"
	"github.com/pakaura/paktui/internal/model"
	"github.com/pakaura/paktui/internal/transcript"
)

func (m Model) bootstrapCmd() tea.Cmd {
	guard := m.guard
	if guard == nil {
		return func() tea.Msg { return BootstrapMsg{} }
	}
	return func() tea.Msg {
		user, err := guard.CurrentUser(context.Background())
		return BootstrapMsg{User: user, Err: err}
	}
}

func waitForExpiryCmd(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-ch
		if !ok {
			return nil
		}
		return SessionExpiredMsg{}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	guard := m.guard
	return func() tea.Msg {
		if guard != nil {
			guard.Logout(context.Background())
		}
		return LogoutDoneMsg{}
	}
}

// enterSession moves to the dashboard after a confirmed identity and kicks
// off the initial loads.
func (m Model) enterSession(user model.User) (Model, tea.Cmd) {
	m.User = &user
	if m.newBackend != nil {
		m.backend = m.newBackend(user.ID)
	}
	m.CurrentScreen = ScreenDashboard
	m.Status = StatusBar{}
	m.Dashboard.Loading = true
	m.Dashboard.LoadError = ""
	m.Dashboard.Gen++

	cmds := []tea.Cmd{m.loadTasksCmd(m.Dashboard.Gen)}
	if !m.Assistant.HistoryLoaded {
		cmds = append(cmds, m.loadHistoryCmd())
	}
	if m.cfg.ChatBackend == config.BackendLegacy {
		cmds = append(cmds, m.assistantStatusCmd())
	}
	m.log.Info("session established", zap.String("user_id", user.ID))
	return m, tea.Batch(cmds...)
}

// leaveSession drops all per-user state and returns to the login screen.
func (m Model) leaveSession(status StatusBar) Model {
	m.User = nil
	m.backend = nil
	m.CurrentScreen = ScreenLogin
	m.Status = status
	m.Login = newAuthForm()
	m.Register = newAuthForm()
	m.Dashboard = DashboardState{
		Mode:  ModeBrowse,
		Input: newLineInput("task title", model.MaxTitleLength),
	}
	m.Assistant.Transcript = transcript.New()
	m.Assistant.ConversationID = ""
	m.Assistant.HistoryLoaded = false
	m.Assistant.Status = nil
	m.Assistant.Input.Reset()
	m.refreshTranscriptView(false)
	return m
}

// quit tears down the expiry subscription and stops the program.
func (m Model) quit() (Model, tea.Cmd) {
	m.Quitting = true
	if m.expiryCancel != nil {
		m.expiryCancel()
	}
	return m, tea.Quit
}

func (m *Model) setStatus(text string, isError bool) {
	m.Status = StatusBar{Text: text, IsError: isError}
}

func (m Model) helpLines() []string {
	return []string{
		"dashboard: [j/k] move  [n] new  [e] edit  [d] delete  [space] toggle  [r] reload",
		"dashboard: [c] assistant  [ctrl+l] logout  [q] quit",
		"assistant: [enter] send  [alt+1..4] quick actions  [esc] back",
		"assistant: /clear /status /logout /help",
	}
}

func nowUTC() time.Time { return time.Now().UTC() }
