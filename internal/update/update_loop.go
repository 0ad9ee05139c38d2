package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pakaura/paktui/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bootstrapCmd(), waitForExpiryCmd(m.expiryCh))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		switch m.CurrentScreen {
		case ScreenLoading:
			if typed.String() == "ctrl+c" {
				return m.quit()
			}
			return m, nil
		case ScreenLogin, ScreenRegister:
			return m.handleAuthKey(typed)
		case ScreenDashboard:
			return m.handleDashboardKey(typed)
		case ScreenAssistant:
			return m.handleAssistantKey(typed)
		}
	case tea.WindowSizeMsg:
		m.Assistant.Viewport.Width = typed.Width - 6
		m.Assistant.Viewport.Height = typed.Height - 8
		m.refreshTranscriptView(false)
		return m, nil
	case BootstrapMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.CurrentScreen = ScreenLogin
			m.setStatus(typed.Err.Error(), true)
			return m, nil
		}
		if typed.User == nil {
			m.CurrentScreen = ScreenLogin
			return m, nil
		}
		return m.enterSession(*typed.User)
	case SessionExpiredMsg:
		if m.User == nil {
			// A 401 before anyone signed in just means "not signed in";
			// there is no session to expire. Re-arm and move on.
			return m, waitForExpiryCmd(m.expiryCh)
		}
		next := m.leaveSession(StatusBar{Text: "Your session has expired. Please sign in again.", IsError: true})
		return next, waitForExpiryCmd(next.expiryCh)
	case AuthResultMsg:
		return m.handleAuthResult(typed)
	case LogoutDoneMsg:
		return m.leaveSession(StatusBar{Text: "signed out", IsError: false}), nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case TasksLoadedMsg:
		return m.handleTasksLoaded(typed)
	case TaskCreatedMsg:
		return m.handleTaskCreated(typed)
	case TaskSavedMsg:
		return m.handleTaskSaved(typed)
	case TaskDeletedMsg:
		return m.handleTaskDeleted(typed)
	case AssistantReplyMsg:
		return m.handleAssistantReply(typed)
	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(typed)
	case HistoryClearedMsg:
		return m.handleHistoryCleared(typed)
	case AssistantStatusMsg:
		return m.handleAssistantStatus(typed)
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	body := ""
	footer := ""
	switch m.CurrentScreen {
	case ScreenLoading:
		body = "checking session..."
	case ScreenLogin, ScreenRegister:
		body = m.renderAuthView()
		footer = "keys: tab field | enter submit | ctrl+r switch | ctrl+c quit"
	case ScreenDashboard:
		body = m.renderDashboardView()
		footer = fmt.Sprintf("keys: %s new | %s edit | %s delete | space toggle | %s reload | %s assistant | %s help | %s quit",
			m.Keys.NewTask, m.Keys.Edit, m.Keys.Delete, m.Keys.Reload, m.Keys.Assistant, m.Keys.Help, m.Keys.Quit)
	case ScreenAssistant:
		body = m.renderAssistantView()
		footer = "keys: enter send | alt+1..4 quick | esc back | ctrl+c quit"
	}
	if m.HelpVisible {
		body += "\n\n" + views.RenderHelpPanel(m.helpLines())
	}

	email := ""
	if m.User != nil {
		email = m.User.Email
	}
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("paktui | %s | %s", m.CurrentScreen, email),
		Body:       body,
		StatusLine: status,
		Footer:     footer,
	})
}
