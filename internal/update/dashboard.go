package update

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/pakaura/paktui/internal/api"
	"github.com/pakaura/paktui/internal/model"
	"github.com/pakaura/paktui/internal/tasklist"
	"github.com/pakaura/paktui/internal/views"
)

func (m Model) loadTasksCmd(gen int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		list, err := client.ListTasks(context.Background())
		return TasksLoadedMsg{Gen: gen, Tasks: list.Tasks, Err: err}
	}
}

func (m Model) createTaskCmd(title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		task, err := client.CreateTask(context.Background(), title)
		return TaskCreatedMsg{Task: task, Err: err}
	}
}

func (m Model) toggleTaskCmd(task model.Task) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		var (
			saved model.Task
			err   error
		)
		if task.Completed {
			saved, err = client.UncompleteTask(context.Background(), task.ID)
		} else {
			saved, err = client.CompleteTask(context.Background(), task.ID)
		}
		return TaskSavedMsg{Task: saved, Err: err}
	}
}

func (m Model) renameTaskCmd(id, title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		task, err := client.UpdateTask(context.Background(), id, api.UpdateTaskRequest{Title: &title})
		return TaskSavedMsg{Task: task, Err: err}
	}
}

func (m Model) deleteTaskCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteTask(context.Background(), id)
		return TaskDeletedMsg{ID: id, Err: err}
	}
}

func (m Model) reloadTasks() (Model, tea.Cmd) {
	m.Dashboard.Gen++
	m.Dashboard.Loading = true
	m.Dashboard.LoadError = ""
	return m, m.loadTasksCmd(m.Dashboard.Gen)
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.Dashboard.Tasks
	if len(tasks) == 0 || m.Dashboard.Cursor < 0 || m.Dashboard.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Dashboard.Cursor], true
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.Dashboard.Mode {
	case ModeAdd, ModeEdit:
		return m.handleTaskInputKey(msg)
	case ModeConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", m.Keys.Quit:
		return m.quit()
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "j", "down":
		if m.Dashboard.Cursor < len(m.Dashboard.Tasks)-1 {
			m.Dashboard.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.Dashboard.Cursor > 0 {
			m.Dashboard.Cursor--
		}
		return m, nil
	case m.Keys.NewTask:
		m.Dashboard.Mode = ModeAdd
		m.Dashboard.Input.Reset()
		m.Dashboard.Input.Focus()
		return m, nil
	case m.Keys.Edit:
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.Dashboard.Mode = ModeEdit
		m.Dashboard.EditID = task.ID
		m.Dashboard.Input.SetValue(task.Title)
		m.Dashboard.Input.CursorEnd()
		m.Dashboard.Input.Focus()
		return m, nil
	case m.Keys.Delete:
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.Dashboard.Mode = ModeConfirmDelete
		m.Dashboard.PendingID = task.ID
		return m, nil
	case m.Keys.Toggle:
		task, ok := m.selectedTask()
		if !ok || m.Dashboard.Busy {
			return m, nil
		}
		m.Dashboard.Busy = true
		return m, m.toggleTaskCmd(task)
	case m.Keys.Reload:
		return m.reloadTasks()
	case m.Keys.Assistant:
		m.CurrentScreen = ScreenAssistant
		m.Assistant.Input.Focus()
		m.refreshTranscriptView(true)
		return m, nil
	case "ctrl+l":
		return m, m.logoutCmd()
	}
	return m, nil
}

func (m Model) handleTaskInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Dashboard.Mode = ModeBrowse
		m.Dashboard.EditID = ""
		m.Dashboard.Input.Reset()
		return m, nil
	case "enter":
		return m.submitTaskInput()
	case "ctrl+c":
		return m.quit()
	}
	var cmd tea.Cmd
	m.Dashboard.Input, cmd = m.Dashboard.Input.Update(msg)
	return m, cmd
}

func (m Model) submitTaskInput() (Model, tea.Cmd) {
	if m.Dashboard.Busy {
		return m, nil
	}
	title := strings.TrimSpace(m.Dashboard.Input.Value())
	if message := model.ValidateTitle(title); message != "" {
		m.setStatus(message, true)
		return m, nil
	}

	if m.Dashboard.Mode == ModeEdit {
		task, ok := m.taskByID(m.Dashboard.EditID)
		if ok && task.Title == title {
			// Unchanged title is a no-op, not a request.
			m.Dashboard.Mode = ModeBrowse
			m.Dashboard.EditID = ""
			m.Dashboard.Input.Reset()
			return m, nil
		}
		m.Dashboard.Busy = true
		return m, m.renameTaskCmd(m.Dashboard.EditID, title)
	}

	m.Dashboard.Busy = true
	return m, m.createTaskCmd(title)
}

func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.Dashboard.PendingID
		m.Dashboard.Mode = ModeBrowse
		m.Dashboard.PendingID = ""
		m.Dashboard.Busy = true
		return m, m.deleteTaskCmd(id)
	case "n", "N", "esc":
		m.Dashboard.Mode = ModeBrowse
		m.Dashboard.PendingID = ""
		return m, nil
	case "ctrl+c":
		return m.quit()
	}
	return m, nil
}

func (m Model) taskByID(id string) (model.Task, bool) {
	for _, task := range m.Dashboard.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

func (m Model) handleTasksLoaded(msg TasksLoadedMsg) (Model, tea.Cmd) {
	if msg.Gen != m.Dashboard.Gen {
		// A newer load is in flight; this result is stale.
		return m, nil
	}
	m.Dashboard.Loading = false
	if msg.Err != nil {
		m.Dashboard.LoadError = api.Message(msg.Err)
		m.log.Warn("task load failed", zap.Error(msg.Err))
		return m, nil
	}
	m.Dashboard.LoadError = ""
	m.Dashboard.Tasks = msg.Tasks
	m.clampCursor()
	return m, nil
}

func (m Model) handleTaskCreated(msg TaskCreatedMsg) (Model, tea.Cmd) {
	m.Dashboard.Busy = false
	if msg.Err != nil {
		m.setStatus(api.Message(msg.Err), true)
		return m, nil
	}
	m.Dashboard.Tasks = tasklist.Prepend(m.Dashboard.Tasks, msg.Task)
	m.Dashboard.Mode = ModeBrowse
	m.Dashboard.Input.Reset()
	m.Dashboard.Cursor = 0
	m.setStatus("task created", false)
	return m, nil
}

func (m Model) handleTaskSaved(msg TaskSavedMsg) (Model, tea.Cmd) {
	m.Dashboard.Busy = false
	if msg.Err != nil {
		m.setStatus(api.Message(msg.Err), true)
		return m, nil
	}
	m.Dashboard.Tasks = tasklist.ReplaceByID(m.Dashboard.Tasks, msg.Task)
	if m.Dashboard.Mode == ModeEdit {
		m.Dashboard.Mode = ModeBrowse
		m.Dashboard.EditID = ""
		m.Dashboard.Input.Reset()
	}
	return m, nil
}

func (m Model) handleTaskDeleted(msg TaskDeletedMsg) (Model, tea.Cmd) {
	m.Dashboard.Busy = false
	if msg.Err != nil {
		m.setStatus(api.Message(msg.Err), true)
		return m, nil
	}
	m.Dashboard.Tasks = tasklist.RemoveByID(m.Dashboard.Tasks, msg.ID)
	m.clampCursor()
	m.setStatus("task deleted", false)
	return m, nil
}

func (m *Model) clampCursor() {
	if m.Dashboard.Cursor >= len(m.Dashboard.Tasks) {
		m.Dashboard.Cursor = len(m.Dashboard.Tasks) - 1
	}
	if m.Dashboard.Cursor < 0 {
		m.Dashboard.Cursor = 0
	}
}

func (m Model) renderDashboardView() string {
	stats := tasklist.ComputeStats(m.Dashboard.Tasks)
	data := views.DashboardPanelData{
		Stats: views.StatsData{
			Total:     stats.Total,
			Completed: stats.Completed,
			Pending:   stats.Pending,
			Percent:   stats.Percent,
		},
		Loading:   m.Dashboard.Loading,
		LoadError: m.Dashboard.LoadError,
	}
	if m.User != nil {
		data.Email = m.User.Email
	}
	switch m.Dashboard.Mode {
	case ModeAdd:
		data.InputLabel = "new task"
		data.InputView = m.Dashboard.Input.View()
	case ModeEdit:
		data.InputLabel = "edit task"
		data.InputView = m.Dashboard.Input.View()
	case ModeConfirmDelete:
		if task, ok := m.taskByID(m.Dashboard.PendingID); ok {
			data.ConfirmTitle = task.Title
		}
	}
	for i, task := range m.Dashboard.Tasks {
		data.Items = append(data.Items, views.TaskItemData{
			ID:        task.ID,
			Title:     task.Title,
			Completed: task.Completed,
			CreatedAt: model.FormatMessageTime(task.CreatedAt, nowUTC()),
			Selected:  i == m.Dashboard.Cursor,
		})
	}
	return views.RenderDashboardPanel(data)
}
