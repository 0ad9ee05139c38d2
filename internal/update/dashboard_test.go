package update

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pakaura/paktui/internal/model"
)

func dashboardModel(tasks []model.Task) Model {
	m := newTestModel()
	updated, _ := m.Update(BootstrapMsg{User: &model.User{ID: "u1", Email: "a@b.com"}})
	next := updated.(Model)
	updated, _ = next.Update(TasksLoadedMsg{Gen: next.Dashboard.Gen, Tasks: tasks})
	return updated.(Model)
}

func sampleTasks() []model.Task {
	now := time.Now()
	return []model.Task{
		{ID: "t1", Title: "write report", CreatedAt: now},
		{ID: "t2", Title: "buy milk", Completed: true, CreatedAt: now},
		{ID: "t3", Title: "call dentist", CreatedAt: now},
	}
}

func TestTasksLoadedReplacesList(t *testing.T) {
	m := dashboardModel(sampleTasks())
	if m.Dashboard.Loading {
		t.Fatal("expected loading cleared")
	}
	if len(m.Dashboard.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(m.Dashboard.Tasks))
	}
}

func TestStaleTaskLoadIsIgnored(t *testing.T) {
	m := dashboardModel(sampleTasks())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	next := updated.(Model)
	if !next.Dashboard.Loading {
		t.Fatal("expected reload to be in flight")
	}

	// A result from the previous generation arrives after the reload started.
	updated, _ = next.Update(TasksLoadedMsg{Gen: next.Dashboard.Gen - 1, Tasks: nil})
	next = updated.(Model)
	if !next.Dashboard.Loading {
		t.Fatal("stale result must not settle the newer load")
	}
	if len(next.Dashboard.Tasks) != 3 {
		t.Fatal("stale result must not replace the list")
	}
}

func TestCursorMovement(t *testing.T) {
	m := dashboardModel(sampleTasks())
	updated, _ := m.Update(keyRunes("j"))
	next := updated.(Model)
	if next.Dashboard.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", next.Dashboard.Cursor)
	}
	updated, _ = next.Update(keyRunes("k"))
	next = updated.(Model)
	if next.Dashboard.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", next.Dashboard.Cursor)
	}
	updated, _ = next.Update(keyRunes("k"))
	next = updated.(Model)
	if next.Dashboard.Cursor != 0 {
		t.Fatal("cursor must not go negative")
	}
}

func TestCreateFlowPrepends(t *testing.T) {
	m := dashboardModel(sampleTasks())
	updated, _ := m.Update(keyRunes("n"))
	next := updated.(Model)
	if next.Dashboard.Mode != ModeAdd {
		t.Fatalf("expected add mode, got %q", next.Dashboard.Mode)
	}

	updated, _ = next.Update(keyRunes("new thing"))
	next = updated.(Model)
	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if cmd == nil {
		t.Fatal("expected create request")
	}

	created := model.Task{ID: "t9", Title: "new thing"}
	updated, _ = next.Update(TaskCreatedMsg{Task: created})
	next = updated.(Model)
	if next.Dashboard.Tasks[0].ID != "t9" {
		t.Fatalf("expected created task first, got %q", next.Dashboard.Tasks[0].ID)
	}
	if next.Dashboard.Mode != ModeBrowse {
		t.Fatalf("expected browse mode after create, got %q", next.Dashboard.Mode)
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	m := dashboardModel(nil)
	updated, _ := m.Update(keyRunes("n"))
	next := updated.(Model)
	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if cmd != nil {
		t.Fatal("empty title must not issue a request")
	}
	if next.Status.Text != "Task title is required" || !next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}
}

func TestEditUnchangedTitleIsNoOp(t *testing.T) {
	m := dashboardModel(sampleTasks())
	updated, _ := m.Update(keyRunes("e"))
	next := updated.(Model)
	if next.Dashboard.Mode != ModeEdit {
		t.Fatalf("expected edit mode, got %q", next.Dashboard.Mode)
	}
	if next.Dashboard.Input.Value() != "write report" {
		t.Fatalf("expected input prefilled, got %q", next.Dashboard.Input.Value())
	}

	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if cmd != nil {
		t.Fatal("unchanged title must not issue a request")
	}
	if next.Dashboard.Mode != ModeBrowse {
		t.Fatalf("expected browse mode, got %q", next.Dashboard.Mode)
	}
}

func TestTaskSavedReplacesInPlace(t *testing.T) {
	m := dashboardModel(sampleTasks())
	saved := model.Task{ID: "t2", Title: "buy milk", Completed: false}
	updated, _ := m.Update(TaskSavedMsg{Task: saved})
	next := updated.(Model)
	if next.Dashboard.Tasks[1].Completed {
		t.Fatal("expected t2 updated in place")
	}
	if next.Dashboard.Tasks[1].ID != "t2" {
		t.Fatal("expected order preserved")
	}
}

func TestToggleIssuesRequest(t *testing.T) {
	m := dashboardModel(sampleTasks())
	updated, cmd := m.Update(keyRunes(" "))
	next := updated.(Model)
	if cmd == nil {
		t.Fatal("expected toggle request")
	}
	if !next.Dashboard.Busy {
		t.Fatal("expected busy while toggling")
	}

	// A second toggle while one is in flight is ignored.
	_, cmd = next.Update(keyRunes(" "))
	if cmd != nil {
		t.Fatal("toggle must be single-flight")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := dashboardModel(sampleTasks())
	updated, _ := m.Update(keyRunes("d"))
	next := updated.(Model)
	if next.Dashboard.Mode != ModeConfirmDelete {
		t.Fatalf("expected confirm mode, got %q", next.Dashboard.Mode)
	}
	if next.Dashboard.PendingID != "t1" {
		t.Fatalf("expected t1 pending, got %q", next.Dashboard.PendingID)
	}

	// Declining leaves the list alone.
	updated, cmd := next.Update(keyRunes("n"))
	next = updated.(Model)
	if cmd != nil || next.Dashboard.Mode != ModeBrowse || len(next.Dashboard.Tasks) != 3 {
		t.Fatal("declining must not delete")
	}

	updated, _ = next.Update(keyRunes("d"))
	next = updated.(Model)
	updated, cmd = next.Update(keyRunes("y"))
	next = updated.(Model)
	if cmd == nil {
		t.Fatal("expected delete request after confirmation")
	}

	updated, _ = next.Update(TaskDeletedMsg{ID: "t1"})
	next = updated.(Model)
	if len(next.Dashboard.Tasks) != 2 || next.Dashboard.Tasks[0].ID != "t2" {
		t.Fatalf("expected t1 removed, got %+v", next.Dashboard.Tasks)
	}
}

func TestDeleteClampsCursor(t *testing.T) {
	m := dashboardModel(sampleTasks())
	m.Dashboard.Cursor = 2
	updated, _ := m.Update(TaskDeletedMsg{ID: "t3"})
	next := updated.(Model)
	if next.Dashboard.Cursor != 1 {
		t.Fatalf("expected cursor clamped to 1, got %d", next.Dashboard.Cursor)
	}
}
