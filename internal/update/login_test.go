package update

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pakaura/paktui/internal/api"
	"github.com/pakaura/paktui/internal/model"
)

func loginModel() Model {
	m := newTestModel()
	updated, _ := m.Update(BootstrapMsg{})
	return updated.(Model)
}

func TestAuthSwitchBetweenLoginAndRegister(t *testing.T) {
	m := loginModel()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	next := updated.(Model)
	if next.CurrentScreen != ScreenRegister {
		t.Fatalf("expected register screen, got %q", next.CurrentScreen)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	next = updated.(Model)
	if next.CurrentScreen != ScreenLogin {
		t.Fatalf("expected login screen, got %q", next.CurrentScreen)
	}
}

func TestLoginSubmitValidatesLocally(t *testing.T) {
	m := loginModel()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)
	if cmd != nil {
		t.Fatal("invalid form must not issue a request")
	}
	if next.Login.FieldErrs["email"] != "Email is required" {
		t.Fatalf("unexpected email error: %q", next.Login.FieldErrs["email"])
	}
	if next.Login.FieldErrs["password"] != "Password is required" {
		t.Fatalf("unexpected password error: %q", next.Login.FieldErrs["password"])
	}
}

func TestLoginSubmitIssuesRequestWhenValid(t *testing.T) {
	m := loginModel()
	updated, _ := m.Update(keyRunes("a@b.com"))
	next := updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	next = updated.(Model)
	updated, _ = next.Update(keyRunes("secret123"))
	next = updated.(Model)

	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if cmd == nil {
		t.Fatal("valid form should issue a login request")
	}
	if !next.Login.Busy {
		t.Fatal("expected form to be busy while submitting")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	m := loginModel()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	next := updated.(Model)
	updated, _ = next.Update(keyRunes("a@b.com"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	next = updated.(Model)
	updated, _ = next.Update(keyRunes("short"))
	next = updated.(Model)

	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if cmd != nil {
		t.Fatal("short password must not issue a request")
	}
	if next.Register.FieldErrs["password"] != "Password must be at least 8 characters" {
		t.Fatalf("unexpected password error: %q", next.Register.FieldErrs["password"])
	}
}

func TestAuthResultConflictMapsToEmailField(t *testing.T) {
	m := loginModel()
	m.CurrentScreen = ScreenRegister
	conflict := &api.Error{Status: 409, Code: api.CodeConflict, Message: "email taken"}
	updated, _ := m.Update(AuthResultMsg{FromRegister: true, Err: conflict})
	next := updated.(Model)
	if next.Register.FieldErrs["email"] != "This email is already registered" {
		t.Fatalf("unexpected email error: %q", next.Register.FieldErrs["email"])
	}
	if next.CurrentScreen != ScreenRegister {
		t.Fatalf("expected to stay on register, got %q", next.CurrentScreen)
	}
}

func TestAuthResultFieldDetailsMapToForm(t *testing.T) {
	m := loginModel()
	err := &api.Error{
		Status:  422,
		Code:    "VALIDATION_ERROR",
		Message: "invalid input",
		Details: []api.FieldDetail{{Field: "email", Message: "Please enter a valid email address"}},
	}
	updated, _ := m.Update(AuthResultMsg{Err: err})
	next := updated.(Model)
	if next.Login.FieldErrs["email"] != "Please enter a valid email address" {
		t.Fatalf("unexpected email error: %q", next.Login.FieldErrs["email"])
	}
}

func TestAuthResultGenericErrorBecomesBanner(t *testing.T) {
	m := loginModel()
	updated, _ := m.Update(AuthResultMsg{Err: errors.New("connection refused")})
	next := updated.(Model)
	if next.Login.Banner == "" {
		t.Fatal("expected a banner for a non-field error")
	}
	if strings.Contains(next.Login.Banner, "connection refused") {
		t.Fatalf("raw transport error must not leak to the form: %q", next.Login.Banner)
	}
}

func TestAuthResultSuccessEntersDashboard(t *testing.T) {
	m := loginModel()
	updated, _ := m.Update(AuthResultMsg{User: model.User{ID: "u1", Email: "a@b.com"}})
	next := updated.(Model)
	if next.CurrentScreen != ScreenDashboard {
		t.Fatalf("expected dashboard, got %q", next.CurrentScreen)
	}
}
