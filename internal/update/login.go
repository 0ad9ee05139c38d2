package update

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pakaura/paktui/internal/api"
	"github.com/pakaura/paktui/internal/model"
	"github.com/pakaura/paktui/internal/views"
)

func (m Model) loginCmd(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Login(context.Background(), email, password)
		return AuthResultMsg{User: user, Err: err}
	}
}

func (m Model) registerCmd(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Register(context.Background(), email, password)
		return AuthResultMsg{FromRegister: true, User: user, Err: err}
	}
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	form := &m.Login
	if m.CurrentScreen == ScreenRegister {
		form = &m.Register
	}

	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "ctrl+r":
		if m.CurrentScreen == ScreenLogin {
			m.CurrentScreen = ScreenRegister
		} else {
			m.CurrentScreen = ScreenLogin
		}
		m.Status = StatusBar{}
		return m, nil
	case "tab", "down":
		form.Focus = (form.Focus + 1) % 2
		syncAuthFocus(form)
		return m, nil
	case "shift+tab", "up":
		form.Focus = (form.Focus + 1) % 2
		syncAuthFocus(form)
		return m, nil
	case "enter":
		return m.submitAuthForm(form)
	}

	var cmd tea.Cmd
	if form.Focus == 0 {
		form.EmailInput, cmd = form.EmailInput.Update(msg)
	} else {
		form.PasswordInput, cmd = form.PasswordInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitAuthForm(form *AuthFormState) (Model, tea.Cmd) {
	if form.Busy {
		return m, nil
	}
	email := strings.TrimSpace(form.EmailInput.Value())
	password := form.PasswordInput.Value()

	register := m.CurrentScreen == ScreenRegister
	if register {
		form.FieldErrs = model.ValidateRegistration(email, password)
	} else {
		form.FieldErrs = model.ValidateLogin(email, password)
	}
	if !form.FieldErrs.Empty() {
		return m, nil
	}

	form.Banner = ""
	form.Busy = true
	if register {
		return m, m.registerCmd(email, password)
	}
	return m, m.loginCmd(email, password)
}

func (m Model) handleAuthResult(msg AuthResultMsg) (Model, tea.Cmd) {
	form := &m.Login
	if msg.FromRegister {
		form = &m.Register
	}
	form.Busy = false

	if msg.Err != nil {
		if msg.FromRegister && api.IsConflict(msg.Err) {
			form.FieldErrs = model.FieldErrors{"email": "This email is already registered"}
			return m, nil
		}
		if fieldErrs := authFieldErrors(msg.Err); len(fieldErrs) > 0 {
			form.FieldErrs = fieldErrs
			return m, nil
		}
		form.Banner = api.Message(msg.Err)
		return m, nil
	}
	return m.enterSession(msg.User)
}

func authFieldErrors(err error) model.FieldErrors {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return nil
	}
	fields := apiErr.FieldMessages()
	if len(fields) == 0 {
		return nil
	}
	errs := model.FieldErrors{}
	for field, message := range fields {
		errs[field] = message
	}
	return errs
}

func syncAuthFocus(form *AuthFormState) {
	if form.Focus == 0 {
		form.EmailInput.Focus()
		form.PasswordInput.Blur()
	} else {
		form.EmailInput.Blur()
		form.PasswordInput.Focus()
	}
}

func (m Model) renderAuthView() string {
	form := m.Login
	title := "sign in"
	submit := "[enter] sign in"
	switchHint := "[ctrl+r] create account"
	if m.CurrentScreen == ScreenRegister {
		form = m.Register
		title = "create account"
		submit = "[enter] register"
		switchHint = "[ctrl+r] back to sign in"
	}
	return views.RenderAuthPanel(views.AuthPanelData{
		Title: title,
		Fields: []views.FormFieldData{
			{
				Label:   "email",
				Input:   form.EmailInput.View(),
				Error:   form.FieldErrs["email"],
				Focused: form.Focus == 0,
			},
			{
				Label:   "password",
				Input:   form.PasswordInput.View(),
				Error:   form.FieldErrs["password"],
				Focused: form.Focus == 1,
			},
		},
		Banner:     form.Banner,
		Busy:       form.Busy,
		SubmitHint: submit,
		SwitchHint: switchHint,
	})
}
