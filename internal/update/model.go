package update

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/pakaura/paktui/internal/api"
	"github.com/pakaura/paktui/internal/assistant"
	"github.com/pakaura/paktui/internal/config"
	"github.com/pakaura/paktui/internal/model"
	"github.com/pakaura/paktui/internal/session"
	"github.com/pakaura/paktui/internal/transcript"
)

type Screen string

const (
	ScreenLoading   Screen = "Loading"
	ScreenLogin     Screen = "Login"
	ScreenRegister  Screen = "Register"
	ScreenDashboard Screen = "Dashboard"
	ScreenAssistant Screen = "Assistant"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	NewTask   string
	Edit      string
	Delete    string
	Toggle    string
	Reload    string
	Assistant string
	Back      string
	Help      string
	Quit      string
}

// DashboardMode tracks which input the task list currently captures.
type DashboardMode string

const (
	ModeBrowse        DashboardMode = "browse"
	ModeAdd           DashboardMode = "add"
	ModeEdit          DashboardMode = "edit"
	ModeConfirmDelete DashboardMode = "confirm_delete"
)

type AuthFormState struct {
	EmailInput    textinput.Model
	PasswordInput textinput.Model
	Focus         int
	FieldErrs     model.FieldErrors
	Banner        string
	Busy          bool
}

type DashboardState struct {
	Tasks     []model.Task
	Cursor    int
	Loading   bool
	LoadError string
	// Gen increments per load so a stale result can be discarded.
	Gen       int
	Mode      DashboardMode
	Input     textinput.Model
	EditID    string
	PendingID string
	Busy      bool
}

type AssistantState struct {
	Transcript     *transcript.Transcript
	ConversationID string
	Input          textinput.Model
	Viewport       viewport.Model
	Status         *api.AssistantStatus
	HistoryLoaded  bool
}

// BackendFactory builds the conversation backend once the user is known.
type BackendFactory func(userID string) assistant.Backend

type Model struct {
	CurrentScreen Screen
	Status        StatusBar
	Keys          GlobalKeyMap
	User          *model.User
	Login         AuthFormState
	Register      AuthFormState
	Dashboard     DashboardState
	Assistant     AssistantState
	HelpVisible   bool
	Quitting      bool
	LastError     error

	client       *api.Client
	guard        *session.Guard
	newBackend   BackendFactory
	backend      assistant.Backend
	cfg          config.Config
	log          *zap.Logger
	expiryCh     <-chan struct{}
	expiryCancel func()
}

type BootstrapMsg struct {
	User *model.User
	Err  error
}

type SessionExpiredMsg struct{}

type AuthResultMsg struct {
	FromRegister bool
	User         model.User
	Err          error
}

type LogoutDoneMsg struct{}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type TasksLoadedMsg struct {
	Gen   int
	Tasks []model.Task
	Err   error
}

type TaskCreatedMsg struct {
	Task model.Task
	Err  error
}

type TaskSavedMsg struct {
	Task model.Task
	Err  error
}

type TaskDeletedMsg struct {
	ID  string
	Err error
}

type AssistantReplyMsg struct {
	PlaceholderID string
	Reply         assistant.Reply
	Err           error
}

type HistoryLoadedMsg struct {
	ConversationID string
	Msgs           []model.ChatMessage
	OK             bool
}

type HistoryClearedMsg struct {
	Err error
}

type AssistantStatusMsg struct {
	Status api.AssistantStatus
	Err    error
}

var quickActions = []string{
	"Show all my tasks",
	"Add a task to buy groceries",
	"Complete my first task",
	"Help",
}

func NewModel(client *api.Client, guard *session.Guard, newBackend BackendFactory, cfg config.Config, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		CurrentScreen: ScreenLoading,
		Keys: GlobalKeyMap{
			NewTask:   "n",
			Edit:      "e",
			Delete:    "d",
			Toggle:    " ",
			Reload:    "r",
			Assistant: "c",
			Back:      "esc",
			Help:      "?",
			Quit:      "q",
		},
		Login:    newAuthForm(),
		Register: newAuthForm(),
		Dashboard: DashboardState{
			Mode:  ModeBrowse,
			Input: newLineInput("task title", model.MaxTitleLength),
		},
		Assistant: AssistantState{
			Transcript: transcript.New(),
			Input:      newLineInput("ask about your tasks", 2000),
			Viewport:   viewport.New(72, 16),
		},
		client:     client,
		guard:      guard,
		newBackend: newBackend,
		cfg:        cfg,
		log:        log,
	}
	if client != nil {
		// Program-lifetime subscription; the broadcast fans out one signal
		// per expired session regardless of how many requests saw the 401.
		m.expiryCh, m.expiryCancel = client.Expiry().Subscribe()
	}
	return m
}

func newAuthForm() AuthFormState {
	form := AuthFormState{
		EmailInput:    newLineInput("you@example.com", 254),
		PasswordInput: newLineInput("password", 128),
		FieldErrs:     model.FieldErrors{},
	}
	form.PasswordInput.EchoMode = textinput.EchoPassword
	form.EmailInput.Focus()
	return form
}

func newLineInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Width = 48
	return input
}
