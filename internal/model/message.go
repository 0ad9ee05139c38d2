package model

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Intent is the assistant backend's classification of a turn.
type Intent string

const (
	IntentCreate     Intent = "CREATE"
	IntentList       Intent = "LIST"
	IntentComplete   Intent = "COMPLETE"
	IntentUncomplete Intent = "UNCOMPLETE"
	IntentUpdate     Intent = "UPDATE"
	IntentDelete     Intent = "DELETE"
	IntentClarify    Intent = "CLARIFY"
	IntentError      Intent = "ERROR"
	IntentInfo       Intent = "INFO"
)

// ActionTaken records one tool invocation the assistant performed while
// answering a turn.
type ActionTaken struct {
	Tool   string         `json:"tool"`
	Result map[string]any `json:"result"`
}

// ChatMessage is one transcript entry. Identifiers are generated locally and
// are unique within a session; entries are never mutated after creation,
// only replaced wholesale by identifier.
type ChatMessage struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
	Intent    Intent
	Tasks     []Task
	Actions   []ActionTaken
	Loading   bool
	Err       bool
}

var toolDisplayNames = map[string]string{
	"add_task":        "Create Task",
	"list_tasks":      "List Tasks",
	"complete_task":   "Complete Task",
	"uncomplete_task": "Uncomplete Task",
	"delete_task":     "Delete Task",
	"update_task":     "Update Task",
	"clear_completed": "Clear Completed",
}

// ToolDisplayName maps a backend tool identifier to a label for the
// actions-taken block. Unknown tools render as-is.
func ToolDisplayName(tool string) string {
	if name, ok := toolDisplayNames[tool]; ok {
		return name
	}
	return tool
}

// FormatMessageTime renders a transcript timestamp: time of day for
// same-day messages, date plus time otherwise.
func FormatMessageTime(t, now time.Time) string {
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("Jan 2 15:04")
}
