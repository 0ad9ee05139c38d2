package views

import (
	"fmt"
	"strings"
)

type FormFieldData struct {
	Label   string
	Input   string
	Error   string
	Focused bool
}

type AuthPanelData struct {
	Title      string
	Fields     []FormFieldData
	Banner     string
	Busy       bool
	SubmitHint string
	SwitchHint string
}

type TaskItemData struct {
	ID        string
	Title     string
	Completed bool
	CreatedAt string
	Selected  bool
}

type StatsData struct {
	Total     int
	Completed int
	Pending   int
	Percent   int
}

type DashboardPanelData struct {
	Email        string
	Stats        StatsData
	Items        []TaskItemData
	Loading      bool
	LoadError    string
	InputLabel   string
	InputView    string
	ConfirmTitle string
}

type AssistantMessageData struct {
	Role    string
	Content string
	Time    string
	Intent  string
	Loading bool
	Err     bool
	Actions []string
	Tasks   []TaskItemData
}

type AssistantPanelData struct {
	Badge        string
	Transcript   string
	InputView    string
	InFlight     bool
	QuickActions []string
	HelpText     string
}

func RenderAuthPanel(data AuthPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	if data.Banner != "" {
		b.WriteString("error: " + data.Banner + "\n")
	}
	for _, field := range data.Fields {
		cursor := " "
		if field.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", cursor, field.Label, field.Input))
		if field.Error != "" {
			b.WriteString("    ! " + field.Error + "\n")
		}
	}
	if data.Busy {
		b.WriteString("(submitting...)\n")
	}
	b.WriteString("actions: " + data.SubmitHint)
	if data.SwitchHint != "" {
		b.WriteString(" | " + data.SwitchHint)
	}
	return strings.TrimSpace(b.String())
}

func RenderStatsRow(stats StatsData) string {
	return fmt.Sprintf("total: %d | completed: %d | pending: %d | done: %d%%",
		stats.Total, stats.Completed, stats.Pending, stats.Percent)
}

func RenderDashboardPanel(data DashboardPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks (%s):\n", data.Email))
	b.WriteString(RenderStatsRow(data.Stats) + "\n")
	b.WriteString("actions: [n]new [e]edit [d]delete [space]toggle [r]reload [c]assistant\n")

	if data.InputLabel != "" {
		b.WriteString(fmt.Sprintf("%s: %s\n", data.InputLabel, data.InputView))
	}
	if data.ConfirmTitle != "" {
		b.WriteString(fmt.Sprintf("delete %q? [y]es [n]o\n", data.ConfirmTitle))
	}

	switch {
	case data.Loading:
		b.WriteString("(loading tasks...)")
	case data.LoadError != "":
		b.WriteString(fmt.Sprintf("error: %s\npress [r] to retry", data.LoadError))
	case len(data.Items) == 0:
		b.WriteString("(no tasks yet, press [n] to add one)")
	default:
		for _, item := range data.Items {
			b.WriteString(renderTaskLine(item) + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func renderTaskLine(item TaskItemData) string {
	cursor := " "
	if item.Selected {
		cursor = ">"
	}
	box := "[ ]"
	if item.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s %s", cursor, box, item.Title)
	if item.CreatedAt != "" {
		line += " (" + item.CreatedAt + ")"
	}
	return line
}

func RenderTranscript(msgs []AssistantMessageData) string {
	if len(msgs) == 0 {
		return "(no messages yet, ask the assistant about your tasks)"
	}
	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderTranscriptEntry(msg))
	}
	return strings.TrimSpace(b.String())
}

func renderTranscriptEntry(msg AssistantMessageData) string {
	var b strings.Builder
	label := "you"
	if msg.Role == "assistant" {
		label = "assistant"
	}
	b.WriteString(fmt.Sprintf("%s @ %s:\n", label, msg.Time))

	switch {
	case msg.Loading:
		b.WriteString("...\n")
	case msg.Err:
		b.WriteString("! " + msg.Content + "\n")
	case msg.Role == "assistant":
		b.WriteString(RenderMarkdown(msg.Content) + "\n")
	default:
		b.WriteString(msg.Content + "\n")
	}

	if msg.Intent != "" && msg.Intent != "INFO" && !msg.Loading && !msg.Err {
		b.WriteString("intent: " + strings.ToLower(msg.Intent) + "\n")
	}
	if len(msg.Actions) > 0 {
		b.WriteString("actions taken:\n")
		for _, action := range msg.Actions {
			b.WriteString("- " + action + "\n")
		}
	}
	for _, task := range msg.Tasks {
		b.WriteString(renderTaskLine(task) + "\n")
	}
	return b.String()
}

func RenderAssistantPanel(data AssistantPanelData) string {
	var b strings.Builder
	b.WriteString("assistant:")
	if data.Badge != "" {
		b.WriteString(" [" + data.Badge + "]")
	}
	b.WriteString("\n")
	b.WriteString(data.Transcript + "\n\n")
	if len(data.QuickActions) > 0 {
		b.WriteString("quick: ")
		for i, qa := range data.QuickActions {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(fmt.Sprintf("[alt+%d] %s", i+1, qa))
		}
		b.WriteString("\n")
	}
	prompt := "> "
	if data.InFlight {
		prompt = "~ "
	}
	b.WriteString(prompt + data.InputView + "\n")
	if data.HelpText != "" {
		b.WriteString(data.HelpText)
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(lines []string) string {
	return "help:\n" + strings.Join(lines, "\n")
}
