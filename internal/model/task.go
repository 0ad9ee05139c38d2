package model

import (
	"strings"
	"time"
)

// MaxTitleLength mirrors the server-side limit on task titles.
const MaxTitleLength = 500

// Task is the client's copy of a server-owned task record. The server
// assigns the identifier and both timestamps; the client never fabricates
// them, and the local collection is only a cache of server state.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidateTitle checks a task title before any network call. The returned
// string is a user-facing field error, empty when the title is acceptable.
// The server stays authoritative; this only rejects input the server would
// reject anyway.
func ValidateTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Task title is required"
	}
	if len(title) > MaxTitleLength {
		return "Task title must be 500 characters or less"
	}
	return ""
}
