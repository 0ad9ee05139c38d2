// Package transcript manages the assistant conversation as an ordered
// sequence of entries keyed by locally generated identifiers. One turn may
// be in flight at a time; while it is, the transcript ends with a loading
// assistant placeholder that is later resolved in place, failed in place, or
// dropped. Submission attempts during a pending turn are rejected, never
// queued.
package transcript

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pakaura/paktui/internal/model"
)

type Transcript struct {
	entries  []model.ChatMessage
	inFlight bool
	now      func() time.Time
}

func New() *Transcript {
	return &Transcript{now: time.Now}
}

// NewWithClock is for tests that need deterministic timestamps.
func NewWithClock(now func() time.Time) *Transcript {
	return &Transcript{now: now}
}

// Messages returns the entries in order. The slice is a copy; callers
// cannot reach into the transcript's state through it.
func (t *Transcript) Messages() []model.ChatMessage {
	out := make([]model.ChatMessage, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Transcript) Len() int       { return len(t.entries) }
func (t *Transcript) InFlight() bool { return t.inFlight }
func (t *Transcript) IsEmpty() bool  { return len(t.entries) == 0 }

// Begin starts a turn: it appends the user entry and a loading assistant
// placeholder, closes the single-flight gate, and returns the trimmed
// content plus the placeholder id. It refuses empty input and refuses to
// start while a turn is pending; in both cases the transcript is untouched
// and ok is false.
func (t *Transcript) Begin(content string) (trimmed, placeholderID string, ok bool) {
	trimmed = strings.TrimSpace(content)
	if trimmed == "" || t.inFlight {
		return "", "", false
	}

	now := t.now()
	t.entries = append(t.entries, model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      model.RoleUser,
		Content:   trimmed,
		Timestamp: now,
	})
	placeholderID = uuid.NewString()
	t.entries = append(t.entries, model.ChatMessage{
		ID:        placeholderID,
		Role:      model.RoleAssistant,
		Timestamp: now,
		Loading:   true,
	})
	t.inFlight = true
	return trimmed, placeholderID, true
}

// Resolve replaces the loading placeholder with the authoritative reply,
// preserving its position and identifier, and reopens the gate.
func (t *Transcript) Resolve(placeholderID string, reply model.ChatMessage) {
	t.swap(placeholderID, func(m *model.ChatMessage) {
		m.Content = reply.Content
		m.Intent = reply.Intent
		m.Tasks = reply.Tasks
		m.Actions = reply.Actions
		m.Timestamp = t.now()
		m.Loading = false
		m.Err = false
	})
}

// Fail replaces the placeholder with an error-flagged entry.
func (t *Transcript) Fail(placeholderID, message string) {
	t.swap(placeholderID, func(m *model.ChatMessage) {
		m.Content = message
		m.Intent = model.IntentError
		m.Timestamp = t.now()
		m.Loading = false
		m.Err = true
	})
}

// Drop removes the placeholder without a trace. Used when the turn died to
// session expiry: recovery is a redirect, not an error entry.
func (t *Transcript) Drop(placeholderID string) {
	out := t.entries[:0]
	for _, m := range t.entries {
		if m.ID != placeholderID {
			out = append(out, m)
		}
	}
	t.entries = out
	t.inFlight = false
}

func (t *Transcript) swap(id string, mutate func(*model.ChatMessage)) {
	for i := range t.entries {
		if t.entries[i].ID == id {
			mutate(&t.entries[i])
			break
		}
	}
	t.inFlight = false
}

// Load replaces the transcript wholesale with backend-supplied history.
func (t *Transcript) Load(msgs []model.ChatMessage) {
	t.entries = make([]model.ChatMessage, len(msgs))
	copy(t.entries, msgs)
	t.inFlight = false
}

// Reset clears everything and reopens the gate.
func (t *Transcript) Reset() {
	t.entries = nil
	t.inFlight = false
}
