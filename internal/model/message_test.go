package model

import (
	"testing"
	"time"
)

func TestToolDisplayName(t *testing.T) {
	if got := ToolDisplayName("add_task"); got != "Create Task" {
		t.Fatalf("expected Create Task, got %q", got)
	}
	if got := ToolDisplayName("mystery_tool"); got != "mystery_tool" {
		t.Fatalf("expected passthrough for unknown tool, got %q", got)
	}
}

func TestFormatMessageTime(t *testing.T) {
	now := time.Date(2026, 2, 9, 18, 30, 0, 0, time.UTC)

	sameDay := time.Date(2026, 2, 9, 9, 5, 0, 0, time.UTC)
	if got := FormatMessageTime(sameDay, now); got != "09:05" {
		t.Fatalf("expected 09:05, got %q", got)
	}

	older := time.Date(2026, 2, 7, 9, 5, 0, 0, time.UTC)
	if got := FormatMessageTime(older, now); got != "Feb 7 09:05" {
		t.Fatalf("expected Feb 7 09:05, got %q", got)
	}
}
