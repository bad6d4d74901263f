package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTranscriptAppendAndRecent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	tr := NewTranscript("session-1", now)

	if err := tr.AppendUser("How busy is the store?", now); err != nil {
		t.Fatalf("AppendUser() error = %v", err)
	}
	if err := tr.AppendAssistant("42 visitors right now.", []string{"visitors.current"}, now.Add(time.Second)); err != nil {
		t.Fatalf("AppendAssistant() error = %v", err)
	}

	recent := tr.Recent(10)
	if len(recent) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(recent))
	}
	if recent[0].Role != RoleUser || recent[1].Role != RoleAssistant {
		t.Fatalf("unexpected roles: %v %v", recent[0].Role, recent[1].Role)
	}
	if recent[1].Sources[0] != "visitors.current" {
		t.Fatalf("unexpected sources: %v", recent[1].Sources)
	}
	if !tr.UpdatedAt.Equal(now.Add(time.Second)) {
		t.Fatalf("UpdatedAt = %v, want %v", tr.UpdatedAt, now.Add(time.Second))
	}
}

func TestTranscriptRejectsEmptyContent(t *testing.T) {
	t.Parallel()

	tr := NewTranscript("session-1", time.Now())
	if err := tr.AppendUser("   ", time.Now()); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}

func TestTranscriptTrimsOldestBeyondCap(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tr := NewTranscript("session-1", now)
	for i := 0; i < maxTurns+10; i++ {
		if err := tr.AppendUser("question", now); err != nil {
			t.Fatalf("AppendUser() error = %v", err)
		}
	}
	if len(tr.Turns) != maxTurns {
		t.Fatalf("expected buffer capped at %d, got %d", maxTurns, len(tr.Turns))
	}
}

func TestTranscriptSummary(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tr := NewTranscript("session-1", now)

	if got := tr.Summary(10); got != "No conversation history" {
		t.Fatalf("empty summary = %q", got)
	}

	_ = tr.AppendUser("How many visitors?", now)
	_ = tr.AppendAssistant(strings.Repeat("x", 150), nil, now)

	summary := tr.Summary(10)
	if !strings.Contains(summary, "1. User: How many visitors?") {
		t.Fatalf("summary missing user line: %q", summary)
	}
	if !strings.Contains(summary, "2. Assistant: "+strings.Repeat("x", 100)+"...") {
		t.Fatalf("summary must clip long content: %q", summary)
	}
}

func TestTranscriptValidate(t *testing.T) {
	t.Parallel()

	tr := NewTranscript("  ", time.Now())
	if err := tr.Validate(); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}

	tr = NewTranscript("session-1", time.Now())
	tr.Turns = append(tr.Turns, Turn{Role: "bot", Content: "hi"})
	if err := tr.Validate(); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	now := time.Now()

	tr := NewTranscript("session-1", now)
	_ = tr.AppendUser("hello analytics", now)
	if err := store.Save(context.Background(), tr); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the original must not leak into the stored copy.
	_ = tr.AppendUser("second question", now)

	loaded, err := store.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.Turns) != 1 {
		t.Fatalf("expected stored snapshot with 1 turn, got %d", len(loaded.Turns))
	}

	if err := store.Delete(context.Background(), "session-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load(context.Background(), "session-1"); !errors.Is(err, ErrTranscriptNotFound) {
		t.Fatalf("expected ErrTranscriptNotFound after delete, got %v", err)
	}
}
