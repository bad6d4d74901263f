package session

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// maxTurns bounds the rolling conversation buffer; the oldest turns are
// dropped first.
const maxTurns = 50

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Sources   []string  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Transcript is the persistent conversation buffer for one chat session.
type Transcript struct {
	SessionID string    `json:"session_id"`
	Turns     []Turn    `json:"turns,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidSession = errors.New("session id is empty")
	ErrEmptyContent   = errors.New("turn content is empty")
	ErrInvalidRole    = errors.New("turn role is invalid")
)

func NewTranscript(sessionID string, now time.Time) *Transcript {
	return &Transcript{
		SessionID: sessionID,
		UpdatedAt: now.UTC(),
	}
}

func (t *Transcript) Touch(now time.Time) {
	t.UpdatedAt = now.UTC()
}

// AppendUser records a user question.
func (t *Transcript) AppendUser(content string, now time.Time) error {
	return t.append(Turn{
		Role:      RoleUser,
		Content:   content,
		CreatedAt: now.UTC(),
	}, now)
}

// AppendAssistant records an answer together with the tools it used.
func (t *Transcript) AppendAssistant(content string, sources []string, now time.Time) error {
	return t.append(Turn{
		Role:      RoleAssistant,
		Content:   content,
		Sources:   sources,
		CreatedAt: now.UTC(),
	}, now)
}

func (t *Transcript) append(turn Turn, now time.Time) error {
	if strings.TrimSpace(turn.Content) == "" {
		return ErrEmptyContent
	}
	t.Turns = append(t.Turns, turn)
	if len(t.Turns) > maxTurns {
		t.Turns = t.Turns[len(t.Turns)-maxTurns:]
	}
	t.Touch(now)
	return nil
}

// Recent returns up to n of the latest turns, oldest first.
func (t *Transcript) Recent(n int) []Turn {
	if t == nil || n <= 0 || len(t.Turns) == 0 {
		return nil
	}
	if n >= len(t.Turns) {
		return t.Turns
	}
	return t.Turns[len(t.Turns)-n:]
}

// Summary renders the buffer as a compact history block for the model
// prompt.
func (t *Transcript) Summary(limit int) string {
	turns := t.Recent(limit)
	if len(turns) == 0 {
		return "No conversation history"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Conversation Summary (%d messages):\n", len(turns))
	for i, turn := range turns {
		role := "User"
		if turn.Role == RoleAssistant {
			role = "Assistant"
		}
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, role, clip(turn.Content, 100))
	}
	return b.String()
}

func (t *Transcript) Validate() error {
	if strings.TrimSpace(t.SessionID) == "" {
		return ErrInvalidSession
	}
	for _, turn := range t.Turns {
		if turn.Role != RoleUser && turn.Role != RoleAssistant {
			return fmt.Errorf("%w: %q", ErrInvalidRole, turn.Role)
		}
		if strings.TrimSpace(turn.Content) == "" {
			return ErrEmptyContent
		}
	}
	return nil
}

func clip(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
