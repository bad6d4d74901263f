package analystnode

import (
	"strings"
	"time"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
	queryx "github.com/tanpawarit/RetailAnalyst/agent/query"
	sessionx "github.com/tanpawarit/RetailAnalyst/agent/session"
)

type GraphInput struct {
	SessionID string
	Query     string
}

type GraphOutput struct {
	Answer contractx.AgentAnswer
}

// GraphState is threaded through the answer graph nodes.
type GraphState struct {
	SessionID string
	Query     string
	Now       time.Time

	Transcript *sessionx.Transcript

	ToolRequests []contractx.ToolRequest
	ToolResults  []contractx.ToolResult

	// Draft holds a direct model reply produced during tool planning when
	// no tools were requested.
	Draft string

	Answer contractx.AgentAnswer
}

func ValidateQuery(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, sessionx.ErrInvalidSession
	}

	text := strings.TrimSpace(in.Query)
	if err := queryx.ValidateQuery(text); err != nil {
		return nil, err
	}

	return &GraphState{
		SessionID: sessionID,
		Query:     text,
		Now:       nowFn().UTC(),
	}, nil
}
