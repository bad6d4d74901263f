package contract

import "context"

// Analyst answers a natural-language analytics question for one chat session.
type Analyst interface {
	Answer(ctx context.Context, sessionID string, query string) (AgentAnswer, error)
}

// ToolGateway executes planned tool calls against the analytics backend.
type ToolGateway interface {
	Execute(ctx context.Context, reqs []ToolRequest) ([]ToolResult, error)
}

// ExchangeArchive records answered exchanges for later export.
type ExchangeArchive interface {
	Record(ctx context.Context, sessionID string, answer AgentAnswer) error
}
