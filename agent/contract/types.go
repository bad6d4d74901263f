package contract

import "time"

// AgentAnswer is the final response produced for one user query: a markdown
// report plus the names of the tools that contributed to it.
type AgentAnswer struct {
	Query      string    `json:"query"`
	Response   string    `json:"response"`
	Sources    []string  `json:"sources,omitempty"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Succeeded reports whether the tool produced usable output.
func (r ToolResult) Succeeded() bool {
	return r.Error == ""
}
