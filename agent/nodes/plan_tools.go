package analystnode

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
)

// historyTurns bounds how much conversation context the planner sees.
const historyTurns = 10

func PlanTools(
	ctx context.Context,
	in *GraphState,
	runner compose.Runnable[map[string]any, *schema.Message],
	allowedTools map[string]struct{},
) (*GraphState, error) {
	if in == nil || in.Transcript == nil {
		return nil, fmt.Errorf("%w: graph transcript is nil", contractx.ErrValidation)
	}

	payload := map[string]any{
		"query":   in.Query,
		"history": in.Transcript.Summary(historyTurns),
	}
	input, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal planner payload: %v", contractx.ErrValidation, err)
	}

	msg, err := runner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: tool planning invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: empty tool planning response", contractx.ErrSchemaViolation)
	}

	toolRequests, err := toToolRequests(msg.ToolCalls)
	if err != nil {
		return nil, err
	}

	if len(toolRequests) == 0 {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			return nil, fmt.Errorf("%w: planner returned neither tools nor a reply", contractx.ErrSchemaViolation)
		}
		in.Draft = content
		return in, nil
	}

	for _, tr := range toolRequests {
		if _, ok := allowedTools[tr.Tool]; !ok {
			return nil, fmt.Errorf("%w: tool=%s is not in the catalog", contractx.ErrSchemaViolation, tr.Tool)
		}
	}

	in.ToolRequests = toolRequests
	return in, nil
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, tool, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{
			Tool: tool,
			Args: args,
		})
	}
	return reqs, nil
}
