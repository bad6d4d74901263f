package analystnode

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
	promptx "github.com/tanpawarit/RetailAnalyst/agent/prompt"
)

// ComposerOutput is the structured reply the compose model must emit.
type ComposerOutput struct {
	Answer string `json:"answer"`
}

func ComposeAnswer(
	ctx context.Context,
	in *GraphState,
	runner compose.Runnable[map[string]any, ComposerOutput],
) (*GraphState, error) {
	if in == nil || in.Transcript == nil {
		return nil, fmt.Errorf("%w: graph transcript is nil", contractx.ErrValidation)
	}

	// The planner answered directly; nothing to compose.
	if len(in.ToolResults) == 0 && strings.TrimSpace(in.Draft) != "" {
		in.Answer.Response = strings.TrimSpace(in.Draft)
		return in, nil
	}

	// Every planned tool failed; there is nothing to ground an answer on.
	if len(in.ToolResults) > 0 && allFailed(in.ToolResults) {
		in.Answer.Response = promptx.NoData
		return in, nil
	}

	reports := make([]map[string]any, 0, len(in.ToolResults))
	for _, result := range in.ToolResults {
		report := map[string]any{
			"tool":   result.Tool,
			"result": result.Result,
		}
		if result.Error != "" {
			report["error"] = result.Error
		}
		reports = append(reports, report)
	}

	payload := map[string]any{
		"query":   in.Query,
		"history": in.Transcript.Summary(historyTurns),
		"reports": reports,
	}
	input, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal composer payload: %v", contractx.ErrValidation, err)
	}

	out, err := runner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: composer invoke: %v", contractx.ErrModelInvoke, err)
	}

	answer := strings.TrimSpace(out.Answer)
	if answer == "" {
		return nil, fmt.Errorf("%w: composer answer is empty", contractx.ErrSchemaViolation)
	}

	in.Answer.Response = answer
	return in, nil
}

func allFailed(results []contractx.ToolResult) bool {
	for _, result := range results {
		if result.Succeeded() {
			return false
		}
	}
	return true
}
