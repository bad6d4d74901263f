package analystnode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
)

const (
	baseConfidence = 0.5
	confidenceSpan = 0.4
	maxConfidence  = 0.9
)

// FinalizeAnswer fills in sources and confidence from the tool outcomes.
// Confidence starts at the base and grows with the share of tool calls
// that succeeded, capped below certainty.
func FinalizeAnswer(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if strings.TrimSpace(in.Answer.Response) == "" {
		return nil, fmt.Errorf("%w: answer is empty", contractx.ErrValidation)
	}

	in.Answer.Query = in.Query
	in.Answer.Timestamp = in.Now
	in.Answer.Sources = dedupSources(in.ToolResults)

	confidence := baseConfidence
	if total := len(in.ToolResults); total > 0 {
		succeeded := 0
		for _, result := range in.ToolResults {
			if result.Succeeded() {
				succeeded++
			}
		}
		confidence = baseConfidence + confidenceSpan*float64(succeeded)/float64(total)
		if confidence > maxConfidence {
			confidence = maxConfidence
		}
	}
	in.Answer.Confidence = confidence

	return in, nil
}

func dedupSources(results []contractx.ToolResult) []string {
	if len(results) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(results))
	sources := make([]string, 0, len(results))
	for _, result := range results {
		if !result.Succeeded() {
			continue
		}
		if _, ok := seen[result.Tool]; ok {
			continue
		}
		seen[result.Tool] = struct{}{}
		sources = append(sources, result.Tool)
	}
	if len(sources) == 0 {
		return nil
	}
	return sources
}
