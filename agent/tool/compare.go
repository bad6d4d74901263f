package tool

import (
	"context"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
	queryx "github.com/tanpawarit/RetailAnalyst/agent/query"
	reportx "github.com/tanpawarit/RetailAnalyst/agent/report"
)

func executeCompareSections(
	ctx context.Context,
	tool string,
	args map[string]any,
	backend Backend,
	formatter *reportx.Formatter,
) (contractx.ToolResult, error) {
	first, msg := sectionArg(args, "section_a")
	if msg != "" {
		return contractx.ToolResult{Tool: tool, Error: msg}, nil
	}
	second, msg := sectionArg(args, "section_b")
	if msg != "" {
		return contractx.ToolResult{Tool: tool, Error: msg}, nil
	}

	sections := backend.GetSectionTraffic(ctx)
	return markdownResult(tool, formatter.SectionComparison(first, second, sections)), nil
}

// sectionArg extracts and validates one section-name argument. The error is
// returned as a string because tool failures are reported to the model, not
// raised.
func sectionArg(args map[string]any, key string) (string, string) {
	raw, ok := args[key]
	if !ok {
		return "", key + " is required"
	}
	name, ok := raw.(string)
	if !ok {
		return "", key + " must be a string"
	}
	if !queryx.ValidateSectionName(name) {
		return "", key + " is not a valid section name"
	}
	return name, ""
}
