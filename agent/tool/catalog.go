package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
	reportx "github.com/tanpawarit/RetailAnalyst/agent/report"
	backendx "github.com/tanpawarit/RetailAnalyst/pkg/backend"
)

const (
	ToolCurrentVisitors = "visitors.current"
	ToolSectionTraffic  = "sections.traffic"
	ToolCashierStatus   = "cashier.status"
	ToolHeatmap         = "heatmap.read"
	ToolDailyAnalytics  = "analytics.daily"
	ToolTrafficForecast = "forecast.traffic"
	ToolCompareSections = "sections.compare"
)

// Backend is the slice of the analytics client the tool layer needs.
type Backend interface {
	GetCurrentVisitors(ctx context.Context) backendx.ObjectResult
	GetSectionTraffic(ctx context.Context) backendx.ListResult
	GetCashierStatus(ctx context.Context) backendx.ObjectResult
	GetHeatmapData(ctx context.Context) backendx.ListResult
	GetDailyAnalytics(ctx context.Context) backendx.ObjectResult
	GetTrafficForecast(ctx context.Context) backendx.ObjectResult
}

var _ Backend = (*backendx.Client)(nil)

type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// BuildCatalog returns the tool infos advertised to the model and the
// executor that resolves them against the backend.
func BuildCatalog(backend Backend, formatter *reportx.Formatter) ([]*schema.ToolInfo, Executor) {
	return Infos(), NewExecutor(backend, formatter)
}

func NewExecutor(backend Backend, formatter *reportx.Formatter) Executor {
	fallback := DefaultExecutor()
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolCurrentVisitors:
			return markdownResult(tool, formatter.VisitorStatus(backend.GetCurrentVisitors(ctx))), nil
		case ToolSectionTraffic:
			return markdownResult(tool, formatter.SectionTraffic(backend.GetSectionTraffic(ctx))), nil
		case ToolCashierStatus:
			return markdownResult(tool, formatter.CashierStatus(backend.GetCashierStatus(ctx))), nil
		case ToolHeatmap:
			return markdownResult(tool, formatter.Heatmap(backend.GetHeatmapData(ctx))), nil
		case ToolDailyAnalytics:
			return markdownResult(tool, formatter.DailyReport(backend.GetDailyAnalytics(ctx))), nil
		case ToolTrafficForecast:
			return markdownResult(tool, formatter.TrafficForecast(backend.GetTrafficForecast(ctx))), nil
		case ToolCompareSections:
			return executeCompareSections(ctx, tool, args, backend, formatter)
		default:
			return fallback(ctx, tool, args)
		}
	}
}

func DefaultExecutor() Executor {
	return func(ctx context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is unavailable", tool),
		}, nil
	}
}

func markdownResult(tool, markdown string) contractx.ToolResult {
	return contractx.ToolResult{
		Tool:   tool,
		Result: markdown,
	}
}

func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolCurrentVisitors,
			Desc: "Get the current number of visitors in the store. Use for footfall, people count, or how busy the store is.",
		},
		{
			Name: ToolSectionTraffic,
			Desc: "Analyze visitor distribution across store sections. Use for crowded areas, popular sections, or traffic distribution.",
		},
		{
			Name: ToolCashierStatus,
			Desc: "Get cashier queue length and estimated wait time. Use for checkout lines or cashier busyness.",
		},
		{
			Name: ToolHeatmap,
			Desc: "Get the store heatmap showing high, medium, and low traffic areas. Use for layout analysis or area busyness.",
		},
		{
			Name: ToolDailyAnalytics,
			Desc: "Get daily store performance metrics: total visitors, busiest section, peak hours. Use for summary reports.",
		},
		{
			Name: ToolTrafficForecast,
			Desc: "Get traffic predictions for the next few hours. Use for planning or forecasting questions.",
		},
		{
			Name: ToolCompareSections,
			Desc: "Compare visitor traffic between two specific store sections.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"section_a": {Type: schema.String, Desc: "First section to compare", Required: true},
				"section_b": {Type: schema.String, Desc: "Second section to compare", Required: true},
			}),
		},
	}
}
