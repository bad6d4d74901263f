package tool

import (
	"context"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
	reportx "github.com/tanpawarit/RetailAnalyst/agent/report"
)

// Gateway adapts an Executor to the contract.ToolGateway interface.
type Gateway struct {
	exec Executor
}

var _ contractx.ToolGateway = (*Gateway)(nil)

func NewGateway(backend Backend, formatter *reportx.Formatter) *Gateway {
	return &Gateway{exec: NewExecutor(backend, formatter)}
}

func (g *Gateway) Execute(ctx context.Context, reqs []contractx.ToolRequest) ([]contractx.ToolResult, error) {
	results := make([]contractx.ToolResult, 0, len(reqs))
	for _, req := range reqs {
		result, err := g.exec(ctx, req.Tool, req.Args)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
