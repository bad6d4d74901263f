package analystnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
)

func ExecuteTools(
	ctx context.Context,
	in *GraphState,
	gateway contractx.ToolGateway,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if len(in.ToolRequests) == 0 {
		return in, nil
	}

	results, err := gateway.Execute(ctx, in.ToolRequests)
	if err != nil {
		return nil, err
	}

	in.ToolResults = results
	return in, nil
}
