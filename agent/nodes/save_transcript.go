package analystnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
	sessionx "github.com/tanpawarit/RetailAnalyst/agent/session"
)

func SaveTranscript(
	ctx context.Context,
	in *GraphState,
	store sessionx.Store,
) (*GraphState, error) {
	if in == nil || in.Transcript == nil {
		return nil, fmt.Errorf("%w: graph transcript is nil", contractx.ErrValidation)
	}

	if err := in.Transcript.AppendAssistant(in.Answer.Response, in.Answer.Sources, in.Now); err != nil {
		return nil, err
	}
	if err := store.Save(ctx, in.Transcript); err != nil {
		return nil, err
	}
	return in, nil
}
