package analystnode

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
	sessionx "github.com/tanpawarit/RetailAnalyst/agent/session"
)

func LoadTranscript(
	ctx context.Context,
	in *GraphState,
	store sessionx.Store,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	transcript, err := store.Load(ctx, in.SessionID)
	if err != nil {
		if !errors.Is(err, sessionx.ErrTranscriptNotFound) {
			return nil, err
		}
		transcript = sessionx.NewTranscript(in.SessionID, in.Now)
	}

	if err := transcript.AppendUser(in.Query, in.Now); err != nil {
		return nil, err
	}

	in.Transcript = transcript
	return in, nil
}
