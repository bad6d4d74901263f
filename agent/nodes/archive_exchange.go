package analystnode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
)

// ArchiveExchange records the answered exchange. Archiving is best effort;
// a failed insert must not lose the answer already produced.
func ArchiveExchange(
	ctx context.Context,
	in *GraphState,
	archive contractx.ExchangeArchive,
) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	if err := archive.Record(ctx, in.SessionID, in.Answer); err != nil {
		log.Warn().
			Err(err).
			Str("session_id", in.SessionID).
			Msg("archive exchange failed")
	}

	return GraphOutput{Answer: in.Answer}, nil
}
