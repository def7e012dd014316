package interfaces

import (
	"context"

	"llm-tweet-bot/internal/types"
)

type RankingSource interface {
	Fetch(ctx context.Context) ([]types.CandidateItem, error)
}
