package interfaces

import (
	"context"

	"llm-tweet-bot/internal/types"
)

type Engine interface {
	Run(ctx context.Context) (*types.RunResult, error)
}
