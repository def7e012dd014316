package engineobs

import (
	"context"
	"time"

	"llm-tweet-bot/internal/interfaces"
	"llm-tweet-bot/internal/logger"
	"llm-tweet-bot/internal/trace"
	"llm-tweet-bot/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) Run(ctx context.Context) (*types.RunResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Run")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting posting run")

	result, err := oe.engine.Run(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Posting run failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return result, err
	}

	logger.InfoSkip(ctx, 1, "Posting run completed",
		"outcome", result.Outcome,
		"post_id", result.PostID,
		"permalink", result.Permalink,
		"reason", result.Reason,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}
