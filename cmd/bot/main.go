package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"llm-tweet-bot/internal/logger"
)

// main performs one posting run. Every outcome, startup failures included,
// is logged and the process exits normally.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.ErrorWithErr(ctx, "Startup failed", err)
	}
}

// run returns an error only when the bot could not start. Run outcomes,
// including a failed publish, are logged and recorded instead.
func run(ctx context.Context) error {
	if err := initializeSystem(); err != nil {
		return err
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	initializeTracer(ctx, cfg)
	defer shutdownTracer(ctx)

	eng, err := initializeEngine(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := eng.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn(ctx, "Run interrupted", "outcome", outcomeOf(result))
	case err != nil:
		logger.ErrorWithErr(ctx, "Run finished with error", err, "outcome", outcomeOf(result))
	default:
		logger.Info(ctx, "Run finished", "outcome", result.Outcome, "permalink", result.Permalink)
	}
	recordRun(ctx, result)
	return nil
}
