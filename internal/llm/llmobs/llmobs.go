package llmobs

import (
	"context"
	"time"

	"llm-tweet-bot/internal/interfaces"
	"llm-tweet-bot/internal/logger"
	"llm-tweet-bot/internal/trace"
)

// observableCompleter wraps a Completer with observability (logging & tracing)
type observableCompleter struct {
	completer interfaces.Completer
	provider  string
}

// Compile-time interface check
var _ interfaces.Completer = (*observableCompleter)(nil)

// Wrap wraps a completer with observability middleware
func Wrap(completer interfaces.Completer, provider string) interfaces.Completer {
	return &observableCompleter{
		completer: completer,
		provider:  provider,
	}
}

// Complete requests a completion with observability
func (oc *observableCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Complete")
	defer span.End()

	start := time.Now()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting completion",
		"provider", oc.provider,
		"system_chars", len(system),
		"user_chars", len(user),
	)

	text, err := oc.completer.Complete(ctx, system, user)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Completion failed", err,
			"provider", oc.provider,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Completion received",
		"provider", oc.provider,
		"chars", len([]rune(text)),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return text, nil
}
