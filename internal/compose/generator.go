package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"llm-tweet-bot/internal/interfaces"
	"llm-tweet-bot/internal/logger"
	"llm-tweet-bot/internal/retry"
	"llm-tweet-bot/internal/store"
	"llm-tweet-bot/internal/types"
)

// ErrGenerationFailed means every attempt failed or came back empty.
var ErrGenerationFailed = errors.New("post generation failed")

var errEmptyCompletion = errors.New("empty completion")

// labelPrefixes are echoes of prompt labels some models put in front of the post.
var labelPrefixes = []string{"MAIN_TWEET:", "TWEET:", "POST:"}

// Generator turns a ranked selection into post text.
type Generator struct {
	completer   interfaces.Completer
	clock       retry.Clock
	system      string
	maxAttempts int
	backoffStep time.Duration
}

func NewGenerator(completer interfaces.Completer, cfg store.LLMConfig, clock retry.Clock) *Generator {
	system := strings.TrimSpace(cfg.System)
	if system == "" {
		system = DefaultSystemPrompt
	}
	if clock == nil {
		clock = retry.SystemClock{}
	}
	return &Generator{
		completer:   completer,
		clock:       clock,
		system:      system,
		maxAttempts: cfg.MaxAttempts,
		backoffStep: cfg.BackoffStep,
	}
}

// Generate asks the completer for a post, retrying failures and empty output
// with a linear backoff. The returned body has label artifacts removed.
func (g *Generator) Generate(ctx context.Context, items []types.CandidateItem) (string, error) {
	user := BuildUserPrompt(items)

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		text, err := g.completer.Complete(ctx, g.system, user)
		if err == nil {
			text = StripLabels(text)
			if text != "" {
				logger.Info(ctx, "Post generated", "attempt", attempt, "chars", len([]rune(text)))
				return text, nil
			}
			err = errEmptyCompletion
		}
		lastErr = err

		if attempt == g.maxAttempts {
			break
		}
		wait := retry.Linear(g.backoffStep, attempt)
		logger.Retry(ctx, "generate", attempt, g.maxAttempts, wait, err)
		if err := g.clock.Sleep(ctx, wait); err != nil {
			return "", fmt.Errorf("%w: %w", ErrGenerationFailed, errors.Join(lastErr, err))
		}
	}

	return "", fmt.Errorf("%w after %d attempts: %v", ErrGenerationFailed, g.maxAttempts, lastErr)
}

// StripLabels trims whitespace and any leading label such as "Tweet:".
func StripLabels(text string) string {
	text = strings.TrimSpace(text)
	for {
		stripped := false
		for _, p := range labelPrefixes {
			if len(text) >= len(p) && strings.EqualFold(text[:len(p)], p) {
				text = strings.TrimSpace(text[len(p):])
				stripped = true
			}
		}
		if !stripped {
			return text
		}
	}
}
