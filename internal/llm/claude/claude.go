package claude

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"llm-tweet-bot/internal/store"
	"llm-tweet-bot/internal/trace"
)

// Completer implements interfaces.Completer using the Anthropic Messages API
type Completer struct {
	cfg    store.LLMConfig
	client anthropic.Client
}

// NewCompleter creates a Claude-backed completer. The SDK's own retries are
// disabled; the generation stage owns the retry budget.
func NewCompleter(cfg store.LLMConfig, apiKey string) *Completer {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	// Proxies and gateways are configured through llm.base_url
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Completer{cfg: cfg, client: anthropic.NewClient(opts...)}
}

// Complete sends one system + user exchange and returns the first text block
func (c *Completer) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   int64(c.cfg.MaxTokens),
		Temperature: anthropic.Float(float64(c.cfg.Temperature)),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", err
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", errors.New("no text content in claude response")
}
