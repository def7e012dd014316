package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"llm-tweet-bot/internal/store"
	"llm-tweet-bot/internal/trace"
)

// Completer implements interfaces.Completer with the OpenAI chat completions API.
type Completer struct {
	cfg    store.LLMConfig
	client *goopenai.Client
}

func NewCompleter(cfg store.LLMConfig, apiKey string) *Completer {
	oc := goopenai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Completer{cfg: cfg, client: goopenai.NewClientWithConfig(oc)}
}

func (c *Completer) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: system},
			{Role: goopenai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
