package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"llm-tweet-bot/internal/compose"
	"llm-tweet-bot/internal/interfaces"
	"llm-tweet-bot/internal/logger"
	"llm-tweet-bot/internal/social"
	"llm-tweet-bot/internal/store"
	"llm-tweet-bot/internal/types"
)

// ErrPostTooLong is returned when the prepared text exceeds post.max_length.
var ErrPostTooLong = errors.New("post exceeds length limit")

const previewChars = 100

type engine struct {
	cfg       *store.Config
	ranking   interfaces.RankingSource
	generator *compose.Generator
	publisher *social.Publisher
	handle    string
}

func newEngine(cfg *store.Config, deps Deps) *engine {
	return &engine{
		cfg:       cfg,
		ranking:   deps.Ranking,
		generator: deps.Generator,
		publisher: deps.Publisher,
		handle:    deps.Handle,
	}
}

// Run executes fetch, select, generate, normalize and publish once.
// Skips are reported through the result with a nil error. A publish
// failure, a rejected post or a cancelled context returns an error.
func (e *engine) Run(ctx context.Context) (*types.RunResult, error) {
	items, err := e.ranking.Fetch(ctx)
	if err != nil {
		logger.Warn(ctx, "No ranking data, skipping run", "error", err.Error())
		return &types.RunResult{Outcome: types.OutcomeSkippedNoData, Reason: err.Error()}, nil
	}
	logger.Selection(ctx, items)

	result := &types.RunResult{Selection: items}

	body, err := e.generator.Generate(ctx, items)
	if err != nil {
		result.Outcome = types.OutcomeSkippedGeneration
		result.Reason = err.Error()
		if ctx.Err() != nil {
			return result, err
		}
		logger.ErrorWithErr(ctx, "Post generation failed, skipping run", err)
		return result, nil
	}

	text := compose.Normalize(body, e.cfg.Post.Suffix, e.cfg.Post.MaxLength)
	result.Text = text
	length := len([]rune(text))
	logger.Info(ctx, "Post prepared", "chars", length, "preview", preview(text))

	if limit := min(e.cfg.Post.MaxLength, store.PlatformMaxLength); length > limit {
		logger.Error(ctx, "Refusing to publish overlong post", "chars", length, "limit", limit)
		err := fmt.Errorf("%w: %d > %d", ErrPostTooLong, length, limit)
		result.Outcome = types.OutcomeFailed
		result.Reason = err.Error()
		return result, err
	}

	if e.cfg.DryRun() {
		logger.Warn(ctx, "DRY_RUN mode - post not published", "text", text)
		result.Outcome = types.OutcomeDryRun
		return result, nil
	}

	mediaIDs := e.uploadMedia(ctx)

	postID, err := e.publisher.Publish(ctx, text, mediaIDs)
	if err != nil {
		result.Outcome = types.OutcomeFailed
		result.Reason = err.Error()
		return result, err
	}

	result.Outcome = types.OutcomePosted
	result.PostID = postID
	result.Permalink = Permalink(e.cfg.Post.PermalinkBase, e.handle, postID)
	logger.Published(ctx, postID, result.Permalink, length)
	return result, nil
}

// uploadMedia returns the media IDs to attach, or nil when no image is
// configured or the upload failed.
func (e *engine) uploadMedia(ctx context.Context) []string {
	path := e.cfg.Post.ImagePath
	if path == "" {
		return nil
	}
	id, err := e.publisher.UploadMedia(ctx, path)
	if err != nil {
		logger.Warn(ctx, "Posting without image", "path", path, "error", err.Error())
		return nil
	}
	return []string{id}
}

// Permalink builds base/handle/status/id.
func Permalink(base, handle, postID string) string {
	return fmt.Sprintf("%s/%s/status/%s", strings.TrimRight(base, "/"), handle, postID)
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) > previewChars {
		return string(r[:previewChars]) + "..."
	}
	return text
}
