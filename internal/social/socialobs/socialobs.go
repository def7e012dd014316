package socialobs

import (
	"context"

	"llm-tweet-bot/internal/interfaces"
	"llm-tweet-bot/internal/logger"
	"llm-tweet-bot/internal/retry"
	"llm-tweet-bot/internal/trace"
	"llm-tweet-bot/internal/types"
)

// observablePlatform wraps a Platform with observability (logging & tracing)
type observablePlatform struct {
	platform interfaces.Platform
}

// Compile-time interface check
var _ interfaces.Platform = (*observablePlatform)(nil)

// Wrap wraps a platform with observability middleware. Errors are returned
// unchanged so callers can still classify them.
func Wrap(platform interfaces.Platform) interfaces.Platform {
	return &observablePlatform{
		platform: platform,
	}
}

// Me resolves the authenticated account with observability
func (op *observablePlatform) Me(ctx context.Context) (types.Account, error) {
	ctx, span := trace.StartSpan(ctx, "social.Me")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Resolving account")

	acct, err := op.platform.Me(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to resolve account", err)
		return types.Account{}, err
	}

	logger.InfoSkip(ctx, 1, "Account resolved", "username", acct.Username, "id", acct.ID)
	return acct, nil
}

// CreatePost publishes a post with observability
func (op *observablePlatform) CreatePost(ctx context.Context, text string, mediaIDs []string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "social.CreatePost")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Creating post", "chars", len([]rune(text)), "media", len(mediaIDs))

	id, err := op.platform.CreatePost(ctx, text, mediaIDs)
	if err != nil {
		if retry.ClassOf(err) == retry.RateLimited {
			logger.WarnSkip(ctx, 1, "Post rate limited", "error", err.Error())
			return "", err
		}
		logger.ErrorWithErrSkip(ctx, 1, "Failed to create post", err, "chars", len([]rune(text)))
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Post created", "post_id", id)
	return id, nil
}

// UploadMedia uploads an image with observability
func (op *observablePlatform) UploadMedia(ctx context.Context, path string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "social.UploadMedia")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Uploading media", "path", path)

	id, err := op.platform.UploadMedia(ctx, path)
	if err != nil {
		if retry.ClassOf(err) == retry.RateLimited {
			logger.WarnSkip(ctx, 1, "Media upload rate limited", "path", path, "error", err.Error())
			return "", err
		}
		logger.ErrorWithErrSkip(ctx, 1, "Failed to upload media", err, "path", path)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Media uploaded", "media_id", id)
	return id, nil
}
