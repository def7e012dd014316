package interfaces

import (
	"context"

	"llm-tweet-bot/internal/types"
)

// Platform is the social network the bot publishes to.
type Platform interface {
	Me(ctx context.Context) (types.Account, error)
	CreatePost(ctx context.Context, text string, mediaIDs []string) (string, error)
	UploadMedia(ctx context.Context, path string) (string, error)
}
