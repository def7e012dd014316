// Package social publishes finished posts to the social platform with the
// bounded retry rules for rate limits, fatal rejections and transient errors.
package social

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"llm-tweet-bot/internal/interfaces"
	"llm-tweet-bot/internal/logger"
	"llm-tweet-bot/internal/retry"
	"llm-tweet-bot/internal/store"
)

var (
	// ErrPublishFailed wraps the last error once publishing gives up.
	ErrPublishFailed = errors.New("publish failed")
	// ErrMediaFailed wraps the last error once media upload gives up.
	ErrMediaFailed = errors.New("media upload failed")
)

// Publisher retries platform calls according to store.PublishConfig.
type Publisher struct {
	platform interfaces.Platform
	clock    retry.Clock
	cfg      store.PublishConfig
}

func NewPublisher(platform interfaces.Platform, cfg store.PublishConfig, clock retry.Clock) *Publisher {
	if clock == nil {
		clock = retry.SystemClock{}
	}
	return &Publisher{
		platform: platform,
		clock:    clock,
		cfg:      cfg,
	}
}

// Publish creates the post and returns its ID. Rate limits wait until the
// provider's reset plus a pad, never less than the configured floor. Fatal
// rejections stop immediately and anything else waits the fallback.
func (p *Publisher) Publish(ctx context.Context, text string, mediaIDs []string) (string, error) {
	var id string
	err := p.do(ctx, "publish", p.cfg.RateLimitFloor, func(ctx context.Context) error {
		var err error
		id, err = p.platform.CreatePost(ctx, text, mediaIDs)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return id, nil
}

// UploadMedia uploads the image at path. A missing file fails without a
// network call.
func (p *Publisher) UploadMedia(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMediaFailed, err)
	}

	var id string
	err := p.do(ctx, "media_upload", p.cfg.MediaRateLimitFloor, func(ctx context.Context) error {
		var err error
		id, err = p.platform.UploadMedia(ctx, path)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMediaFailed, err)
	}
	return id, nil
}

func (p *Publisher) do(ctx context.Context, stage string, floor time.Duration, call func(context.Context) error) error {
	policy := retry.Policy{MaxAttempts: p.cfg.MaxAttempts, Fallback: p.cfg.FallbackWait}

	for attempt := 1; ; attempt++ {
		err := call(ctx)
		if err == nil {
			return nil
		}

		outcome := retry.Outcome{Class: retry.ClassOf(err)}
		if outcome.Class == retry.RateLimited {
			reset, _ := retry.ResetOf(err)
			outcome.Wait = retry.RateLimitWait(reset, p.clock.Now(), p.cfg.RateLimitPad, floor)
		}

		wait, ok := policy.Next(attempt, outcome)
		if !ok {
			if outcome.Class == retry.Fatal {
				logger.Warn(ctx, "Not retrying rejected call", "stage", stage, "attempt", attempt, "error", err.Error())
			}
			return err
		}

		logger.Retry(ctx, stage, attempt, policy.MaxAttempts, wait, err)
		if serr := p.clock.Sleep(ctx, wait); serr != nil {
			return errors.Join(err, serr)
		}
	}
}
