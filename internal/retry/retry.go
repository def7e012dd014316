// Package retry holds the bounded-retry decisions shared by the generation and
// publish stages. Decisions are pure functions of an error classification so the
// stage loops stay small and the policy is testable without a network or a clock.
package retry

import (
	"context"
	"errors"
	"time"
)

// Class is the retry-relevant classification of a failed call.
type Class int

const (
	// Transient failures are retried after the policy's fallback wait.
	Transient Class = iota
	// RateLimited failures are retried after the wait carried by the Outcome.
	RateLimited
	// Fatal failures are never retried.
	Fatal
)

func (c Class) String() string {
	switch c {
	case RateLimited:
		return "rate_limited"
	case Fatal:
		return "fatal"
	default:
		return "transient"
	}
}

// Classified is implemented by errors that know how they should be retried.
type Classified interface {
	error
	RetryClass() Class
}

// ResetHinter is implemented by rate-limit errors that carry the provider's reset time.
type ResetHinter interface {
	ResetAt() time.Time
}

// ClassOf returns the class of the first Classified error in err's chain,
// or Transient when there is none.
func ClassOf(err error) Class {
	var c Classified
	if errors.As(err, &c) {
		return c.RetryClass()
	}
	return Transient
}

// ResetOf returns the reset hint of the first ResetHinter in err's chain.
func ResetOf(err error) (time.Time, bool) {
	var h ResetHinter
	if errors.As(err, &h) {
		return h.ResetAt(), true
	}
	return time.Time{}, false
}

// Outcome is a classified failure plus, for RateLimited, how long to wait.
type Outcome struct {
	Class Class
	Wait  time.Duration
}

// Policy bounds a retry loop.
type Policy struct {
	MaxAttempts int
	// Fallback is the wait after a Transient failure.
	Fallback time.Duration
}

// Next decides what follows failed attempt number attempt (1-based).
// It returns the wait before the next attempt and whether there is one.
func (p Policy) Next(attempt int, o Outcome) (time.Duration, bool) {
	if o.Class == Fatal || attempt >= p.MaxAttempts {
		return 0, false
	}
	if o.Class == RateLimited {
		return o.Wait, true
	}
	return p.Fallback, true
}

// RateLimitWait is max(reset - now + pad, floor). A zero reset yields floor.
func RateLimitWait(reset, now time.Time, pad, floor time.Duration) time.Duration {
	var wait time.Duration
	if !reset.IsZero() {
		wait = reset.Sub(now) + pad
	}
	if wait < floor {
		return floor
	}
	return wait
}

// Linear returns attempt * step.
func Linear(step time.Duration, attempt int) time.Duration {
	return time.Duration(attempt) * step
}

// Clock is the time source used by retry loops.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Sleep blocks for d or until ctx is done.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
