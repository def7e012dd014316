package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type classifiedErr struct {
	class Class
	reset time.Time
}

func (e *classifiedErr) Error() string      { return "classified " + e.class.String() }
func (e *classifiedErr) RetryClass() Class  { return e.class }
func (e *classifiedErr) ResetAt() time.Time { return e.reset }

func TestPolicyNext(t *testing.T) {
	p := Policy{MaxAttempts: 3, Fallback: 30 * time.Second}

	tests := []struct {
		name    string
		attempt int
		outcome Outcome
		wait    time.Duration
		retry   bool
	}{
		{"transient first attempt", 1, Outcome{Class: Transient}, 30 * time.Second, true},
		{"transient second attempt", 2, Outcome{Class: Transient}, 30 * time.Second, true},
		{"transient final attempt", 3, Outcome{Class: Transient}, 0, false},
		{"rate limited uses hint", 1, Outcome{Class: RateLimited, Wait: 400 * time.Second}, 400 * time.Second, true},
		{"rate limited final attempt", 3, Outcome{Class: RateLimited, Wait: 400 * time.Second}, 0, false},
		{"fatal never retries", 1, Outcome{Class: Fatal}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wait, again := p.Next(tt.attempt, tt.outcome)
			assert.Equal(t, tt.retry, again)
			assert.Equal(t, tt.wait, wait)
		})
	}
}

func TestRateLimitWait(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	pad, floor := 60*time.Second, 300*time.Second

	// reset 100s in the future: 100+60 = 160 < 300, floor wins
	assert.Equal(t, 300*time.Second, RateLimitWait(now.Add(100*time.Second), now, pad, floor))
	// reset 100s in the past: floor wins
	assert.Equal(t, 300*time.Second, RateLimitWait(now.Add(-100*time.Second), now, pad, floor))
	// reset far ahead: 900+60
	assert.Equal(t, 960*time.Second, RateLimitWait(now.Add(900*time.Second), now, pad, floor))
	// missing header
	assert.Equal(t, 300*time.Second, RateLimitWait(time.Time{}, now, pad, floor))
	// media calls use a shorter floor
	assert.Equal(t, 180*time.Second, RateLimitWait(time.Time{}, now, pad, 180*time.Second))
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, Transient, ClassOf(errors.New("plain")))

	wrapped := fmt.Errorf("post: %w", &classifiedErr{class: Fatal})
	assert.Equal(t, Fatal, ClassOf(wrapped))

	reset := time.Unix(42, 0)
	got, ok := ResetOf(fmt.Errorf("x: %w", &classifiedErr{class: RateLimited, reset: reset}))
	require.True(t, ok)
	assert.Equal(t, reset, got)

	_, ok = ResetOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestLinear(t *testing.T) {
	assert.Equal(t, 5*time.Second, Linear(5*time.Second, 1))
	assert.Equal(t, 10*time.Second, Linear(5*time.Second, 2))
}

func TestSystemClockSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := SystemClock{}.Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	assert.NoError(t, SystemClock{}.Sleep(context.Background(), time.Millisecond))
}
