package compose

import (
	"context"
	"time"
)

// fakeClock records sleeps instead of blocking.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return ctx.Err()
}

type reply struct {
	text string
	err  error
}

// scriptedCompleter answers each call with the next reply; the last one repeats.
type scriptedCompleter struct {
	replies []reply
	calls   int
	system  string
	user    string
}

func (s *scriptedCompleter) Complete(_ context.Context, system, user string) (string, error) {
	s.system, s.user = system, user
	r := s.replies[min(s.calls, len(s.replies)-1)]
	s.calls++
	return r.text, r.err
}
