package engineobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-tweet-bot/internal/types"
)

type stubEngine struct {
	result *types.RunResult
	err    error
}

func (s stubEngine) Run(context.Context) (*types.RunResult, error) {
	return s.result, s.err
}

func TestWrap_ReturnsResult(t *testing.T) {
	want := &types.RunResult{Outcome: types.OutcomePosted, PostID: "12345"}

	got, err := Wrap(stubEngine{result: want}).Run(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestWrap_KeepsResultOnError(t *testing.T) {
	boom := errors.New("publish failed")
	want := &types.RunResult{Outcome: types.OutcomeFailed}

	got, err := Wrap(stubEngine{result: want, err: boom}).Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Same(t, want, got)
}
