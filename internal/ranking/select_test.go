package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"llm-tweet-bot/internal/types"
)

func calls(rates ...float64) []types.ChannelCall {
	out := make([]types.ChannelCall, len(rates))
	for i, r := range rates {
		out[i] = types.ChannelCall{WinRate: r}
	}
	return out
}

func TestQualifyingCalls_ThresholdIsExclusive(t *testing.T) {
	assert.Equal(t, 0, QualifyingCalls(calls(30, 10, 0), 30))
	assert.Equal(t, 2, QualifyingCalls(calls(30.5, 99, 30), 30))
	assert.Equal(t, 0, QualifyingCalls(nil, 30))
}

func TestSelectTop(t *testing.T) {
	records := []types.TokenRecord{
		{Symbol: "AAA", Address: "a", ChannelCalls: calls(50)},          // 1
		{Symbol: "ZERO", Address: "z", ChannelCalls: calls(10, 20, 30)}, // 0
		{Symbol: "BBB", Address: "b", ChannelCalls: calls(40, 60, 70)},  // 3
		{Symbol: "CCC", Address: "c", ChannelCalls: calls(31, 32)},      // 2
		{Symbol: "DDD", Address: "d", ChannelCalls: calls(80, 90)},      // 2, after CCC
		{Symbol: "EMPTY", Address: "e"},                                 // 0
	}

	got := SelectTop(records, 30, 3)

	assert.Equal(t, []types.CandidateItem{
		{Symbol: "BBB", Address: "b", CallCount: 3},
		{Symbol: "CCC", Address: "c", CallCount: 2},
		{Symbol: "DDD", Address: "d", CallCount: 2},
	}, got)
}

func TestSelectTop_Invariants(t *testing.T) {
	records := []types.TokenRecord{
		{Symbol: "A", ChannelCalls: calls(31)},
		{Symbol: "B", ChannelCalls: calls(1)},
		{Symbol: "C", ChannelCalls: calls(31, 31, 31, 31)},
		{Symbol: "D", ChannelCalls: calls(31, 31)},
		{Symbol: "E", ChannelCalls: calls(31)},
		{Symbol: "F", ChannelCalls: calls(31, 31)},
	}

	got := SelectTop(records, 30, 3)

	assert.Len(t, got, 3)
	for i, it := range got {
		assert.Greater(t, it.CallCount, 0)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].CallCount, it.CallCount)
		}
	}
	assert.Equal(t, []string{"C", "D", "F"}, []string{got[0].Symbol, got[1].Symbol, got[2].Symbol})
}

func TestSelectTop_FewerThanN(t *testing.T) {
	got := SelectTop([]types.TokenRecord{{Symbol: "ONLY", ChannelCalls: calls(99)}}, 30, 3)
	assert.Len(t, got, 1)

	assert.Empty(t, SelectTop(nil, 30, 3))
	assert.Empty(t, SelectTop([]types.TokenRecord{{Symbol: "NONE", ChannelCalls: calls(5)}}, 30, 3))
}
