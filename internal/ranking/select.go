package ranking

import (
	"sort"

	"llm-tweet-bot/internal/types"
)

// QualifyingCalls counts the calls whose win rate is strictly above minWinRate.
func QualifyingCalls(calls []types.ChannelCall, minWinRate float64) int {
	n := 0
	for _, c := range calls {
		if c.WinRate > minWinRate {
			n++
		}
	}
	return n
}

// SelectTop drops records without qualifying calls and returns at most n of the
// rest, most calls first. Ties keep the provider's order.
func SelectTop(records []types.TokenRecord, minWinRate float64, n int) []types.CandidateItem {
	items := make([]types.CandidateItem, 0, len(records))
	for _, r := range records {
		count := QualifyingCalls(r.ChannelCalls, minWinRate)
		if count == 0 {
			continue
		}
		items = append(items, types.CandidateItem{
			Symbol:    r.Symbol,
			Address:   r.Address,
			CallCount: count,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CallCount > items[j].CallCount
	})

	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return items
}
