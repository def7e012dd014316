package types

// ChannelCall is a single channel's call on a token as reported by the ranking provider.
type ChannelCall struct {
	WinRate float64 `json:"win_rate"`
}

// TokenRecord is one entry of the ranking provider's response.
type TokenRecord struct {
	Symbol       string        `json:"symbol"`
	Address      string        `json:"address"`
	ChannelCalls []ChannelCall `json:"channel_calls"`
}

// CandidateItem is a token that survived the qualifying-call filter.
type CandidateItem struct {
	Symbol    string `json:"symbol"`
	Address   string `json:"address"`
	CallCount int    `json:"call_count"`
}

// Account identifies the authenticated social-platform user.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type RunOutcome string

const (
	OutcomePosted            RunOutcome = "POSTED"
	OutcomeDryRun            RunOutcome = "DRY_RUN"
	OutcomeSkippedNoData     RunOutcome = "SKIPPED_NO_DATA"
	OutcomeSkippedGeneration RunOutcome = "SKIPPED_GENERATION"
	OutcomeFailed            RunOutcome = "FAILED"
)

// RunResult summarises one invocation of the bot.
type RunResult struct {
	Outcome   RunOutcome      `json:"outcome"`
	Selection []CandidateItem `json:"selection,omitempty"`
	Text      string          `json:"text,omitempty"`
	PostID    string          `json:"post_id,omitempty"`
	Permalink string          `json:"permalink,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}
