package compose

import (
	"fmt"
	"strings"

	"llm-tweet-bot/internal/types"
)

// DefaultSystemPrompt is the persona used when llm.system is not configured.
const DefaultSystemPrompt = `You are MONTY, an AI agent writing crypto posts in English.

VOICE:
- Sharp and witty, never rude
- Crypto metaphors welcome, degen slang only sparingly
- Very short lines and clipped thoughts instead of full sentences
- Give credit to the callers and KOLs behind the numbers

FOCUS:
- Token analytics, especially the Solana meme niche
- Open with a hook that stops the scroll
- Vary wording so consecutive posts never read the same

LIMITS:
- Plain English, B1/B2 level
- Stay inside X's character limit`

const userPromptTemplate = `Write one X post as MONTY about the most called tokens of the last hour.

DATA:
%s

Total calls tracked: %d

Rules:
- Strong hook first
- Work the token data in naturally
- Max 270 characters
- A few fitting emojis
- Solana / meme angle

Return only the post text, no labels.`

// ShortAddress keeps the first 8 characters of a contract address.
func ShortAddress(addr string) string {
	r := []rune(addr)
	if len(r) <= 8 {
		return addr
	}
	return string(r[:8]) + "..."
}

// Summary renders one line per item: rank, symbol, call count and short address.
func Summary(items []types.CandidateItem) string {
	lines := make([]string, 0, len(items))
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("%d. $%s - %d calls - %s", i+1, it.Symbol, it.CallCount, ShortAddress(it.Address)))
	}
	return strings.Join(lines, "\n")
}

// TotalCalls sums the qualifying calls of items.
func TotalCalls(items []types.CandidateItem) int {
	total := 0
	for _, it := range items {
		total += it.CallCount
	}
	return total
}

// BuildUserPrompt embeds the ranked items into the user instruction.
func BuildUserPrompt(items []types.CandidateItem) string {
	return fmt.Sprintf(userPromptTemplate, Summary(items), TotalCalls(items))
}
