package engine

import (
	"llm-tweet-bot/internal/compose"
	"llm-tweet-bot/internal/interfaces"
	"llm-tweet-bot/internal/social"
	"llm-tweet-bot/internal/store"
)

// Deps are the collaborators of a run. Handle is the account username used
// in permalinks.
type Deps struct {
	Ranking   interfaces.RankingSource
	Generator *compose.Generator
	Publisher *social.Publisher
	Handle    string
}

func New(cfg *store.Config, deps Deps) interfaces.Engine {
	return newEngine(cfg, deps)
}
