package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"llm-tweet-bot/internal/compose"
	"llm-tweet-bot/internal/engine"
	"llm-tweet-bot/internal/engine/engineobs"
	"llm-tweet-bot/internal/interfaces"
	"llm-tweet-bot/internal/llm/claude"
	"llm-tweet-bot/internal/llm/llmobs"
	"llm-tweet-bot/internal/llm/openai"
	"llm-tweet-bot/internal/logger"
	"llm-tweet-bot/internal/ranking"
	"llm-tweet-bot/internal/retry"
	"llm-tweet-bot/internal/runlog"
	"llm-tweet-bot/internal/social"
	"llm-tweet-bot/internal/social/socialobs"
	"llm-tweet-bot/internal/social/twitter"
	"llm-tweet-bot/internal/store"
	"llm-tweet-bot/internal/trace"
	"llm-tweet-bot/internal/types"
)

const defaultConfigPath = "config.yaml"

// initializeSystem loads the environment and initializes the logger
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// initializeTracer starts tracing per the tracing section, tagging spans with
// the run's mode and provider. LOG_TRACING_ENABLED overrides tracing.enabled.
func initializeTracer(ctx context.Context, cfg *store.Config) {
	enabled := cfg.Tracing.Enabled
	if v := os.Getenv("LOG_TRACING_ENABLED"); v != "" {
		enabled = v == "true"
	}

	err := trace.Init(trace.Options{
		Enabled:     enabled,
		PrettyPrint: cfg.Tracing.PrettyPrint,
		Mode:        cfg.Mode,
		Provider:    cfg.LLM.Provider,
	})
	if err != nil {
		logger.Warn(ctx, "Failed to initialize tracer, continuing without spans", "error", err)
	}
}

// shutdownTracer flushes spans, with its own deadline so a cancelled run
// still exports what it recorded.
func shutdownTracer(ctx context.Context) {
	if !trace.Enabled() {
		return
	}
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := trace.Shutdown(flushCtx); err != nil {
		logger.Warn(ctx, "Failed to flush traces", "error", err)
	}
}

// loadConfig loads the configuration from BOT_CONFIG or config.yaml
func loadConfig(ctx context.Context) (*store.Config, error) {
	path := os.Getenv("BOT_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}

	if cfg.DryRun() {
		logger.Warn(ctx, "Running in DRY_RUN mode - posts will be logged, not published")
	}
	return cfg, nil
}

// initializeCompleter returns the configured LLM provider with observability
func initializeCompleter(cfg *store.Config, apiKey string) interfaces.Completer {
	var completer interfaces.Completer

	switch cfg.LLM.Provider {
	case "CLAUDE":
		completer = claude.NewCompleter(cfg.LLM, apiKey)
	default:
		completer = openai.NewCompleter(cfg.LLM, apiKey)
	}

	// Wrap with observability middleware
	return llmobs.Wrap(completer, cfg.LLM.Provider)
}

// initializePlatform returns the X client with observability
func initializePlatform(cfg *store.Config, creds store.Credentials) interfaces.Platform {
	return socialobs.Wrap(twitter.NewClient(cfg.Twitter, creds))
}

// resolveAccount looks up the posting account once. Dry runs never post, so
// they skip the lookup.
func resolveAccount(ctx context.Context, cfg *store.Config, platform interfaces.Platform) (types.Account, error) {
	if cfg.DryRun() {
		return types.Account{}, nil
	}
	acct, err := platform.Me(ctx)
	if err != nil {
		return types.Account{}, fmt.Errorf("resolve posting account: %w", err)
	}
	return acct, nil
}

// initializeEngine validates credentials and wires every stage. No network
// call happens before credentials are known to be present.
func initializeEngine(ctx context.Context, cfg *store.Config) (interfaces.Engine, error) {
	creds, err := store.LoadCredentials(cfg.LLM.Provider)
	if err != nil {
		return nil, err
	}

	platform := initializePlatform(cfg, creds)
	acct, err := resolveAccount(ctx, cfg, platform)
	if err != nil {
		return nil, err
	}

	clock := retry.SystemClock{}
	eng := engine.New(cfg, engine.Deps{
		Ranking:   ranking.NewClient(cfg.Ranking),
		Generator: compose.NewGenerator(initializeCompleter(cfg, creds.LLMAPIKey), cfg.LLM, clock),
		Publisher: social.NewPublisher(platform, cfg.Publish, clock),
		Handle:    acct.Username,
	})

	// Wrap with observability middleware
	return engineobs.Wrap(eng), nil
}

// recordRun appends the result to the run history and compresses old days
// when BOT_LOG_RETENTION_DAYS is set.
func recordRun(ctx context.Context, result *types.RunResult) {
	history := runlog.New(os.Getenv("BOT_LOG_DIR"))
	if err := history.Append(result); err != nil {
		logger.Warn(ctx, "Failed to record run", "error", err)
	}

	if v := os.Getenv("BOT_LOG_RETENTION_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			logger.Warn(ctx, "Ignoring invalid BOT_LOG_RETENTION_DAYS", "value", v)
			return
		}
		if err := history.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old run logs", "error", err)
		}
	}
}

func outcomeOf(result *types.RunResult) types.RunOutcome {
	if result == nil {
		return types.OutcomeFailed
	}
	return result.Outcome
}
