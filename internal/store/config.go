package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PlatformMaxLength is the longest post X accepts.
const PlatformMaxLength = 280

type Config struct {
	Mode    string        `yaml:"mode"`
	Ranking RankingConfig `yaml:"ranking"`
	LLM     LLMConfig     `yaml:"llm"`
	Post    PostConfig    `yaml:"post"`
	Publish PublishConfig `yaml:"publish"`
	Twitter TwitterConfig `yaml:"twitter"`
	Tracing TracingConfig `yaml:"tracing"`
}

type RankingConfig struct {
	Endpoint   string        `yaml:"endpoint"`
	Timeframe  string        `yaml:"timeframe"`
	Timeout    time.Duration `yaml:"timeout"`
	MinWinRate float64       `yaml:"min_win_rate"`
	TopN       int           `yaml:"top_n"`
}

type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"base_url"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	BackoffStep time.Duration `yaml:"backoff_step"`
	System      string        `yaml:"system"`
}

type PostConfig struct {
	Suffix        string `yaml:"suffix"`
	MaxLength     int    `yaml:"max_length"`
	PermalinkBase string `yaml:"permalink_base"`
	ImagePath     string `yaml:"image_path"`
}

type PublishConfig struct {
	MaxAttempts         int           `yaml:"max_attempts"`
	RateLimitFloor      time.Duration `yaml:"rate_limit_floor"`
	MediaRateLimitFloor time.Duration `yaml:"media_rate_limit_floor"`
	RateLimitPad        time.Duration `yaml:"rate_limit_pad"`
	FallbackWait        time.Duration `yaml:"fallback_wait"`
}

type TwitterConfig struct {
	APIBase    string        `yaml:"api_base"`
	UploadBase string        `yaml:"upload_base"`
	Timeout    time.Duration `yaml:"timeout"`
}

type TracingConfig struct {
	Enabled     bool `yaml:"enabled"`
	PrettyPrint bool `yaml:"pretty_print"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Mode: "LIVE",
		Ranking: RankingConfig{
			Endpoint:   "https://outlight.fun/api/tokens/most-called",
			Timeframe:  "1h",
			Timeout:    30 * time.Second,
			MinWinRate: 30,
			TopN:       3,
		},
		LLM: LLMConfig{
			Provider:    "OPENAI",
			Model:       "gpt-3.5-turbo",
			MaxTokens:   300,
			Temperature: 0.8,
			Timeout:     45 * time.Second,
			MaxAttempts: 3,
			BackoffStep: 5 * time.Second,
		},
		Post: PostConfig{
			Suffix:        "\n\n🔗 outlight.fun",
			MaxLength:     PlatformMaxLength,
			PermalinkBase: "https://x.com",
		},
		Publish: PublishConfig{
			MaxAttempts:         3,
			RateLimitFloor:      300 * time.Second,
			MediaRateLimitFloor: 180 * time.Second,
			RateLimitPad:        60 * time.Second,
			FallbackWait:        30 * time.Second,
		},
		Twitter: TwitterConfig{
			APIBase:    "https://api.twitter.com",
			UploadBase: "https://upload.twitter.com",
			Timeout:    30 * time.Second,
		},
	}
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if c.LLM.Provider != "OPENAI" && c.LLM.Provider != "CLAUDE" {
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI' or 'CLAUDE'", c.LLM.Provider)
	}
	if c.Ranking.Endpoint == "" {
		return errors.New("ranking.endpoint cannot be empty")
	}
	if c.Ranking.TopN <= 0 {
		return fmt.Errorf("ranking.top_n must be positive, got %d", c.Ranking.TopN)
	}
	if c.LLM.MaxAttempts <= 0 || c.Publish.MaxAttempts <= 0 {
		return errors.New("llm.max_attempts and publish.max_attempts must be positive")
	}
	if c.Ranking.Timeout <= 0 || c.LLM.Timeout <= 0 || c.Twitter.Timeout <= 0 {
		return errors.New("ranking.timeout, llm.timeout and twitter.timeout must be positive")
	}
	if c.Post.MaxLength > PlatformMaxLength {
		return fmt.Errorf("post.max_length %d exceeds the platform limit of %d", c.Post.MaxLength, PlatformMaxLength)
	}
	// the body needs room for at least the ellipsis
	if n := len([]rune(c.Post.Suffix)); c.Post.MaxLength < n+3 {
		return fmt.Errorf("post.max_length %d leaves no room for a body after a %d-char suffix", c.Post.MaxLength, n)
	}
	return nil
}

// DryRun reports whether posting is disabled.
func (c *Config) DryRun() bool {
	return c.Mode == "DRY_RUN"
}

// LoadConfig reads path on top of Default. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	c.Mode = strings.ToUpper(strings.TrimSpace(c.Mode))
	c.LLM.Provider = strings.ToUpper(strings.TrimSpace(c.LLM.Provider))

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return c, nil
}
