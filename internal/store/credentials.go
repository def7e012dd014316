package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrMissingCredential = errors.New("missing credential")

// Credentials are the secrets read from the process environment.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
	LLMAPIKey         string
}

// LLMKeyEnv returns the environment variable holding the API key for provider.
func LLMKeyEnv(provider string) string {
	if provider == "CLAUDE" {
		return "CLAUDE_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// LoadCredentials reads every required secret and reports all missing ones at once.
func LoadCredentials(provider string) (Credentials, error) {
	c := Credentials{
		ConsumerKey:       strings.TrimSpace(os.Getenv("TWITTER_API_KEY")),
		ConsumerSecret:    strings.TrimSpace(os.Getenv("TWITTER_API_SECRET")),
		AccessToken:       strings.TrimSpace(os.Getenv("TWITTER_ACCESS_TOKEN")),
		AccessTokenSecret: strings.TrimSpace(os.Getenv("TWITTER_ACCESS_TOKEN_SECRET")),
		LLMAPIKey:         strings.TrimSpace(os.Getenv(LLMKeyEnv(provider))),
	}

	var missing []string
	for _, kv := range []struct{ name, val string }{
		{"TWITTER_API_KEY", c.ConsumerKey},
		{"TWITTER_API_SECRET", c.ConsumerSecret},
		{"TWITTER_ACCESS_TOKEN", c.AccessToken},
		{"TWITTER_ACCESS_TOKEN_SECRET", c.AccessTokenSecret},
		{LLMKeyEnv(provider), c.LLMAPIKey},
	} {
		if kv.val == "" {
			missing = append(missing, kv.name)
		}
	}
	if len(missing) > 0 {
		return c, fmt.Errorf("%w: %s", ErrMissingCredential, strings.Join(missing, ", "))
	}
	return c, nil
}
