package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-tweet-bot/internal/store"
)

func testConfig(baseURL string) store.LLMConfig {
	cfg := store.Default().LLM
	cfg.BaseURL = baseURL
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestCompleter_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Model       string  `json:"model"`
			MaxTokens   int     `json:"max_tokens"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		assert.Equal(t, 300, req.MaxTokens)
		assert.InDelta(t, 0.8, req.Temperature, 0.001)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "persona", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","model":"gpt-3.5-turbo",
			"choices":[{"index":0,"message":{"role":"assistant","content":"  gm degens  "},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	c := NewCompleter(testConfig(server.URL+"/v1"), "sk-test")
	text, err := c.Complete(context.Background(), "persona", "write a post")
	require.NoError(t, err)
	assert.Equal(t, "gm degens", text)
}

func TestCompleter_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer server.Close()

	_, err := NewCompleter(testConfig(server.URL+"/v1"), "sk-test").Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}

func TestCompleter_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-2","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	_, err := NewCompleter(testConfig(server.URL+"/v1"), "sk-test").Complete(context.Background(), "s", "u")
	assert.EqualError(t, err, "no choices")
}
