package claude

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
	cfg.Provider = "CLAUDE"
	cfg.Model = "claude-3-5-haiku-latest"
	cfg.BaseURL = baseURL
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestCompleter_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "ck-test", r.Header.Get("X-Api-Key"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-3-5-haiku-latest", req["model"])
		assert.EqualValues(t, 300, req["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest",
			"content":[{"type":"text","text":" wagmi \n"}],
			"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":3}}`))
	}))
	defer server.Close()

	text, err := NewCompleter(testConfig(server.URL), "ck-test").Complete(context.Background(), "persona", "write")
	require.NoError(t, err)
	assert.Equal(t, "wagmi", text)
}

func TestCompleter_NoTextBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_2","type":"message","role":"assistant","model":"m","content":[],
			"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`))
	}))
	defer server.Close()

	_, err := NewCompleter(testConfig(server.URL), "ck-test").Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}

func TestCompleter_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`))
	}))
	defer server.Close()

	_, err := NewCompleter(testConfig(server.URL), "ck-test").Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}
