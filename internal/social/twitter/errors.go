package twitter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"llm-tweet-bot/internal/retry"
)

// APIError is a non-2xx answer from the X API.
type APIError struct {
	StatusCode int
	Message    string
	// Reset is the x-rate-limit-reset hint, zero when absent.
	Reset time.Time
}

var (
	_ retry.Classified  = (*APIError)(nil)
	_ retry.ResetHinter = (*APIError)(nil)
)

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("x api http %d", e.StatusCode)
	}
	return fmt.Sprintf("x api http %d: %s", e.StatusCode, e.Message)
}

// RetryClass maps 429 to RateLimited, 400/401/403 to Fatal and the rest to Transient.
func (e *APIError) RetryClass() retry.Class {
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		return retry.RateLimited
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return retry.Fatal
	default:
		return retry.Transient
	}
}

func (e *APIError) ResetAt() time.Time {
	return e.Reset
}

type errorBody struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	e := &APIError{StatusCode: resp.StatusCode}

	if v := resp.Header.Get("x-rate-limit-reset"); v != "" {
		if secs, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			e.Reset = time.Unix(secs, 0)
		}
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		parts := make([]string, 0, 2+len(eb.Errors))
		if eb.Title != "" {
			parts = append(parts, eb.Title)
		}
		if eb.Detail != "" && eb.Detail != eb.Title {
			parts = append(parts, eb.Detail)
		}
		for _, m := range eb.Errors {
			if m.Message != "" {
				parts = append(parts, m.Message)
			}
		}
		e.Message = strings.Join(parts, ": ")
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	return e
}
