package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"llm-tweet-bot/internal/logger"
	"llm-tweet-bot/internal/store"
	"llm-tweet-bot/internal/types"
)

// ErrNoData means the run has nothing to write about: the provider failed or
// returned no token with a qualifying call.
var ErrNoData = errors.New("no ranking data")

const DefaultTimeout = 30 * time.Second

// Client fetches the most-called tokens from the ranking provider.
type Client struct {
	endpoint   string
	timeframe  string
	minWinRate float64
	topN       int
	client     *http.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// NewClient builds a Client from the ranking section of the config.
func NewClient(cfg store.RankingConfig, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   cfg.Endpoint,
		timeframe:  cfg.Timeframe,
		minWinRate: cfg.MinWinRate,
		topN:       cfg.TopN,
		client:     &http.Client{Timeout: DefaultTimeout},
	}
	WithTimeout(cfg.Timeout)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the top ranked candidates. Every failure, and an empty
// selection, is reported as an error wrapping ErrNoData.
func (c *Client) Fetch(ctx context.Context) ([]types.CandidateItem, error) {
	op := logger.StartOperation(ctx, "ranking.Fetch", "endpoint", c.endpoint, "timeframe", c.timeframe)
	ctx = op.GetContext()

	records, err := c.fetchRecords(ctx)
	if err != nil {
		op.EndWithError(err)
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	items := SelectTop(records, c.minWinRate, c.topN)
	op.End("records", len(records), "selected", len(items))

	logger.Debug(ctx, "Ranking fetched",
		"records", len(records),
		"qualified", len(items),
		"min_win_rate", c.minWinRate,
	)

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %d records, none with a call above %.0f%% win rate", ErrNoData, len(records), c.minWinRate)
	}
	return items, nil
}

func (c *Client) fetchRecords(ctx context.Context) ([]types.TokenRecord, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if c.timeframe != "" {
		q := u.Query()
		q.Set("timeframe", c.timeframe)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ranking http %d: %s", resp.StatusCode, string(body))
	}

	var records []types.TokenRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode ranking: %w", err)
	}
	return records, nil
}
