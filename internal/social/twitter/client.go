package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dghubble/oauth1"

	"llm-tweet-bot/internal/interfaces"
	"llm-tweet-bot/internal/store"
	"llm-tweet-bot/internal/trace"
	"llm-tweet-bot/internal/types"
)

const maxErrorBody = 4 << 10

// Client talks to the X API v2 (and v1.1 media upload) with OAuth 1.0a user context.
type Client struct {
	apiBase    string
	uploadBase string
	client     *http.Client
}

var _ interfaces.Platform = (*Client)(nil)

// NewClient signs every request with the user-context credentials.
func NewClient(cfg store.TwitterConfig, creds store.Credentials) *Client {
	config := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)

	hc := config.Client(oauth1.NoContext, token)
	hc.Timeout = cfg.Timeout

	return &Client{
		apiBase:    strings.TrimRight(cfg.APIBase, "/"),
		uploadBase: strings.TrimRight(cfg.UploadBase, "/"),
		client:     hc,
	}
}

// Me returns the authenticated account.
func (c *Client) Me(ctx context.Context) (types.Account, error) {
	ctx, span := trace.StartSpan(ctx, "x-api-users-me")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/2/users/me", nil)
	if err != nil {
		return types.Account{}, err
	}

	var out struct {
		Data types.Account `json:"data"`
	}
	if err := c.do(req, &out); err != nil {
		return types.Account{}, err
	}
	if out.Data.Username == "" {
		return types.Account{}, errors.New("x api: users/me returned no username")
	}
	return out.Data, nil
}

type createPostRequest struct {
	Text  string     `json:"text"`
	Media *postMedia `json:"media,omitempty"`
}

type postMedia struct {
	MediaIDs []string `json:"media_ids"`
}

// CreatePost publishes text, optionally with already uploaded media, and returns the post ID.
func (c *Client) CreatePost(ctx context.Context, text string, mediaIDs []string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "x-api-create-post")
	defer span.End()

	payload := createPostRequest{Text: text}
	if len(mediaIDs) > 0 {
		payload.Media = &postMedia{MediaIDs: mediaIDs}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Data struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.Data.ID == "" {
		return "", errors.New("x api: create post returned no id")
	}
	return out.Data.ID, nil
}

// UploadMedia uploads the file at path and returns its media ID.
func (c *Client) UploadMedia(ctx context.Context, path string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "x-api-media-upload")
	defer span.End()

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("media", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadBase+"/1.1/media/upload.json", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		MediaIDString string `json:"media_id_string"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.MediaIDString == "" {
		return "", errors.New("x api: media upload returned no id")
	}
	return out.MediaIDString, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}
