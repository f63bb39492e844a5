// Package pollapi is the HTTP client for the remote poll service.
package pollapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/pollbooth/pollbooth-ui/internal/domain/poll"
	appErrors "github.com/pollbooth/pollbooth-ui/internal/errors"
	"github.com/pollbooth/pollbooth-ui/internal/ports"
)

const maxResponseBytes = 1 << 20

// pollIDExpr tolerates the id key variants different poll API versions emit.
const pollIDExpr = "poll_id || pollId || id"

// Config holds configuration for the poll API client.
type Config struct {
	// BaseURL is the poll API root, e.g. https://api.example.com
	BaseURL string
	// HTTPClient is optional, defaults to a 15s-timeout client
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client calls the poll API with the caller's identity token as bearer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.PollAPI = (*Client)(nil)

// NewClient validates the config and builds the client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("poll api base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parse poll api base URL: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// ListPolls returns all polls visible to the caller.
func (c *Client) ListPolls(ctx context.Context, bearer string) ([]poll.Poll, error) {
	var polls []poll.Poll
	if err := c.do(ctx, http.MethodGet, "/poll", bearer, nil, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

// Results returns the current vote counts for a poll.
func (c *Client) Results(ctx context.Context, bearer, pollID string) (poll.Results, error) {
	var res poll.Results
	if err := c.do(ctx, http.MethodGet, "/poll/"+url.PathEscape(pollID)+"/result", bearer, nil, &res); err != nil {
		return poll.Results{}, err
	}
	return res, nil
}

// Create creates a poll and returns its id.
func (c *Client) Create(ctx context.Context, bearer string, req poll.CreateRequest) (string, error) {
	var raw map[string]any
	if err := c.do(ctx, http.MethodPost, "/poll", bearer, req, &raw); err != nil {
		return "", err
	}
	id := extractPollID(raw)
	if id == "" {
		return "", appErrors.API("poll api returned no poll id")
	}
	return id, nil
}

// Active returns the poll currently open for voting, or nil when the API
// answers with an empty body.
func (c *Client) Active(ctx context.Context, bearer string) (*poll.ActivePoll, error) {
	body, err := c.doRaw(ctx, http.MethodGet, "/poll/active", bearer, nil)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 || string(bytes.TrimSpace(body)) == "null" {
		return nil, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeAPI, "parse active poll response")
	}

	active := &poll.ActivePoll{
		ID:      extractPollID(raw),
		Options: extractOptions(raw["options"]),
	}
	active.Title, _ = raw["title"].(string)
	if active.ID == "" {
		return nil, appErrors.API("active poll response has no poll id")
	}
	return active, nil
}

// Vote casts a vote for an option of a poll.
func (c *Client) Vote(ctx context.Context, bearer, pollID, optionID string) error {
	body := map[string]string{"optionId": optionID}
	return c.do(ctx, http.MethodPost, "/poll/"+url.PathEscape(pollID)+"/vapi", bearer, body, nil)
}

// Close marks a poll closed.
func (c *Client) Close(ctx context.Context, bearer, pollID string) error {
	body := map[string]string{"status": poll.StatusClosed}
	return c.do(ctx, http.MethodPost, "/poll/"+url.PathEscape(pollID)+"/close", bearer, body, nil)
}

// do performs a request and decodes the response body into out when non-nil.
func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	data, err := c.doRaw(ctx, method, path, bearer, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return appErrors.Wrapf(err, appErrors.ErrCodeAPI, "parse %s %s response", method, path)
	}
	return nil
}

// doRaw performs a request and returns the raw response body. Transport
// failures map to network errors, non-2xx statuses to api errors carrying
// the body's message field when the API provides one.
func (c *Client) doRaw(ctx context.Context, method, path, bearer string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCodeInternal, "marshal request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeInternal, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.Wrapf(err, appErrors.ErrCodeNetwork, "poll api %s %s", method, path)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("close poll api response body", "error", cerr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, appErrors.Wrapf(err, appErrors.ErrCodeNetwork, "read poll api %s %s response", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, data)
	}
	return data, nil
}

// apiError builds the error for a non-2xx response, preferring the body's
// message field.
func apiError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return appErrors.API(payload.Message)
	}
	return appErrors.APIf("poll api returned status %d", status)
}

// extractPollID pulls the poll id out of a response object regardless of
// which key variant the API used.
func extractPollID(raw map[string]any) string {
	if raw == nil {
		return ""
	}
	result, err := jmespath.Search(pollIDExpr, raw)
	if err != nil {
		return ""
	}
	switch v := result.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

// extractOptions normalizes the options array: plain strings become both id
// and label, objects contribute their id and text fields.
func extractOptions(raw any) []poll.Option {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	options := make([]poll.Option, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			options = append(options, poll.Option{ID: v, Label: v})
		case map[string]any:
			opt := poll.Option{
				ID:    searchString(v, "optionId || option_id || id"),
				Label: searchString(v, "text || label || title"),
			}
			if opt.Label == "" {
				opt.Label = opt.ID
			}
			if opt.ID != "" {
				options = append(options, opt)
			}
		}
	}
	return options
}

func searchString(data map[string]any, expr string) string {
	result, err := jmespath.Search(expr, data)
	if err != nil {
		return ""
	}
	s, _ := result.(string)
	return s
}
