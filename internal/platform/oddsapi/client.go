// Package oddsapi is the REST client for The Odds API, the secondary odds
// source. It returns raw events; alias matching and extraction happen in the
// odds package.
package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.the-odds-api.com/v4"

// Client is the REST client for The Odds API.
type Client struct {
	baseURL    string
	apiKey     string
	sportKey   string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for the given sport key (e.g.
// "americanfootball_nfl") authenticated with apiKey.
func NewClient(apiKey, sportKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		sportKey:   sportKey,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Window bounds the commence-time filter of an odds query.
type Window struct {
	From time.Time
	To   time.Time
}

// Odds fetches spread and totals markets for every event commencing inside
// the window, optionally restricted to the named bookmakers.
func (c *Client) Odds(ctx context.Context, window Window, bookmakers []string) ([]APIEvent, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", "us")
	params.Set("markets", "spreads,totals")
	params.Set("oddsFormat", "american")
	params.Set("dateFormat", "iso")
	params.Set("commenceTimeFrom", formatStamp(window.From))
	params.Set("commenceTimeTo", formatStamp(window.To))
	if len(bookmakers) > 0 {
		joined := bookmakers[0]
		for _, b := range bookmakers[1:] {
			joined += "," + b
		}
		params.Set("bookmakers", joined)
	}

	u := fmt.Sprintf("%s/sports/%s/odds/?%s", c.baseURL, c.sportKey, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("oddsapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oddsapi: http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("oddsapi: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oddsapi: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var events []APIEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("oddsapi: decode events: %w", err)
	}
	return events, nil
}

// formatStamp renders the second-precision Zulu form the API requires.
func formatStamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05Z")
}
