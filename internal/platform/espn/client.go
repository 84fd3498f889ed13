// Package espn fetches the weekly schedule and per-event odds from the two
// ESPN API surfaces and converts them into domain events and odds entries.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultScoreboardURL = "https://site.web.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"
	defaultOddsURLFormat = "https://sports.core.api.espn.com/v2/sports/football/leagues/nfl/events/%s/competitions/%s/odds"
)

// Client is the REST client for the ESPN schedule and odds endpoints.
type Client struct {
	scoreboardURL string
	oddsURLFormat string
	httpClient    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURLs overrides the endpoint URLs, used by tests and mirrors.
func WithBaseURLs(scoreboardURL, oddsURLFormat string) Option {
	return func(c *Client) {
		c.scoreboardURL = scoreboardURL
		c.oddsURLFormat = oddsURLFormat
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an ESPN client with a 15-second request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		scoreboardURL: defaultScoreboardURL,
		oddsURLFormat: defaultOddsURLFormat,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scoreboard fetches the regular-season scoreboard for the given season year
// and week number.
func (c *Client) Scoreboard(ctx context.Context, season, week int) (*Scoreboard, error) {
	params := url.Values{}
	params.Set("dates", strconv.Itoa(season))
	params.Set("seasontype", "2")
	params.Set("week", strconv.Itoa(week))

	body, err := c.get(ctx, c.scoreboardURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("espn: scoreboard week %d: %w", week, err)
	}

	var sb Scoreboard
	if err := json.Unmarshal(body, &sb); err != nil {
		return nil, fmt.Errorf("espn: decode scoreboard: %w", err)
	}
	return &sb, nil
}

// CompetitionOdds fetches the odds listing for one competition, resolving any
// $ref stub items with follow-up requests.
func (c *Client) CompetitionOdds(ctx context.Context, eventID, competitionID string) ([]OddsItem, error) {
	u := fmt.Sprintf(c.oddsURLFormat, eventID, competitionID)
	body, err := c.get(ctx, u+"?lang=en&region=us")
	if err != nil {
		return nil, fmt.Errorf("espn: odds for event %s: %w", eventID, err)
	}

	var resp OddsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("espn: decode odds: %w", err)
	}

	items := make([]OddsItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Ref != "" && item.Provider.Name == "" {
			resolved, err := c.resolveRef(ctx, item.Ref)
			if err != nil {
				return nil, fmt.Errorf("espn: resolve odds item: %w", err)
			}
			items = append(items, resolved)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// resolveRef fetches a bare {"$ref": ...} odds item.
func (c *Client) resolveRef(ctx context.Context, ref string) (OddsItem, error) {
	body, err := c.get(ctx, ref)
	if err != nil {
		return OddsItem{}, err
	}
	var item OddsItem
	if err := json.Unmarshal(body, &item); err != nil {
		return OddsItem{}, fmt.Errorf("decode ref item: %w", err)
	}
	return item, nil
}

// get performs one GET request and returns the response body.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(body, 256))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
