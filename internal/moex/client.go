// Package moex is a read-only client for the Moscow Exchange ISS public
// API, limited to the three endpoints the discount pipeline consumes:
// per-asset expiration calendars, per-expiration option boards and the
// underlying's recent candles.
package moex

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultOptionsBaseURL = "https://iss.moex.com/iss/statistics/engines/futures/markets/options/assets"
	defaultCandlesBaseURL = "https://iss.moex.com/iss/engines/stock/markets/shares/securities"
)

type Client struct {
	httpClient *http.Client
	optionsURL string
	candlesURL string

	// One gate shared by all three endpoints; ISS rate-limits per host.
	limiter *rate.Limiter
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("iss error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, optionsURL, candlesURL string, minInterval time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if optionsURL == "" {
		optionsURL = defaultOptionsBaseURL
	}
	if candlesURL == "" {
		candlesURL = defaultCandlesBaseURL
	}
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Client{
		httpClient: httpClient,
		optionsURL: strings.TrimRight(optionsURL, "/"),
		candlesURL: strings.TrimRight(candlesURL, "/"),
		limiter:    rate.NewLimiter(limit, 1),
	}
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
