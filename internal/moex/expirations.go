package moex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

const expirationDateLayout = "2006-01-02"

type expirationsResponse struct {
	Expirations table `json:"expirations"`
}

// ExpirationDates returns the option expiration dates listed for ticker,
// filtered to dates no later than cutoff. Upstream ordering is preserved.
func (c *Client) ExpirationDates(ctx context.Context, ticker string, cutoff time.Time) ([]string, error) {
	fullURL := fmt.Sprintf("%s/%s.json", c.optionsURL, url.PathEscape(ticker))
	body, err := c.doRequest(ctx, fullURL)
	if err != nil {
		return nil, err
	}
	return parseExpirations(body, cutoff)
}

func parseExpirations(body []byte, cutoff time.Time) ([]string, error) {
	var parsed expirationsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode expirations: %w", err)
	}
	dateIdx := parsed.Expirations.colIndex("expiration_date")
	if dateIdx < 0 {
		return nil, fmt.Errorf("expirations response has no expiration_date column")
	}

	var dates []string
	for _, row := range parsed.Expirations.Data {
		raw := stringAt(row, dateIdx)
		d, err := time.Parse(expirationDateLayout, raw)
		if err != nil {
			continue
		}
		if d.After(cutoff) {
			continue
		}
		dates = append(dates, raw)
	}
	return dates, nil
}
