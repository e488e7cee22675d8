package moex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"optionscan/internal/models"
)

const candleTimeLayout = "2006-01-02 15:04:05"

type candlesResponse struct {
	Candles table `json:"candles"`
}

// LastQuote returns the close price and end timestamp of the most recent
// hourly candle for ticker. A nil quote with nil error means the
// underlying has no usable price; callers skip the instrument.
func (c *Client) LastQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	fullURL := fmt.Sprintf("%s/%s/candles.json?interval=60&iss.reverse=true",
		c.candlesURL, url.PathEscape(ticker))
	body, err := c.doRequest(ctx, fullURL)
	if err != nil {
		return nil, err
	}
	return parseLastQuote(body)
}

func parseLastQuote(body []byte) (*models.Quote, error) {
	var parsed candlesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode candles: %w", err)
	}
	if len(parsed.Candles.Data) == 0 {
		return nil, nil
	}
	closeIdx := parsed.Candles.colIndex("close")
	endIdx := parsed.Candles.colIndex("end")
	if closeIdx < 0 || endIdx < 0 {
		return nil, nil
	}

	// Bars come most-recent-first; only the head bar matters.
	row := parsed.Candles.Data[0]
	price := floatAt(row, closeIdx)
	if price == nil {
		return nil, nil
	}
	at, err := time.Parse(candleTimeLayout, stringAt(row, endIdx))
	if err != nil {
		return nil, nil
	}
	return &models.Quote{LastPrice: *price, At: at}, nil
}
