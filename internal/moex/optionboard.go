package moex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"optionscan/internal/models"
)

type optionBoardResponse struct {
	Call table `json:"call"`
	Put  table `json:"put"`
}

// OptionBoard returns every call and put contract listed for ticker on
// the given expiration date, tagged with ticker, expiration and side.
func (c *Client) OptionBoard(ctx context.Context, ticker, expiration string) ([]models.OptionRecord, error) {
	fullURL := fmt.Sprintf("%s/%s/optionboard.json?expiration_date=%s",
		c.optionsURL, url.PathEscape(ticker), url.QueryEscape(expiration))
	body, err := c.doRequest(ctx, fullURL)
	if err != nil {
		return nil, err
	}
	return parseOptionBoard(body, ticker, expiration)
}

func parseOptionBoard(body []byte, ticker, expiration string) ([]models.OptionRecord, error) {
	var parsed optionBoardResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode option board: %w", err)
	}

	var records []models.OptionRecord
	records = append(records, boardRecords(parsed.Call, models.SideCall, ticker, expiration)...)
	records = append(records, boardRecords(parsed.Put, models.SidePut, ticker, expiration)...)
	return records, nil
}

// boardRecords zips each row of one side's table with its column list.
// The pipeline consumes SECID, STRIKE, THEORPRICE and OFFER; a missing
// column yields nil values, never an error.
func boardRecords(t table, side models.Side, ticker, expiration string) []models.OptionRecord {
	secIdx := t.colIndex("SECID")
	strikeIdx := t.colIndex("STRIKE")
	theorIdx := t.colIndex("THEORPRICE")
	offerIdx := t.colIndex("OFFER")

	records := make([]models.OptionRecord, 0, len(t.Data))
	for _, row := range t.Data {
		records = append(records, models.OptionRecord{
			Ticker:     ticker,
			Expiration: expiration,
			Side:       side,
			SecurityID: stringAt(row, secIdx),
			Strike:     floatAt(row, strikeIdx),
			TheorPrice: floatAt(row, theorIdx),
			Offer:      floatAt(row, offerIdx),
		})
	}
	return records
}
