package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the option contract side as reported by the ISS option board.
type Side string

const (
	SideCall Side = "CALL"
	SidePut  Side = "PUT"
)

// Moneyness classifies an option relative to the underlying's last price.
type Moneyness string

const (
	MoneynessITM     Moneyness = "ITM"
	MoneynessNTM     Moneyness = "NTM"
	MoneynessOTM     Moneyness = "OTM"
	MoneynessUnknown Moneyness = "UNKNOWN"
)

// Quote is the most recent traded price observed for an underlying.
type Quote struct {
	LastPrice float64   `json:"last_price"`
	At        time.Time `json:"at"`
}

// OptionRecord is one option contract as observed at fetch time.
//
// Strike, TheorPrice and Offer are pointers because the ISS board is
// schema-driven: a column the pipeline consumes may be absent from the
// response, and a present column may carry null. A missing value never
// aborts the merge; the analyzer excludes the row instead.
type OptionRecord struct {
	Ticker     string   `json:"ticker"`
	Expiration string   `json:"expiration"`
	Side       Side     `json:"side"`
	SecurityID string   `json:"secid"`
	Strike     *float64 `json:"strike,omitempty"`
	TheorPrice *float64 `json:"theorprice,omitempty"`
	Offer      *float64 `json:"offer,omitempty"`

	// Attached by the collector from the underlying's latest candle.
	LastPrice float64   `json:"last_price"`
	QuotedAt  time.Time `json:"quoted_at"`
}

// RankedOption is an OptionRecord with the metrics derived by the
// analyzer. Records only reach this type after the offer, moneyness and
// theoretical-price filters, so the pointer fields are non-nil here.
type RankedOption struct {
	OptionRecord
	DeviationPct decimal.Decimal `json:"deviation_pct"`
	Moneyness    Moneyness       `json:"moneyness"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountPct  decimal.Decimal `json:"discount_pct"`
}

// ResultTable is one pipeline run's ranked output, ordered by
// DiscountPct descending. It is built once per run and never mutated
// after ranking.
type ResultTable []RankedOption

// Top returns the first n rows, or the whole table when it is shorter.
func (t ResultTable) Top(n int) ResultTable {
	if n <= 0 || n >= len(t) {
		return t
	}
	return t[:n]
}
