// Package pipeline drives the sequential fetch flow: per configured
// ticker it resolves the underlying quote, lists expirations up to the
// cutoff and merges every option board into one flat record collection.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"optionscan/internal/models"
)

// MarketData is the slice of the ISS client the collector needs;
// tests substitute a stub.
type MarketData interface {
	ExpirationDates(ctx context.Context, ticker string, cutoff time.Time) ([]string, error)
	OptionBoard(ctx context.Context, ticker, expiration string) ([]models.OptionRecord, error)
	LastQuote(ctx context.Context, ticker string) (*models.Quote, error)
}

type Collector struct {
	Market MarketData
	Logger *zap.Logger

	Tickers []string
	Cutoff  time.Time
}

// Collect walks the ticker list in configured order and accumulates all
// option records. Every upstream failure degrades to "contributes zero
// records": it is logged and the walk continues. An empty result is the
// normal no-data outcome, never an error.
func (c *Collector) Collect(ctx context.Context) []models.OptionRecord {
	var all []models.OptionRecord
	for _, ticker := range c.Tickers {
		if ctx.Err() != nil {
			break
		}
		quote := c.fetchQuote(ctx, ticker)
		if quote == nil {
			c.Logger.Info("underlying quote unavailable, skipping ticker", zap.String("ticker", ticker))
			continue
		}

		expirations := c.fetchExpirations(ctx, ticker)
		if len(expirations) == 0 {
			c.Logger.Info("no expirations within cutoff, skipping ticker", zap.String("ticker", ticker))
			continue
		}
		c.Logger.Info("processing ticker",
			zap.String("ticker", ticker),
			zap.Int("expirations", len(expirations)),
			zap.Float64("last_price", quote.LastPrice),
		)

		for _, expiration := range expirations {
			if ctx.Err() != nil {
				break
			}
			records := c.fetchBoard(ctx, ticker, expiration)
			for i := range records {
				records[i].LastPrice = quote.LastPrice
				records[i].QuotedAt = quote.At
			}
			all = append(all, records...)
		}
	}
	if len(all) == 0 {
		c.Logger.Info("pipeline produced no option records")
	} else {
		c.Logger.Info("pipeline merge complete", zap.Int("records", len(all)))
	}
	return all
}

// The three fetch helpers absorb every upstream failure at the component
// boundary: the collector loop above only ever sees data or nothing.

func (c *Collector) fetchQuote(ctx context.Context, ticker string) *models.Quote {
	quote, err := c.Market.LastQuote(ctx, ticker)
	if err != nil {
		c.Logger.Warn("last quote fetch failed", zap.String("ticker", ticker), zap.Error(err))
		return nil
	}
	return quote
}

func (c *Collector) fetchExpirations(ctx context.Context, ticker string) []string {
	dates, err := c.Market.ExpirationDates(ctx, ticker, c.Cutoff)
	if err != nil {
		c.Logger.Warn("expiration fetch failed", zap.String("ticker", ticker), zap.Error(err))
		return nil
	}
	return dates
}

func (c *Collector) fetchBoard(ctx context.Context, ticker, expiration string) []models.OptionRecord {
	records, err := c.Market.OptionBoard(ctx, ticker, expiration)
	if err != nil {
		c.Logger.Warn("option board fetch failed",
			zap.String("ticker", ticker),
			zap.String("expiration", expiration),
			zap.Error(err),
		)
		return nil
	}
	return records
}
