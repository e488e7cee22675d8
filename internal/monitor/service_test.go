package monitor

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"optionscan/internal/models"
	"optionscan/internal/pipeline"
)

type fixedMarket struct{}

func (fixedMarket) LastQuote(context.Context, string) (*models.Quote, error) {
	return &models.Quote{LastPrice: 100, At: time.Now()}, nil
}

func (fixedMarket) ExpirationDates(context.Context, string, time.Time) ([]string, error) {
	return []string{"2025-12-18"}, nil
}

func (fixedMarket) OptionBoard(_ context.Context, ticker, expiration string) ([]models.OptionRecord, error) {
	strike, theor, offer := 95.0, 6.0, 5.0
	return []models.OptionRecord{{
		Ticker:     ticker,
		Expiration: expiration,
		Side:       models.SideCall,
		SecurityID: "SR95",
		Strike:     &strike,
		TheorPrice: &theor,
		Offer:      &offer,
	}}, nil
}

func newService(t *testing.T, market pipeline.MarketData, tickers ...string) *Service {
	t.Helper()
	return &Service{
		Collector: &pipeline.Collector{
			Market:  market,
			Logger:  zap.NewNop(),
			Tickers: tickers,
			Cutoff:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		Logger:        zap.NewNop(),
		Holder:        &Holder{},
		NearMoneyPct:  10.0,
		Top:           10,
		MonitoringDir: t.TempDir(),
	}
}

func TestTickPublishesAndWritesSnapshot(t *testing.T) {
	svc := newService(t, fixedMarket{}, "SBER")
	svc.Tick(context.Background())

	table, _, ok := svc.Holder.Latest()
	if !ok {
		t.Fatalf("holder has no run after tick")
	}
	if len(table) != 1 {
		t.Fatalf("ranked = %d, want 1", len(table))
	}
	if table[0].Moneyness != models.MoneynessITM {
		t.Fatalf("moneyness = %s, want ITM", table[0].Moneyness)
	}

	entries, err := os.ReadDir(svc.MonitoringDir)
	if err != nil {
		t.Fatalf("read monitoring dir: %v", err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".txt") {
		t.Fatalf("monitoring dir = %v, want one .txt snapshot", entries)
	}
}

type emptyMarket struct{ fixedMarket }

func (emptyMarket) ExpirationDates(context.Context, string, time.Time) ([]string, error) {
	return nil, nil
}

func TestTickWithNoDataWritesNothing(t *testing.T) {
	svc := newService(t, emptyMarket{}, "SBER")
	svc.Tick(context.Background())

	table, _, ok := svc.Holder.Latest()
	if !ok {
		t.Fatalf("empty result must still publish a run")
	}
	if len(table) != 0 {
		t.Fatalf("ranked = %d, want 0", len(table))
	}
	entries, err := os.ReadDir(svc.MonitoringDir)
	if err != nil {
		t.Fatalf("read monitoring dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("monitoring dir = %v, want no snapshot for empty run", entries)
	}
}

func TestHolderReplacesTableWholesale(t *testing.T) {
	h := &Holder{}
	if _, _, ok := h.Latest(); ok {
		t.Fatalf("fresh holder must report no runs")
	}
	h.Set(models.ResultTable{}, time.Now())
	h.Set(nil, time.Now())
	if h.Runs() != 2 {
		t.Fatalf("runs = %d, want 2", h.Runs())
	}
	if table, _, ok := h.Latest(); !ok || len(table) != 0 {
		t.Fatalf("latest = (%v, %v), want empty table from last set", table, ok)
	}
}
