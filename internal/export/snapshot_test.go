package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"optionscan/internal/models"
)

func fp(v float64) *float64 { return &v }

func mkRanked(secid string, discount, pct float64) models.RankedOption {
	return models.RankedOption{
		OptionRecord: models.OptionRecord{
			Ticker:     "SBER",
			Expiration: "2025-12-18",
			Side:       models.SideCall,
			SecurityID: secid,
			Strike:     fp(26000),
			TheorPrice: fp(12.5),
			Offer:      fp(10),
			LastPrice:  280.5,
		},
		DeviationPct: decimal.NewFromInt(3),
		Moneyness:    models.MoneynessITM,
		Discount:     decimal.NewFromFloat(discount),
		DiscountPct:  decimal.NewFromFloat(pct),
	}
}

func TestWriteSnapshot(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 8, 26, 12, 30, 0, 0, time.UTC)
	table := models.ResultTable{
		mkRanked("SR26000BL5", 2.5, 20),
		mkRanked("SR27000BL5", 1.0, 8),
		mkRanked("SR28000BL5", 0.5, 4),
	}

	path, err := WriteSnapshot(dir, table, 2, now)
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if filepath.Base(path) != "20250826_123000.txt" {
		t.Fatalf("path = %s, want timestamped name", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, "Options monitoring - 2025-08-26 12:30:00") {
		t.Fatalf("missing header:\n%s", body)
	}
	if !strings.Contains(body, "SECID: SR26000BL5") || !strings.Contains(body, "SECID: SR27000BL5") {
		t.Fatalf("missing top rows:\n%s", body)
	}
	if strings.Contains(body, "SR28000BL5") {
		t.Fatalf("snapshot exceeds top limit:\n%s", body)
	}
	if !strings.Contains(body, "Discount: 2.50 (20.00%)") {
		t.Fatalf("missing fixed-precision discount line:\n%s", body)
	}

	// No temp file left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dir entries = %d, want 1", len(entries))
	}
}

func TestWriteSnapshotEmptyTable(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteSnapshot(dir, nil, 10, time.Now())
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if !strings.Contains(string(raw), "No discounted options to display") {
		t.Fatalf("missing empty-table line:\n%s", raw)
	}
}

func TestPrintTop(t *testing.T) {
	var b strings.Builder
	PrintTop(&b, models.ResultTable{mkRanked("SR26000BL5", 2.5, 20)}, 10)
	out := b.String()
	if !strings.Contains(out, "Top 1 options by discount:") {
		t.Fatalf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, " 1. SBER CALL 26000 (EXP: 2025-12-18): 2.50 (20.00%)") {
		t.Fatalf("unexpected row format:\n%s", out)
	}

	b.Reset()
	PrintTop(&b, nil, 10)
	if !strings.Contains(b.String(), "No discounted options found") {
		t.Fatalf("missing empty message:\n%s", b.String())
	}
}
