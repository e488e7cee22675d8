package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"optionscan/internal/models"
)

// WriteSnapshot saves the top rows of a ranked table as a timestamped
// plain-text file under dir and returns the file path.
func WriteSnapshot(dir string, table models.ResultTable, top int, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create monitoring dir: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Options monitoring - %s\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	rows := table.Top(top)
	if len(rows) == 0 {
		b.WriteString("No discounted options to display\n")
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "Ticker: %s\n", row.Ticker)
		fmt.Fprintf(&b, "Option type: %s\n", row.Side)
		fmt.Fprintf(&b, "Expiration date: %s\n", row.Expiration)
		fmt.Fprintf(&b, "SECID: %s\n", row.SecurityID)
		fmt.Fprintf(&b, "Strike: %.2f\n", *row.Strike)
		fmt.Fprintf(&b, "Theoretical price: %.2f\n", *row.TheorPrice)
		fmt.Fprintf(&b, "Offer: %.2f\n", *row.Offer)
		fmt.Fprintf(&b, "Moneyness: %s\n", row.Moneyness)
		fmt.Fprintf(&b, "Discount: %s (%s%%)\n", row.Discount.StringFixed(2), row.DiscountPct.StringFixed(2))
		b.WriteString(strings.Repeat("-", 40) + "\n")
	}

	path := filepath.Join(dir, now.Format(fileTimestampLayout)+".txt")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("publish snapshot: %w", err)
	}
	return path, nil
}
