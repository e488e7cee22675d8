// Package export renders a ranked ResultTable to its three consumers:
// a spreadsheet file, a plain-text monitoring snapshot and the console.
// Files are written to a temp name and renamed into place, so a
// partially written export is never visible to readers.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"optionscan/internal/models"
)

const fileTimestampLayout = "20060102_150405"

var tableHeader = []any{
	"TICKER", "OPTION_TYPE", "EXP_DATE", "SECID", "STRIKE",
	"THEORPRICE", "OFFER", "LAST_PRICE", "DEVIATION_PCT",
	"MONEYNESS", "DISCOUNT", "DISCOUNT_PCT",
}

// WriteTable saves the top rows of a ranked table as a timestamped
// .xlsx file under dir and returns the file path. Derived metrics are
// rendered as fixed-precision decimals.
func WriteTable(dir string, table models.ResultTable, top int, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create tables dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &tableHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for i, row := range table.Top(top) {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			row.Ticker,
			string(row.Side),
			row.Expiration,
			row.SecurityID,
			*row.Strike,
			*row.TheorPrice,
			*row.Offer,
			row.LastPrice,
			row.DeviationPct.StringFixed(2),
			string(row.Moneyness),
			row.Discount.StringFixed(2),
			row.DiscountPct.StringFixed(2),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	path := filepath.Join(dir, now.Format(fileTimestampLayout)+".xlsx")
	tmp := path + ".tmp"
	if err := f.SaveAs(tmp); err != nil {
		return "", fmt.Errorf("save spreadsheet: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("publish spreadsheet: %w", err)
	}
	return path, nil
}
