package export

import (
	"fmt"
	"io"

	"optionscan/internal/models"
)

// PrintTop writes a one-line-per-contract summary of the top rows to w.
// This is the operator-facing run result, distinct from structured logs.
func PrintTop(w io.Writer, table models.ResultTable, top int) {
	rows := table.Top(top)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No discounted options found")
		return
	}
	fmt.Fprintf(w, "Top %d options by discount:\n", len(rows))
	for i, row := range rows {
		fmt.Fprintf(w, "%2d. %s %s %.0f (EXP: %s): %s (%s%%)\n",
			i+1, row.Ticker, row.Side, *row.Strike, row.Expiration,
			row.Discount.StringFixed(2), row.DiscountPct.StringFixed(2))
	}
}
