package moex

import (
	"strconv"
	"strings"
)

// table is the columns/data block ISS wraps every result set in. Row
// cells decode as float64, string or nil depending on the column, and
// the column list itself is schema-driven, so all access goes through
// name lookup rather than fixed positions.
type table struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

func (t table) colIndex(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// floatAt returns the numeric value of row[idx], or nil when the column
// is absent, the cell is null, or the cell does not parse as a number.
func floatAt(row []any, idx int) *float64 {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	switch v := row[idx].(type) {
	case float64:
		return &v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func stringAt(row []any, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	s, _ := row[idx].(string)
	return s
}
