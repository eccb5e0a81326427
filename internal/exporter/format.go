package exporter

import (
	"strconv"
	"time"

	"evalmarks/pkg/contracts/domain"
)

// TimestampLayout is how response timestamps are written to text outputs
const TimestampLayout = "2006-01-02 15:04:05"

// formatFloat formats a float64 with the fewest digits that round-trip
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// formatCell renders one table cell as CSV text; nil is an empty cell
func formatCell(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return formatFloat(c)
	case int:
		return formatInt(int64(c))
	case int64:
		return formatInt(c)
	case time.Time:
		return c.Format(TimestampLayout)
	case domain.NullFloat:
		if !c.Valid {
			return ""
		}
		return formatFloat(c.Value)
	default:
		return ""
	}
}

// nullCell converts a NullFloat to a spreadsheet cell value
func nullCell(n domain.NullFloat) interface{} {
	if !n.Valid {
		return nil
	}
	return n.Value
}
