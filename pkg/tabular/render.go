package tabular

import (
	"strconv"
	"strings"
)

// RenderRows renders rows as a column-aligned plain-text table, bounded to
// limit rows (limit <= 0 renders all). The output is deterministic and
// free of box-drawing characters so it can be embedded in a model prompt.
func RenderRows(columns []string, rows []Row, limit int) string {
	if limit <= 0 || limit > len(rows) {
		limit = len(rows)
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}

	cells := make([][]string, limit)
	for r := 0; r < limit; r++ {
		cells[r] = make([]string, len(columns))
		for i, col := range columns {
			text := FormatValue(rows[r][col])
			cells[r][i] = text
			if len(text) > widths[i] {
				widths[i] = len(text)
			}
		}
	}

	var b strings.Builder
	writeLine := func(fields []string) {
		for i, field := range fields {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(field)
			b.WriteString(strings.Repeat(" ", widths[i]-len(field)))
		}
		b.WriteString("\n")
	}

	writeLine(columns)
	for _, row := range cells {
		writeLine(row)
	}
	return strings.TrimRight(b.String(), " \n") + "\n"
}

// FormatValue renders a cell value as text. Nil cells render as "null".
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// formatNumber renders a statistic without a trailing ".0" for integral
// values, matching how the numbers appear in the source cells.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
