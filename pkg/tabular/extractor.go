package tabular

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/crosscheck-ai/crosscheck/pkg/errors"
)

// nullEquivalents are cell texts treated as missing values.
var nullEquivalents = map[string]bool{
	"":        true,
	"nan":     true,
	"#n/a":    true,
	"#na":     true,
	"null":    true,
	"none":    true,
	"#div/0!": true,
}

// Parse reads a workbook from raw bytes and extracts every sheet,
// preserving column order as it appears in the source. The first row of
// each sheet is taken as the header. Any parse failure surfaces as a
// ParsingError; no partial dataset is returned.
func Parse(data []byte) (*Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParsingError("xlsx", err.Error(), err)
	}
	defer func() { _ = f.Close() }()

	ds := &Dataset{}
	var summaries []string

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, errors.NewParsingError("xlsx", fmt.Sprintf("sheet %q: %v", sheetName, err), err)
		}

		sheet := parseSheet(sheetName, rows)
		ds.Sheets = append(ds.Sheets, sheet)
		ds.TotalRows += sheet.RowCount
		summaries = append(summaries, summarizeSheet(&sheet))
	}

	ds.Summary = strings.Join(summaries, "\n")
	return ds, nil
}

// parseSheet converts raw string rows into a typed Sheet.
func parseSheet(name string, raw [][]string) Sheet {
	sheet := Sheet{Name: name}
	if len(raw) == 0 {
		return sheet
	}

	for i, header := range raw[0] {
		h := strings.TrimSpace(header)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		sheet.Columns = append(sheet.Columns, h)
	}

	for _, rawRow := range raw[1:] {
		row := make(Row, len(sheet.Columns))
		for i, col := range sheet.Columns {
			if i < len(rawRow) {
				row[col] = parseCell(rawRow[i])
			} else {
				row[col] = nil
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	sheet.RowCount = len(sheet.Rows)
	return sheet
}

// parseCell converts a cell's text into a typed value. Integers become
// int64, decimals float64, TRUE/FALSE become bool, null-equivalent text
// becomes nil, everything else stays a string.
func parseCell(s string) any {
	trimmed := strings.TrimSpace(s)
	if nullEquivalents[strings.ToLower(trimmed)] {
		return nil
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		// NaN/Inf must not escape into a JSON-representable dataset.
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	}
	switch trimmed {
	case "TRUE", "True", "true":
		return true
	case "FALSE", "False", "false":
		return false
	}
	return trimmed
}

// summarizeSheet builds the human-readable description block used as an
// LLM-context fallback: sheet name, columns, row count, numeric column
// statistics, and a preview of the first rows.
func summarizeSheet(s *Sheet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n=== Sheet: %s ===\n", s.Name)
	fmt.Fprintf(&b, "Columns: %s\n", strings.Join(s.Columns, ", "))
	fmt.Fprintf(&b, "Total rows: %d\n", s.RowCount)

	for _, col := range s.Columns {
		if stats, ok := numericStats(s, col); ok {
			fmt.Fprintf(&b, "%s: min=%s, max=%s, mean=%.2f\n",
				col, formatNumber(stats.min), formatNumber(stats.max), stats.mean)
		}
	}

	b.WriteString("\nFirst 5 rows:\n")
	b.WriteString(RenderRows(s.Columns, s.Rows, 5))
	return b.String()
}

type columnStats struct {
	min, max, mean float64
}

// numericStats computes min/max/mean for a column. A column is numeric if
// it has at least one numeric value and no non-numeric non-null values.
func numericStats(s *Sheet, col string) (columnStats, bool) {
	var values []float64
	for _, row := range s.Rows {
		switch v := row[col].(type) {
		case nil:
			continue
		case int64:
			values = append(values, float64(v))
		case float64:
			values = append(values, v)
		default:
			return columnStats{}, false
		}
	}
	if len(values) == 0 {
		return columnStats{}, false
	}

	stats := columnStats{min: values[0], max: values[0]}
	var sum float64
	for _, v := range values {
		if v < stats.min {
			stats.min = v
		}
		if v > stats.max {
			stats.max = v
		}
		sum += v
	}
	stats.mean = sum / float64(len(values))
	return stats, true
}
