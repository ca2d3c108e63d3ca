// Package tabular parses spreadsheets into a normalized row/column
// representation plus a textual statistical summary suitable for use as
// model context. All cell values are JSON-representable: numeric cells
// become int64/float64, boolean cells become bool, everything else stays a
// string, and empty or not-a-number cells are normalized to nil.
package tabular

import (
	"strings"
)

// Row maps a column name to its cell value (string, int64, float64, bool,
// or nil for empty/NaN cells).
type Row map[string]any

// Sheet holds the parsed contents of a single worksheet.
type Sheet struct {
	Name     string   `json:"name"`
	Columns  []string `json:"columns"`
	RowCount int      `json:"rows"`
	Rows     []Row    `json:"-"`
}

// Dataset is the parsed representation of a whole workbook.
type Dataset struct {
	Sheets    []Sheet `json:"sheets"`
	TotalRows int     `json:"total_rows"`
	Summary   string  `json:"summary"`
}

// WorkingTable returns the first sheet, used as the working table for
// relevance filtering. Returns nil for a workbook without sheets.
func (d *Dataset) WorkingTable() *Sheet {
	if len(d.Sheets) == 0 {
		return nil
	}
	return &d.Sheets[0]
}

// NormalizeColumn normalizes a column header to snake_case for
// fallback-tolerant lookups ("Metric ROI 0-100" -> "metric_roi_0_100").
func NormalizeColumn(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Lookup returns the value of the first column whose normalized name
// matches any of the candidates, in candidate order.
func (r Row) Lookup(columns []string, candidates ...string) (any, bool) {
	for _, cand := range candidates {
		for _, col := range columns {
			if NormalizeColumn(col) == cand {
				if v, ok := r[col]; ok && v != nil {
					return v, true
				}
			}
		}
	}
	return nil, false
}
