// Package relevance narrows tabular context before it is sent to a
// generative model. Matching is deliberately lexical: a row is relevant
// when one of its identifying fields appears verbatim (case-insensitively)
// inside the document text. This trades recall for simplicity and
// determinism; a token-overlap or embedding matcher could replace it
// behind the same function signature.
package relevance

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/crosscheck-ai/crosscheck/pkg/tabular"
)

// fallbackRowLimit bounds the context size when no row matches: never
// send the entire dataset for large tables.
const fallbackRowLimit = 20

// Filter returns a context string for the reconciliation prompt: either a
// rendering of only the rows whose name/id fields occur in the document
// text, or a bounded rendering of the table head when nothing matches.
func Filter(table *tabular.Sheet, docText string) string {
	docNormalized := normalize(docText)
	idColumns := identityColumns(table.Columns)

	var matched []tabular.Row
	for _, row := range table.Rows {
		if rowMatches(row, idColumns, docNormalized) {
			matched = append(matched, row)
		}
	}

	if len(matched) == 0 {
		return "No exact row matches found based on text search. Providing top 20 rows.\n" +
			tabular.RenderRows(table.Columns, table.Rows, fallbackRowLimit)
	}

	return fmt.Sprintf("Found %d relevant matching rows in Excel:\n", len(matched)) +
		tabular.RenderRows(table.Columns, matched, 0)
}

// identityColumns selects the columns treated as row identifiers: a
// normalized header equal to "name" or "id", or suffixed "_name"/"_id"
// (covers Project_Name, Project_ID and similar).
func identityColumns(columns []string) []string {
	var ids []string
	for _, col := range columns {
		n := tabular.NormalizeColumn(col)
		if n == "name" || n == "id" || strings.HasSuffix(n, "_name") || strings.HasSuffix(n, "_id") {
			ids = append(ids, col)
		}
	}
	return ids
}

// rowMatches reports whether any identifying field of the row is a
// literal substring of the normalized document text.
func rowMatches(row tabular.Row, idColumns []string, docNormalized string) bool {
	for _, col := range idColumns {
		v := row[col]
		if v == nil {
			continue
		}
		term := normalize(tabular.FormatValue(v))
		if term != "" && strings.Contains(docNormalized, term) {
			return true
		}
	}
	return false
}

// normalize lower-cases and NFC-normalizes text so that accented
// characters compare equal regardless of how the source encoded them.
func normalize(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
