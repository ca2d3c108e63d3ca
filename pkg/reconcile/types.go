// Package reconcile finds substantive differences between a spreadsheet
// and a slide deck describing the same projects. It composes a prompt
// from relevance-filtered tabular context and the deck summary, invokes a
// generative model under a strict JSON contract, repairs the response,
// and applies a deterministic hallucination filter before the result is
// trusted.
package reconcile

// Discrepancy is a single reported difference between the two documents.
// Type and severity values arrive in the model's output language
// (presupuesto|fecha|texto|faltante|numerico, alta|media|baja).
type Discrepancy struct {
	Type           string  `json:"type"`
	Severity       string  `json:"severity"`
	Description    string  `json:"description"`
	ExcelValue     *string `json:"excel_value"`
	PptxValue      *string `json:"pptx_value"`
	Recommendation string  `json:"recommendation"`
}

// Result is a completed reconciliation analysis.
type Result struct {
	Discrepancies []Discrepancy `json:"discrepancies"`
	Summary       string        `json:"summary"`
	MatchScore    int           `json:"match_score"`
}
