package reconcile

import (
	"encoding/json"
	"strings"
)

// ParseState identifies which branch of the response-repair state machine
// produced a Result. Both branches are independently testable.
type ParseState int

const (
	// StateAwaitingResponse is the initial state before repair runs.
	StateAwaitingResponse ParseState = iota
	// StateParsed means a JSON object was located and decoded.
	StateParsed
	// StateFallback means no JSON could be recovered and a synthetic
	// single-discrepancy result was returned instead.
	StateFallback
)

// fallbackDescriptionLimit bounds how much raw model text is carried
// into a synthesized fallback discrepancy.
const fallbackDescriptionLimit = 500

// looseResult decodes the model output permissively: every field is
// optional and match_score tolerates a float.
type looseResult struct {
	Discrepancies []Discrepancy `json:"discrepancies"`
	Summary       *string       `json:"summary"`
	MatchScore    *float64      `json:"match_score"`
}

// Repair turns raw model text into a well-shaped Result. It locates the
// first brace-delimited JSON object (tolerating surrounding prose or
// markdown fences) and decodes it; when that fails it synthesizes a
// fallback result so the contract stays total once the model call itself
// succeeded. In the parsed branch the hallucination filter runs before
// the match-score backfill, so a defaulted score reflects only the
// discrepancies that survived.
func Repair(raw string) (*Result, ParseState) {
	for _, candidate := range jsonCandidates(raw) {
		var loose looseResult
		if err := json.Unmarshal([]byte(candidate), &loose); err != nil {
			continue
		}
		return finalize(loose), StateParsed
	}
	return fallbackResult(raw), StateFallback
}

// finalize applies the hallucination filter and backfills missing
// optional fields.
func finalize(loose looseResult) *Result {
	result := &Result{
		Discrepancies: FilterHallucinations(loose.Discrepancies),
	}

	if loose.Summary != nil && *loose.Summary != "" {
		result.Summary = *loose.Summary
	} else {
		result.Summary = "Análisis completado."
	}

	if loose.MatchScore != nil {
		result.MatchScore = int(*loose.MatchScore)
	} else {
		result.MatchScore = 100 - 10*len(result.Discrepancies)
	}

	return result
}

// fallbackResult wraps unparsable model output in a single text
// discrepancy so the caller still receives the contract's shape.
func fallbackResult(raw string) *Result {
	description := raw
	if runes := []rune(description); len(runes) > fallbackDescriptionLimit {
		description = string(runes[:fallbackDescriptionLimit])
	}

	return &Result{
		Discrepancies: []Discrepancy{{
			Type:           "texto",
			Severity:       "media",
			Description:    description,
			Recommendation: "Se recomienda revisión manual",
		}},
		Summary:    "Análisis IA completado con notas de análisis.",
		MatchScore: 70,
	}
}

// jsonCandidates returns substrings of raw likely to be the model's JSON
// object, most precise first: the balanced object starting at the first
// '{', then the greedy first-'{' to last-'}' slice.
func jsonCandidates(raw string) []string {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil
	}

	var candidates []string
	if end, ok := matchBrace(raw, start); ok {
		candidates = append(candidates, raw[start:end+1])
	}
	if last := strings.LastIndexByte(raw, '}'); last > start {
		greedy := raw[start : last+1]
		if len(candidates) == 0 || greedy != candidates[0] {
			candidates = append(candidates, greedy)
		}
	}
	return candidates
}

// matchBrace scans from the opening brace at start and returns the index
// of its matching close, honoring JSON string literals and escapes.
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// FilterHallucinations discards model-reported discrepancies whose two
// values are equal once currency markers, thousands separators, and
// surrounding whitespace are stripped. Models sometimes report
// reformatted-but-equal values as differences; this deterministic check
// runs on every model discrepancy regardless of its claimed type.
func FilterHallucinations(discrepancies []Discrepancy) []Discrepancy {
	valid := make([]Discrepancy, 0, len(discrepancies))
	for _, d := range discrepancies {
		if NormalizeValue(d.ExcelValue) != NormalizeValue(d.PptxValue) {
			valid = append(valid, d)
		}
	}
	return valid
}

// valueStripper removes currency markers and thousands separators
// (including the non-breaking space used in European formats).
var valueStripper = strings.NewReplacer("$", "", "€", "", ",", "", " ", "")

// NormalizeValue canonicalizes a reported value for equality comparison.
// Nil normalizes to the empty string.
func NormalizeValue(v *string) string {
	if v == nil {
		return ""
	}
	return valueStripper.Replace(strings.TrimSpace(*v))
}
