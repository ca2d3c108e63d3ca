package reconcile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRepairCleanJSON(t *testing.T) {
	raw := `{
		"discrepancies": [{
			"type": "presupuesto",
			"severity": "alta",
			"description": "El presupuesto difiere entre documentos",
			"excel_value": "100000",
			"pptx_value": "120000",
			"recommendation": "Verificar con finanzas"
		}],
		"summary": "Se encontró una discrepancia de presupuesto",
		"match_score": 85
	}`

	result, state := Repair(raw)
	assert.Equal(t, StateParsed, state)
	require.Len(t, result.Discrepancies, 1)

	d := result.Discrepancies[0]
	assert.Equal(t, "presupuesto", d.Type)
	assert.Equal(t, "alta", d.Severity)
	assert.Equal(t, "100000", *d.ExcelValue)
	assert.Equal(t, "120000", *d.PptxValue)
	assert.Equal(t, "Se encontró una discrepancia de presupuesto", result.Summary)
	assert.Equal(t, 85, result.MatchScore)
}

func TestRepairJSONWrappedInProse(t *testing.T) {
	raw := "Claro, aquí está el análisis:\n```json\n" +
		`{"discrepancies": [], "summary": "Todo coincide", "match_score": 100}` +
		"\n```\nEspero que sea útil."

	result, state := Repair(raw)
	assert.Equal(t, StateParsed, state)
	assert.Empty(t, result.Discrepancies)
	assert.Equal(t, "Todo coincide", result.Summary)
	assert.Equal(t, 100, result.MatchScore)
}

func TestRepairTruncatesFloatScore(t *testing.T) {
	result, state := Repair(`{"discrepancies": [], "summary": "ok", "match_score": 92.7}`)
	assert.Equal(t, StateParsed, state)
	assert.Equal(t, 92, result.MatchScore)
}

func TestRepairBackfillsMissingFields(t *testing.T) {
	result, state := Repair(`{"discrepancies": [
		{"type": "fecha", "severity": "baja", "excel_value": "2024-01-01", "pptx_value": "2024-06-01"},
		{"type": "numerico", "severity": "alta", "excel_value": "$1,744,000", "pptx_value": "1744000"}
	]}`)

	assert.Equal(t, StateParsed, state)
	// The hallucinated numeric pair is removed before the score default
	// is computed from the surviving count.
	require.Len(t, result.Discrepancies, 1)
	assert.Equal(t, "Análisis completado.", result.Summary)
	assert.Equal(t, 90, result.MatchScore)
}

func TestRepairEmptyObjectBackfill(t *testing.T) {
	result, state := Repair(`{}`)
	assert.Equal(t, StateParsed, state)
	assert.NotNil(t, result.Discrepancies)
	assert.Empty(t, result.Discrepancies)
	assert.Equal(t, "Análisis completado.", result.Summary)
	assert.Equal(t, 100, result.MatchScore)
}

func TestRepairFallbackOnGarbage(t *testing.T) {
	raw := "No puedo generar JSON ahora mismo, lo siento."

	result, state := Repair(raw)
	assert.Equal(t, StateFallback, state)
	require.Len(t, result.Discrepancies, 1)

	d := result.Discrepancies[0]
	assert.Equal(t, "texto", d.Type)
	assert.Equal(t, "media", d.Severity)
	assert.Equal(t, raw, d.Description)
	assert.Nil(t, d.ExcelValue)
	assert.Nil(t, d.PptxValue)
	assert.Equal(t, "Análisis IA completado con notas de análisis.", result.Summary)
	assert.Equal(t, 70, result.MatchScore)
}

func TestRepairFallbackTruncatesDescription(t *testing.T) {
	raw := strings.Repeat("ñ", 800)

	result, state := Repair(raw)
	assert.Equal(t, StateFallback, state)
	assert.Equal(t, 500, len([]rune(result.Discrepancies[0].Description)))
}

func TestRepairBalancedBraceInsideString(t *testing.T) {
	// A close brace inside a string literal must not end the scan.
	raw := `texto {"discrepancies": [], "summary": "llave } interna", "match_score": 99} texto`

	result, state := Repair(raw)
	assert.Equal(t, StateParsed, state)
	assert.Equal(t, "llave } interna", result.Summary)
	assert.Equal(t, 99, result.MatchScore)
}

func TestFilterHallucinations(t *testing.T) {
	tests := []struct {
		name  string
		excel *string
		pptx  *string
		kept  bool
	}{
		{"currency formatting only", strPtr("$1,744,000"), strPtr("1744000"), false},
		{"substantially different", strPtr("500000"), strPtr("600000"), true},
		{"identical", strPtr("2024-01-01"), strPtr("2024-01-01"), false},
		{"surrounding whitespace", strPtr("  42 "), strPtr("42"), false},
		{"missing in one document", nil, strPtr("Fase 2"), true},
		{"both missing", nil, nil, false},
		{"euro marker", strPtr("€500.000"), strPtr("500.000"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []Discrepancy{{Type: "numerico", ExcelValue: tt.excel, PptxValue: tt.pptx}}
			out := FilterHallucinations(in)
			if tt.kept {
				assert.Len(t, out, 1)
			} else {
				assert.Empty(t, out)
			}
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, "", NormalizeValue(nil))
	assert.Equal(t, "1744000", NormalizeValue(strPtr(" $1,744,000 ")))
	assert.Equal(t, "Fase 2", NormalizeValue(strPtr("Fase 2")))
}
