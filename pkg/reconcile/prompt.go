package reconcile

import (
	"fmt"
)

// systemPrompt pins the model to its analyst role and output language.
const systemPrompt = "Eres un analista de datos preciso. Responde siempre con JSON válido y en Español."

// promptTemplate frames the task, states the suppression rules that keep
// the model from reporting equal or merely reformatted values, embeds
// both document contexts, and dictates the exact JSON output shape.
const promptTemplate = `Eres un asistente analista de datos experto. Analiza los siguientes datos de Excel y contenido de PowerPoint en busca de inconsistencias.

Enfócate en:
1. Números de presupuesto que no coinciden entre documentos
2. Fechas que son inconsistentes
3. Nombres de proyectos o descripciones que difieren
4. Valores numéricos que se contradicen
5. Datos faltantes en un documento que existen en el otro

REGLAS CRÍTICAS PARA LA COMPARACIÓN:
- NO reportes una discrepancia si los valores son idénticos.
- NO reportes una discrepancia si los valores son numéricamente equivalentes (ej: "1744000" vs 1744000).
- NO reportes diferencias de formato (ej: "2024-01-01" vs "01/01/2024" si representan la misma fecha).
- SOLO reporta diferencias sustanciales que requieran atención del usuario.
- RESPONDE SIEMPRE EN ESPAÑOL.

DATOS EXCEL (Filtrados por relevancia):
%s

CONTENIDO POWERPOINT:
%s

Retorna tu análisis ESTRICTAMENTE como un objeto JSON con esta estructura exacta:
{
    "discrepancies": [
        {
            "type": "presupuesto|fecha|texto|faltante|numerico",
            "severity": "alta|media|baja",
            "description": "Descripción clara de la discrepancia en Español",
            "excel_value": "Valor encontrado en Excel (o null)",
            "pptx_value": "Valor encontrado en PowerPoint (o null)",
            "recommendation": "Acción sugerida para resolver en Español"
        }
    ],
    "summary": "Breve resumen general de los hallazgos en Español",
    "match_score": 85
}

Si no se encuentran discrepancias, retorna un array 'discrepancies' vacío.
IMPORTANTE: Retorna SOLO JSON válido, sin texto adicional ni markdown.`

// buildPrompt assembles the user prompt from the relevance-filtered
// tabular context and the deck summary.
func buildPrompt(excelContext, deckSummary string) string {
	return fmt.Sprintf(promptTemplate, excelContext, deckSummary)
}
