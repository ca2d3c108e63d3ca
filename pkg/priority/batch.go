package priority

import (
	"sort"
	"strconv"

	"github.com/crosscheck-ai/crosscheck/pkg/tabular"
)

// ProjectScore joins a project's identity columns with its computed
// priority score.
type ProjectScore struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Sponsor string `json:"sponsor"`
	Area    string `json:"area"`
	Score
}

// BatchResult is the outcome of scoring every row of a project table.
type BatchResult struct {
	TotalProjects int            `json:"total_projects"`
	Results       []ProjectScore `json:"results"`
}

// Metric column candidates, tried in order against normalized column
// names. The Spanish names come first because that is what the
// portfolio templates export.
var (
	idColumns        = []string{"id_proyecto", "project_id", "id"}
	nameColumns      = []string{"nombre_proyecto", "project_name", "name", "nombre"}
	sponsorColumns   = []string{"sponsor_ejecutivo", "sponsor"}
	areaColumns      = []string{"area_negocio", "area", "business_area"}
	roiColumns       = []string{"metric_roi_0_100", "roi"}
	urgencyColumns   = []string{"metric_urgencia_0_100", "urgencia", "urgency"}
	riskColumns      = []string{"metric_riesgo_0_100", "riesgo", "risk"}
	alignmentColumns = []string{"metric_alineacion_0_100", "alineacion", "alignment"}
	resourceColumns  = []string{"metric_recursos_0_100", "recursos", "resources"}
)

// ScoreBatch scores every row of the table and returns the results
// ordered by score descending. The sort is stable, so ties keep the
// input row order.
func ScoreBatch(table *tabular.Sheet) *BatchResult {
	results := make([]ProjectScore, 0, len(table.Rows))

	for _, row := range table.Rows {
		in := Input{
			ROI:                  metricValue(row, table.Columns, roiColumns, 0),
			Urgency:              metricValue(row, table.Columns, urgencyColumns, 0),
			Risk:                 metricValue(row, table.Columns, riskColumns, 50),
			StrategicAlignment:   metricValue(row, table.Columns, alignmentColumns, 50),
			ResourceAvailability: metricValue(row, table.Columns, resourceColumns, 50),
		}

		results = append(results, ProjectScore{
			ID:      textValue(row, table.Columns, idColumns, "Desconocido"),
			Name:    textValue(row, table.Columns, nameColumns, "Sin Título"),
			Sponsor: textValue(row, table.Columns, sponsorColumns, "N/A"),
			Area:    textValue(row, table.Columns, areaColumns, "N/A"),
			Score:   Calculate(in),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score.Score > results[j].Score.Score
	})

	return &BatchResult{TotalProjects: len(results), Results: results}
}

func metricValue(row tabular.Row, columns, candidates []string, fallback float64) float64 {
	v, ok := row.Lookup(columns, candidates...)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return fallback
}

func textValue(row tabular.Row, columns, candidates []string, fallback string) string {
	v, ok := row.Lookup(columns, candidates...)
	if !ok {
		return fallback
	}
	switch s := v.(type) {
	case string:
		if s != "" {
			return s
		}
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return fallback
}
