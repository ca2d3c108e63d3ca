// Package priority computes deterministic weighted priority scores for
// projects. Scoring is a pure function of five metrics; no I/O, no
// model calls.
package priority

import "math"

// Tier buckets a continuous score into a discrete priority level.
type Tier string

const (
	TierCritical Tier = "Critical"
	TierHigh     Tier = "High"
	TierMedium   Tier = "Medium"
	TierLow      Tier = "Low"
)

// Display colors per tier, kept aligned with the dashboard palette.
var tierColors = map[Tier]string{
	TierCritical: "#DC2626",
	TierHigh:     "#EA580C",
	TierMedium:   "#CA8A04",
	TierLow:      "#16A34A",
}

// Color returns the tier's fixed display color.
func (t Tier) Color() string { return tierColors[t] }

// Factor weights. These must sum to exactly 1.0.
const (
	weightROI       = 0.30
	weightUrgency   = 0.25
	weightRisk      = 0.20
	weightAlignment = 0.15
	weightResources = 0.10
)

// Input carries the five scoring metrics. Each is clamped to [0,100]
// before use, so callers may pass raw spreadsheet values.
type Input struct {
	ROI                  float64
	Urgency              float64
	Risk                 float64
	StrategicAlignment   float64
	ResourceAvailability float64
}

// DefaultInput returns an Input with the neutral defaults applied for
// the metrics that tolerate absence.
func DefaultInput(roi, urgency, risk float64) Input {
	return Input{
		ROI:                  roi,
		Urgency:              urgency,
		Risk:                 risk,
		StrategicAlignment:   50,
		ResourceAvailability: 50,
	}
}

// Factor is one audited component of the total: the clamped input
// value, the fixed weight, and the rounded contribution.
type Factor struct {
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Breakdown exposes every factor so a caller can audit the total
// without recomputation.
type Breakdown struct {
	ROI                  Factor `json:"roi"`
	Urgency              Factor `json:"urgency"`
	Risk                 Factor `json:"risk"`
	StrategicAlignment   Factor `json:"strategic_alignment"`
	ResourceAvailability Factor `json:"resource_availability"`
}

// Score is the full result of one priority computation.
type Score struct {
	Score          float64   `json:"score"`
	Tier           Tier      `json:"tier"`
	TierColor      string    `json:"tier_color"`
	Breakdown      Breakdown `json:"breakdown"`
	Recommendation string    `json:"recommendation"`
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Calculate computes the weighted priority score. Risk is inverted
// before weighting, so lower risk yields a higher contribution. The
// total is rounded to one decimal; tier thresholds apply top-down to
// the rounded value.
func Calculate(in Input) Score {
	roi := clamp(in.ROI)
	urgency := clamp(in.Urgency)
	risk := clamp(in.Risk)
	alignment := clamp(in.StrategicAlignment)
	resources := clamp(in.ResourceAvailability)

	riskAdjusted := 100 - risk

	contribROI := roi * weightROI
	contribUrgency := urgency * weightUrgency
	contribRisk := riskAdjusted * weightRisk
	contribAlignment := alignment * weightAlignment
	contribResources := resources * weightResources

	total := round1(contribROI + contribUrgency + contribRisk + contribAlignment + contribResources)

	var tier Tier
	switch {
	case total >= 80:
		tier = TierCritical
	case total >= 60:
		tier = TierHigh
	case total >= 40:
		tier = TierMedium
	default:
		tier = TierLow
	}

	return Score{
		Score:     total,
		Tier:      tier,
		TierColor: tier.Color(),
		Breakdown: Breakdown{
			ROI:                  Factor{Value: roi, Weight: weightROI, Contribution: round1(contribROI)},
			Urgency:              Factor{Value: urgency, Weight: weightUrgency, Contribution: round1(contribUrgency)},
			Risk:                 Factor{Value: risk, Weight: weightRisk, Contribution: round1(contribRisk)},
			StrategicAlignment:   Factor{Value: alignment, Weight: weightAlignment, Contribution: round1(contribAlignment)},
			ResourceAvailability: Factor{Value: resources, Weight: weightResources, Contribution: round1(contribResources)},
		},
		Recommendation: recommendation(tier, roi, urgency, risk),
	}
}

// recommendation selects the advisory text by tier, with secondary
// thresholds on roi, urgency, and risk inside the middle tiers.
func recommendation(tier Tier, roi, urgency, risk float64) string {
	switch tier {
	case TierCritical:
		return "Acción inmediata requerida. Asignar recursos y comenzar implementación."
	case TierHigh:
		switch {
		case roi > 70:
			return "Proyecto de alto ROI. Priorizar para el siguiente sprint o ciclo."
		case urgency > 70:
			return "Proyecto sensible al tiempo. Acelerar proceso de aprobación."
		default:
			return "Fuerte candidato para ejecución prioritaria. Revisar asignación de recursos."
		}
	case TierMedium:
		if risk > 60 {
			return "Prioridad moderada con riesgo elevado. Considerar mitigación de riesgos antes de proceder."
		}
		return "Encolar para ejecución estándar. Monitorear cambios de prioridad."
	default:
		if roi < 30 {
			return "Bajo ROI. Considerar despriorizar o revisar alcance."
		}
		return "Programar para consideración futura. Documentar para revisión trimestral."
	}
}
