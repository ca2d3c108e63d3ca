package priority

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniform builds an input whose weighted total is exactly s: every
// factor contributes its weight times s, and weights sum to 1.
func uniform(s float64) Input {
	return Input{
		ROI:                  s,
		Urgency:              s,
		Risk:                 100 - s,
		StrategicAlignment:   s,
		ResourceAvailability: s,
	}
}

func TestCalculateWeightedTotal(t *testing.T) {
	result := Calculate(Input{
		ROI:                  80,
		Urgency:              60,
		Risk:                 40,
		StrategicAlignment:   50,
		ResourceAvailability: 50,
	})

	// 0.30*80 + 0.25*60 + 0.20*60 + 0.15*50 + 0.10*50 = 63.5
	assert.Equal(t, 63.5, result.Score)
	assert.Equal(t, TierHigh, result.Tier)
	assert.Equal(t, "#EA580C", result.TierColor)

	assert.Equal(t, 24.0, result.Breakdown.ROI.Contribution)
	assert.Equal(t, 15.0, result.Breakdown.Urgency.Contribution)
	assert.Equal(t, 12.0, result.Breakdown.Risk.Contribution)
	assert.Equal(t, 7.5, result.Breakdown.StrategicAlignment.Contribution)
	assert.Equal(t, 5.0, result.Breakdown.ResourceAvailability.Contribution)
}

func TestCalculateClampsInputs(t *testing.T) {
	result := Calculate(Input{
		ROI:                  150,
		Urgency:              -20,
		Risk:                 999,
		StrategicAlignment:   100.5,
		ResourceAvailability: -0.1,
	})

	assert.Equal(t, 100.0, result.Breakdown.ROI.Value)
	assert.Equal(t, 0.0, result.Breakdown.Urgency.Value)
	assert.Equal(t, 100.0, result.Breakdown.Risk.Value)
	assert.Equal(t, 100.0, result.Breakdown.StrategicAlignment.Value)
	assert.Equal(t, 0.0, result.Breakdown.ResourceAvailability.Value)
}

func TestCalculateWeightsSumToOne(t *testing.T) {
	b := Calculate(uniform(50)).Breakdown
	sum := b.ROI.Weight + b.Urgency.Weight + b.Risk.Weight +
		b.StrategicAlignment.Weight + b.ResourceAvailability.Weight
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestCalculateMonotonicity(t *testing.T) {
	base := Input{ROI: 40, Urgency: 40, Risk: 40, StrategicAlignment: 40, ResourceAvailability: 40}
	baseScore := Calculate(base).Score

	higherROI := base
	higherROI.ROI = 60
	assert.GreaterOrEqual(t, Calculate(higherROI).Score, baseScore)

	higherUrgency := base
	higherUrgency.Urgency = 60
	assert.GreaterOrEqual(t, Calculate(higherUrgency).Score, baseScore)

	higherRisk := base
	higherRisk.Risk = 60
	assert.LessOrEqual(t, Calculate(higherRisk).Score, baseScore)

	higherAlignment := base
	higherAlignment.StrategicAlignment = 60
	assert.GreaterOrEqual(t, Calculate(higherAlignment).Score, baseScore)

	higherResources := base
	higherResources.ResourceAvailability = 60
	assert.GreaterOrEqual(t, Calculate(higherResources).Score, baseScore)
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		tier  Tier
	}{
		{80.0, TierCritical},
		{79.9, TierHigh},
		{60.0, TierHigh},
		{59.9, TierMedium},
		{40.0, TierMedium},
		{39.9, TierLow},
	}

	for _, tt := range tests {
		result := Calculate(uniform(tt.score))
		require.Equal(t, tt.score, result.Score, "uniform input must reproduce the target score")
		assert.Equal(t, tt.tier, result.Tier, "score %.1f", tt.score)
		assert.Equal(t, tt.tier.Color(), result.TierColor)
	}
}

func TestRecommendationTable(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		contains string
	}{
		{
			"critical",
			uniform(90),
			"Acción inmediata requerida",
		},
		{
			"high with strong roi",
			Input{ROI: 90, Urgency: 50, Risk: 30, StrategicAlignment: 50, ResourceAvailability: 50},
			"alto ROI",
		},
		{
			"high time-sensitive",
			Input{ROI: 50, Urgency: 90, Risk: 20, StrategicAlignment: 60, ResourceAvailability: 60},
			"sensible al tiempo",
		},
		{
			"high default",
			Input{ROI: 65, Urgency: 65, Risk: 30, StrategicAlignment: 60, ResourceAvailability: 60},
			"Fuerte candidato",
		},
		{
			"medium with elevated risk",
			Input{ROI: 40, Urgency: 40, Risk: 70, StrategicAlignment: 60, ResourceAvailability: 60},
			"mitigación de riesgos",
		},
		{
			"medium default",
			uniform(50),
			"Encolar para ejecución estándar",
		},
		{
			"low roi",
			Input{ROI: 10, Urgency: 10, Risk: 90, StrategicAlignment: 20, ResourceAvailability: 20},
			"Bajo ROI",
		},
		{
			"low default",
			Input{ROI: 40, Urgency: 10, Risk: 90, StrategicAlignment: 20, ResourceAvailability: 20},
			"consideración futura",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Calculate(tt.in)
			assert.Contains(t, result.Recommendation, tt.contains)
		})
	}
}

func TestDefaultInput(t *testing.T) {
	in := DefaultInput(70, 60, 30)
	assert.Equal(t, 50.0, in.StrategicAlignment)
	assert.Equal(t, 50.0, in.ResourceAvailability)
}
