package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/ocean-status/internal/model"
)

func TestEvaluateWindTiers(t *testing.T) {
	tests := []struct {
		speed, max float64
		want       model.Status
	}{
		{0, 10, model.StatusGood},
		{7, 10, model.StatusGood},
		{7.01, 10, model.StatusCaution},
		{10, 10, model.StatusCaution},
		{10.01, 10, model.StatusBad},
		{4.2, 6, model.StatusGood},
		{6, 6, model.StatusCaution},
		{20, 6, model.StatusBad},
	}
	for _, tt := range tests {
		got := EvaluateWind(tt.speed, tt.max)
		assert.Equal(t, tt.want, got.Status, "wind %.2f max %.2f", tt.speed, tt.max)
	}
}

func TestBreakpointsSurviveFloatRounding(t *testing.T) {
	// 0.7*6, 0.7*3 and 0.5*0.6 are not exact in float64.
	assert.Equal(t, model.StatusGood, EvaluateWind(4.2, 6).Status)
	assert.Equal(t, model.StatusGood, EvaluateWind(2.1, 3).Status)
	assert.Equal(t, model.StatusCaution, EvaluateWind(4.3, 6).Status)
	assert.Equal(t, model.StatusGood, EvaluateCloudiness(18, 30).Status)
	assert.Equal(t, model.StatusCaution, EvaluateRain(0.3, 0.6).Status)
	assert.Equal(t, model.StatusBad, EvaluateRain(0.31, 0.6).Status)
}

func TestEvaluateCloudinessUsesLowerBreakpoint(t *testing.T) {
	assert.Equal(t, model.StatusGood, EvaluateCloudiness(24, 40).Status)
	assert.Equal(t, model.StatusCaution, EvaluateCloudiness(25, 40).Status)
	assert.Equal(t, model.StatusCaution, EvaluateCloudiness(40, 40).Status)
	assert.Equal(t, model.StatusBad, EvaluateCloudiness(41, 40).Status)
}

func TestEvaluateRainTiers(t *testing.T) {
	assert.Equal(t, model.StatusGood, EvaluateRain(0, 0.5).Status)
	assert.Equal(t, model.StatusCaution, EvaluateRain(0.1, 0.5).Status)
	assert.Equal(t, model.StatusCaution, EvaluateRain(0.25, 0.5).Status)
	assert.Equal(t, model.StatusBad, EvaluateRain(0.26, 0.5).Status)
	assert.Equal(t, model.StatusBad, EvaluateRain(3, 0.5).Status)
}

func TestSeverityIsMonotonic(t *testing.T) {
	prev := -1.0
	for speed := 0.0; speed <= 20; speed += 0.5 {
		sev := EvaluateWind(speed, 10).Severity
		assert.GreaterOrEqual(t, sev, prev, "severity dropped at %.1f", speed)
		prev = sev
	}

	assert.Zero(t, EvaluateWind(3, 10).Severity)
	assert.InDelta(t, 1.0, EvaluateWind(10, 10).Severity, 1e-9)
	assert.InDelta(t, 1.5, EvaluateWind(15, 10).Severity, 1e-9)
	assert.Greater(t, EvaluateRain(1, 0.5).Severity, 1.0)
}

func TestZeroMaximumIsStrict(t *testing.T) {
	assert.Equal(t, model.StatusGood, EvaluateWind(0, 0).Status)
	assert.Equal(t, model.StatusBad, EvaluateWind(0.1, 0).Status)
	assert.Equal(t, model.StatusBad, EvaluateRain(0.1, 0).Status)
}
