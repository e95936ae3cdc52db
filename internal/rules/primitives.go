// Package rules maps raw ocean conditions to per-activity recommendations.
//
// Every primitive returns a tri-level status together with a continuous
// severity: 0 while good, (0, 1] across the caution band, and above 1 once
// the limit is exceeded. Activity evaluators combine the primitives with
// their own precedence rules.
package rules

import (
	"github.com/i474232898/ocean-status/internal/model"
)

// Tier breakpoints as a fraction of the configured maximum.
const (
	WindGoodRatio  = 0.7
	CloudGoodRatio = 0.6
	RainGoodRatio  = 0.5
)

// boundaryEpsilon absorbs float error in ratio*max so a reading exactly on a
// breakpoint (4.2 against 0.7×6) lands in the lower tier.
const boundaryEpsilon = 1e-9

// Evaluation is the result of a single primitive.
type Evaluation struct {
	Status   model.Status
	Severity float64
}

// EvaluateWind is good up to 0.7×max, caution up to max, bad beyond.
func EvaluateWind(speed, max float64) Evaluation {
	return tiered(speed, max, WindGoodRatio)
}

// EvaluateCloudiness is good up to 0.6×max, caution up to max, bad beyond.
func EvaluateCloudiness(cloudiness, max float64) Evaluation {
	return tiered(cloudiness, max, CloudGoodRatio)
}

// EvaluateRain is good only when dry, caution up to 0.5×max, bad beyond that.
func EvaluateRain(rain, max float64) Evaluation {
	if rain <= 0 {
		return Evaluation{Status: model.StatusGood}
	}
	limit := RainGoodRatio * max
	if limit <= 0 {
		return Evaluation{Status: model.StatusBad, Severity: 1 + rain}
	}
	sev := rain / limit
	if rain <= limit+boundaryEpsilon {
		return Evaluation{Status: model.StatusCaution, Severity: sev}
	}
	return Evaluation{Status: model.StatusBad, Severity: sev}
}

func tiered(value, max, goodRatio float64) Evaluation {
	if max <= 0 {
		if value <= 0 {
			return Evaluation{Status: model.StatusGood}
		}
		return Evaluation{Status: model.StatusBad, Severity: 1 + value}
	}

	good := goodRatio * max
	switch {
	case value <= good+boundaryEpsilon:
		return Evaluation{Status: model.StatusGood}
	case value <= max+boundaryEpsilon:
		return Evaluation{Status: model.StatusCaution, Severity: (value - good) / (max - good)}
	default:
		return Evaluation{Status: model.StatusBad, Severity: value / max}
	}
}
