package rules

import (
	"errors"
	"fmt"
	"time"

	"github.com/i474232898/ocean-status/internal/model"
)

var (
	// ErrMissingThresholds is returned when a region has no limits for an activity.
	ErrMissingThresholds = errors.New("missing activity thresholds")
	// ErrUnknownActivity is returned for an activity without an evaluator.
	ErrUnknownActivity = errors.New("unknown activity")
)

// Input is the merged context every activity evaluator reads.
type Input struct {
	Now     time.Time
	Current model.WeatherSnapshot
	Hourly  []model.HourlyForecastPoint
	Tides   []model.TideEvent
}

// Evaluator computes a recommendation for one activity.
type Evaluator func(th model.ActivityThresholds, in Input) model.ActivityRecommendation

var evaluators = map[model.Activity]Evaluator{
	model.ActivitySnorkeling: EvaluateSnorkeling,
	model.ActivityKayaking:   EvaluateKayaking,
	model.ActivitySUP:        EvaluateSUP,
	model.ActivityFishing:    EvaluateFishing,
}

// Evaluate runs the evaluator registered for activity.
func Evaluate(activity model.Activity, th model.ActivityThresholds, in Input) (model.ActivityRecommendation, error) {
	eval, ok := evaluators[activity]
	if !ok {
		return model.ActivityRecommendation{}, fmt.Errorf("%w: %s", ErrUnknownActivity, activity)
	}
	return eval(th, in), nil
}

// EvaluateAll computes a recommendation for every supported activity. It fails
// rather than inventing a status when thresholds are missing.
func EvaluateAll(thresholds map[model.Activity]model.ActivityThresholds, in Input) (map[model.Activity]model.ActivityRecommendation, error) {
	out := make(map[model.Activity]model.ActivityRecommendation, len(model.Activities))
	for _, a := range model.Activities {
		th, ok := thresholds[a]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingThresholds, a)
		}
		rec, err := Evaluate(a, th, in)
		if err != nil {
			return nil, err
		}
		out[a] = rec
	}
	return out, nil
}

func recommend(status model.Status, reason string) model.ActivityRecommendation {
	return model.ActivityRecommendation{Status: status, Reason: reason}
}

// clock formats an event time in the caller's zone.
func clock(t, now time.Time) string {
	return t.In(now.Location()).Format("15:04")
}
