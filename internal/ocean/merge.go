package ocean

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/i474232898/ocean-status/internal/common"
	"github.com/i474232898/ocean-status/internal/model"
)

const (
	// MergeTolerance is the largest gap between a forecast hour and the tide sample attached to it.
	MergeTolerance = 30 * time.Minute
	// CurrentTideMaxAge bounds how old the "current" tide event may be.
	CurrentTideMaxAge = 3 * time.Hour
	// BackfillWindow is how close the first forecast hour must be to now to backfill from it.
	BackfillWindow = time.Hour
)

// ErrMalformedSeries is returned when merge input cannot produce a valid response.
var ErrMalformedSeries = errors.New("malformed time series")

// CurrentAndNextTide finds the latest event at or before now (at most three
// hours old) and the earliest event after now.
func CurrentAndNextTide(events []model.TideEvent, now time.Time) (current, next *model.TideEvent) {
	for i := range events {
		e := events[i]
		if e.Time.After(now) {
			if next == nil || e.Time.Before(next.Time) {
				next = &e
			}
			continue
		}
		if now.Sub(e.Time) > CurrentTideMaxAge {
			continue
		}
		if current == nil || e.Time.After(current.Time) {
			current = &e
		}
	}
	return current, next
}

// MergeTideHeights attaches to every forecast hour the nearest tide sample,
// when it lies within MergeTolerance. The input slice is not modified.
func MergeTideHeights(hourly []model.HourlyForecastPoint, heights []model.TideHeight) ([]model.HourlyForecastPoint, error) {
	if err := validateSeries(hourly, heights); err != nil {
		return nil, err
	}

	out := make([]model.HourlyForecastPoint, len(hourly))
	copy(out, hourly)
	if len(heights) == 0 {
		return out, nil
	}

	for i := range out {
		best := -1
		var bestDelta time.Duration
		for j := range heights {
			d := common.AbsDuration(heights[j].Time.Sub(out[i].Time))
			if best < 0 || d < bestDelta {
				best, bestDelta = j, d
			}
		}
		if bestDelta <= MergeTolerance {
			out[i].TideHeight = common.Float(heights[best].Height)
		} else {
			out[i].TideHeight = nil
		}
	}
	return out, nil
}

func validateSeries(hourly []model.HourlyForecastPoint, heights []model.TideHeight) error {
	for i := 1; i < len(hourly); i++ {
		if hourly[i].Time.Before(hourly[i-1].Time) {
			return fmt.Errorf("%w: hourly forecast out of order at index %d", ErrMalformedSeries, i)
		}
	}
	for i, h := range heights {
		if math.IsNaN(h.Height) || math.IsInf(h.Height, 0) {
			return fmt.Errorf("%w: invalid tide height at index %d", ErrMalformedSeries, i)
		}
	}
	return nil
}

// BackfillCurrent replaces a zero-wind current reading with the first
// forecast hour when that hour has wind and is within an hour of now. Only
// fields the forecast actually provides are copied.
func BackfillCurrent(current model.WeatherSnapshot, hourly []model.HourlyForecastPoint, now time.Time) (model.WeatherSnapshot, bool) {
	if current.WindSpeed != 0 || len(hourly) == 0 {
		return current, false
	}
	first := hourly[0]
	if first.WindSpeed <= 0 || common.AbsDuration(first.Time.Sub(now)) > BackfillWindow {
		return current, false
	}

	current.WindSpeed = first.WindSpeed
	current.Cloudiness = first.Cloudiness
	current.Rain = first.Rain
	if first.WindDirection != nil {
		current.WindDirection = first.WindDirection
	}
	if first.Temperature != nil {
		current.Temperature = first.Temperature
	}
	if first.Pressure != nil {
		current.Pressure = first.Pressure
	}
	if first.Humidity != nil {
		current.Humidity = first.Humidity
	}
	return current, true
}
