package providers

import (
	"sort"
	"time"

	"github.com/i474232898/ocean-status/internal/model"
)

const (
	// DedupWindow is the minimum spacing between kept tide events.
	DedupWindow = 60 * time.Minute

	minHighHeight     = 0.3
	maxLowHeight      = 0.7
	minDerivedExtrema = 4
)

// DeriveExtrema finds highs and lows in a dense height series. The first pass
// looks for 5-point local maxima above the series mean and minima below it;
// when that yields fewer than four events a strict 3-point scan is used
// instead, since a single window size misses extrema on shallow or
// exaggerated cycles.
func DeriveExtrema(series []model.TideHeight) []model.TideEvent {
	if len(series) < 3 {
		return nil
	}

	sorted := make([]model.TideHeight, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	var sum float64
	for _, s := range sorted {
		sum += s.Height
	}
	mean := sum / float64(len(sorted))

	events := scanWindow(sorted, mean)
	if len(events) < minDerivedExtrema {
		events = scanStrict(sorted)
	}
	return SortAndDedup(events)
}

func scanWindow(s []model.TideHeight, mean float64) []model.TideEvent {
	var out []model.TideEvent
	for i := 2; i < len(s)-2; i++ {
		h := s[i].Height
		isMax, isMin := true, true
		for j := i - 2; j <= i+2; j++ {
			if j == i {
				continue
			}
			if s[j].Height > h {
				isMax = false
			}
			if s[j].Height < h {
				isMin = false
			}
		}

		switch {
		case isMax && h > mean && h > minHighHeight:
			out = append(out, model.TideEvent{Type: model.TideHigh, Height: h, Time: s[i].Time})
		case isMin && h < mean && h < maxLowHeight:
			out = append(out, model.TideEvent{Type: model.TideLow, Height: h, Time: s[i].Time})
		}
	}
	return out
}

func scanStrict(s []model.TideHeight) []model.TideEvent {
	var out []model.TideEvent
	for i := 1; i < len(s)-1; i++ {
		prev, h, next := s[i-1].Height, s[i].Height, s[i+1].Height
		switch {
		case h > prev && h > next && h > minHighHeight:
			out = append(out, model.TideEvent{Type: model.TideHigh, Height: h, Time: s[i].Time})
		case h < prev && h < next && h < maxLowHeight:
			out = append(out, model.TideEvent{Type: model.TideLow, Height: h, Time: s[i].Time})
		}
	}
	return out
}

// SortAndDedup orders events chronologically and drops any event within
// DedupWindow of the previously kept one.
func SortAndDedup(events []model.TideEvent) []model.TideEvent {
	if len(events) == 0 {
		return events
	}

	sorted := make([]model.TideEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	out := make([]model.TideEvent, 0, len(sorted))
	out = append(out, sorted[0])
	for _, e := range sorted[1:] {
		if e.Time.Sub(out[len(out)-1].Time) <= DedupWindow {
			continue
		}
		out = append(out, e)
	}
	return out
}
