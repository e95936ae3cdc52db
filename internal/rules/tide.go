package rules

import (
	"time"

	"github.com/i474232898/ocean-status/internal/model"
)

const (
	// TideActiveWindow is how long after a preferred extremum it still counts as active.
	TideActiveWindow = 3 * time.Hour
	// TideImminentWindow is how soon a future preferred extremum must be to count as imminent.
	TideImminentWindow = 2 * time.Hour
)

// TideEvaluation reports whether the preferred tide is active, imminent, or neither.
type TideEvaluation struct {
	Status model.Status
	// Active is the latest preferred-type event inside the active window.
	Active *model.TideEvent
	// Next is the earliest preferred-type event after now.
	Next *model.TideEvent
}

// EvaluateTide is good when a preferred-type event happened within the last
// three hours, caution when one is at most two hours away, bad otherwise.
// A preference of none is always good.
func EvaluateTide(events []model.TideEvent, preferred model.TideType, now time.Time) TideEvaluation {
	if preferred == model.TideNone || preferred == "" {
		return TideEvaluation{Status: model.StatusGood}
	}

	var res TideEvaluation
	for i := range events {
		e := events[i]
		if e.Type != preferred {
			continue
		}
		if e.Time.After(now) {
			if res.Next == nil || e.Time.Before(res.Next.Time) {
				res.Next = &e
			}
			continue
		}
		if now.Sub(e.Time) <= TideActiveWindow {
			if res.Active == nil || e.Time.After(res.Active.Time) {
				res.Active = &e
			}
		}
	}

	switch {
	case res.Active != nil:
		res.Status = model.StatusGood
	case res.Next != nil && res.Next.Time.Sub(now) <= TideImminentWindow:
		res.Status = model.StatusCaution
	default:
		res.Status = model.StatusBad
	}
	return res
}
