package rules

import (
	"fmt"
	"math"

	"github.com/i474232898/ocean-status/internal/model"
)

// EvaluateFishing ranks tide timing first. Unlike the other activities a bad
// wind reading does not force a bad verdict on its own: with favorable tide
// timing wind and rain can only downgrade to caution, and the verdict is bad
// only when tide and wind are both unfavorable. Fish feed around the tide
// change, so the tide axis dominates.
func EvaluateFishing(th model.ActivityThresholds, in Input) model.ActivityRecommendation {
	cur := in.Current
	wind := EvaluateWind(cur.WindSpeed, th.MaxWindSpeed)
	rain := EvaluateRain(cur.Rain, th.MaxRain)
	tide := EvaluateTide(in.Tides, th.PreferredTide, in.Now)

	var rec model.ActivityRecommendation
	if tide.Status == model.StatusBad {
		if wind.Status == model.StatusBad {
			return recommend(model.StatusBad, fmt.Sprintf(
				"Off-peak tide and wind %.1f m/s exceeds the %.1f m/s limit",
				cur.WindSpeed, th.MaxWindSpeed))
		}
		reason := fmt.Sprintf("Off-peak tide - no %s tide expected soon", th.PreferredTide)
		if tide.Next != nil {
			reason = fmt.Sprintf("Off-peak tide - next %s tide at %s", th.PreferredTide, clock(tide.Next.Time, in.Now))
		}
		rec = recommend(model.StatusCaution, reason)
	} else {
		tideReason := fishingTideReason(th.PreferredTide, tide, in)
		switch {
		case wind.Status == model.StatusBad:
			rec = recommend(model.StatusCaution, fmt.Sprintf(
				"%s, but wind %.1f m/s exceeds the %.1f m/s limit", tideReason, cur.WindSpeed, th.MaxWindSpeed))
		case rain.Status == model.StatusBad:
			rec = recommend(model.StatusCaution, fmt.Sprintf("%s, but heavy rain (%.1f mm)", tideReason, cur.Rain))
		case wind.Status == model.StatusCaution:
			rec = recommend(model.StatusCaution, fmt.Sprintf("%s, with moderate wind (%.1f m/s)", tideReason, cur.WindSpeed))
		case rain.Status == model.StatusCaution:
			rec = recommend(model.StatusCaution, fmt.Sprintf("%s, with light rain (%.1f mm)", tideReason, cur.Rain))
		default:
			rec = recommend(model.StatusGood, tideReason)
		}
	}

	rec.Window = NextWindow(in.Hourly, th, 0, Factors{Wind: true, Rain: true})
	return rec
}

func fishingTideReason(pref model.TideType, tide TideEvaluation, in Input) string {
	switch {
	case pref == model.TideNone || pref == "":
		return fmt.Sprintf("Steady conditions with wind %.1f m/s", in.Current.WindSpeed)
	case tide.Active != nil:
		return fmt.Sprintf("%s tide window active since %s - fish are feeding",
			title(pref), clock(tide.Active.Time, in.Now))
	default:
		mins := int(math.Round(tide.Next.Time.Sub(in.Now).Minutes()))
		return fmt.Sprintf("%s tide in %d min at %s - the turning tide brings peak feeding",
			title(pref), mins, clock(tide.Next.Time, in.Now))
	}
}

func title(t model.TideType) string {
	switch t {
	case model.TideHigh:
		return "High"
	case model.TideLow:
		return "Low"
	default:
		return string(t)
	}
}
