package rules

import (
	"fmt"

	"github.com/i474232898/ocean-status/internal/model"
)

// EvaluateSnorkeling treats wind as the blocking factor. Heavy rain only
// blocks together with moderate wind. Clouds and tide timing can at most turn
// a good verdict into caution.
func EvaluateSnorkeling(th model.ActivityThresholds, in Input) model.ActivityRecommendation {
	cur := in.Current
	wind := EvaluateWind(cur.WindSpeed, th.MaxWindSpeed)
	rain := EvaluateRain(cur.Rain, th.MaxRain)
	clouds := EvaluateCloudiness(cur.Cloudiness, th.MaxCloudiness)
	tide := EvaluateTide(in.Tides, th.PreferredTide, in.Now)

	if wind.Status == model.StatusBad {
		return recommend(model.StatusBad, fmt.Sprintf(
			"Wind %.1f m/s exceeds the %.1f m/s limit - rough water and poor visibility",
			cur.WindSpeed, th.MaxWindSpeed))
	}
	if rain.Status == model.StatusBad && wind.Status == model.StatusCaution {
		return recommend(model.StatusBad, fmt.Sprintf(
			"Heavy rain (%.1f mm) with moderate wind (%.1f m/s) - murky, choppy water",
			cur.Rain, cur.WindSpeed))
	}

	status := model.StatusGood
	var reason string
	switch {
	case wind.Status == model.StatusCaution:
		status = model.StatusCaution
		reason = fmt.Sprintf("Moderate wind (%.1f m/s) - expect some chop at exposed sites", cur.WindSpeed)
	case rain.Status != model.StatusGood:
		status = model.StatusCaution
		reason = fmt.Sprintf("Rain (%.1f mm) may cloud the water", cur.Rain)
	case clouds.Status != model.StatusGood:
		status = model.StatusCaution
		reason = fmt.Sprintf("Calm wind (%.1f m/s), but overcast skies (%.0f%%) limit underwater light",
			cur.WindSpeed, cur.Cloudiness)
	default:
		reason = fmt.Sprintf("Calm wind (%.1f m/s) and clear skies", cur.WindSpeed)
	}

	if status == model.StatusGood && th.PreferredTide != model.TideNone {
		switch tide.Status {
		case model.StatusGood:
			reason += fmt.Sprintf(" with %s tide now", th.PreferredTide)
		case model.StatusCaution:
			reason += fmt.Sprintf(" - %s tide at %s", th.PreferredTide, clock(tide.Next.Time, in.Now))
		default:
			status = model.StatusCaution
			if tide.Next != nil {
				reason = fmt.Sprintf("Calm conditions, but %s tide is best - next at %s",
					th.PreferredTide, clock(tide.Next.Time, in.Now))
			} else {
				reason = fmt.Sprintf("Calm conditions, but no %s tide is expected soon", th.PreferredTide)
			}
		}
	}

	rec := recommend(status, reason)
	rec.Window = NextWindow(in.Hourly, th, 0, Factors{Wind: true, Clouds: true, Rain: true})
	return rec
}
