package rules

import (
	"fmt"

	"github.com/i474232898/ocean-status/internal/model"
)

// EvaluateSUP is the most wind-sensitive activity. Rain never blocks; it can
// only turn a good verdict into caution. Clouds are ignored.
func EvaluateSUP(th model.ActivityThresholds, in Input) model.ActivityRecommendation {
	cur := in.Current
	wind := EvaluateWind(cur.WindSpeed, th.MaxWindSpeed)
	rain := EvaluateRain(cur.Rain, th.MaxRain)

	var rec model.ActivityRecommendation
	switch {
	case wind.Status == model.StatusBad:
		return recommend(model.StatusBad, fmt.Sprintf(
			"Wind %.1f m/s exceeds the %.1f m/s SUP limit - hard to stay upright",
			cur.WindSpeed, th.MaxWindSpeed))
	case wind.Status == model.StatusCaution:
		rec = recommend(model.StatusCaution, fmt.Sprintf(
			"Wind %.1f m/s is close to the SUP limit - experienced paddlers only", cur.WindSpeed))
	case rain.Status != model.StatusGood:
		rec = recommend(model.StatusCaution, fmt.Sprintf(
			"Calm wind (%.1f m/s), but rain (%.1f mm) expected", cur.WindSpeed, cur.Rain))
	default:
		rec = recommend(model.StatusGood, fmt.Sprintf("Glassy water - wind only %.1f m/s", cur.WindSpeed))
	}

	rec.Window = NextWindow(in.Hourly, th, 0, Factors{Wind: true, Rain: true})
	return rec
}
