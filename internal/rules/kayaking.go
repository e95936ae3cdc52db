package rules

import (
	"fmt"

	"github.com/i474232898/ocean-status/internal/model"
)

// EvaluateKayaking blocks on wind only. Heavy rain blocks together with
// moderate wind and otherwise downgrades to caution. Clouds are ignored.
func EvaluateKayaking(th model.ActivityThresholds, in Input) model.ActivityRecommendation {
	cur := in.Current
	wind := EvaluateWind(cur.WindSpeed, th.MaxWindSpeed)
	rain := EvaluateRain(cur.Rain, th.MaxRain)

	var rec model.ActivityRecommendation
	switch {
	case wind.Status == model.StatusBad:
		return recommend(model.StatusBad, fmt.Sprintf(
			"Wind %.1f m/s exceeds the %.1f m/s kayaking limit - strong drift and hard paddling",
			cur.WindSpeed, th.MaxWindSpeed))
	case rain.Status == model.StatusBad && wind.Status == model.StatusCaution:
		return recommend(model.StatusBad, fmt.Sprintf(
			"Heavy rain (%.1f mm) with building wind (%.1f m/s)", cur.Rain, cur.WindSpeed))
	case rain.Status == model.StatusBad:
		rec = recommend(model.StatusCaution, fmt.Sprintf(
			"Heavy rain (%.1f mm) - paddling possible but visibility is reduced", cur.Rain))
	case wind.Status == model.StatusCaution:
		rec = recommend(model.StatusCaution, fmt.Sprintf(
			"Moderate wind (%.1f m/s) - stay close to shore", cur.WindSpeed))
	case rain.Status == model.StatusCaution:
		rec = recommend(model.StatusCaution, fmt.Sprintf("Light rain (%.1f mm) expected", cur.Rain))
	default:
		rec = recommend(model.StatusGood, fmt.Sprintf(
			"Light wind (%.1f m/s) - good paddling conditions", cur.WindSpeed))
	}

	rec.Window = NextWindow(in.Hourly, th, 0, Factors{Wind: true, Rain: true})
	return rec
}
