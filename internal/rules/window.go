package rules

import (
	"fmt"

	"github.com/i474232898/ocean-status/internal/model"
)

// MinWindowHours is the shortest run of usable hours worth reporting.
const MinWindowHours = 4

// Factors selects which conditions a window walk checks.
type Factors struct {
	Wind   bool
	Clouds bool
	Rain   bool
}

// NextWindow walks the forecast forward from start and counts consecutive
// hours in which none of the selected factors is bad. It returns an empty
// string when fewer than MinWindowHours such hours are found.
func NextWindow(hourly []model.HourlyForecastPoint, th model.ActivityThresholds, start int, f Factors) string {
	if start < 0 {
		start = 0
	}

	n := 0
	for i := start; i < len(hourly); i++ {
		if hourIsBad(hourly[i], th, f) {
			break
		}
		n++
	}

	if n < MinWindowHours {
		return ""
	}
	return fmt.Sprintf("Next %d-%d hours", n, n+2)
}

func hourIsBad(p model.HourlyForecastPoint, th model.ActivityThresholds, f Factors) bool {
	if f.Wind && EvaluateWind(p.WindSpeed, th.MaxWindSpeed).Status == model.StatusBad {
		return true
	}
	if f.Clouds && EvaluateCloudiness(p.Cloudiness, th.MaxCloudiness).Status == model.StatusBad {
		return true
	}
	if f.Rain && EvaluateRain(p.Rain, th.MaxRain).Status == model.StatusBad {
		return true
	}
	return false
}
