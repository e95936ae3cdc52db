package providers

import (
	"math"
	"math/rand"
	"time"

	"github.com/i474232898/ocean-status/internal/common"
	"github.com/i474232898/ocean-status/internal/model"
)

// Mock data is bounded-random and intentionally non-reproducible: the shape
// (daily cycles, afternoon showers, trade-wind direction, alternating tides)
// is fixed, the jitter is not. It is a stand-in for live data, not a
// simulation.

const (
	// HourlyPoints is the length of a synthesized or upstream hourly forecast.
	HourlyPoints = 24

	mockTideEvents     = 16
	mockTideFallback   = 8
	mockTidePeriod     = 12 * time.Hour
	mockTideCenter     = 0.55
	mockTideAmplitude  = 0.45
	rainWindowStart    = 14
	rainWindowEnd      = 18
	tradeWindDirection = 110.0
	tradeWindSpread    = 25.0
)

// RandomSource supplies uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// NewRandomSource returns a goroutine-safe source backed by math/rand.
func NewRandomSource() RandomSource {
	return globalSource{}
}

// SynthesizeWeather builds a current snapshot and an hourly forecast starting
// at the top of the current hour.
func SynthesizeWeather(now time.Time, rng RandomSource, hours int) (model.WeatherSnapshot, []model.HourlyForecastPoint) {
	baseWind := 2 + 2*rng.Float64()

	start := now.Truncate(time.Hour)
	hourly := make([]model.HourlyForecastPoint, 0, hours)
	for i := 0; i < hours; i++ {
		hourly = append(hourly, synthesizeHour(start.Add(time.Duration(i)*time.Hour), baseWind, rng))
	}

	p := synthesizeHour(now, baseWind, rng)
	current := model.WeatherSnapshot{
		WindSpeed:     p.WindSpeed,
		WindDirection: p.WindDirection,
		Cloudiness:    p.Cloudiness,
		Rain:          p.Rain,
		Temperature:   p.Temperature,
		Pressure:      p.Pressure,
		Humidity:      p.Humidity,
		Timestamp:     now,
	}
	return current, hourly
}

func synthesizeHour(t time.Time, baseWind float64, rng RandomSource) model.HourlyForecastPoint {
	jitter := func(spread float64) float64 { return (rng.Float64() - 0.5) * spread }

	wind := common.NonNegative(baseWind + 1.5*common.DiurnalWave(t, 14) + jitter(0.6))
	dir := common.Clamp(tradeWindDirection+tradeWindSpread*rng.Float64()+jitter(6), 0, 360)
	clouds := common.Clamp(35+20*common.DiurnalWave(t, 15)+jitter(20), 0, 100)
	humidity := common.Clamp(70+8*common.DiurnalWave(t, 5)+jitter(6), 0, 100)
	pressure := 1015 + 2*common.DiurnalWave(t, 10) + jitter(2)
	temp := 26 + 3*common.DiurnalWave(t, 14) + jitter(1)

	rain := 0.0
	if h := t.Hour(); h >= rainWindowStart && h <= rainWindowEnd && rng.Float64() < 0.35 {
		rain = common.Round(0.1+0.9*rng.Float64(), 1)
	}

	return model.HourlyForecastPoint{
		Time:          t,
		WindSpeed:     common.Round(wind, 1),
		WindDirection: common.Float(math.Round(dir)),
		Rain:          rain,
		Cloudiness:    math.Round(clouds),
		Temperature:   common.Float(common.Round(temp, 1)),
		Pressure:      common.Float(math.Round(pressure)),
		Humidity:      common.Float(math.Round(humidity)),
	}
}

// SynthesizeTides alternates highs and lows from a random phase, 5.5-6.5
// hours apart, and keeps only future events. When none are in the future
// the first eight raw events are returned instead.
func SynthesizeTides(now time.Time, rng RandomSource) []model.TideEvent {
	t := now.Add(-time.Duration(rng.Float64() * float64(6*time.Hour)))
	typ := model.TideLow
	if rng.Float64() < 0.5 {
		typ = model.TideHigh
	}

	raw := make([]model.TideEvent, 0, mockTideEvents)
	for i := 0; i < mockTideEvents; i++ {
		var h float64
		if typ == model.TideHigh {
			h = 0.7 + 0.5*rng.Float64()
		} else {
			h = 0.1 + 0.4*rng.Float64()
		}
		raw = append(raw, model.TideEvent{Type: typ, Height: common.Round(h, 2), Time: t})

		t = t.Add(5*time.Hour + 30*time.Minute + time.Duration(rng.Float64()*float64(time.Hour)))
		if typ == model.TideHigh {
			typ = model.TideLow
		} else {
			typ = model.TideHigh
		}
	}

	future := make([]model.TideEvent, 0, len(raw))
	for _, e := range raw {
		if e.Time.After(now) {
			future = append(future, e)
		}
	}
	if len(future) == 0 {
		return raw[:mockTideFallback]
	}
	return future
}

// SynthesizeTideHeights returns an hourly height series from a pure 12-hour
// sinusoid centred on 0.55 m.
func SynthesizeTideHeights(now time.Time, hours int) []model.TideHeight {
	start := now.Truncate(time.Hour)
	out := make([]model.TideHeight, 0, hours)
	for i := 0; i < hours; i++ {
		t := start.Add(time.Duration(i) * time.Hour)
		phase := 2 * math.Pi * float64(t.Unix()) / mockTidePeriod.Seconds()
		out = append(out, model.TideHeight{
			Time:   t,
			Height: common.Round(mockTideCenter+mockTideAmplitude*math.Sin(phase), 2),
		})
	}
	return out
}
