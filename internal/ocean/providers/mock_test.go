package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/ocean-status/internal/model"
)

func TestSynthesizeWeather_Bounds(t *testing.T) {
	for _, seed := range []float64{0, 0.25, 0.5, 0.999} {
		current, hourly := SynthesizeWeather(testNow, constSource(seed), HourlyPoints)

		require.Len(t, hourly, HourlyPoints)
		assert.Equal(t, testNow, current.Timestamp)
		assert.Equal(t, testNow.Truncate(time.Hour), hourly[0].Time)

		for i, p := range hourly {
			if i > 0 {
				assert.Equal(t, time.Hour, p.Time.Sub(hourly[i-1].Time))
			}
			assert.GreaterOrEqual(t, p.WindSpeed, 0.0)
			assert.GreaterOrEqual(t, p.Cloudiness, 0.0)
			assert.LessOrEqual(t, p.Cloudiness, 100.0)
			assert.GreaterOrEqual(t, p.Rain, 0.0)
			require.NotNil(t, p.WindDirection)
			assert.GreaterOrEqual(t, *p.WindDirection, 0.0)
			assert.LessOrEqual(t, *p.WindDirection, 360.0)
			if h := p.Time.Hour(); h < rainWindowStart || h > rainWindowEnd {
				assert.Zero(t, p.Rain, "showers only fall in the afternoon")
			}
		}
	}
}

func TestSynthesizeTides_Alternating(t *testing.T) {
	events := SynthesizeTides(testNow, NewRandomSource())

	require.NotEmpty(t, events)
	for i, e := range events {
		assert.True(t, e.Time.After(testNow))
		if e.Type == model.TideHigh {
			assert.GreaterOrEqual(t, e.Height, 0.7)
		} else {
			assert.LessOrEqual(t, e.Height, 0.5)
		}
		if i > 0 {
			gap := e.Time.Sub(events[i-1].Time)
			assert.NotEqual(t, events[i-1].Type, e.Type)
			assert.GreaterOrEqual(t, gap, 5*time.Hour+30*time.Minute)
			assert.LessOrEqual(t, gap, 6*time.Hour+30*time.Minute)
		}
	}
}

func TestSynthesizeTideHeights(t *testing.T) {
	series := SynthesizeTideHeights(testNow, 72)

	require.Len(t, series, 72)
	for _, s := range series {
		assert.GreaterOrEqual(t, s.Height, 0.1-1e-9)
		assert.LessOrEqual(t, s.Height, 1.0+1e-9)
	}
	assert.NotEmpty(t, DeriveExtrema(series), "synthesized heights have visible extrema")
}
