package common

import (
	"math"
	"time"
)

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NonNegative returns v, or 0 when v is negative or NaN.
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// DiurnalWave is a 24h sinusoid in [-1, 1] peaking at peakHour local time.
func DiurnalWave(t time.Time, peakHour float64) float64 {
	hour := float64(t.Hour()) + float64(t.Minute())/60
	return math.Cos(2 * math.Pi * (hour - peakHour) / 24)
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// AbsDuration returns the absolute value of d.
func AbsDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
