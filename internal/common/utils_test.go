package common

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampAndNonNegative(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(140, 0, 100))
	assert.Equal(t, 42.0, Clamp(42, 0, 100))

	assert.Equal(t, 0.0, NonNegative(-0.1))
	assert.Equal(t, 0.0, NonNegative(math.NaN()))
	assert.Equal(t, 3.5, NonNegative(3.5))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.24, Round(1.2351, 2))
	assert.Equal(t, 3.0, Round(2.5, 0))
}

func TestDiurnalWave(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 1.0, DiurnalWave(day.Add(14*time.Hour), 14), 1e-9)
	assert.InDelta(t, -1.0, DiurnalWave(day.Add(2*time.Hour), 14), 1e-9)
	assert.InDelta(t, 0.0, DiurnalWave(day.Add(20*time.Hour), 14), 1e-9)
}

func TestAbsDuration(t *testing.T) {
	assert.Equal(t, time.Minute, AbsDuration(-time.Minute))
	assert.Equal(t, time.Minute, AbsDuration(time.Minute))
}
