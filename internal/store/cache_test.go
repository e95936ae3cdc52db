package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/ocean-status/internal/model"
)

type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestResponseCache_GetPut(t *testing.T) {
	clk := &stepClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := NewResponseCache(10*time.Minute, clk)

	_, ok := c.Get("oahu")
	assert.False(t, ok)

	resp := &model.AggregateResponse{Region: "Oahu"}
	c.Put("oahu", resp)

	got, ok := c.Get("oahu")
	require.True(t, ok)
	assert.Equal(t, resp, got)

	_, ok = c.Get("maui")
	assert.False(t, ok)
}

func TestResponseCache_Expiry(t *testing.T) {
	clk := &stepClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := NewResponseCache(10*time.Minute, clk)
	c.Put("oahu", &model.AggregateResponse{Region: "Oahu"})

	clk.Advance(9*time.Minute + 59*time.Second)
	_, ok := c.Get("oahu")
	assert.True(t, ok, "entry younger than ttl must be served")

	clk.Advance(time.Second)
	_, ok = c.Get("oahu")
	assert.True(t, ok, "entry exactly ttl old is still served")

	clk.Advance(time.Nanosecond)
	_, ok = c.Get("oahu")
	assert.False(t, ok, "entry older than ttl must be recomputed")
	assert.Equal(t, 0, c.Len(), "expired entry is evicted on read")
}

func TestResponseCache_PutReplaces(t *testing.T) {
	clk := &stepClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := NewResponseCache(0, clk)

	c.Put("oahu", &model.AggregateResponse{Region: "old"})
	clk.Advance(DefaultTTL - time.Minute)
	c.Put("oahu", &model.AggregateResponse{Region: "new"})
	clk.Advance(2 * time.Minute)

	got, ok := c.Get("oahu")
	require.True(t, ok)
	assert.Equal(t, "new", got.Region)
}

func TestResponseCache_CallersCannotCorruptEntry(t *testing.T) {
	c := NewResponseCache(time.Minute, nil)
	resp := &model.AggregateResponse{
		Region: "Oahu",
		Activities: map[model.Activity]model.ActivityRecommendation{
			model.ActivitySUP: {Status: model.StatusGood, Reason: "Glassy"},
		},
		Errors:     []model.ProviderError{{Provider: "tides", Message: "503"}},
		Conditions: &model.Conditions{NextTide: &model.TideEvent{Type: model.TideHigh, Height: 0.9}},
	}
	c.Put("oahu", resp)

	// Mutating the original after Put must not leak in.
	resp.Activities[model.ActivitySUP] = model.ActivityRecommendation{Status: model.StatusBad}

	got, ok := c.Get("oahu")
	require.True(t, ok)
	got.Activities[model.ActivityFishing] = model.ActivityRecommendation{Status: model.StatusBad}
	got.Errors[0].Message = "changed"
	got.Conditions.NextTide.Height = 5

	again, ok := c.Get("oahu")
	require.True(t, ok)
	assert.Len(t, again.Activities, 1)
	assert.Equal(t, model.StatusGood, again.Activities[model.ActivitySUP].Status)
	assert.Equal(t, "503", again.Errors[0].Message)
	assert.Equal(t, 0.9, again.Conditions.NextTide.Height)
}

func TestResponseCache_NilIgnored(t *testing.T) {
	c := NewResponseCache(time.Minute, nil)
	c.Put("oahu", nil)
	assert.Equal(t, 0, c.Len())
}

func TestResponseCache_Concurrent(t *testing.T) {
	c := NewResponseCache(time.Minute, nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Put("oahu", &model.AggregateResponse{Region: "Oahu"})
		}()
		go func() {
			defer wg.Done()
			c.Get("oahu")
		}()
	}
	wg.Wait()

	_, ok := c.Get("oahu")
	assert.True(t, ok)
}
