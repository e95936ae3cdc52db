package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/ocean-status/internal/model"
)

type fakeRefresher struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeRefresher) Refresh(_ context.Context, id string) (*model.AggregateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	if f.fail[id] {
		return nil, errors.New("boom")
	}
	return &model.AggregateResponse{Region: id}, nil
}

func (f *fakeRefresher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.calls...)
	sort.Strings(out)
	return out
}

func TestWarmer_RunOnceRefreshesAll(t *testing.T) {
	f := &fakeRefresher{fail: map[string]bool{"maui": true}}
	w := New([]string{"oahu", "maui", "kauai"}, time.Minute, f)

	w.RunOnce(context.Background())

	assert.Equal(t, []string{"kauai", "maui", "oahu"}, f.Calls())
}

func TestWarmer_DisabledWithoutRegionsOrInterval(t *testing.T) {
	f := &fakeRefresher{}

	w := New(nil, time.Minute, f)
	require.NoError(t, w.Start())
	w.Stop()

	w = New([]string{"oahu"}, 0, f)
	require.NoError(t, w.Start())
	w.Stop()

	assert.Empty(t, f.Calls())
}

func TestWarmer_StartRunsImmediately(t *testing.T) {
	f := &fakeRefresher{}
	w := New([]string{"oahu"}, time.Hour, f)
	require.NoError(t, w.Start())
	defer w.Stop()

	assert.Eventually(t, func() bool {
		return len(f.Calls()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
