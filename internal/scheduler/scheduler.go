package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/ocean-status/internal/model"
)

// JobTimeout bounds one refresh of one region.
const JobTimeout = 30 * time.Second

// Refresher recomputes and caches the status of a region.
type Refresher interface {
	Refresh(ctx context.Context, regionID string) (*model.AggregateResponse, error)
}

// Warmer periodically refreshes the cached status of configured regions so
// that requests for them are served from cache.
type Warmer struct {
	scheduler *gocron.Scheduler
	service   Refresher
	regions   []string
	interval  time.Duration
}

// New creates a new Warmer.
func New(regions []string, interval time.Duration, service Refresher) *Warmer {
	return &Warmer{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		regions:   regions,
		interval:  interval,
	}
}

// Start schedules the refresh job and starts the underlying scheduler. The
// first run happens immediately.
func (w *Warmer) Start() error {
	if len(w.regions) == 0 || w.interval <= 0 {
		slog.Info("cache warmer disabled", "regions", len(w.regions), "interval", w.interval)
		return nil
	}

	_, err := w.scheduler.Every(w.interval).SingletonMode().Do(w.RunOnce, context.Background())
	if err != nil {
		return err
	}

	w.scheduler.StartAsync()
	slog.Info("cache warmer started", "regions", w.regions, "interval", w.interval)
	return nil
}

// RunOnce refreshes every configured region concurrently and waits for all
// of them.
func (w *Warmer) RunOnce(ctx context.Context) {
	slog.Debug("cache warmer run started")

	var wg sync.WaitGroup
	for _, id := range w.regions {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, JobTimeout)
			defer cancel()

			if _, err := w.service.Refresh(ctx, id); err != nil {
				slog.Warn("cache warm failed", "region", id, "error", err)
			}
		}(id)
	}
	wg.Wait()

	slog.Debug("cache warmer run completed", "regions", len(w.regions))
}

// Stop stops the scheduler and cancels any future runs.
func (w *Warmer) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
}
