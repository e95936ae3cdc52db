package ocean

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/i474232898/ocean-status/internal/model"
	"github.com/i474232898/ocean-status/internal/rules"
)

const (
	// DefaultTideDays is how many days of tide data are requested by default.
	DefaultTideDays = 3
	// SharedRefreshTimeout bounds an orchestration run shared by coalesced callers.
	SharedRefreshTimeout = 45 * time.Second
)

// ErrUnknownRegion is returned when a region id or alias does not resolve.
var ErrUnknownRegion = errors.New("unknown region")

// Cache is the contract the response cache must satisfy.
type Cache interface {
	Get(regionID string) (*model.AggregateResponse, bool)
	Put(regionID string, resp *model.AggregateResponse)
}

// Service orchestrates both providers, the rule engine and the response cache.
type Service struct {
	weather  WeatherProvider
	tides    TideProvider
	cache    Cache
	regions  RegionResolver
	clock    model.Clock
	loc      *time.Location
	tideDays int

	// Concurrent misses for the same region share one orchestration run.
	group singleflight.Group
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClock injects the time source.
func WithClock(c model.Clock) ServiceOption {
	return func(s *Service) { s.clock = c }
}

// WithLocation sets the zone used for response timestamps and reason text.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithTideDays sets how many days of tide data to request.
func WithTideDays(days int) ServiceOption {
	return func(s *Service) {
		if days > 0 {
			s.tideDays = days
		}
	}
}

// NewService creates a new Service.
func NewService(cache Cache, regions RegionResolver, weather WeatherProvider, tides TideProvider, opts ...ServiceOption) *Service {
	s := &Service{
		weather:  weather,
		tides:    tides,
		cache:    cache,
		regions:  regions,
		clock:    model.RealClock{},
		loc:      time.UTC,
		tideDays: DefaultTideDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOceanStatus resolves regionID, serves a fresh cached response when one
// exists, and otherwise computes, caches and returns a new one.
func (s *Service) GetOceanStatus(ctx context.Context, regionID string) (*model.AggregateResponse, error) {
	region, err := s.resolve(regionID)
	if err != nil {
		return nil, err
	}

	if resp, ok := s.cache.Get(region.ID); ok {
		slog.Debug("status cache hit", "region", region.ID)
		return resp, nil
	}
	slog.Debug("status cache miss", "region", region.ID)

	// The shared run outlives any single caller; each caller stops waiting on its own ctx.
	ch := s.group.DoChan(region.ID, func() (interface{}, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SharedRefreshTimeout)
		defer cancel()
		return s.refresh(runCtx, region)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("status for %s: %w", region.ID, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			slog.Debug("status request coalesced", "region", region.ID)
		}
		return res.Val.(*model.AggregateResponse).Clone(), nil
	}
}

// Refresh recomputes and caches the response for regionID regardless of the
// cached state.
func (s *Service) Refresh(ctx context.Context, regionID string) (*model.AggregateResponse, error) {
	region, err := s.resolve(regionID)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, region)
}

// Regions lists every configured region.
func (s *Service) Regions() []model.RegionConfig {
	return s.regions.All()
}

func (s *Service) resolve(regionID string) (model.RegionConfig, error) {
	region, ok := s.regions.Lookup(regionID)
	if !ok {
		return model.RegionConfig{}, fmt.Errorf("%w: %q", ErrUnknownRegion, regionID)
	}
	return region, nil
}

func (s *Service) refresh(ctx context.Context, region model.RegionConfig) (*model.AggregateResponse, error) {
	resp, err := s.GetStatus(ctx, region)
	if err != nil {
		return nil, err
	}
	s.cache.Put(region.ID, resp)
	return resp, nil
}

// GetStatus fetches weather and tides concurrently, merges them and runs
// every activity evaluator. Provider failures degrade into ProviderError
// entries; only cancellation or malformed merge input fail the call.
func (s *Service) GetStatus(ctx context.Context, region model.RegionConfig) (*model.AggregateResponse, error) {
	now := s.clock.Now().In(s.loc)

	var (
		weather WeatherResult
		tides   TideResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		weather = s.weather.FetchWeather(gctx, region.Lat, region.Lon)
		return nil // a failed source degrades, it never aborts the other
	})
	g.Go(func() error {
		tides = s.tides.FetchTides(gctx, region.Lat, region.Lon, s.tideDays)
		return nil
	})
	// Both goroutines return nil; Wait only joins them.
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("status for %s: %w", region.ID, err)
	}

	var providerErrs []model.ProviderError
	for _, pe := range []*model.ProviderError{weather.Error, tides.Error} {
		if pe != nil {
			providerErrs = append(providerErrs, *pe)
		}
	}

	currentTide, nextTide := CurrentAndNextTide(tides.Events, now)

	hourly, err := MergeTideHeights(weather.Hourly, tides.Heights)
	if err != nil {
		return nil, fmt.Errorf("status for %s: %w", region.ID, err)
	}

	current, backfilled := BackfillCurrent(weather.Current, hourly, now)
	if backfilled {
		slog.Debug("backfilled zero-wind reading from forecast", "region", region.ID, "wind", current.WindSpeed)
	}

	recs, err := rules.EvaluateAll(region.Thresholds, rules.Input{
		Now:     now,
		Current: current,
		Hourly:  hourly,
		Tides:   tides.Events,
	})
	if err != nil {
		return nil, fmt.Errorf("status for %s: %w", region.ID, err)
	}

	slog.Info("computed ocean status",
		"region", region.ID,
		"snorkeling", recs[model.ActivitySnorkeling].Status,
		"kayaking", recs[model.ActivityKayaking].Status,
		"sup", recs[model.ActivitySUP].Status,
		"fishing", recs[model.ActivityFishing].Status,
		"degraded", len(providerErrs) > 0,
	)

	return &model.AggregateResponse{
		Region:     region.Name,
		Timestamp:  now,
		Activities: recs,
		Conditions: &model.Conditions{
			Weather:        current,
			CurrentTide:    currentTide,
			NextTide:       nextTide,
			Tides:          tides.Events,
			HourlyForecast: hourly,
			MockWeather:    weather.Mock,
			MockTides:      tides.Mock,
		},
		HourlyForecast: hourly,
		Errors:         providerErrs,
	}, nil
}
