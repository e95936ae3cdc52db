package ocean

import (
	"context"

	"github.com/i474232898/ocean-status/internal/model"
)

// WeatherResult is a normalized weather fetch. Error is set when the upstream
// failed and synthesized data was substituted.
type WeatherResult struct {
	Current model.WeatherSnapshot
	Hourly  []model.HourlyForecastPoint
	Mock    bool
	Error   *model.ProviderError
}

// TideResult is a normalized tide fetch. Heights is optional.
type TideResult struct {
	Events  []model.TideEvent
	Heights []model.TideHeight
	Mock    bool
	Error   *model.ProviderError
}

// WeatherProvider abstracts the weather source. Implementations degrade to
// synthesized data instead of returning errors.
type WeatherProvider interface {
	FetchWeather(ctx context.Context, lat, lon float64) WeatherResult
}

// TideProvider abstracts the tide source. Implementations degrade to
// synthesized data instead of returning errors.
type TideProvider interface {
	FetchTides(ctx context.Context, lat, lon float64, days int) TideResult
}

// RegionResolver maps a region identifier or alias to its configuration.
type RegionResolver interface {
	Lookup(id string) (model.RegionConfig, bool)
	All() []model.RegionConfig
}
