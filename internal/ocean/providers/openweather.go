package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/ocean-status/internal/common"
	"github.com/i474232898/ocean-status/internal/model"
	"github.com/i474232898/ocean-status/internal/ocean"
)

// WeatherProviderName tags weather errors in responses.
const WeatherProviderName = "weather"

// OpenWeatherProvider implements ocean.WeatherProvider on the OpenWeatherMap One Call API.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	opts    options
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	o := defaultOptions("https://api.openweathermap.org/data/3.0/onecall")
	for _, opt := range opts {
		opt(&o)
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		httpCfg: o.httpConfig(client),
		circuit: newCircuitBreaker("openweather"),
		opts:    o,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// FetchWeather returns live data when a credential is configured and the
// upstream answers; otherwise it returns synthesized data.
func (p *OpenWeatherProvider) FetchWeather(ctx context.Context, lat, lon float64) ocean.WeatherResult {
	if p.apiKey == "" {
		slog.Debug("no weather credential configured, using mock data", "provider", p.name)
		return p.mock()
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.timeout)
	defer cancel()

	current, hourly, err := p.fetch(ctx, lat, lon)
	if err != nil {
		slog.Warn("weather fetch failed, using mock data", "provider", p.name, "lat", lat, "lon", lon, "error", err)
		res := p.mock()
		res.Error = &model.ProviderError{
			Provider:     WeatherProviderName,
			Message:      err.Error(),
			FallbackUsed: true,
		}
		return res
	}

	return ocean.WeatherResult{Current: current, Hourly: hourly}
}

func (p *OpenWeatherProvider) mock() ocean.WeatherResult {
	current, hourly := SynthesizeWeather(p.opts.now(), p.opts.rng, HourlyPoints)
	return ocean.WeatherResult{Current: current, Hourly: hourly, Mock: true}
}

type owmPoint struct {
	Dt        int64    `json:"dt"`
	Temp      *float64 `json:"temp"`
	Pressure  *float64 `json:"pressure"`
	Humidity  *float64 `json:"humidity"`
	Clouds    *float64 `json:"clouds"`
	WindSpeed *float64 `json:"wind_speed"`
	WindDeg   *float64 `json:"wind_deg"`
	Rain      *struct {
		OneH float64 `json:"1h"`
	} `json:"rain"`
}

type owmPayload struct {
	Current *owmPoint  `json:"current"`
	Hourly  []owmPoint `json:"hourly"`
}

func (p *OpenWeatherProvider) fetch(ctx context.Context, lat, lon float64) (model.WeatherSnapshot, []model.HourlyForecastPoint, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("units", "metric")
	values.Set("exclude", "minutely,daily,alerts")
	values.Set("appid", p.apiKey)

	var payload owmPayload
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.opts.baseURL+"?"+values.Encode(), &payload); err != nil {
		return model.WeatherSnapshot{}, nil, err
	}
	return normalizeOpenWeather(payload, p.opts.clock.Now())
}

func normalizeOpenWeather(payload owmPayload, now time.Time) (model.WeatherSnapshot, []model.HourlyForecastPoint, error) {
	if payload.Current == nil {
		return model.WeatherSnapshot{}, nil, fmt.Errorf("%w: missing current conditions", errMalformed)
	}
	if payload.Current.WindSpeed == nil {
		return model.WeatherSnapshot{}, nil, fmt.Errorf("%w: missing current wind speed", errMalformed)
	}

	c := normalizePoint(*payload.Current)
	current := model.WeatherSnapshot{
		WindSpeed:     c.WindSpeed,
		WindDirection: c.WindDirection,
		Cloudiness:    c.Cloudiness,
		Rain:          c.Rain,
		Temperature:   c.Temperature,
		Pressure:      c.Pressure,
		Humidity:      c.Humidity,
		Timestamp:     c.Time,
	}
	if payload.Current.Dt == 0 {
		current.Timestamp = now.UTC()
	}

	hourly := make([]model.HourlyForecastPoint, 0, len(payload.Hourly))
	for _, h := range payload.Hourly {
		if h.Dt == 0 {
			continue
		}
		hourly = append(hourly, normalizePoint(h))
	}
	sort.SliceStable(hourly, func(i, j int) bool { return hourly[i].Time.Before(hourly[j].Time) })
	if len(hourly) > HourlyPoints {
		hourly = hourly[:HourlyPoints]
	}

	return current, hourly, nil
}

func normalizePoint(pt owmPoint) model.HourlyForecastPoint {
	out := model.HourlyForecastPoint{
		Time:          time.Unix(pt.Dt, 0).UTC(),
		WindDirection: pt.WindDeg,
		Temperature:   pt.Temp,
		Pressure:      pt.Pressure,
		Humidity:      pt.Humidity,
	}
	if pt.WindSpeed != nil {
		out.WindSpeed = common.NonNegative(*pt.WindSpeed)
	}
	if pt.Clouds != nil {
		out.Cloudiness = common.Clamp(*pt.Clouds, 0, 100)
	}
	if pt.Rain != nil {
		out.Rain = common.NonNegative(pt.Rain.OneH)
	}
	return out
}
