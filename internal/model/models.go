package model

import (
	"maps"
	"slices"
	"time"
)

// Status is the three-level verdict for a single activity.
type Status string

const (
	StatusGood    Status = "good"
	StatusCaution Status = "caution"
	StatusBad     Status = "bad"
)

// Activity identifies a water activity we issue recommendations for.
type Activity string

const (
	ActivitySnorkeling Activity = "snorkeling"
	ActivityKayaking   Activity = "kayaking"
	ActivitySUP        Activity = "sup"
	ActivityFishing    Activity = "fishing"
)

// Activities lists every supported activity in display order.
var Activities = []Activity{ActivitySnorkeling, ActivityKayaking, ActivitySUP, ActivityFishing}

// TideType is either a tide extremum kind or a tide preference.
type TideType string

const (
	TideHigh TideType = "high"
	TideLow  TideType = "low"
	TideNone TideType = "none"
)

// WeatherSnapshot is the normalized weather reading at a point in time.
// Optional upstream fields are nil when the source did not provide them.
type WeatherSnapshot struct {
	WindSpeed     float64   `json:"windSpeed"`               // m/s
	WindDirection *float64  `json:"windDirection,omitempty"` // degrees
	Cloudiness    float64   `json:"cloudiness"`              // percent, 0-100
	Rain          float64   `json:"rain"`                    // mm over the last hour
	Temperature   *float64  `json:"temperature,omitempty"`   // celsius
	Pressure      *float64  `json:"pressure,omitempty"`      // hPa
	Humidity      *float64  `json:"humidity,omitempty"`      // percent
	Timestamp     time.Time `json:"timestamp"`
}

// TideEvent is a single high or low tide.
type TideEvent struct {
	Type   TideType  `json:"type"`
	Height float64   `json:"height"` // meters
	Time   time.Time `json:"time"`
}

// TideHeight is one sample of a dense tide height series.
type TideHeight struct {
	Time   time.Time `json:"time"`
	Height float64   `json:"height"`
}

// HourlyForecastPoint is one hour of forecast. TideHeight is filled in by the
// orchestration merge when a nearby tide sample exists.
type HourlyForecastPoint struct {
	Time          time.Time `json:"time"`
	WindSpeed     float64   `json:"windSpeed"`
	WindDirection *float64  `json:"windDirection,omitempty"`
	Rain          float64   `json:"rain"`
	Cloudiness    float64   `json:"cloudiness"`
	Temperature   *float64  `json:"temperature,omitempty"`
	Pressure      *float64  `json:"pressure,omitempty"`
	Humidity      *float64  `json:"humidity,omitempty"`
	TideHeight    *float64  `json:"tideHeight,omitempty"`
}

// ActivityThresholds are the static safety limits for one activity in one region.
type ActivityThresholds struct {
	MaxWindSpeed  float64  `json:"maxWindSpeed" yaml:"maxWindSpeed" validate:"gt=0"`
	MaxCloudiness float64  `json:"maxCloudiness" yaml:"maxCloudiness" validate:"gt=0,lte=100"`
	MaxRain       float64  `json:"maxRain" yaml:"maxRain" validate:"gt=0"`
	PreferredTide TideType `json:"preferredTide" yaml:"preferredTide" validate:"oneof=high low none"`
}

// ActivityRecommendation is the derived verdict for an activity. Never persisted.
type ActivityRecommendation struct {
	Status Status `json:"status"`
	Reason string `json:"reason"`
	Window string `json:"window,omitempty"`
}

// ProviderError records a degraded upstream. Its presence means the response is
// still usable but built partly from synthesized data.
type ProviderError struct {
	Provider     string `json:"provider"`
	Message      string `json:"message"`
	FallbackUsed bool   `json:"fallbackUsed"`
}

// Conditions is the merged view of weather and tides used for evaluation.
type Conditions struct {
	Weather        WeatherSnapshot       `json:"weather"`
	CurrentTide    *TideEvent            `json:"currentTide,omitempty"`
	NextTide       *TideEvent            `json:"nextTide,omitempty"`
	Tides          []TideEvent           `json:"tides,omitempty"`
	HourlyForecast []HourlyForecastPoint `json:"hourlyForecast,omitempty"`
	MockWeather    bool                  `json:"mockWeather"`
	MockTides      bool                  `json:"mockTides"`
}

// AggregateResponse is the unified answer for one region.
type AggregateResponse struct {
	Region         string                              `json:"region"`
	Timestamp      time.Time                           `json:"timestamp"`
	Activities     map[Activity]ActivityRecommendation `json:"activities"`
	Conditions     *Conditions                         `json:"conditions,omitempty"`
	HourlyForecast []HourlyForecastPoint               `json:"hourlyForecast,omitempty"`
	Errors         []ProviderError                     `json:"errors,omitempty"`
}

// Clone copies the response deeply enough that mutating the copy's maps,
// slices or tide events never reaches r. Optional scalar pointers inside
// forecast points are still shared and must be treated as read-only.
func (r *AggregateResponse) Clone() *AggregateResponse {
	if r == nil {
		return nil
	}
	out := *r
	out.Activities = maps.Clone(r.Activities)
	out.HourlyForecast = slices.Clone(r.HourlyForecast)
	out.Errors = slices.Clone(r.Errors)
	if r.Conditions != nil {
		c := *r.Conditions
		if c.CurrentTide != nil {
			t := *c.CurrentTide
			c.CurrentTide = &t
		}
		if c.NextTide != nil {
			t := *c.NextTide
			c.NextTide = &t
		}
		c.Tides = slices.Clone(c.Tides)
		c.HourlyForecast = slices.Clone(c.HourlyForecast)
		out.Conditions = &c
	}
	return &out
}

// RegionConfig is the read-only description of a coastal region.
type RegionConfig struct {
	ID         string                          `json:"id" yaml:"id" validate:"required"`
	Name       string                          `json:"name" yaml:"name" validate:"required"`
	Aliases    []string                        `json:"aliases,omitempty" yaml:"aliases"`
	Lat        float64                         `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lon        float64                         `json:"lon" yaml:"lon" validate:"gte=-180,lte=180"`
	Thresholds map[Activity]ActivityThresholds `json:"thresholds" yaml:"thresholds" validate:"required,dive"`
}
