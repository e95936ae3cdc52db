package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/ocean-status/internal/model"
	"github.com/i474232898/ocean-status/internal/ocean"
)

// TidesProviderName tags tide errors in responses.
const TidesProviderName = "tides"

// WorldTidesProvider implements ocean.TideProvider on the WorldTides v3 API.
type WorldTidesProvider struct {
	name    string
	apiKey  string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	opts    options
}

func NewWorldTidesProvider(client *http.Client, apiKey string, opts ...Option) *WorldTidesProvider {
	o := defaultOptions("https://www.worldtides.info/api/v3")
	for _, opt := range opts {
		opt(&o)
	}

	return &WorldTidesProvider{
		name:    "worldtides",
		apiKey:  apiKey,
		httpCfg: o.httpConfig(client),
		circuit: newCircuitBreaker("worldtides"),
		opts:    o,
	}
}

func (p *WorldTidesProvider) Name() string {
	return p.name
}

// FetchTides returns the deduplicated tide schedule and, when available, the
// dense height series. Without a credential or on failure it synthesizes both.
func (p *WorldTidesProvider) FetchTides(ctx context.Context, lat, lon float64, days int) ocean.TideResult {
	if days <= 0 {
		days = 1
	}
	if p.apiKey == "" {
		slog.Debug("no tides credential configured, using mock data", "provider", p.name)
		return p.mock(days)
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.timeout)
	defer cancel()

	events, heights, err := p.fetch(ctx, lat, lon, days)
	if err != nil {
		slog.Warn("tides fetch failed, using mock data", "provider", p.name, "lat", lat, "lon", lon, "error", err)
		res := p.mock(days)
		res.Error = &model.ProviderError{
			Provider:     TidesProviderName,
			Message:      err.Error(),
			FallbackUsed: true,
		}
		return res
	}

	return ocean.TideResult{Events: events, Heights: heights}
}

func (p *WorldTidesProvider) mock(days int) ocean.TideResult {
	now := p.opts.now()
	return ocean.TideResult{
		Events:  SortAndDedup(SynthesizeTides(now, p.opts.rng)),
		Heights: SynthesizeTideHeights(now, days*24),
		Mock:    true,
	}
}

type wtExtreme struct {
	Dt     int64   `json:"dt"`
	Height float64 `json:"height"`
	Type   string  `json:"type"`
}

type wtHeight struct {
	Dt     int64   `json:"dt"`
	Height float64 `json:"height"`
}

type wtPayload struct {
	Status      int         `json:"status"`
	Error       string      `json:"error"`
	Extremes    []wtExtreme `json:"extremes"`
	Predictions []wtExtreme `json:"predictions"`
	Heights     []wtHeight  `json:"heights"`
}

func (p *WorldTidesProvider) fetch(ctx context.Context, lat, lon float64, days int) ([]model.TideEvent, []model.TideHeight, error) {
	values := url.Values{}
	values.Set("heights", "")
	values.Set("extremes", "")
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("days", fmt.Sprintf("%d", days))
	values.Set("key", p.apiKey)

	var payload wtPayload
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.opts.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, nil, err
	}
	return normalizeWorldTides(payload)
}

// normalizeWorldTides prefers explicit extremes, then H/L predictions, and
// only derives extrema from the height series when neither is present.
func normalizeWorldTides(payload wtPayload) ([]model.TideEvent, []model.TideHeight, error) {
	if payload.Error != "" {
		return nil, nil, fmt.Errorf("%w: %s", errSoftFailure, payload.Error)
	}

	heights := make([]model.TideHeight, 0, len(payload.Heights))
	for _, h := range payload.Heights {
		heights = append(heights, model.TideHeight{Time: time.Unix(h.Dt, 0).UTC(), Height: h.Height})
	}
	sort.SliceStable(heights, func(i, j int) bool { return heights[i].Time.Before(heights[j].Time) })

	var events []model.TideEvent
	switch {
	case len(payload.Extremes) > 0:
		events = mapExtremes(payload.Extremes)
	case len(payload.Predictions) > 0:
		events = mapExtremes(payload.Predictions)
	case len(heights) > 0:
		events = DeriveExtrema(heights)
	default:
		return nil, nil, fmt.Errorf("%w: no extremes, predictions or heights", errMalformed)
	}

	if len(heights) == 0 {
		heights = nil
	}
	return SortAndDedup(events), heights, nil
}

func mapExtremes(in []wtExtreme) []model.TideEvent {
	out := make([]model.TideEvent, 0, len(in))
	for _, e := range in {
		typ, ok := parseTideType(e.Type)
		if !ok {
			continue
		}
		out = append(out, model.TideEvent{Type: typ, Height: e.Height, Time: time.Unix(e.Dt, 0).UTC()})
	}
	return out
}

func parseTideType(s string) (model.TideType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h":
		return model.TideHigh, true
	case "low", "l":
		return model.TideLow, true
	default:
		return "", false
	}
}
