package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/ocean-status/internal/model"
)

var errDuplicateName = errors.New("region id or alias already registered")

// DefaultThresholds are applied to every built-in region and fill in any
// activity a regions file leaves out.
func DefaultThresholds() map[model.Activity]model.ActivityThresholds {
	return map[model.Activity]model.ActivityThresholds{
		model.ActivitySnorkeling: {MaxWindSpeed: 6, MaxCloudiness: 40, MaxRain: 0.5, PreferredTide: model.TideLow},
		model.ActivityKayaking:   {MaxWindSpeed: 10, MaxCloudiness: 70, MaxRain: 1.0, PreferredTide: model.TideNone},
		model.ActivitySUP:        {MaxWindSpeed: 5, MaxCloudiness: 60, MaxRain: 0.5, PreferredTide: model.TideNone},
		model.ActivityFishing:    {MaxWindSpeed: 12, MaxCloudiness: 80, MaxRain: 2.0, PreferredTide: model.TideHigh},
	}
}

// BuiltinRegions returns the Hawaiian regions served out of the box.
func BuiltinRegions() []model.RegionConfig {
	return []model.RegionConfig{
		{ID: "oahu", Name: "Oahu", Aliases: []string{"honolulu", "waikiki"}, Lat: 21.4389, Lon: -158.0001, Thresholds: DefaultThresholds()},
		{ID: "maui", Name: "Maui", Aliases: []string{"lahaina", "kihei"}, Lat: 20.7984, Lon: -156.3319, Thresholds: DefaultThresholds()},
		{ID: "big-island", Name: "Big Island", Aliases: []string{"hawaii", "kona", "hilo"}, Lat: 19.5429, Lon: -155.6659, Thresholds: DefaultThresholds()},
		{ID: "kauai", Name: "Kauai", Aliases: []string{"poipu", "hanalei"}, Lat: 22.0964, Lon: -159.5261, Thresholds: DefaultThresholds()},
	}
}

// Registry resolves region ids and aliases case-insensitively. It is
// immutable once built.
type Registry struct {
	regions map[string]model.RegionConfig // key: lowercase id
	names   map[string]string             // key: lowercase id or alias, value: lowercase id
}

// NewRegistry validates and indexes regions. Later entries with the same id
// replace earlier ones.
func NewRegistry(regions []model.RegionConfig) (*Registry, error) {
	r := &Registry{
		regions: make(map[string]model.RegionConfig),
		names:   make(map[string]string),
	}
	validate := validator.New()

	for _, rc := range regions {
		rc = withDefaults(rc)
		if err := validate.Struct(rc); err != nil {
			return nil, fmt.Errorf("region %q: %w", rc.ID, err)
		}
		key := normalize(rc.ID)
		rc.ID = key
		r.regions[key] = rc
		r.names[key] = key
	}

	for key, rc := range r.regions {
		for _, a := range rc.Aliases {
			alias := normalize(a)
			if owner, ok := r.names[alias]; ok && owner != key {
				return nil, fmt.Errorf("%w: %q (region %q)", errDuplicateName, a, rc.ID)
			}
			r.names[alias] = key
		}
	}
	return r, nil
}

// Lookup finds a region by id or alias, ignoring case and surrounding space.
func (r *Registry) Lookup(name string) (model.RegionConfig, bool) {
	key, ok := r.names[normalize(name)]
	if !ok {
		return model.RegionConfig{}, false
	}
	rc, ok := r.regions[key]
	return rc, ok
}

// All returns every region ordered by id.
func (r *Registry) All() []model.RegionConfig {
	out := make([]model.RegionConfig, 0, len(r.regions))
	for _, rc := range r.regions {
		out = append(out, rc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type regionsFile struct {
	Regions []model.RegionConfig `yaml:"regions"`
}

// LoadRegistry builds the registry from the built-in regions plus, when path
// is set, the regions defined in that YAML file.
func LoadRegistry(path string) (*Registry, error) {
	regions := BuiltinRegions()
	if path != "" {
		extra, err := LoadRegionsFile(path)
		if err != nil {
			return nil, err
		}
		regions = append(regions, extra...)
	}
	return NewRegistry(regions)
}

// LoadRegionsFile parses a YAML document of the form:
//
//	regions:
//	  - id: molokai
//	    name: Molokai
//	    lat: 21.13
//	    lon: -157.02
//	    thresholds:
//	      snorkeling: {maxWindSpeed: 5, maxCloudiness: 40, maxRain: 0.5, preferredTide: low}
func LoadRegionsFile(path string) ([]model.RegionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read regions file: %w", err)
	}
	var f regionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse regions file %s: %w", path, err)
	}
	return f.Regions, nil
}

func withDefaults(rc model.RegionConfig) model.RegionConfig {
	th := make(map[model.Activity]model.ActivityThresholds, len(model.Activities))
	defaults := DefaultThresholds()
	for _, a := range model.Activities {
		if v, ok := rc.Thresholds[a]; ok {
			th[a] = v
		} else {
			th[a] = defaults[a]
		}
	}
	rc.Thresholds = th
	return rc
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
