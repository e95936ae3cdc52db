package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/ocean-status/internal/model"
)

func TestRegistry_Builtins(t *testing.T) {
	r, err := LoadRegistry("")
	require.NoError(t, err)

	all := r.All()
	require.Len(t, all, 4)
	assert.Equal(t, "big-island", all[0].ID)

	for _, name := range []string{"oahu", "OAHU", " Oahu ", "waikiki", "Honolulu"} {
		rc, ok := r.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, "oahu", rc.ID)
	}

	_, ok := r.Lookup("atlantis")
	assert.False(t, ok)

	rc, _ := r.Lookup("kona")
	th := rc.Thresholds[model.ActivitySnorkeling]
	assert.Equal(t, 6.0, th.MaxWindSpeed)
	assert.Equal(t, 40.0, th.MaxCloudiness)
	assert.Equal(t, 0.5, th.MaxRain)
	assert.Equal(t, model.TideLow, th.PreferredTide)
	assert.Equal(t, model.TideHigh, rc.Thresholds[model.ActivityFishing].PreferredTide)
}

func TestRegistry_FileOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	doc := `regions:
  - id: molokai
    name: Molokai
    aliases: [kaunakakai]
    lat: 21.13
    lon: -157.02
    thresholds:
      snorkeling: {maxWindSpeed: 4, maxCloudiness: 30, maxRain: 0.2, preferredTide: low}
  - id: Oahu
    name: Oahu South Shore
    lat: 21.27
    lon: -157.82
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	r, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, r.All(), 5)

	rc, ok := r.Lookup("KAUNAKAKAI")
	require.True(t, ok)
	assert.Equal(t, 4.0, rc.Thresholds[model.ActivitySnorkeling].MaxWindSpeed)
	assert.Equal(t, 12.0, rc.Thresholds[model.ActivityFishing].MaxWindSpeed, "missing activities get defaults")

	rc, ok = r.Lookup("oahu")
	require.True(t, ok)
	assert.Equal(t, "Oahu South Shore", rc.Name)
	_, ok = r.Lookup("waikiki")
	assert.False(t, ok, "replaced region drops the old aliases")
}

func TestRegistry_Invalid(t *testing.T) {
	_, err := NewRegistry([]model.RegionConfig{{ID: "x", Name: "X", Lat: 95, Lon: 0}})
	assert.Error(t, err)

	_, err = NewRegistry([]model.RegionConfig{{ID: "x", Name: "X", Lat: 20, Lon: -150, Thresholds: map[model.Activity]model.ActivityThresholds{
		model.ActivityKayaking: {MaxWindSpeed: 0, MaxCloudiness: 50, MaxRain: 1, PreferredTide: model.TideNone},
	}}})
	assert.Error(t, err, "zero wind limit is rejected")

	_, err = NewRegistry([]model.RegionConfig{
		{ID: "a", Name: "A", Aliases: []string{"shared"}},
		{ID: "b", Name: "B", Aliases: []string{"shared"}},
	})
	assert.ErrorIs(t, err, errDuplicateName)

	_, err = LoadRegionsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
