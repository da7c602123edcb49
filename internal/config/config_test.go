package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes into dir for the duration of the test; it stands in for
// testing.T.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Paths.RawDir)
	assert.Equal(t, "outputs", cfg.Paths.OutDir)
	assert.Equal(t, "utf-8", cfg.Paths.Encoding)
	assert.Equal(t, 0.20, cfg.Area.FloorKm2)
	assert.Equal(t, 10.0, cfg.Scoring.PercentileLo)
	assert.Equal(t, 90.0, cfg.Scoring.PercentileHi)
	assert.Equal(t, 0.7, cfg.Mobility.RailWeight)
	assert.Equal(t, 0.3, cfg.Mobility.SurfaceWeight)
	assert.Equal(t, 0.03, cfg.Parks.BandHalfWidth)
	assert.Equal(t, "spielplatz", cfg.Playgrounds.Keyword)
	assert.Equal(t, 0.30, cfg.Playgrounds.BandHalfWidth)
	assert.Equal(t, 0.65, cfg.Venues.DensityWeight)
	assert.Equal(t, 0.35, cfg.Venues.VarietyWeight)
	assert.Equal(t, 10, cfg.Venues.MinVenues)
	assert.Equal(t, 2.0, cfg.Venues.MinDensity)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	yaml := "paths:\n  raw_dir: /srv/berlin/raw\narea:\n  floor_km2: 0.5\nplaygrounds:\n  keyword: spielpl\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/berlin/raw", cfg.Paths.RawDir)
	assert.Equal(t, 0.5, cfg.Area.FloorKm2)
	assert.Equal(t, "spielpl", cfg.Playgrounds.Keyword)
	// Unset keys keep defaults.
	assert.Equal(t, "outputs", cfg.Paths.OutDir)
	assert.Equal(t, 0.7, cfg.Mobility.RailWeight)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BERLIN_PATHS_OUT_DIR", "/tmp/out")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.Paths.OutDir)
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "noisy", Format: "json"})
	require.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
