package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annap-test/Berlin-App/internal/config"
)

const runGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"district_id": "01", "district": "Mitte", "neighborhood_id": "0101", "neighborhood": "Alpha"},
      "geometry": {"type": "Polygon", "coordinates": [[[13.35, 52.50], [13.37, 52.50], [13.37, 52.52], [13.35, 52.52], [13.35, 52.50]]]}
    },
    {
      "type": "Feature",
      "properties": {"district_id": "02", "district": "Pankow", "neighborhood_id": "0201", "neighborhood": "Beta"},
      "geometry": {"type": "Polygon", "coordinates": [[[13.40, 52.55], [13.42, 52.55], [13.42, 52.57], [13.40, 52.57], [13.40, 52.55]]]}
    }
  ]
}`

func testConfig(rawDir, outDir string) *config.Config {
	return &config.Config{
		Paths:       config.PathsConfig{RawDir: rawDir, OutDir: outDir, Encoding: "utf-8"},
		Area:        config.AreaConfig{FloorKm2: 0.20},
		Scoring:     config.ScoringConfig{PercentileLo: 10, PercentileHi: 90},
		Mobility:    config.MobilityConfig{RailWeight: 0.7, SurfaceWeight: 0.3},
		Parks:       config.ParksConfig{BandHalfWidth: 0.03},
		Playgrounds: config.PlaygroundsConfig{Keyword: "spielplatz", BandHalfWidth: 0.30},
		Venues:      config.VenuesConfig{DensityWeight: 0.65, VarietyWeight: 0.35, MinVenues: 10, MinDensity: 2.0},
	}
}

func writeRawInputs(t *testing.T, rawDir string) {
	t.Helper()
	files := map[string]string{
		DefaultNeighborhoodsFile: runGeoJSON,
		DefaultUBahnFile:         "lat,lon\n52.51,13.36\n52.515,13.365\n",
		DefaultBusTramFile:       "lat,lon\n52.56,13.41\n",
		DefaultParksFile:         "district_id,neighborhood,size_sqm\n01,Alpha,250000\n02,Beta,100000\n",
		DefaultPlaygroundsFile:   "district_id,neighborhood,green_area_type\n01,Alpha,Spielplatz\n01,Alpha,Park\n02,Beta,Spielplatz\n",
		DefaultVenuesFile:        "district_id,neighborhood,cuisine\n01,Alpha,Italian; Pizza\n01,Alpha,Thai\n02,Beta,German\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(rawDir, name), []byte(content), 0o644))
	}
}

func TestRunner_Run(t *testing.T) {
	rawDir := t.TempDir()
	outDir := t.TempDir()
	writeRawInputs(t, rawDir)

	r := New(testConfig(rawDir, outDir))
	res, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Neighborhoods, 2)
	assert.Equal(t, "alpha", res.Neighborhoods[0].Canon)
	assert.Greater(t, res.Neighborhoods[0].AreaKm2, 0.0)

	require.Len(t, res.Mobility, 2)
	alpha := res.Mobility[0]
	assert.Equal(t, 2, alpha.UBahnStations, "both U-Bahn points fall in Alpha")
	assert.Equal(t, 0, alpha.BusTramStops)
	beta := res.Mobility[1]
	assert.Equal(t, 1, beta.BusTramStops)

	require.Len(t, res.Parks, 2)
	require.Len(t, res.Playgrounds, 2)
	require.Len(t, res.Vibrancy, 2)

	require.Len(t, res.Districts, 2)
	require.Len(t, res.DistrictMobility, 2)
	require.Len(t, res.DistrictWide, 2)

	// The wide table carries every declared neighborhood exactly once.
	require.Len(t, res.NeighborhoodWide, 2)
	assert.Equal(t, "Alpha", res.NeighborhoodWide[0].Neighborhood)
	assert.NotEmpty(t, res.NeighborhoodWide[0].MobilityLabel)
}

func TestRunner_Write(t *testing.T) {
	rawDir := t.TempDir()
	outDir := t.TempDir()
	writeRawInputs(t, rawDir)

	r := New(testConfig(rawDir, outDir))
	res, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, r.Write(res, outDir))

	for _, name := range []string{
		MobilityFile, ParksFile, PlaygroundsFile,
		VenueNationalsFile, VenueVibrancyFile,
		NeighborhoodMinimalFile, NeighborhoodWideFile, NeighborhoodReadable,
		DistrictMobilityFile, DistrictParksFile, DistrictPlaygroundsFile,
		DistrictVibrancyFile, DistrictWideFile,
		NeighborhoodsGeoJSON, ManifestFile,
	} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, "expected output %s", name)
	}

	data, err := os.ReadFile(filepath.Join(outDir, ManifestFile))
	require.NoError(t, err)
	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	_, err = uuid.Parse(m.RunID)
	assert.NoError(t, err)
	assert.Len(t, m.Inputs, 6)
	assert.NotEmpty(t, m.Outputs)
}

func TestRunner_ResolveInputs_ReportsAllMissing(t *testing.T) {
	rawDir := t.TempDir()
	// Only the polygons exist.
	require.NoError(t, os.WriteFile(filepath.Join(rawDir, DefaultNeighborhoodsFile), []byte(runGeoJSON), 0o644))

	r := New(testConfig(rawDir, t.TempDir()))
	_, err := r.ResolveInputs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), DefaultUBahnFile)
	assert.Contains(t, err.Error(), DefaultVenuesFile)
	assert.NotContains(t, err.Error(), DefaultNeighborhoodsFile)
}

func TestRunner_LoadDistrictStats(t *testing.T) {
	rawDir := t.TempDir()
	statsPath := filepath.Join(rawDir, "district_stats.csv")
	require.NoError(t, os.WriteFile(statsPath,
		[]byte("district_id,income_value_eur,crimes_per_1000\n01,42000,85.5\n02,,60\n"), 0o644))

	r := New(testConfig(rawDir, t.TempDir()))
	stats, err := r.LoadDistrictStats(statsPath)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	require.NotNil(t, stats[0].IncomeEUR)
	assert.Equal(t, 42000.0, *stats[0].IncomeEUR)
	assert.Nil(t, stats[1].IncomeEUR, "blank indicator stays nil")
	require.NotNil(t, stats[1].CrimesPer1000)
	assert.Nil(t, stats[0].DensityPerKm2, "absent columns stay nil")
}

func TestRunner_LoadDistrictStats_MissingIDColumn(t *testing.T) {
	rawDir := t.TempDir()
	statsPath := filepath.Join(rawDir, "stats.csv")
	require.NoError(t, os.WriteFile(statsPath, []byte("income_value_eur\n42000\n"), 0o644))

	r := New(testConfig(rawDir, t.TempDir()))
	_, err := r.LoadDistrictStats(statsPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "district_id")
}
