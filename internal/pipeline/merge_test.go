package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annap-test/Berlin-App/internal/model"
)

func mergeNeighborhoods() []model.Neighborhood {
	return []model.Neighborhood{
		{DistrictID: "01", District: "Mitte", NeighborhoodID: "0101", Name: "Alpha", Canon: "alpha", AreaKm2: 1.0, AreaEffKm2: 1.0},
		{DistrictID: "01", District: "Mitte", NeighborhoodID: "0102", Name: "Beta", Canon: "beta", AreaKm2: 2.0, AreaEffKm2: 2.0},
	}
}

func TestBuildNeighborhoodWide_JoinsAllThemes(t *testing.T) {
	score := 80.0
	share := 0.25
	density := 1.5
	vv := 60.0

	mobility := []model.MobilityRow{
		{DistrictID: "01", Canon: "alpha", UBahnStations: 2, TotalStops: 3, MobilityScore: &score, MobilityLabel: "well-connected"},
		{DistrictID: "01", Canon: "beta", MobilityLabel: "remote"},
	}
	parks := []model.ParksRow{
		{DistrictID: "01", Canon: "alpha", GreenAreaKm2: 0.25, GreenShare: &share, GreenShareLabel: "above average"},
	}
	playgrounds := []model.PlaygroundsRow{
		{DistrictID: "01", Canon: "alpha", Playgrounds: 3, PlaygroundsPerKm2: &density, DensityLabel: "average"},
	}
	venueFeatures := []model.VenuesFeatureRow{
		{DistrictID: "01", Canon: "alpha", Venues: 12, CuisineTypes: 5},
	}
	vibrancy := []model.VibrancyRow{
		{DistrictID: "01", Canon: "alpha", VVIndex: &vv, VibrancyLabel: "vibrant"},
	}

	minimal, wide := BuildNeighborhoodWide(mergeNeighborhoods(), mobility, parks, playgrounds, venueFeatures, vibrancy)
	require.Len(t, minimal, 2)
	require.Len(t, wide, 2)

	alpha := wide[0]
	assert.Equal(t, "Alpha", alpha.Neighborhood)
	assert.Equal(t, 2, alpha.UBahnStations)
	require.NotNil(t, alpha.MobilityScore)
	assert.Equal(t, 80.0, *alpha.MobilityScore)
	require.NotNil(t, alpha.GreenShare)
	assert.Equal(t, 0.25, *alpha.GreenShare)
	require.NotNil(t, alpha.Playgrounds)
	assert.Equal(t, 3, *alpha.Playgrounds)
	require.NotNil(t, alpha.Venues)
	assert.Equal(t, 12, *alpha.Venues)
	require.NotNil(t, alpha.VVIndex)
	assert.Equal(t, 60.0, *alpha.VVIndex)

	// Beta matched only by mobility; the other themes stay blank, the row is
	// not dropped.
	beta := wide[1]
	assert.Equal(t, "Beta", beta.Neighborhood)
	assert.Equal(t, "remote", beta.MobilityLabel)
	assert.Nil(t, beta.GreenShare)
	assert.Nil(t, beta.Playgrounds)
	assert.Nil(t, beta.Venues)
	assert.Nil(t, beta.VibrancyLabel)

	// The minimal table carries no venue columns but the same base joins.
	assert.Equal(t, "Alpha", minimal[0].Neighborhood)
	require.NotNil(t, minimal[0].GreenShare)
	assert.Nil(t, minimal[1].GreenShare)
}

func TestBuildNeighborhoodWide_CanonOnlyFallback(t *testing.T) {
	// District identifier disagrees with the polygon set; the canonical name
	// alone still joins.
	parks := []model.ParksRow{
		{DistrictID: "99", Canon: "beta", GreenAreaKm2: 0.5, GreenShareLabel: "average"},
	}

	_, wide := BuildNeighborhoodWide(mergeNeighborhoods(), nil, parks, nil, nil, nil)
	require.Len(t, wide, 2)
	require.NotNil(t, wide[1].GreenAreaKm2)
	assert.Equal(t, 0.5, *wide[1].GreenAreaKm2)
}

func TestBuildDistrictWide(t *testing.T) {
	districts := []model.District{
		{DistrictID: "01", District: "Mitte", AreaKm2: 3.0},
		{DistrictID: "02", District: "Pankow", AreaKm2: 5.0},
	}
	score := 90.0
	income := 42000.0

	mobility := []model.DistrictMobilityRow{
		{DistrictID: "01", District: "Mitte", UBahnStations: 6, ConnectivityDensity: 1.4, MobilityScore: &score, MobilityLabel: "well-connected"},
	}
	stats := []model.DistrictStats{
		{DistrictID: "02", IncomeEUR: &income},
	}

	wide := BuildDistrictWide(districts, mobility, nil, nil, nil, stats)
	require.Len(t, wide, 2)

	mitte := wide[0]
	require.NotNil(t, mitte.UBahnStations)
	assert.Equal(t, 6, *mitte.UBahnStations)
	require.NotNil(t, mitte.MobilityScore)
	assert.Equal(t, 90.0, *mitte.MobilityScore)
	assert.Nil(t, mitte.IncomeEUR)

	pankow := wide[1]
	assert.Nil(t, pankow.UBahnStations)
	require.NotNil(t, pankow.IncomeEUR)
	assert.Equal(t, 42000.0, *pankow.IncomeEUR)
}
