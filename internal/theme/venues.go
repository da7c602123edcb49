package theme

import (
	"math"

	"github.com/annap-test/Berlin-App/internal/config"
	"github.com/annap-test/Berlin-App/internal/loader"
	"github.com/annap-test/Berlin-App/internal/model"
	"github.com/annap-test/Berlin-App/internal/score"
	"github.com/annap-test/Berlin-App/internal/text"
)

// Vibrancy label values.
const (
	VibrancyHigh = "vibrant"
	VibrancyMid  = "average"
	VibrancyLow  = "sparse"
)

// BuildVenues computes per-neighborhood venue counts and national cuisine
// diversity, then the density-based vibrancy scores. Every venue row counts
// toward n_venues; only tokens in the national cuisine vocabulary count
// toward diversity. The eligibility flag is tracked but does not gate the
// label.
func BuildVenues(
	neighborhoods []model.Neighborhood,
	venues *loader.Table,
	cfg config.VenuesConfig,
	scoring config.ScoringConfig,
) ([]model.VenuesFeatureRow, []model.VibrancyRow, error) {
	if err := venues.Require("district_id", "neighborhood", "cuisine"); err != nil {
		return nil, nil, err
	}

	distIdx := venues.Col("district_id")
	nameIdx := venues.Col("neighborhood")
	cuisineIdx := venues.Col("cuisine")

	counts := make(map[groupKey]int)
	cuisineSets := make(map[groupKey]map[string]struct{})
	keys := make(map[groupKey]struct{})
	for i := range venues.Rows {
		k := groupKey{
			DistrictID: venues.Value(i, distIdx),
			Canon:      text.Canon(venues.Value(i, nameIdx)),
		}
		keys[k] = struct{}{}
		counts[k]++
		set := cuisineSets[k]
		if set == nil {
			set = make(map[string]struct{})
			cuisineSets[k] = set
		}
		for tok := range text.NationalsSet(venues.Value(i, cuisineIdx)) {
			set[tok] = struct{}{}
		}
	}

	idx := indexNeighborhoods(neighborhoods)
	ordered := sortedKeys(keys)

	features := make([]model.VenuesFeatureRow, len(ordered))
	vibrancy := make([]model.VibrancyRow, len(ordered))
	densities := make([]float64, len(ordered))
	varieties := make([]float64, len(ordered))
	for i, k := range ordered {
		nVenues := counts[k]
		nTypes := len(cuisineSets[k])
		features[i] = model.VenuesFeatureRow{
			DistrictID:   k.DistrictID,
			Canon:        k.Canon,
			Venues:       nVenues,
			CuisineTypes: nTypes,
		}

		density := math.NaN()
		row := model.VibrancyRow{
			DistrictID:   k.DistrictID,
			Canon:        k.Canon,
			Venues:       nVenues,
			CuisineTypes: nTypes,
		}
		if n, ok := idx.lookup(k.DistrictID, k.Canon); ok {
			row.AreaEffKm2 = model.Opt(n.AreaEffKm2)
			if n.AreaEffKm2 > 0 {
				density = float64(nVenues) / n.AreaEffKm2
			}
		}
		row.VenuesPerKm2 = model.Opt(density)
		row.VibrancyEligible = nVenues >= cfg.MinVenues && density >= cfg.MinDensity
		densities[i] = density
		varieties[i] = float64(nTypes)
		vibrancy[i] = row
	}

	vScores := score.PercentileScore(densities, scoring.PercentileLo, scoring.PercentileHi)
	cScores := score.PercentileScore(varieties, scoring.PercentileLo, scoring.PercentileHi)
	vvIndex := make([]float64, len(ordered))
	for i := range vvIndex {
		vvIndex[i] = cfg.DensityWeight*vScores[i] + cfg.VarietyWeight*cScores[i]
	}
	labels := score.TercileLabels(vvIndex, VibrancyHigh, VibrancyMid, VibrancyLow)

	for i := range vibrancy {
		vibrancy[i].VScore = model.Opt(vScores[i])
		vibrancy[i].CScore = model.Opt(cScores[i])
		vibrancy[i].VVIndex = model.Opt(vvIndex[i])
		vibrancy[i].VibrancyLabel = labels[i]
	}
	return features, vibrancy, nil
}
