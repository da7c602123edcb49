// Package district rolls neighborhood-level theme metrics up to districts.
// District metrics are never averages of neighborhood scores: raw counts and
// areas are summed across member neighborhoods first, then the same density,
// score, and label formulas are applied at district granularity.
package district

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/annap-test/Berlin-App/internal/config"
	"github.com/annap-test/Berlin-App/internal/loader"
	"github.com/annap-test/Berlin-App/internal/model"
	"github.com/annap-test/Berlin-App/internal/score"
	"github.com/annap-test/Berlin-App/internal/text"
	"github.com/annap-test/Berlin-App/internal/theme"
)

// areaSums accumulates member areas per district. Effective areas are summed
// as-is; the floor applies per neighborhood, not to the district total.
type areaSums struct {
	DistrictID string
	District   string
	AreaKm2    float64
	AreaEffKm2 float64
}

func sumAreas(neighborhoods []model.Neighborhood) map[string]*areaSums {
	sums := make(map[string]*areaSums)
	for i := range neighborhoods {
		n := &neighborhoods[i]
		s, ok := sums[n.DistrictID]
		if !ok {
			s = &areaSums{DistrictID: n.DistrictID, District: n.District}
			sums[n.DistrictID] = s
		}
		s.AreaKm2 += n.AreaKm2
		s.AreaEffKm2 += n.AreaEffKm2
	}
	return sums
}

func sortedDistrictIDs(seen map[string]struct{}) []string {
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AggregateMobility recomputes mobility metrics from district-summed stop
// counts and areas.
func AggregateMobility(
	rows []model.MobilityRow,
	neighborhoods []model.Neighborhood,
	cfg config.MobilityConfig,
	scoring config.ScoringConfig,
) ([]model.DistrictMobilityRow, error) {
	if len(rows) == 0 {
		return nil, eris.New("district: mobility aggregation requires neighborhood rows")
	}

	type counts struct{ ubahn, bus int }
	byDistrict := make(map[string]*counts)
	seen := make(map[string]struct{})
	for _, r := range rows {
		c, ok := byDistrict[r.DistrictID]
		if !ok {
			c = &counts{}
			byDistrict[r.DistrictID] = c
			seen[r.DistrictID] = struct{}{}
		}
		c.ubahn += r.UBahnStations
		c.bus += r.BusTramStops
	}

	areas := sumAreas(neighborhoods)
	ids := sortedDistrictIDs(seen)

	out := make([]model.DistrictMobilityRow, len(ids))
	densities := make([]float64, len(ids))
	for i, id := range ids {
		c := byDistrict[id]
		row := model.DistrictMobilityRow{
			DistrictID:    id,
			UBahnStations: c.ubahn,
			BusTramStops:  c.bus,
			TotalStops:    c.ubahn + c.bus,
		}
		density := math.NaN()
		if a, ok := areas[id]; ok && a.AreaEffKm2 > 0 {
			row.District = a.District
			row.AreaEffKm2 = a.AreaEffKm2
			density = (cfg.RailWeight*float64(c.ubahn) + cfg.SurfaceWeight*float64(c.bus)) / a.AreaEffKm2
		}
		row.ConnectivityDensity = density
		densities[i] = density
		out[i] = row
	}

	scores := score.PercentileScore(densities, scoring.PercentileLo, scoring.PercentileHi)
	labels := score.TercileLabels(scores, theme.MobilityHigh, theme.MobilityMid, theme.MobilityLow)
	for i := range out {
		out[i].MobilityScore = model.Opt(scores[i])
		out[i].MobilityLabel = labels[i]
	}
	return out, nil
}

// AggregateParks recomputes the green share from district-summed park area
// over district-summed true area.
func AggregateParks(
	rows []model.ParksRow,
	neighborhoods []model.Neighborhood,
	cfg config.ParksConfig,
) ([]model.DistrictParksRow, error) {
	if len(rows) == 0 {
		return nil, eris.New("district: parks aggregation requires neighborhood rows")
	}

	greenSums := make(map[string]float64)
	seen := make(map[string]struct{})
	for _, r := range rows {
		greenSums[r.DistrictID] += r.GreenAreaKm2
		seen[r.DistrictID] = struct{}{}
	}

	areas := sumAreas(neighborhoods)
	ids := sortedDistrictIDs(seen)

	out := make([]model.DistrictParksRow, len(ids))
	shares := make([]float64, len(ids))
	for i, id := range ids {
		row := model.DistrictParksRow{
			DistrictID:   id,
			GreenAreaKm2: greenSums[id],
		}
		share := math.NaN()
		if a, ok := areas[id]; ok && a.AreaKm2 > 0 {
			row.District = a.District
			row.AreaKm2 = a.AreaKm2
			share = greenSums[id] / a.AreaKm2
		}
		row.GreenShare = model.Opt(share)
		shares[i] = share
		out[i] = row
	}

	labels := score.BandLabels(shares, cfg.BandHalfWidth)
	for i := range out {
		out[i].GreenShareLabel = labels[i]
	}
	return out, nil
}

// AggregatePlaygrounds recomputes playground density from district-summed
// counts over district-summed effective area.
func AggregatePlaygrounds(
	rows []model.PlaygroundsRow,
	neighborhoods []model.Neighborhood,
	cfg config.PlaygroundsConfig,
) ([]model.DistrictPlaygroundsRow, error) {
	if len(rows) == 0 {
		return nil, eris.New("district: playgrounds aggregation requires neighborhood rows")
	}

	countSums := make(map[string]int)
	seen := make(map[string]struct{})
	for _, r := range rows {
		countSums[r.DistrictID] += r.Playgrounds
		seen[r.DistrictID] = struct{}{}
	}

	areas := sumAreas(neighborhoods)
	ids := sortedDistrictIDs(seen)

	out := make([]model.DistrictPlaygroundsRow, len(ids))
	densities := make([]float64, len(ids))
	for i, id := range ids {
		row := model.DistrictPlaygroundsRow{
			DistrictID:  id,
			Playgrounds: countSums[id],
		}
		density := math.NaN()
		if a, ok := areas[id]; ok && a.AreaEffKm2 > 0 {
			row.District = a.District
			row.AreaEffKm2 = a.AreaEffKm2
			density = float64(countSums[id]) / a.AreaEffKm2
		}
		row.PlaygroundsPerKm2 = model.Opt(density)
		densities[i] = density
		out[i] = row
	}

	labels := score.BandLabels(densities, cfg.BandHalfWidth)
	for i := range out {
		out[i].DensityLabel = labels[i]
	}
	return out, nil
}

// AggregateVenues groups raw venues by district (the neighborhood column, if
// present, is ignored) and recomputes the vibrancy scores at district
// granularity.
func AggregateVenues(
	venues *loader.Table,
	neighborhoods []model.Neighborhood,
	cfg config.VenuesConfig,
	scoring config.ScoringConfig,
) ([]model.DistrictVibrancyRow, error) {
	if err := venues.Require("district_id", "cuisine"); err != nil {
		return nil, err
	}

	distIdx := venues.Col("district_id")
	cuisineIdx := venues.Col("cuisine")

	countSums := make(map[string]int)
	cuisineSets := make(map[string]map[string]struct{})
	seen := make(map[string]struct{})
	for i := range venues.Rows {
		id := venues.Value(i, distIdx)
		seen[id] = struct{}{}
		countSums[id]++
		set := cuisineSets[id]
		if set == nil {
			set = make(map[string]struct{})
			cuisineSets[id] = set
		}
		for tok := range text.NationalsSet(venues.Value(i, cuisineIdx)) {
			set[tok] = struct{}{}
		}
	}

	areas := sumAreas(neighborhoods)
	ids := sortedDistrictIDs(seen)

	out := make([]model.DistrictVibrancyRow, len(ids))
	densities := make([]float64, len(ids))
	varieties := make([]float64, len(ids))
	for i, id := range ids {
		row := model.DistrictVibrancyRow{
			DistrictID:   id,
			Venues:       countSums[id],
			CuisineTypes: len(cuisineSets[id]),
		}
		density := math.NaN()
		if a, ok := areas[id]; ok && a.AreaEffKm2 > 0 {
			row.District = a.District
			row.AreaEffKm2 = a.AreaEffKm2
			density = float64(countSums[id]) / a.AreaEffKm2
		}
		row.VenuesPerKm2 = model.Opt(density)
		densities[i] = density
		varieties[i] = float64(row.CuisineTypes)
		out[i] = row
	}

	vScores := score.PercentileScore(densities, scoring.PercentileLo, scoring.PercentileHi)
	cScores := score.PercentileScore(varieties, scoring.PercentileLo, scoring.PercentileHi)
	vvIndex := make([]float64, len(ids))
	for i := range vvIndex {
		vvIndex[i] = cfg.DensityWeight*vScores[i] + cfg.VarietyWeight*cScores[i]
	}
	labels := score.TercileLabels(vvIndex, theme.VibrancyHigh, theme.VibrancyMid, theme.VibrancyLow)
	for i := range out {
		out[i].VScore = model.Opt(vScores[i])
		out[i].CScore = model.Opt(cScores[i])
		out[i].VVIndex = model.Opt(vvIndex[i])
		out[i].VibrancyLabel = labels[i]
	}
	return out, nil
}
