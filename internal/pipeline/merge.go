package pipeline

import (
	"github.com/annap-test/Berlin-App/internal/model"
)

// themeIndex resolves theme rows onto the base polygon table. Key strategies
// are ordered: the full (district_id, canonical name) key first, then the
// canonical name alone.
type themeIndex[T any] struct {
	full  map[string]*T
	canon map[string]*T
}

func indexRows[T any](rows []T, key func(*T) (districtID, canon string)) *themeIndex[T] {
	idx := &themeIndex[T]{
		full:  make(map[string]*T, len(rows)),
		canon: make(map[string]*T, len(rows)),
	}
	for i := range rows {
		d, c := key(&rows[i])
		idx.full[d+"\x1f"+c] = &rows[i]
		if _, dup := idx.canon[c]; !dup {
			idx.canon[c] = &rows[i]
		}
	}
	return idx
}

func (idx *themeIndex[T]) lookup(districtID, canon string) (*T, bool) {
	if r, ok := idx.full[districtID+"\x1f"+canon]; ok {
		return r, true
	}
	r, ok := idx.canon[canon]
	return r, ok
}

// BuildNeighborhoodWide left-joins every theme output onto the polygon base
// table. Every declared neighborhood appears exactly once in both outputs;
// themes without a match surface as blank cells, never dropped rows.
func BuildNeighborhoodWide(
	neighborhoods []model.Neighborhood,
	mobility []model.MobilityRow,
	parks []model.ParksRow,
	playgrounds []model.PlaygroundsRow,
	venueFeatures []model.VenuesFeatureRow,
	vibrancy []model.VibrancyRow,
) ([]model.NeighborhoodMinimalRow, []model.NeighborhoodWideRow) {
	mobIdx := indexRows(mobility, func(r *model.MobilityRow) (string, string) {
		return r.DistrictID, r.Canon
	})
	parkIdx := indexRows(parks, func(r *model.ParksRow) (string, string) {
		return r.DistrictID, r.Canon
	})
	playIdx := indexRows(playgrounds, func(r *model.PlaygroundsRow) (string, string) {
		return r.DistrictID, r.Canon
	})
	venFIdx := indexRows(venueFeatures, func(r *model.VenuesFeatureRow) (string, string) {
		return r.DistrictID, r.Canon
	})
	venVIdx := indexRows(vibrancy, func(r *model.VibrancyRow) (string, string) {
		return r.DistrictID, r.Canon
	})

	minimal := make([]model.NeighborhoodMinimalRow, len(neighborhoods))
	full := make([]model.NeighborhoodWideRow, len(neighborhoods))
	for i := range neighborhoods {
		n := &neighborhoods[i]
		m := model.NeighborhoodMinimalRow{
			DistrictID:     n.DistrictID,
			District:       n.District,
			NeighborhoodID: n.NeighborhoodID,
			Neighborhood:   n.Name,
			AreaKm2:        n.AreaKm2,
		}

		if r, ok := mobIdx.lookup(n.DistrictID, n.Canon); ok {
			m.UBahnStations = r.UBahnStations
			m.BusTramStops = r.BusTramStops
			m.TotalStops = r.TotalStops
			m.ConnectivityDensity = r.ConnectivityDensity
			m.MobilityScore = r.MobilityScore
			m.MobilityLabel = r.MobilityLabel
		}
		if r, ok := parkIdx.lookup(n.DistrictID, n.Canon); ok {
			m.GreenAreaKm2 = optCopy(&r.GreenAreaKm2)
			m.GreenShare = r.GreenShare
			m.GreenShareLabel = strPtr(r.GreenShareLabel)
		}
		if r, ok := playIdx.lookup(n.DistrictID, n.Canon); ok {
			m.Playgrounds = intPtr(r.Playgrounds)
			m.PlaygroundsPerKm2 = r.PlaygroundsPerKm2
			m.PlaygroundsLabel = strPtr(r.DensityLabel)
		}
		minimal[i] = m

		f := model.NeighborhoodWideRow{
			DistrictID:          m.DistrictID,
			District:            m.District,
			NeighborhoodID:      m.NeighborhoodID,
			Neighborhood:        m.Neighborhood,
			AreaKm2:             m.AreaKm2,
			UBahnStations:       m.UBahnStations,
			BusTramStops:        m.BusTramStops,
			TotalStops:          m.TotalStops,
			ConnectivityDensity: m.ConnectivityDensity,
			MobilityScore:       m.MobilityScore,
			MobilityLabel:       m.MobilityLabel,
			GreenAreaKm2:        m.GreenAreaKm2,
			GreenShare:          m.GreenShare,
			GreenShareLabel:     m.GreenShareLabel,
			Playgrounds:         m.Playgrounds,
			PlaygroundsPerKm2:   m.PlaygroundsPerKm2,
			PlaygroundsLabel:    m.PlaygroundsLabel,
		}
		if r, ok := venFIdx.lookup(n.DistrictID, n.Canon); ok {
			f.Venues = intPtr(r.Venues)
			f.CuisineTypes = intPtr(r.CuisineTypes)
		}
		if r, ok := venVIdx.lookup(n.DistrictID, n.Canon); ok {
			f.VenuesPerKm2 = r.VenuesPerKm2
			f.VScore = r.VScore
			f.CScore = r.CScore
			f.VVIndex = r.VVIndex
			f.VibrancyLabel = strPtr(r.VibrancyLabel)
		}
		full[i] = f
	}
	return minimal, full
}

// BuildDistrictWide left-joins district-level theme outputs, and the
// optional socioeconomic stats, onto the dissolved district table.
func BuildDistrictWide(
	districts []model.District,
	mobility []model.DistrictMobilityRow,
	parks []model.DistrictParksRow,
	playgrounds []model.DistrictPlaygroundsRow,
	vibrancy []model.DistrictVibrancyRow,
	stats []model.DistrictStats,
) []model.DistrictWideRow {
	mobBy := make(map[string]*model.DistrictMobilityRow, len(mobility))
	for i := range mobility {
		mobBy[mobility[i].DistrictID] = &mobility[i]
	}
	parkBy := make(map[string]*model.DistrictParksRow, len(parks))
	for i := range parks {
		parkBy[parks[i].DistrictID] = &parks[i]
	}
	playBy := make(map[string]*model.DistrictPlaygroundsRow, len(playgrounds))
	for i := range playgrounds {
		playBy[playgrounds[i].DistrictID] = &playgrounds[i]
	}
	venBy := make(map[string]*model.DistrictVibrancyRow, len(vibrancy))
	for i := range vibrancy {
		venBy[vibrancy[i].DistrictID] = &vibrancy[i]
	}
	statsBy := make(map[string]*model.DistrictStats, len(stats))
	for i := range stats {
		statsBy[stats[i].DistrictID] = &stats[i]
	}

	out := make([]model.DistrictWideRow, len(districts))
	for i := range districts {
		d := &districts[i]
		row := model.DistrictWideRow{
			DistrictID: d.DistrictID,
			District:   d.District,
			AreaKm2:    d.AreaKm2,
		}
		if r, ok := mobBy[d.DistrictID]; ok {
			row.UBahnStations = intPtr(r.UBahnStations)
			row.BusTramStops = intPtr(r.BusTramStops)
			row.TotalStops = intPtr(r.TotalStops)
			row.ConnectivityDensity = optCopy(&r.ConnectivityDensity)
			row.MobilityScore = r.MobilityScore
			row.MobilityLabel = strPtr(r.MobilityLabel)
		}
		if r, ok := parkBy[d.DistrictID]; ok {
			row.GreenAreaKm2 = optCopy(&r.GreenAreaKm2)
			row.GreenShare = r.GreenShare
			row.GreenShareLabel = strPtr(r.GreenShareLabel)
		}
		if r, ok := playBy[d.DistrictID]; ok {
			row.Playgrounds = intPtr(r.Playgrounds)
			row.PlaygroundsPerKm2 = r.PlaygroundsPerKm2
			row.PlaygroundsLabel = strPtr(r.DensityLabel)
		}
		if r, ok := venBy[d.DistrictID]; ok {
			row.Venues = intPtr(r.Venues)
			row.CuisineTypes = intPtr(r.CuisineTypes)
			row.VenuesPerKm2 = r.VenuesPerKm2
			row.VScore = r.VScore
			row.CScore = r.CScore
			row.VVIndex = r.VVIndex
			row.VibrancyLabel = strPtr(r.VibrancyLabel)
		}
		if r, ok := statsBy[d.DistrictID]; ok {
			row.IncomeEUR = r.IncomeEUR
			row.CrimesPer1000 = r.CrimesPer1000
			row.UnemployedPer1000 = r.UnemployedPer1000
			row.DensityPerKm2 = r.DensityPerKm2
			row.DiversityShare = r.DiversityShare
		}
		out[i] = row
	}
	return out
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optCopy(v *float64) *float64 {
	c := *v
	return &c
}
