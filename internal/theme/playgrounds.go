package theme

import (
	"math"
	"strings"

	"github.com/annap-test/Berlin-App/internal/config"
	"github.com/annap-test/Berlin-App/internal/loader"
	"github.com/annap-test/Berlin-App/internal/model"
	"github.com/annap-test/Berlin-App/internal/score"
	"github.com/annap-test/Berlin-App/internal/text"
)

// BuildPlaygrounds filters green-space records to playgrounds by a
// case-insensitive category substring, counts them per neighborhood, and
// labels the density per effective km² against a median band.
func BuildPlaygrounds(
	neighborhoods []model.Neighborhood,
	greenSpaces *loader.Table,
	cfg config.PlaygroundsConfig,
) ([]model.PlaygroundsRow, error) {
	if err := greenSpaces.Require("district_id", "neighborhood", "green_area_type"); err != nil {
		return nil, err
	}

	distIdx := greenSpaces.Col("district_id")
	nameIdx := greenSpaces.Col("neighborhood")
	typeIdx := greenSpaces.Col("green_area_type")
	keyword := strings.ToLower(cfg.Keyword)

	counts := make(map[groupKey]int)
	keys := make(map[groupKey]struct{})
	for i := range greenSpaces.Rows {
		category := strings.ToLower(greenSpaces.Value(i, typeIdx))
		if !strings.Contains(category, keyword) {
			continue
		}
		k := groupKey{
			DistrictID: greenSpaces.Value(i, distIdx),
			Canon:      text.Canon(greenSpaces.Value(i, nameIdx)),
		}
		keys[k] = struct{}{}
		counts[k]++
	}

	idx := indexNeighborhoods(neighborhoods)
	ordered := sortedKeys(keys)

	rows := make([]model.PlaygroundsRow, len(ordered))
	densities := make([]float64, len(ordered))
	for i, k := range ordered {
		row := model.PlaygroundsRow{
			DistrictID:  k.DistrictID,
			Canon:       k.Canon,
			Playgrounds: counts[k],
		}
		density := math.NaN()
		if n, ok := idx.lookup(k.DistrictID, k.Canon); ok {
			row.AreaEffKm2 = model.Opt(n.AreaEffKm2)
			if n.AreaEffKm2 > 0 {
				density = float64(counts[k]) / n.AreaEffKm2
			}
		}
		row.PlaygroundsPerKm2 = model.Opt(density)
		densities[i] = density
		rows[i] = row
	}

	labels := score.BandLabels(densities, cfg.BandHalfWidth)
	for i := range rows {
		rows[i].DensityLabel = labels[i]
	}
	return rows, nil
}
