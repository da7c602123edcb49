package theme

import (
	"math"

	"go.uber.org/zap"

	"github.com/annap-test/Berlin-App/internal/config"
	"github.com/annap-test/Berlin-App/internal/loader"
	"github.com/annap-test/Berlin-App/internal/model"
	"github.com/annap-test/Berlin-App/internal/score"
	"github.com/annap-test/Berlin-App/internal/text"
)

// BuildParks sums park area per neighborhood and labels the green share
// against a median band. The share divides by the true polygon area, not the
// floored effective area: parks can legitimately cover nearly all of a tiny
// neighborhood. Rows keyed to names unknown to the polygon set keep their
// summed area but carry a blank share.
func BuildParks(
	neighborhoods []model.Neighborhood,
	parks *loader.Table,
	cfg config.ParksConfig,
) ([]model.ParksRow, error) {
	if err := parks.Require("district_id", "neighborhood", "size_sqm"); err != nil {
		return nil, err
	}

	distIdx := parks.Col("district_id")
	nameIdx := parks.Col("neighborhood")
	sizeIdx := parks.Col("size_sqm")

	sums := make(map[groupKey]float64)
	keys := make(map[groupKey]struct{})
	var unparsable int
	for i := range parks.Rows {
		k := groupKey{
			DistrictID: parks.Value(i, distIdx),
			Canon:      text.Canon(parks.Value(i, nameIdx)),
		}
		keys[k] = struct{}{}
		size, ok := parks.Float(i, sizeIdx)
		if !ok {
			unparsable++
			continue
		}
		sums[k] += size / 1e6
	}
	if unparsable > 0 {
		zap.L().Debug("theme: parks rows without parsable size_sqm",
			zap.Int("rows", unparsable))
	}

	idx := indexNeighborhoods(neighborhoods)
	ordered := sortedKeys(keys)

	rows := make([]model.ParksRow, len(ordered))
	shares := make([]float64, len(ordered))
	for i, k := range ordered {
		row := model.ParksRow{
			DistrictID:   k.DistrictID,
			Canon:        k.Canon,
			GreenAreaKm2: sums[k],
		}
		share := math.NaN()
		if n, ok := idx.lookup(k.DistrictID, k.Canon); ok {
			row.AreaKm2 = model.Opt(n.AreaKm2)
			if n.AreaKm2 > 0 {
				share = row.GreenAreaKm2 / n.AreaKm2
			}
		}
		row.GreenShare = model.Opt(share)
		shares[i] = share
		rows[i] = row
	}

	labels := score.BandLabels(shares, cfg.BandHalfWidth)
	for i := range rows {
		rows[i].GreenShareLabel = labels[i]
	}
	return rows, nil
}
