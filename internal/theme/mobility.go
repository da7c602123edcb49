package theme

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/annap-test/Berlin-App/internal/config"
	"github.com/annap-test/Berlin-App/internal/geo"
	"github.com/annap-test/Berlin-App/internal/loader"
	"github.com/annap-test/Berlin-App/internal/model"
	"github.com/annap-test/Berlin-App/internal/score"
)

// Mobility label values.
const (
	MobilityHigh = "well-connected"
	MobilityMid  = "moderate"
	MobilityLow  = "remote"
)

// BuildMobility assigns U-Bahn stations and bus/tram stops to neighborhoods
// and computes the weighted connectivity density, percentile score, and
// tercile label. Every polygon gets a row; neighborhoods without stops count
// zero. Points outside all polygons are dropped silently.
func BuildMobility(
	neighborhoods []model.Neighborhood,
	ubahn, busTram *loader.Table,
	cfg config.MobilityConfig,
	scoring config.ScoringConfig,
) ([]model.MobilityRow, error) {
	if len(neighborhoods) == 0 {
		return nil, eris.New("theme: mobility requires a non-empty polygon set")
	}

	ubahnPts, err := geo.PointsFromTable(ubahn)
	if err != nil {
		return nil, eris.Wrap(err, "theme: mobility ubahn stops")
	}
	busPts, err := geo.PointsFromTable(busTram)
	if err != nil {
		return nil, eris.Wrap(err, "theme: mobility bus/tram stops")
	}

	regions := make([]geo.Region, len(neighborhoods))
	for i := range neighborhoods {
		regions[i] = geo.Region{Index: i, Geom: neighborhoods[i].Geom}
	}

	ubahnCounts := geo.CountByRegion(geo.AssignPoints(regions, ubahnPts))
	busCounts := geo.CountByRegion(geo.AssignPoints(regions, busPts))

	zap.L().Debug("theme: mobility points assigned",
		zap.Int("ubahn_points", len(ubahnPts)),
		zap.Int("bus_tram_points", len(busPts)),
	)

	densities := make([]float64, len(neighborhoods))
	rows := make([]model.MobilityRow, len(neighborhoods))
	for i := range neighborhoods {
		n := &neighborhoods[i]
		u := ubahnCounts[i]
		b := busCounts[i]
		density := (cfg.RailWeight*float64(u) + cfg.SurfaceWeight*float64(b)) / n.AreaEffKm2
		densities[i] = density
		rows[i] = model.MobilityRow{
			DistrictID:          n.DistrictID,
			NeighborhoodID:      n.NeighborhoodID,
			Neighborhood:        n.Name,
			Canon:               n.Canon,
			UBahnStations:       u,
			BusTramStops:        b,
			TotalStops:          u + b,
			ConnectivityDensity: density,
		}
	}

	scores := score.PercentileScore(densities, scoring.PercentileLo, scoring.PercentileHi)
	labels := score.TercileLabels(scores, MobilityHigh, MobilityMid, MobilityLow)
	for i := range rows {
		rows[i].MobilityScore = model.Opt(scores[i])
		rows[i].MobilityLabel = labels[i]
	}
	return rows, nil
}
