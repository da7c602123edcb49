package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/annap-test/Berlin-App/internal/config"
	"github.com/annap-test/Berlin-App/internal/district"
	"github.com/annap-test/Berlin-App/internal/geo"
	"github.com/annap-test/Berlin-App/internal/loader"
	"github.com/annap-test/Berlin-App/internal/model"
	"github.com/annap-test/Berlin-App/internal/text"
	"github.com/annap-test/Berlin-App/internal/theme"
)

// Standard input file names under paths.raw_dir, used when the config does
// not name a file explicitly.
const (
	DefaultNeighborhoodsFile = "neighborhoods.geojson"
	DefaultUBahnFile         = "ubahns.csv"
	DefaultBusTramFile       = "bus_tram_stops.csv"
	DefaultParksFile         = "parks.csv"
	DefaultPlaygroundsFile   = "playgrounds.csv"
	DefaultVenuesFile        = "venues.csv"
)

// Inputs holds the resolved input file paths for one run.
type Inputs struct {
	Neighborhoods string
	UBahn         string
	BusTram       string
	Parks         string
	Playgrounds   string
	Venues        string
	DistrictStats string
}

// Result holds every table produced by a full run. Write persists it.
type Result struct {
	Neighborhoods []model.Neighborhood
	Districts     []model.District

	Mobility      []model.MobilityRow
	Parks         []model.ParksRow
	Playgrounds   []model.PlaygroundsRow
	VenueFeatures []model.VenuesFeatureRow
	Vibrancy      []model.VibrancyRow

	DistrictMobility    []model.DistrictMobilityRow
	DistrictParks       []model.DistrictParksRow
	DistrictPlaygrounds []model.DistrictPlaygroundsRow
	DistrictVibrancy    []model.DistrictVibrancyRow

	NeighborhoodMinimal []model.NeighborhoodMinimalRow
	NeighborhoodWide    []model.NeighborhoodWideRow
	DistrictWide        []model.DistrictWideRow

	inputs Inputs
}

// Runner orchestrates a full pipeline run from raw inputs to wide tables.
type Runner struct {
	cfg   *config.Config
	cache *TableCache
}

// New creates a Runner for the given configuration.
func New(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg, cache: NewTableCache(cfg.Paths.Encoding)}
}

// Cache exposes the runner's table cache for commands that re-read outputs.
func (r *Runner) Cache() *TableCache {
	return r.cache
}

// ResolveInputs computes the input paths from the configuration and checks
// that every required file exists. All missing files are reported in one
// error, not just the first.
func (r *Runner) ResolveInputs() (Inputs, error) {
	p := r.cfg.Paths
	in := Inputs{
		Neighborhoods: inputPath(p.Neighborhoods, p.RawDir, DefaultNeighborhoodsFile),
		UBahn:         inputPath(p.UBahnStops, p.RawDir, DefaultUBahnFile),
		BusTram:       inputPath(p.BusTramStops, p.RawDir, DefaultBusTramFile),
		Parks:         inputPath(p.Parks, p.RawDir, DefaultParksFile),
		Playgrounds:   inputPath(p.Playgrounds, p.RawDir, DefaultPlaygroundsFile),
		Venues:        inputPath(p.Venues, p.RawDir, DefaultVenuesFile),
		DistrictStats: p.DistrictStats,
	}

	var missing []string
	for _, path := range []string{in.Neighborhoods, in.UBahn, in.BusTram, in.Parks, in.Playgrounds, in.Venues} {
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}
	if in.DistrictStats != "" {
		if _, err := os.Stat(in.DistrictStats); err != nil {
			missing = append(missing, in.DistrictStats)
		}
	}
	if len(missing) > 0 {
		return Inputs{}, eris.Errorf("pipeline: missing input files: %s", strings.Join(missing, ", "))
	}
	return in, nil
}

func inputPath(explicit, rawDir, name string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(rawDir, name)
}

// LoadNeighborhoods loads the polygon base table and derives the canonical
// join key and spherical areas for each neighborhood.
func (r *Runner) LoadNeighborhoods(path string) ([]model.Neighborhood, error) {
	neighborhoods, err := loader.LoadPolygons(path)
	if err != nil {
		return nil, err
	}
	if len(neighborhoods) == 0 {
		return nil, eris.Errorf("pipeline: no polygons in %s", path)
	}
	for i := range neighborhoods {
		n := &neighborhoods[i]
		n.Canon = text.Canon(n.Name)
		n.AreaKm2 = geo.AreaKm2(n.Geom)
		n.AreaEffKm2 = geo.EffectiveAreaKm2(n.AreaKm2, r.cfg.Area.FloorKm2)
	}
	zap.L().Info("pipeline: loaded neighborhoods",
		zap.String("path", path), zap.Int("count", len(neighborhoods)))
	return neighborhoods, nil
}

// Run executes the full pipeline: theme builders concurrently, then district
// aggregation, then the wide-table merges.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	in, err := r.ResolveInputs()
	if err != nil {
		return nil, err
	}

	neighborhoods, err := r.LoadNeighborhoods(in.Neighborhoods)
	if err != nil {
		return nil, err
	}

	res := &Result{Neighborhoods: neighborhoods, inputs: in}

	var venuesTbl *loader.Table
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		ubahn, err := r.cache.Load(in.UBahn)
		if err != nil {
			return err
		}
		busTram, err := r.cache.Load(in.BusTram)
		if err != nil {
			return err
		}
		res.Mobility, err = theme.BuildMobility(neighborhoods, ubahn, busTram, r.cfg.Mobility, r.cfg.Scoring)
		return err
	})
	g.Go(func() error {
		parks, err := r.cache.Load(in.Parks)
		if err != nil {
			return err
		}
		res.Parks, err = theme.BuildParks(neighborhoods, parks, r.cfg.Parks)
		return err
	})
	g.Go(func() error {
		greenSpaces, err := r.cache.Load(in.Playgrounds)
		if err != nil {
			return err
		}
		res.Playgrounds, err = theme.BuildPlaygrounds(neighborhoods, greenSpaces, r.cfg.Playgrounds)
		return err
	})
	g.Go(func() error {
		tbl, err := r.cache.Load(in.Venues)
		if err != nil {
			return err
		}
		venuesTbl = tbl
		res.VenueFeatures, res.Vibrancy, err = theme.BuildVenues(neighborhoods, tbl, r.cfg.Venues, r.cfg.Scoring)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Districts = geo.DissolveByDistrict(neighborhoods, r.cfg.Area.FloorKm2)

	if res.DistrictMobility, err = district.AggregateMobility(res.Mobility, neighborhoods, r.cfg.Mobility, r.cfg.Scoring); err != nil {
		return nil, err
	}
	if res.DistrictParks, err = district.AggregateParks(res.Parks, neighborhoods, r.cfg.Parks); err != nil {
		return nil, err
	}
	if res.DistrictPlaygrounds, err = district.AggregatePlaygrounds(res.Playgrounds, neighborhoods, r.cfg.Playgrounds); err != nil {
		return nil, err
	}
	if res.DistrictVibrancy, err = district.AggregateVenues(venuesTbl, neighborhoods, r.cfg.Venues, r.cfg.Scoring); err != nil {
		return nil, err
	}

	var stats []model.DistrictStats
	if in.DistrictStats != "" {
		if stats, err = r.LoadDistrictStats(in.DistrictStats); err != nil {
			return nil, err
		}
	}

	res.NeighborhoodMinimal, res.NeighborhoodWide = BuildNeighborhoodWide(
		neighborhoods, res.Mobility, res.Parks, res.Playgrounds, res.VenueFeatures, res.Vibrancy)
	res.DistrictWide = BuildDistrictWide(
		res.Districts, res.DistrictMobility, res.DistrictParks, res.DistrictPlaygrounds, res.DistrictVibrancy, stats)

	zap.L().Info("pipeline: run complete",
		zap.Int("neighborhoods", len(neighborhoods)),
		zap.Int("districts", len(res.Districts)),
	)
	return res, nil
}

// LoadDistrictStats reads the optional socioeconomic indicator table. Only
// district_id is required; indicator columns missing from the table stay nil.
func (r *Runner) LoadDistrictStats(path string) ([]model.DistrictStats, error) {
	tbl, err := r.cache.Load(path)
	if err != nil {
		return nil, err
	}
	if err := tbl.Require("district_id"); err != nil {
		return nil, err
	}

	idIdx := tbl.Col("district_id")
	incomeIdx := tbl.Col("income_value_eur")
	crimesIdx := tbl.Col("crimes_per_1000")
	unemployedIdx := tbl.Col("unemployment_per_1000")
	densityIdx := tbl.Col("density_per_km2")
	diversityIdx := tbl.Col("diversity_share")

	out := make([]model.DistrictStats, 0, len(tbl.Rows))
	for i := range tbl.Rows {
		s := model.DistrictStats{DistrictID: strings.TrimSpace(tbl.Value(i, idIdx))}
		if s.DistrictID == "" {
			continue
		}
		s.IncomeEUR = statValue(tbl, i, incomeIdx)
		s.CrimesPer1000 = statValue(tbl, i, crimesIdx)
		s.UnemployedPer1000 = statValue(tbl, i, unemployedIdx)
		s.DensityPerKm2 = statValue(tbl, i, densityIdx)
		s.DiversityShare = statValue(tbl, i, diversityIdx)
		out = append(out, s)
	}
	return out, nil
}

func statValue(tbl *loader.Table, row, idx int) *float64 {
	if idx < 0 {
		return nil
	}
	v, ok := tbl.Float(row, idx)
	if !ok {
		return nil
	}
	return &v
}

// Output file names under paths.out_dir.
const (
	MobilityFile            = "mobility_labels.csv"
	ParksFile               = "parks_features.csv"
	PlaygroundsFile         = "playgrounds_features.csv"
	VenueNationalsFile      = "features_venues_nationals.csv"
	VenueVibrancyFile       = "features_venues_vibrancy.csv"
	NeighborhoodMinimalFile = "neighborhood_labels_minimal.csv"
	NeighborhoodWideFile    = "neighborhood_labels_with_venues.csv"
	NeighborhoodReadable    = "neighborhood_labels_readable.csv"
	DistrictMobilityFile    = "district_mobility_labels.csv"
	DistrictParksFile       = "district_parks_labels.csv"
	DistrictPlaygroundsFile = "district_playgrounds_labels.csv"
	DistrictVibrancyFile    = "district_vibrancy_labels.csv"
	DistrictWideFile        = "district_labels_wide.csv"
	NeighborhoodsGeoJSON    = "neighborhoods.geojson"
	ManifestFile            = "run_manifest.json"
)

// Manifest records one run for reproducibility: the run identity and the
// exact input files, with sizes and modification times, that produced the
// outputs.
type Manifest struct {
	RunID      string             `json:"run_id"`
	FinishedAt time.Time          `json:"finished_at"`
	Inputs     []loader.Signature `json:"inputs"`
	Outputs    []string           `json:"outputs"`
}

// Write persists every table in the result to outDir and records a run
// manifest alongside them.
func (r *Runner) Write(res *Result, outDir string) error {
	writes := []struct {
		name string
		rows interface{}
	}{
		{MobilityFile, res.Mobility},
		{ParksFile, res.Parks},
		{PlaygroundsFile, res.Playgrounds},
		{VenueNationalsFile, res.VenueFeatures},
		{VenueVibrancyFile, res.Vibrancy},
		{NeighborhoodMinimalFile, res.NeighborhoodMinimal},
		{NeighborhoodWideFile, res.NeighborhoodWide},
		{DistrictMobilityFile, res.DistrictMobility},
		{DistrictParksFile, res.DistrictParks},
		{DistrictPlaygroundsFile, res.DistrictPlaygrounds},
		{DistrictVibrancyFile, res.DistrictVibrancy},
		{DistrictWideFile, res.DistrictWide},
	}

	var outputs []string
	for _, w := range writes {
		path := filepath.Join(outDir, w.name)
		if err := loader.WriteCSV(path, w.rows); err != nil {
			return err
		}
		outputs = append(outputs, w.name)
	}

	readablePath := filepath.Join(outDir, NeighborhoodReadable)
	if err := WriteReadableCSV(readablePath, res.NeighborhoodWide); err != nil {
		return err
	}
	outputs = append(outputs, NeighborhoodReadable)

	geoPath := filepath.Join(outDir, NeighborhoodsGeoJSON)
	if err := loader.WriteNeighborhoodsGeoJSON(geoPath, res.Neighborhoods); err != nil {
		return err
	}
	outputs = append(outputs, NeighborhoodsGeoJSON)

	if err := r.writeManifest(res, outDir, outputs); err != nil {
		return err
	}

	zap.L().Info("pipeline: outputs written",
		zap.String("dir", outDir), zap.Int("files", len(outputs)+1))
	return nil
}

func (r *Runner) writeManifest(res *Result, outDir string, outputs []string) error {
	m := Manifest{
		RunID:      uuid.NewString(),
		FinishedAt: time.Now().UTC(),
		Outputs:    outputs,
	}
	for _, path := range []string{
		res.inputs.Neighborhoods, res.inputs.UBahn, res.inputs.BusTram,
		res.inputs.Parks, res.inputs.Playgrounds, res.inputs.Venues, res.inputs.DistrictStats,
	} {
		if path == "" {
			continue
		}
		sig, err := loader.FileSignature(path)
		if err != nil {
			return err
		}
		m.Inputs = append(m.Inputs, sig)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return eris.Wrap(err, "pipeline: marshal manifest")
	}
	path := filepath.Join(outDir, ManifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "pipeline: write %s", path)
	}
	return nil
}
