package main

import (
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/annap-test/Berlin-App/internal/loader"
	"github.com/annap-test/Berlin-App/internal/pipeline"
	"github.com/annap-test/Berlin-App/internal/theme"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a single theme table without running the full pipeline",
}

var buildMobilityCmd = &cobra.Command{
	Use:   "mobility",
	Short: "Assign transit stops to neighborhoods and score connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := pipeline.New(cfg)
		neighborhoods, err := r.LoadNeighborhoods(resolveInput(cfg.Paths.Neighborhoods, pipeline.DefaultNeighborhoodsFile))
		if err != nil {
			return err
		}

		ubahn, err := r.Cache().Load(resolveInput(cfg.Paths.UBahnStops, pipeline.DefaultUBahnFile))
		if err != nil {
			return err
		}
		busTram, err := r.Cache().Load(resolveInput(cfg.Paths.BusTramStops, pipeline.DefaultBusTramFile))
		if err != nil {
			return err
		}

		rows, err := theme.BuildMobility(neighborhoods, ubahn, busTram, cfg.Mobility, cfg.Scoring)
		if err != nil {
			return eris.Wrap(err, "build mobility")
		}
		return writeTheme(pipeline.MobilityFile, rows)
	},
}

var buildParksCmd = &cobra.Command{
	Use:   "parks",
	Short: "Compute green area share per neighborhood",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := pipeline.New(cfg)
		neighborhoods, err := r.LoadNeighborhoods(resolveInput(cfg.Paths.Neighborhoods, pipeline.DefaultNeighborhoodsFile))
		if err != nil {
			return err
		}

		parks, err := r.Cache().Load(resolveInput(cfg.Paths.Parks, pipeline.DefaultParksFile))
		if err != nil {
			return err
		}

		rows, err := theme.BuildParks(neighborhoods, parks, cfg.Parks)
		if err != nil {
			return eris.Wrap(err, "build parks")
		}
		return writeTheme(pipeline.ParksFile, rows)
	},
}

var buildPlaygroundsCmd = &cobra.Command{
	Use:   "playgrounds",
	Short: "Compute playground density per neighborhood",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := pipeline.New(cfg)
		neighborhoods, err := r.LoadNeighborhoods(resolveInput(cfg.Paths.Neighborhoods, pipeline.DefaultNeighborhoodsFile))
		if err != nil {
			return err
		}

		greenSpaces, err := r.Cache().Load(resolveInput(cfg.Paths.Playgrounds, pipeline.DefaultPlaygroundsFile))
		if err != nil {
			return err
		}

		rows, err := theme.BuildPlaygrounds(neighborhoods, greenSpaces, cfg.Playgrounds)
		if err != nil {
			return eris.Wrap(err, "build playgrounds")
		}
		return writeTheme(pipeline.PlaygroundsFile, rows)
	},
}

var buildVenuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "Compute venue counts, cuisine variety, and vibrancy per neighborhood",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := pipeline.New(cfg)
		neighborhoods, err := r.LoadNeighborhoods(resolveInput(cfg.Paths.Neighborhoods, pipeline.DefaultNeighborhoodsFile))
		if err != nil {
			return err
		}

		venues, err := r.Cache().Load(resolveInput(cfg.Paths.Venues, pipeline.DefaultVenuesFile))
		if err != nil {
			return err
		}

		features, vibrancy, err := theme.BuildVenues(neighborhoods, venues, cfg.Venues, cfg.Scoring)
		if err != nil {
			return eris.Wrap(err, "build venues")
		}
		if err := writeTheme(pipeline.VenueNationalsFile, features); err != nil {
			return err
		}
		return writeTheme(pipeline.VenueVibrancyFile, vibrancy)
	},
}

func resolveInput(explicit, name string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(cfg.Paths.RawDir, name)
}

func writeTheme(name string, rows interface{}) error {
	path := filepath.Join(cfg.Paths.OutDir, name)
	if err := loader.WriteCSV(path, rows); err != nil {
		return err
	}
	zap.L().Info("theme written", zap.String("path", path))
	return nil
}

func init() {
	buildCmd.AddCommand(buildMobilityCmd, buildParksCmd, buildPlaygroundsCmd, buildVenuesCmd)
	rootCmd.AddCommand(buildCmd)
}
