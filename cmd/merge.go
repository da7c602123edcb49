package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/annap-test/Berlin-App/internal/loader"
	"github.com/annap-test/Berlin-App/internal/model"
	"github.com/annap-test/Berlin-App/internal/pipeline"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Join previously built theme tables into the wide neighborhood tables",
	Long:  "Reads the theme CSVs from the output directory and left-joins them onto the polygon base table. Themes whose CSV is absent are skipped and surface as blank columns.",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := pipeline.New(cfg)
		neighborhoods, err := r.LoadNeighborhoods(resolveInput(cfg.Paths.Neighborhoods, pipeline.DefaultNeighborhoodsFile))
		if err != nil {
			return err
		}

		var (
			mobility    []model.MobilityRow
			parks       []model.ParksRow
			playgrounds []model.PlaygroundsRow
			features    []model.VenuesFeatureRow
			vibrancy    []model.VibrancyRow
		)
		if err := readThemeIfPresent(pipeline.MobilityFile, &mobility); err != nil {
			return err
		}
		if err := readThemeIfPresent(pipeline.ParksFile, &parks); err != nil {
			return err
		}
		if err := readThemeIfPresent(pipeline.PlaygroundsFile, &playgrounds); err != nil {
			return err
		}
		if err := readThemeIfPresent(pipeline.VenueNationalsFile, &features); err != nil {
			return err
		}
		if err := readThemeIfPresent(pipeline.VenueVibrancyFile, &vibrancy); err != nil {
			return err
		}

		minimal, wide := pipeline.BuildNeighborhoodWide(neighborhoods, mobility, parks, playgrounds, features, vibrancy)

		if err := writeTheme(pipeline.NeighborhoodMinimalFile, minimal); err != nil {
			return err
		}
		if err := writeTheme(pipeline.NeighborhoodWideFile, wide); err != nil {
			return err
		}
		readablePath := filepath.Join(cfg.Paths.OutDir, pipeline.NeighborhoodReadable)
		if err := pipeline.WriteReadableCSV(readablePath, wide); err != nil {
			return eris.Wrap(err, "write readable table")
		}

		zap.L().Info("merge complete", zap.Int("neighborhoods", len(wide)))
		return nil
	},
}

func readThemeIfPresent(name string, out interface{}) error {
	path := filepath.Join(cfg.Paths.OutDir, name)
	if _, err := os.Stat(path); err != nil {
		zap.L().Warn("theme table absent, skipping", zap.String("path", path))
		return nil
	}
	return loader.ReadRows(path, out)
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
