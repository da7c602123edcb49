package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/annap-test/Berlin-App/internal/pipeline"
)

var (
	runRawDir string
	runOutDir string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: all themes, districts, and wide tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if runRawDir != "" {
			cfg.Paths.RawDir = runRawDir
		}
		if runOutDir != "" {
			cfg.Paths.OutDir = runOutDir
		}

		r := pipeline.New(cfg)
		res, err := r.Run(ctx)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		if err := r.Write(res, cfg.Paths.OutDir); err != nil {
			return eris.Wrap(err, "write outputs")
		}

		zap.L().Info("run complete",
			zap.Int("neighborhoods", len(res.Neighborhoods)),
			zap.Int("districts", len(res.Districts)),
			zap.String("out_dir", cfg.Paths.OutDir),
		)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runRawDir, "raw-dir", "", "directory holding the raw input files")
	runCmd.Flags().StringVar(&runOutDir, "out-dir", "", "directory for generated tables")
	rootCmd.AddCommand(runCmd)
}
