package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/annap-test/Berlin-App/internal/pipeline"
)

var (
	suitInput   string
	suitOutput  string
	suitProfile string
	suitWeights []string
)

var suitabilityCmd = &cobra.Command{
	Use:   "suitability",
	Short: "Compute the weighted composite suitability score over a wide table",
	Long: "Rescales each weighted feature to 0-100 percentile scores, multiplies by weight/100, and sums. " +
		"The sum is not renormalized by total weight, so heavier weight configurations produce larger scores. " +
		"Weights come from a YAML profile (--profile) or inline --weight feature=value pairs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		weights, err := collectWeights()
		if err != nil {
			return err
		}
		if len(weights) == 0 {
			return eris.New("no weights given: pass --profile or at least one --weight")
		}

		input := suitInput
		if input == "" {
			input = filepath.Join(cfg.Paths.OutDir, pipeline.DistrictWideFile)
		}
		output := suitOutput
		if output == "" {
			output = filepath.Join(cfg.Paths.OutDir, "suitability.csv")
		}

		r := pipeline.New(cfg)
		tbl, err := r.Cache().Load(input)
		if err != nil {
			return err
		}

		scores, err := pipeline.Suitability(tbl, weights, cfg.Scoring)
		if err != nil {
			return eris.Wrap(err, "compute suitability")
		}

		if err := pipeline.WriteSuitabilityCSV(output, tbl, scores); err != nil {
			return eris.Wrap(err, "write suitability")
		}

		zap.L().Info("suitability written",
			zap.String("input", input),
			zap.String("output", output),
			zap.Int("rows", len(scores)),
			zap.Int("features", len(weights)),
		)
		return nil
	},
}

// collectWeights merges the profile file with inline overrides. Inline
// --weight pairs win over the profile.
func collectWeights() (map[string]float64, error) {
	weights := make(map[string]float64)
	if suitProfile != "" {
		wp, err := pipeline.LoadWeightProfile(suitProfile)
		if err != nil {
			return nil, err
		}
		for id, w := range wp.Weights {
			weights[id] = w
		}
	}
	for _, pair := range suitWeights {
		id, raw, found := strings.Cut(pair, "=")
		if !found {
			return nil, eris.Errorf("malformed --weight %q (expected feature=value)", pair)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, eris.Errorf("malformed --weight %q: %v", pair, err)
		}
		weights[strings.TrimSpace(id)] = w
	}
	return weights, nil
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the weightable features",
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range pipeline.Catalog {
			polarity := "higher is better"
			if f.Invert {
				polarity = "lower is better"
			}
			fmt.Printf("%-14s %s (%s)\n", f.ID, f.Description, polarity)
		}
	},
}

func init() {
	suitabilityCmd.Flags().StringVar(&suitInput, "input", "", "wide table CSV to score (default: district wide table in out_dir)")
	suitabilityCmd.Flags().StringVar(&suitOutput, "output", "", "destination CSV (default: suitability.csv in out_dir)")
	suitabilityCmd.Flags().StringVar(&suitProfile, "profile", "", "YAML weight profile")
	suitabilityCmd.Flags().StringArrayVar(&suitWeights, "weight", nil, "inline weight as feature=value, repeatable")
	rootCmd.AddCommand(suitabilityCmd, featuresCmd)
}
