package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/annap-test/Berlin-App/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "berlin",
	Short: "Berlin neighborhood suitability pipeline",
	Long:  "Scores Berlin neighborhoods and districts on mobility, green space, playgrounds, and venue vibrancy, merges the themes into wide tables, and computes a user-weighted suitability score.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
