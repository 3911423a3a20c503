package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ev-insights/ev-segments/segment"
	"github.com/ev-insights/ev-segments/segment/report"
)

var topN int

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Print top states, regional roll-ups and feature correlations",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := resolveConfig(cmd)
		src := loadSources()

		records, m, err := segment.Prepare(src, cfg)
		if err != nil {
			logrus.Fatalf("Preparation failed: %v", err)
		}
		report.PrintExploration(os.Stdout, segment.Explore(records, m, topN))
	},
}

func init() {
	addInputFlags(exploreCmd)
	exploreCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file (features are taken from it)")
	exploreCmd.Flags().IntVar(&topN, "top", 10, "Number of top states to list")

	rootCmd.AddCommand(exploreCmd)
}
