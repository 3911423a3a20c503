package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ev-insights/ev-segments/segment"
	"github.com/ev-insights/ev-segments/segment/report"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Score every candidate k without producing a final partition",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := resolveConfig(cmd)
		src := loadSources()

		_, m, err := segment.Prepare(src, cfg)
		if err != nil {
			logrus.Fatalf("Preparation failed: %v", err)
		}
		sel, err := segment.SelectK(m, cfg.Model())
		if err != nil {
			logrus.Fatalf("Model selection failed: %v", err)
		}
		report.PrintSelection(os.Stdout, sel)
	},
}

func init() {
	addInputFlags(selectCmd)
	addModelFlags(selectCmd)

	rootCmd.AddCommand(selectCmd)
}
