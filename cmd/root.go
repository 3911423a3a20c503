package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ev-insights/ev-segments/segment"
	"github.com/ev-insights/ev-segments/segment/ingest"
	"github.com/ev-insights/ev-segments/segment/report"
)

var (
	// Input files
	evDataPath        string // Per-state EV metrics CSV (required)
	manufacturersPath string // Manufacturer-location listing CSV
	salesPath         string // Yearly vehicle sales spreadsheet (XLSX)

	// Model settings; override the config file only when set explicitly
	configPath string  // Optional YAML config file
	seed       int64   // Seed for k-means++ initialisation
	nInit      int     // Number of K-Means restarts per k
	maxIter    int     // Lloyd iterations per restart
	tolerance  float64 // Convergence tolerance
	maxK       int     // Largest candidate k

	// Output settings
	outDir       string // Directory for exported artifacts
	withCharts   bool   // Render PNG charts
	withWorkbook bool   // Write an XLSX workbook
	logLevel     string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ev-segments",
	Short: "Segment EV markets by clustering state-level adoption metrics",
}

// runCmd executes the full pipeline using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load inputs, select k, cluster states and export the results",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := resolveConfig(cmd)
		src := loadSources()

		startTime := time.Now()
		res, err := segment.Run(src, cfg)
		if err != nil {
			logrus.Fatalf("Segmentation failed: %v", err)
		}
		report.PrintResult(os.Stdout, res, cfg.Recommender())

		paths, err := report.NewCSVWriter(outDir).ExportAll(res)
		if err != nil {
			logrus.Fatalf("Export failed: %v", err)
		}
		if withWorkbook {
			path := filepath.Join(outDir, report.WorkbookFile)
			if err := report.ExportWorkbook(path, res); err != nil {
				logrus.Fatalf("Workbook export failed: %v", err)
			}
			paths = append(paths, path)
		}
		if withCharts {
			charts, err := report.RenderCharts(outDir, res)
			if err != nil {
				logrus.Fatalf("Chart rendering failed: %v", err)
			}
			paths = append(paths, charts...)
		}
		for _, p := range paths {
			logrus.Infof("Wrote %s", p)
		}
		logrus.Infof("Segmentation complete in %s.", time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging applies --log to the global logger.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveConfig loads the config file (or the defaults), applies explicitly
// set flags on top and validates the result.
func resolveConfig(cmd *cobra.Command) *segment.Config {
	cfg := segment.DefaultConfig()
	if configPath != "" {
		loaded, err := segment.LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}
	applyOverrides(&cfg, cmd.Flags().Changed)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return &cfg
}

// applyOverrides copies model flags into cfg for every flag the user set.
func applyOverrides(cfg *segment.Config, changed func(name string) bool) {
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("n-init") {
		cfg.NInit = nInit
	}
	if changed("max-iter") {
		cfg.MaxIter = maxIter
	}
	if changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if changed("max-k") {
		cfg.MaxK = maxK
	}
}

// loadSources reads the input files; a missing primary dataset is fatal.
func loadSources() segment.Sources {
	src, err := ingest.LoadSources(ingest.Paths{
		EVData:        evDataPath,
		Manufacturers: manufacturersPath,
		Sales:         salesPath,
	})
	if err != nil {
		logrus.Fatalf("Failed to load inputs: %v", err)
	}
	return src
}

// addInputFlags registers the input file flags on c.
func addInputFlags(c *cobra.Command) {
	c.Flags().StringVar(&evDataPath, "ev-data", "", "Path to the per-state EV metrics CSV")
	c.Flags().StringVar(&manufacturersPath, "manufacturers", "", "Path to the manufacturer listing CSV")
	c.Flags().StringVar(&salesPath, "sales", "", "Path to the vehicle sales spreadsheet (XLSX)")
	c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	_ = c.MarkFlagRequired("ev-data")
}

// addModelFlags registers the K-Means flags on c.
func addModelFlags(c *cobra.Command) {
	defaults := segment.DefaultConfig()
	c.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file (see `ev-segments config`)")
	c.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for k-means++ initialisation")
	c.Flags().IntVar(&nInit, "n-init", defaults.NInit, "Number of K-Means restarts per k")
	c.Flags().IntVar(&maxIter, "max-iter", defaults.MaxIter, "Maximum Lloyd iterations per restart")
	c.Flags().Float64Var(&tolerance, "tolerance", defaults.Tolerance, "Convergence tolerance relative to mean feature variance")
	c.Flags().IntVar(&maxK, "max-k", defaults.MaxK, "Largest number of clusters to consider")
}

// init sets up CLI flags and subcommands
func init() {
	addInputFlags(runCmd)
	addModelFlags(runCmd)
	runCmd.Flags().StringVar(&outDir, "out", "output", "Directory for exported CSV, workbook and chart files")
	runCmd.Flags().BoolVar(&withCharts, "charts", false, "Render elbow, silhouette and cluster PNG charts")
	runCmd.Flags().BoolVar(&withWorkbook, "workbook", false, "Also write an XLSX workbook with all tables")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
