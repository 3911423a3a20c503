package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ev-insights/ev-segments/segment"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the built-in configuration as YAML",
	Long:  "Print the built-in feature list, cluster name table and recommendations as YAML. Edit the output and pass it back with --config.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeConfig(os.Stdout, segment.DefaultConfig()); err != nil {
			logrus.Fatalf("YAML marshal failed: %v", err)
		}
	},
}

// writeConfig marshals cfg as YAML to w.
func writeConfig(w io.Writer, cfg segment.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(data))
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
}
