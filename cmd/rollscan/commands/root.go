// Package commands implements the rollscan CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "rollscan",
	Short: "Electoral-roll PDF extraction pipeline",
	Long: `rollscan converts scanned electoral-roll PDFs into structured voter
records. It rasterizes each document, recognizes the Malayalam text with
Tesseract, parses the page-1 metadata form and the per-page voter card grid,
and loads deduplicated records into the configured database.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
