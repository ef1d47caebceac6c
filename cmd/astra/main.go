// Package main provides the astra CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// verbose controls whether commands print detailed output
var verbose bool

func main() {
	// Pick up ASTRA_* settings from a local .env if present.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "astra",
	Short: "Convert research-report artifacts to Quarto and Markdown",
	Long: `astra converts research-report JSON artifacts into Quarto (.qmd) and
plain Markdown (.md) documents, and normalizes citation keys in the
accompanying BibTeX bibliography.

Citation keys follow the convention AuthorYearTitleWords, e.g.
Yancosek2024BeaconBayesianEvolutionary.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
	rootCmd.Version = Version
}
