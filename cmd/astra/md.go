package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"astraconv/internal/convert"
	"astraconv/internal/report"
)

func init() {
	rootCmd.AddCommand(jsonToMdCmd)
}

var jsonToMdCmd = &cobra.Command{
	Use:   "json-to-md <report.json>",
	Short: "Convert a report artifact to plain markdown (.md)",
	Long: `Convert a research-report JSON artifact to plain markdown.

Citation markers keep their display text and every cited paper gets a full
reference entry with snippets at the end of the document.

Examples:
  astra json-to-md report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runJSONToMd,
}

func runJSONToMd(cmd *cobra.Command, args []string) error {
	jsonFile := args[0]

	if _, err := os.Stat(jsonFile); err != nil {
		exitWithError(ExitError, "file %s not found", jsonFile)
	}

	info("Converting %s to markdown...", filepath.Base(jsonFile))

	rep, err := report.Load(jsonFile)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	content := convert.Markdown(rep, jsonFile)

	mdFile := convert.OutputPath(jsonFile, ".md")
	if err := os.WriteFile(mdFile, []byte(content), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", mdFile, err)
	}

	info("Converted to %s", filepath.Base(mdFile))
	return nil
}
