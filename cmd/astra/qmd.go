package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"astraconv/internal/bib"
	"astraconv/internal/cite"
	"astraconv/internal/config"
	"astraconv/internal/convert"
	"astraconv/internal/report"
)

var (
	qmdNoBib   bool
	qmdCSLFile string
)

func init() {
	jsonToQmdCmd.Flags().BoolVar(&qmdNoBib, "no-bib", false, "Skip the bibliography check and proceed without prompting")
	jsonToQmdCmd.Flags().StringVar(&qmdCSLFile, "csl-file", "", "Path to a custom CSL file (default: bundled apa.csl)")
	rootCmd.AddCommand(jsonToQmdCmd)
}

var jsonToQmdCmd = &cobra.Command{
	Use:   "json-to-qmd <report.json>",
	Short: "Convert a report artifact to Quarto markdown (.qmd)",
	Long: `Convert a research-report JSON artifact to Quarto markdown with
bibliography support.

A sibling .bib file is located by naming convention and used to resolve
inline citation markers to [@key] references. The citation style file is
copied next to the output so the document renders standalone.

Examples:
  astra json-to-qmd report.json
  astra json-to-qmd report.json --no-bib
  astra json-to-qmd report.json --csl-file ieee.csl`,
	Args: cobra.ExactArgs(1),
	RunE: runJSONToQmd,
}

func runJSONToQmd(cmd *cobra.Command, args []string) error {
	jsonFile := args[0]

	if _, err := os.Stat(jsonFile); err != nil {
		exitWithError(ExitError, "file %s not found", jsonFile)
	}

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	info("Checking for bibliography file...")
	bibFile := bib.FindSibling(jsonFile)

	if bibFile == "" && !qmdNoBib {
		warn("bibliography file not found (expected %s)", convert.OutputPath(jsonFile, ".bib"))
		if !cfg.SkipBibPrompt && stdinIsTerminal() {
			if !confirm("Continue without bibliography file?") {
				info("Conversion cancelled. Please download the .bib file first.")
				os.Exit(ExitError)
			}
		} else {
			warn("continuing without bibliography file; citations will not render correctly")
		}
	}

	cslFile := qmdCSLFile
	if cslFile == "" {
		cslFile = cfg.CSLFile
	}

	outputDir := filepath.Dir(jsonFile)
	cslName, err := convert.CopyCSL(outputDir, cslFile)
	if err != nil {
		warn("could not copy CSL file: %v", err)
		cslName = convert.DefaultCSLName
	}

	rep, err := report.Load(jsonFile)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	var table *cite.Table
	if bibFile != "" {
		data, err := os.ReadFile(bibFile)
		if err != nil {
			exitWithError(ExitError, "reading %s: %v", bibFile, err)
		}
		table = cite.BuildTable(string(data))
		info("Found %d unique citation keys in bibliography", table.Keys())
		info("Built %d citation mappings", table.Len())
		if verbose {
			for _, c := range table.Collisions {
				warn("variant %q claimed by both %s and %s; using %s",
					c.Variant, c.Previous, c.ReplacedBy, c.ReplacedBy)
			}
		}
	}

	info("Converting %s to Quarto markdown...", filepath.Base(jsonFile))

	content := convert.Quarto(rep, jsonFile, bibFile, cslName, table)

	qmdFile := convert.OutputPath(jsonFile, ".qmd")
	if err := os.WriteFile(qmdFile, []byte(content), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", qmdFile, err)
	}

	info("Converted to %s", filepath.Base(qmdFile))
	if bibFile != "" {
		info("Bibliography linked: %s", filepath.Base(bibFile))
		info("Citation style: %s", cslName)
		info("Render with: quarto render %s", qmdFile)
	} else {
		warn("no bibliography file found; citations will not render correctly")
	}

	return nil
}
