package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"astraconv/internal/bib"
	"astraconv/internal/cite"
	"astraconv/internal/report"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <report.json>",
	Short: "Report citation problems without converting",
	Long: `Check a report artifact against its bibliography and report
problems a conversion would paper over: bibliography entries whose
author-year surface forms collide, and citation markers that only resolve
to a synthesized or sanitized key.

Checks never fail the run; the command always exits zero when the inputs
are readable.

Examples:
  astra check report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	jsonFile := args[0]

	if _, err := os.Stat(jsonFile); err != nil {
		exitWithError(ExitError, "file %s not found", jsonFile)
	}

	rep, err := report.Load(jsonFile)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	var table *cite.Table
	bibFile := bib.FindSibling(jsonFile)
	if bibFile == "" {
		warn("no bibliography file found; every marker will synthesize its key")
	} else {
		data, err := os.ReadFile(bibFile)
		if err != nil {
			exitWithError(ExitError, "reading %s: %v", bibFile, err)
		}
		table = cite.BuildTable(string(data))
		info("Bibliography: %s (%d keys, %d variants)", filepath.Base(bibFile), table.Keys(), table.Len())
	}

	problems := 0

	if table != nil {
		for _, c := range table.Collisions {
			info("collision: variant %q maps to %s, previously %s", c.Variant, c.ReplacedBy, c.Previous)
			problems++
		}
	}

	markers := 0
	for _, section := range rep.Sections {
		for _, display := range cite.Markers(section.Text) {
			markers++
			key, match := table.Resolve(display)
			switch match {
			case cite.MatchSynthesized:
				info("unresolved: %q in section %q; synthesized key %s", display, section.Title, key)
				problems++
			case cite.MatchSanitized:
				info("unresolved: %q in section %q; sanitized key %s", display, section.Title, key)
				problems++
			}
		}
	}

	info("Checked %d citation markers across %d sections", markers, len(rep.Sections))
	if problems == 0 {
		info("No citation problems found")
	} else {
		info("%d citation problems found", problems)
	}

	return nil
}
