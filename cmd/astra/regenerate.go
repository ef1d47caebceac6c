package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"astraconv/internal/bib"
)

var (
	regenInplace     bool
	regenShowMapping bool
	regenSaveMapping bool
)

func init() {
	regenerateBibCmd.Flags().BoolVar(&regenInplace, "inplace", false, "Modify the file in place (creates a .backup)")
	regenerateBibCmd.Flags().BoolVar(&regenShowMapping, "show-mapping", false, "Display key mappings after regeneration")
	regenerateBibCmd.Flags().BoolVar(&regenSaveMapping, "save-mapping", false, "Save key mappings to a text file")
	rootCmd.AddCommand(regenerateBibCmd)
}

var regenerateBibCmd = &cobra.Command{
	Use:   "regenerate-bib <file.bib>",
	Short: "Regenerate citation keys in a .bib file",
	Long: `Regenerate every citation key in a bibliography file using the
convention AuthorYearTitleWords. Duplicate keys get numeric suffixes
(_1, _2, ...); entries that cannot be parsed are kept unchanged.

By default the rewritten bibliography goes to <file>.new.bib so the
original can be reviewed against it first.

Examples:
  astra regenerate-bib report.bib
  astra regenerate-bib report.bib --inplace --show-mapping
  astra regenerate-bib report.bib --save-mapping`,
	Args: cobra.ExactArgs(1),
	RunE: runRegenerateBib,
}

func runRegenerateBib(cmd *cobra.Command, args []string) error {
	bibFile := args[0]

	original, err := os.ReadFile(bibFile)
	if err != nil {
		if os.IsNotExist(err) {
			exitWithError(ExitError, "file %s not found", bibFile)
		}
		exitWithError(ExitError, "reading %s: %v", bibFile, err)
	}

	info("Reading %s...", filepath.Base(bibFile))

	newContent, mapping := bib.RegenerateKeys(string(original))
	info("Regenerated %d citation keys", len(mapping))

	if regenShowMapping || verbose {
		info("\nKey mappings:")
		for _, pair := range sortedPairs(mapping) {
			if pair.Old != pair.New {
				info("   %-30s -> %s", pair.Old, pair.New)
			}
		}
	}

	if regenInplace {
		backupFile := bibFile + ".backup"
		if err := os.WriteFile(backupFile, original, 0644); err != nil {
			exitWithError(ExitError, "writing backup %s: %v", backupFile, err)
		}
		info("Backed up original to %s", filepath.Base(backupFile))

		if err := os.WriteFile(bibFile, []byte(newContent), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", bibFile, err)
		}
		info("Updated %s in place", filepath.Base(bibFile))
	} else {
		outputFile := strings.TrimSuffix(bibFile, filepath.Ext(bibFile)) + ".new.bib"
		if err := os.WriteFile(outputFile, []byte(newContent), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", outputFile, err)
		}
		info("Created new file: %s", filepath.Base(outputFile))
		info("Review and rename to replace the original if satisfied")
	}

	if regenSaveMapping {
		mappingFile := strings.TrimSuffix(bibFile, filepath.Ext(bibFile)) + "_key_mapping.txt"
		if err := os.WriteFile(mappingFile, []byte(formatMappingReport(mapping)), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", mappingFile, err)
		}
		info("Key mapping saved to: %s", filepath.Base(mappingFile))
	}

	return nil
}

// sortedPairs returns the mapping sorted by old key for display; the
// mapping itself stays in order of appearance.
func sortedPairs(mapping bib.KeyMapping) []bib.KeyPair {
	pairs := make([]bib.KeyPair, len(mapping))
	copy(pairs, mapping)
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Old < pairs[j].Old
	})
	return pairs
}

// formatMappingReport renders the human-readable mapping file.
func formatMappingReport(mapping bib.KeyMapping) string {
	var b strings.Builder
	b.WriteString("Old Key -> New Key\n")
	b.WriteString(strings.Repeat("=", 70) + "\n")
	for _, pair := range sortedPairs(mapping) {
		fmt.Fprintf(&b, "%-30s -> %s\n", pair.Old, pair.New)
	}
	return b.String()
}
