package convert

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"astraconv/internal/cite"
	"astraconv/internal/report"
)

const summaryTitleMaxLen = 60

// Quarto renders a report as Quarto markdown. Citation markers are
// rewritten to [@key] references resolved against the table; bibPath and
// cslName, when non-empty, are declared in the front matter so Quarto can
// render the citations.
func Quarto(rep *report.Report, srcPath, bibPath, cslName string, table *cite.Table) string {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", rep.Title())
	b.WriteString("format:\n")
	b.WriteString("  pdf:\n")
	b.WriteString("    toc: true\n")
	b.WriteString("    number-sections: true\n")

	if bibPath != "" {
		fmt.Fprintf(&b, "bibliography: %s\n", filepath.Base(bibPath))
		if cslName != "" {
			fmt.Fprintf(&b, "csl: %s\n", cslName)
		}
		b.WriteString("link-citations: true\n")
	}

	b.WriteString("---\n\n")

	b.WriteString("## Document Information\n\n")
	fmt.Fprintf(&b, "**Report ID:** `%s`\n\n", orUnknown(rep.ID))

	if date := report.DateFromFilename(srcPath); date != "" {
		fmt.Fprintf(&b, "**Generated:** %s\n\n", date)
	}

	if rep.Query != "" {
		fmt.Fprintf(&b, "**Research Question:** %s\n\n", rep.Query)
	}

	b.WriteString("---\n\n")

	for _, section := range rep.Sections {
		fmt.Fprintf(&b, "## %s\n\n", sectionTitle(section))

		if section.TLDR != "" {
			b.WriteString("::: {.callout-note}\n")
			fmt.Fprintf(&b, "## TL;DR\n%s\n", section.TLDR)
			b.WriteString(":::\n\n")
		}

		if section.Text != "" {
			text := cite.StripModelMarkers(section.Text)
			text = cite.ReplaceMarkers(text, func(display string) string {
				key, _ := table.Resolve(display)
				return fmt.Sprintf("[@%s]", key)
			})
			fmt.Fprintf(&b, "%s\n\n", text)
		}
	}

	if bibPath != "" {
		b.WriteString(summaryTable(rep, table))
		b.WriteString("\n## References\n\n")
		b.WriteString("::: {#refs}\n:::\n")
	} else {
		b.WriteString("\n**Note:** Bibliography file not found. Citations may not render correctly.\n")
	}

	return b.String()
}

// summaryTable renders the cited-sources table appended to Quarto output.
func summaryTable(rep *report.Report, table *cite.Table) string {
	citations := rep.AllCitations()
	if len(citations) == 0 {
		return ""
	}

	sort.Slice(citations, func(i, j int) bool {
		return citations[i].ID < citations[j].ID
	})

	var b strings.Builder
	b.WriteString("\n## References Summary\n\n")
	b.WriteString("The following sources are cited in this report and detailed in the accompanying `.bib` file:\n\n")
	b.WriteString("| Citation | Title | Year | Venue |\n")
	b.WriteString("|----------|-------|------|-------|\n")

	for _, c := range citations {
		paper := c.Paper
		key, _ := table.Resolve(c.ID)

		venue := paper.Venue
		if venue == "" {
			venue = "N/A"
		}

		fmt.Fprintf(&b, "| `@%s` | %s | %s | %s |\n",
			key,
			truncate(orUnknownTitle(paper.Title), summaryTitleMaxLen),
			orUnknownYear(paper.Year.String()),
			venue)
	}

	return b.String()
}
