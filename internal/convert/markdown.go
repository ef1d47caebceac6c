// Package convert assembles markdown and Quarto documents from report
// artifacts.
package convert

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"astraconv/internal/cite"
	"astraconv/internal/report"
)

const snippetMaxLen = 500

// OutputPath swaps the extension of an input path, e.g. report.json ->
// report.qmd.
func OutputPath(srcPath, ext string) string {
	return strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ext
}

// Markdown renders a report as plain markdown: front matter, section
// bodies with citation display text inlined, and a full references section
// with paper metadata and snippet excerpts.
func Markdown(rep *report.Report, srcPath string) string {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", rep.Title())
	b.WriteString("format: pdf\n")
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "**Report ID:** %s\n\n", orUnknown(rep.ID))

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
			fmt.Fprintf(&b, "**TL;DR:** %s\n\n", section.TLDR)
		}

		if section.Text != "" {
			text := cite.StripModelMarkers(section.Text)
			// Plain markdown keeps the human-readable display text.
			text = cite.ReplaceMarkers(text, func(display string) string {
				return display
			})
			fmt.Fprintf(&b, "%s\n\n", text)
		}
	}

	b.WriteString(referencesSection(rep))

	return b.String()
}

// referencesSection renders full reference entries, sorted by citation ID.
func referencesSection(rep *report.Report) string {
	citations := rep.AllCitations()
	if len(citations) == 0 {
		return ""
	}

	sort.Slice(citations, func(i, j int) bool {
		return citations[i].ID < citations[j].ID
	})

	var b strings.Builder
	b.WriteString("\n## References\n\n")

	for _, c := range citations {
		paper := c.Paper

		fmt.Fprintf(&b, "### %s\n\n", c.ID)
		fmt.Fprintf(&b, "%s (%s). *%s*", authorList(paper.Authors),
			orUnknownYear(paper.Year.String()), orUnknownTitle(paper.Title))
		if paper.Venue != "" {
			fmt.Fprintf(&b, ". %s", paper.Venue)
		}
		b.WriteString(".\n\n")

		if paper.CorpusID != "" {
			fmt.Fprintf(&b, "- **Corpus ID:** %s\n", paper.CorpusID)
		}
		if paper.NCitations > 0 {
			fmt.Fprintf(&b, "- **Citations:** %d\n", paper.NCitations)
		}

		if len(c.Snippets) > 0 {
			b.WriteString("\n**Key Excerpts:**\n\n")
			for i, snippet := range c.Snippets {
				fmt.Fprintf(&b, "%d. %s\n\n", i+1, truncate(snippet, snippetMaxLen))
			}
		}

		b.WriteString("---\n\n")
	}

	return b.String()
}

func sectionTitle(s report.Section) string {
	if s.Title == "" {
		return "Untitled Section"
	}
	return s.Title
}

func authorList(authors []report.Author) string {
	var names []string
	for _, a := range authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	if len(names) == 0 {
		return "Unknown Authors"
	}
	return strings.Join(names, ", ")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orUnknownYear(s string) string {
	if s == "" {
		return "Unknown Year"
	}
	return s
}

func orUnknownTitle(s string) string {
	if s == "" {
		return "Unknown Title"
	}
	return s
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
