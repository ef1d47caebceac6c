package convert

import (
	"strings"
	"testing"

	"astraconv/internal/cite"
)

const quartoBib = `@article{smith2020paper,
  author = {Smith, John},
  title = {Deep Learning Methods},
  year = {2020},
}
`

func TestQuarto_WithBibliography(t *testing.T) {
	table := cite.BuildTable(quartoBib)
	got := Quarto(sampleReport(), "/tmp/2024-05-01-report.json", "/tmp/2024-05-01-report.bib", "apa.csl", table)

	checks := []string{
		"title: \"ASTRA Literature Review: How do beacons evolve?\"",
		"format:\n  pdf:\n    toc: true\n    number-sections: true",
		"bibliography: 2024-05-01-report.bib",
		"csl: apa.csl",
		"link-citations: true",
		"## Document Information",
		"**Report ID:** `rpt-123`",
		"**Generated:** 2024-05-01",
		"::: {.callout-note}\n## TL;DR\nBeacons evolve slowly.\n:::",
		// The citation marker resolves against the bibliography.
		"Convergence was shown [@smith2020paper] recently.",
		"## References Summary",
		"| Citation | Title | Year | Venue |",
		"| `@smith2020paper` | Deep Learning Methods | 2020 | Nature |",
		"## References",
		"::: {#refs}\n:::",
	}

	for _, want := range checks {
		if !strings.Contains(got, want) {
			t.Errorf("Quarto() output missing %q\n---\n%s", want, got)
		}
	}

	if strings.Contains(got, "<Paper") || strings.Contains(got, "<Model") {
		t.Errorf("Quarto() output still contains markers:\n%s", got)
	}
}

func TestQuarto_WithoutBibliography(t *testing.T) {
	got := Quarto(sampleReport(), "/tmp/report.json", "", "", nil)

	if strings.Contains(got, "bibliography:") {
		t.Errorf("Quarto() should not declare a bibliography:\n%s", got)
	}
	if !strings.Contains(got, "**Note:** Bibliography file not found.") {
		t.Errorf("Quarto() missing missing-bibliography note:\n%s", got)
	}
	// Markers still convert, synthesizing keys from the display text.
	if !strings.Contains(got, "[@Smith2020]") {
		t.Errorf("Quarto() should synthesize citation keys without a bibliography:\n%s", got)
	}
}

func TestQuarto_SummaryTitleTruncation(t *testing.T) {
	rep := sampleReport()
	rep.Sections[0].Citations[0].Paper.Title = strings.Repeat("Long Title ", 10)

	table := cite.BuildTable(quartoBib)
	got := Quarto(rep, "r.json", "r.bib", "apa.csl", table)

	if strings.Contains(got, strings.Repeat("Long Title ", 10)) {
		t.Errorf("Quarto() should truncate long titles in the summary table:\n%s", got)
	}
}
