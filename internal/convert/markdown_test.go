package convert

import (
	"strings"
	"testing"

	"astraconv/internal/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		ID:    "rpt-123",
		Query: "How do beacons evolve?",
		Type:  "Literature Review",
		Sections: []report.Section{
			{
				Title: "Background",
				TLDR:  "Beacons evolve slowly.",
				Text: `Convergence was shown <Paper corpusId="1" paperTitle="(Smith et al., 2020)"></Paper> ` +
					`recently <Model source="gen">draft</Model> .`,
				Citations: []report.Citation{
					{
						ID: "(Smith et al., 2020)",
						Paper: report.Paper{
							Title:      "Deep Learning Methods",
							Year:       "2020",
							Venue:      "Nature",
							CorpusID:   "12345",
							NCitations: 42,
							Authors:    []report.Author{{Name: "John Smith"}},
						},
						Snippets: []string{"An excerpt from the paper."},
					},
				},
			},
			{
				Title: "Open Problems",
			},
		},
	}
}

func TestMarkdown(t *testing.T) {
	got := Markdown(sampleReport(), "/tmp/2024-05-01-report.json")

	checks := []string{
		"title: \"ASTRA Literature Review: How do beacons evolve?\"",
		"format: pdf",
		"**Report ID:** rpt-123",
		"**Generated:** 2024-05-01",
		"**Research Question:** How do beacons evolve?",
		"## Background",
		"**TL;DR:** Beacons evolve slowly.",
		// Citation markers keep their display text; provenance markers and
		// the space before the final period are gone.
		"Convergence was shown (Smith et al., 2020) recently.",
		"## Open Problems",
		"## References",
		"### (Smith et al., 2020)",
		"John Smith (2020). *Deep Learning Methods*. Nature.",
		"- **Corpus ID:** 12345",
		"- **Citations:** 42",
		"1. An excerpt from the paper.",
	}

	for _, want := range checks {
		if !strings.Contains(got, want) {
			t.Errorf("Markdown() output missing %q\n---\n%s", want, got)
		}
	}

	if strings.Contains(got, "<Model") || strings.Contains(got, "<Paper") {
		t.Errorf("Markdown() output still contains markers:\n%s", got)
	}
}

func TestMarkdown_EmptyReport(t *testing.T) {
	got := Markdown(&report.Report{}, "report.json")

	if !strings.Contains(got, "title: \"ASTRA Report: Research Report\"") {
		t.Errorf("Markdown() missing default title:\n%s", got)
	}
	if strings.Contains(got, "## References") {
		t.Errorf("Markdown() should have no references section without citations:\n%s", got)
	}
}

func TestMarkdown_SnippetTruncation(t *testing.T) {
	rep := sampleReport()
	rep.Sections[0].Citations[0].Snippets = []string{strings.Repeat("x", 600)}

	got := Markdown(rep, "report.json")

	if strings.Contains(got, strings.Repeat("x", 600)) {
		t.Error("Markdown() should truncate long snippets")
	}
	if !strings.Contains(got, "...") {
		t.Error("Markdown() truncated snippet should end with ellipsis")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		src  string
		ext  string
		want string
	}{
		{"/tmp/report.json", ".qmd", "/tmp/report.qmd"},
		{"report.json", ".md", "report.md"},
		{"noext", ".md", "noext.md"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.src, tt.ext); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.src, tt.ext, got, tt.want)
		}
	}
}
