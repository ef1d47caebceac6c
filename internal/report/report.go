// Package report defines the research-report JSON artifact model.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// FlexibleString can unmarshal from either string or number JSON values.
// Report exports are inconsistent about whether year and corpus ID are
// quoted.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*f = FlexibleString(strconv.Itoa(i))
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// Report is a research-report artifact.
type Report struct {
	ID       string    `json:"id"`
	Query    string    `json:"query"`
	Type     string    `json:"type"`
	Sections []Section `json:"sections"`
}

// Section is one report section with its supporting citations.
type Section struct {
	Title     string     `json:"title"`
	TLDR      string     `json:"tldr"`
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}

// Citation links an inline citation ID to paper metadata and excerpts.
type Citation struct {
	ID       string   `json:"id"`
	Paper    Paper    `json:"paper"`
	Snippets []string `json:"snippets"`
}

// Paper holds the bibliographic metadata attached to a citation.
type Paper struct {
	Title      string         `json:"title"`
	Year       FlexibleString `json:"year"`
	Venue      string         `json:"venue"`
	CorpusID   FlexibleString `json:"corpusId"`
	NCitations int            `json:"nCitations"`
	Authors    []Author       `json:"authors"`
}

// Author is a paper author.
type Author struct {
	Name string `json:"name"`
}

// Load reads and decodes a report artifact from path.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &rep, nil
}

// Title renders the document title for a report.
func (r *Report) Title() string {
	reportType := r.Type
	if reportType == "" {
		reportType = "Report"
	}
	query := r.Query
	if query == "" {
		query = "Research Report"
	}
	return fmt.Sprintf("ASTRA %s: %s", reportType, query)
}

// AllCitations collects citations across sections, deduplicated by ID in
// first-occurrence order.
func (r *Report) AllCitations() []Citation {
	seen := make(map[string]bool)
	var citations []Citation
	for _, section := range r.Sections {
		for _, c := range section.Citations {
			if c.ID == "" || seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			citations = append(citations, c)
		}
	}
	return citations
}

var filenameDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// DateFromFilename extracts a leading YYYY-MM-DD date from an artifact
// filename, or "" if the name does not start with one. Report downloads are
// conventionally named <date>-<id>.json.
func DateFromFilename(path string) string {
	base := filepath.Base(path)
	parts := strings.Split(base, "-")
	if len(parts) < 3 {
		return ""
	}
	candidate := strings.Join(parts[:3], "-")
	if !filenameDateRe.MatchString(candidate) {
		return ""
	}
	return candidate[:10]
}
