package cite

import (
	"regexp"
	"strings"
)

var (
	// paperMarkerRe matches inline citation placeholders of the form
	// <Paper ... paperTitle="(Author et al., Year)" ...></Paper>.
	paperMarkerRe = regexp.MustCompile(`<Paper[^>]*paperTitle="([^"]*)"[^>]*></Paper>`)

	// paperTitleRe extracts the display string from a matched marker.
	paperTitleRe = regexp.MustCompile(`paperTitle="([^"]*)"`)

	// modelMarkerRe matches provenance annotations, content included.
	modelMarkerRe = regexp.MustCompile(`<Model[^>]*>.*?</Model>`)

	// modelOrphanRe matches self-closing or unpaired provenance tags.
	modelOrphanRe = regexp.MustCompile(`<Model[^>]*/?>`)

	runSpaceRe   = regexp.MustCompile(`[ \t]{2,}`)
	spacePunctRe = regexp.MustCompile(`\s+([.,;:!?])`)
)

// Markers returns the display strings of all citation placeholders in text.
func Markers(text string) []string {
	var titles []string
	for _, m := range paperMarkerRe.FindAllStringSubmatch(text, -1) {
		titles = append(titles, m[1])
	}
	return titles
}

// ReplaceMarkers rewrites every citation placeholder in text using the
// given formatter, which receives the marker's display string.
func ReplaceMarkers(text string, format func(display string) string) string {
	return paperMarkerRe.ReplaceAllStringFunc(text, func(marker string) string {
		m := paperTitleRe.FindStringSubmatch(marker)
		if m == nil {
			return marker
		}
		return format(m[1])
	})
}

// StripModelMarkers removes provenance annotations from text, including any
// enclosed content, then tidies the leftover spacing: runs of horizontal
// whitespace collapse to one space (line breaks are preserved) and
// whitespace before punctuation is dropped. Idempotent.
func StripModelMarkers(text string) string {
	text = modelMarkerRe.ReplaceAllString(text, "")
	text = modelOrphanRe.ReplaceAllString(text, "")
	text = runSpaceRe.ReplaceAllString(text, " ")
	text = spacePunctRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
