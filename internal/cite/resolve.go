package cite

import (
	"regexp"
	"strings"
)

// Match reports which resolution stage produced a key.
type Match int

const (
	// MatchDirect means the normalized marker was found in the table.
	MatchDirect Match = iota
	// MatchUnwrapped means the marker matched after stripping parentheses.
	MatchUnwrapped
	// MatchSynthesized means an AuthorYear key was fabricated from the
	// marker text; it may not exist in the bibliography.
	MatchSynthesized
	// MatchSanitized means the marker was reduced to its alphanumeric
	// characters as a last resort.
	MatchSanitized
)

var (
	// synthRe extracts a leading author name and a 4-digit year from a
	// marker, tolerating optional parentheses and an "et al." in between.
	synthRe = regexp.MustCompile(`^\(?([A-Za-z]+)(?:\s+et\s+al\.)?,?\s+(\d{4})\)?`)

	sanitizeRe = regexp.MustCompile(`[^\p{L}\p{N}]`)
)

// Resolve maps a raw citation marker to a bibliography key. Lookup order:
// the normalized marker, the marker with a wrapping () pair removed, a
// synthesized AuthorYear key, and finally the marker stripped to its
// alphanumeric characters. Resolution always yields a key; unresolved
// markers degrade rather than fail.
func (t *Table) Resolve(raw string) (string, Match) {
	if t != nil {
		normalized := strings.ToLower(strings.TrimSpace(raw))
		if key, ok := t.variants[normalized]; ok {
			return key, MatchDirect
		}

		unwrapped := strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), "()")))
		if key, ok := t.variants[unwrapped]; ok {
			return key, MatchUnwrapped
		}
	}

	if m := synthRe.FindStringSubmatch(strings.TrimSpace(raw)); m != nil {
		return m[1] + m[2], MatchSynthesized
	}

	return sanitizeRe.ReplaceAllString(raw, ""), MatchSanitized
}
