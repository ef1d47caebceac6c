package bib

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// skipWords lists common words excluded from the title component of a
// citation key.
var skipWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
	"of": true, "with": true, "by": true, "from": true, "as": true,
	"is": true, "was": true, "are": true, "were": true, "been": true,
	"be": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true,
	"should": true, "could": true, "may": true, "might": true,
	"must": true, "can": true, "using": true, "via": true,
	"through": true, "into": true, "onto": true, "upon": true,
	"about": true, "over": true, "under": true, "between": true,
	"among": true, "during": true, "before": true, "after": true,
	"above": true, "below": true, "this": true, "that": true,
	"these": true, "those": true, "our": true, "their": true,
	"its": true, "his": true, "her": true,
}

const titleKeyWords = 3

var (
	yearRe       = regexp.MustCompile(`\d{4}`)
	titleWordRe  = regexp.MustCompile(`\b[a-zA-Z]+\b`)
	titleStripRe = regexp.MustCompile("[{}\"'`]")
)

// GenerateKey derives a citation key from entry fields using the convention
// FirstAuthorLastNameYearFirstThreeSubstantialTitleWords, e.g.
// Yancosek2024BeaconBayesianEvolutionary.
func GenerateKey(fields map[string]string) string {
	return authorComponent(fields["author"]) +
		yearComponent(fields["year"]) +
		titleComponent(fields["title"])
}

// authorComponent is the capitalized last name of the first author, or
// "Unknown" when no author is present.
func authorComponent(authorField string) string {
	last := FirstAuthorLastName(authorField)
	if last == "" {
		return "Unknown"
	}
	return capitalizeFirst(last)
}

// yearComponent is the first 4-digit run in the year field, or "NoYear".
func yearComponent(yearField string) string {
	if m := yearRe.FindString(yearField); m != "" {
		return m
	}
	return "NoYear"
}

// titleComponent concatenates the first three substantial title words,
// capitalized. Words of length <= 2 and skip words are passed over; if that
// leaves nothing, the first three raw words are used instead. Empty titles
// yield "NoTitle".
func titleComponent(titleField string) string {
	if titleField == "" {
		return "NoTitle"
	}

	title := titleStripRe.ReplaceAllString(titleField, "")
	words := titleWordRe.FindAllString(title, -1)

	var substantial []string
	for _, word := range words {
		if len(word) > 2 && !skipWords[strings.ToLower(word)] {
			substantial = append(substantial, capitalizeFirst(word))
			if len(substantial) >= titleKeyWords {
				break
			}
		}
	}

	if len(substantial) == 0 {
		for i, word := range words {
			if i >= titleKeyWords {
				break
			}
			substantial = append(substantial, capitalizeFirst(word))
		}
	}

	return strings.Join(substantial, "")
}

// capitalizeFirst uppercases the first rune and leaves the rest unchanged.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// KeyPair records a single citation-key rename.
type KeyPair struct {
	Old string
	New string
}

// KeyMapping records renames in order of appearance in the source file.
type KeyMapping []KeyPair

// Lookup returns the new key for an old key.
func (m KeyMapping) Lookup(old string) (string, bool) {
	for _, p := range m {
		if p.Old == old {
			return p.New, true
		}
	}
	return "", false
}

// Changed counts renames where the key actually differs.
func (m KeyMapping) Changed() int {
	n := 0
	for _, p := range m {
		if p.Old != p.New {
			n++
		}
	}
	return n
}

// RegenerateKeys rewrites every parsable entry's citation key in the given
// bibliography content. Unparseable fragments and preamble text pass
// through unchanged. Keys are assigned in order of appearance; when a
// generated key collides with one already assigned in this batch, numeric
// suffixes _1, _2, ... are tried until an unused key is found, so the first
// occurrence keeps the bare key.
func RegenerateKeys(content string) (string, KeyMapping) {
	var (
		out     strings.Builder
		mapping KeyMapping
		taken   = make(map[string]bool)
	)

	for _, fragment := range SplitEntries(content) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		entry := ParseEntry(fragment)
		if entry == nil {
			// Preamble, comments, or malformed entries round-trip as-is.
			out.WriteString(fragment)
			out.WriteString("\n\n")
			continue
		}

		newKey := GenerateKey(entry.Fields)
		base := newKey
		for suffix := 1; taken[newKey]; suffix++ {
			newKey = fmt.Sprintf("%s_%d", base, suffix)
		}
		taken[newKey] = true
		mapping = append(mapping, KeyPair{Old: entry.Key, New: newKey})

		out.WriteString(rewriteKey(entry.Raw, entry.Key, newKey))
		out.WriteString("\n\n")
	}

	return out.String(), mapping
}

// rewriteKey replaces the citation key in an entry header, leaving the body
// untouched.
func rewriteKey(raw, oldKey, newKey string) string {
	headerRe := regexp.MustCompile(`(@\w+\s*\{\s*)` + regexp.QuoteMeta(oldKey))
	return headerRe.ReplaceAllString(raw, "${1}"+newKey)
}
