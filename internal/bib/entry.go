// Package bib parses BibTeX-style bibliography files and regenerates
// citation keys.
//
// The parser is deliberately shallow: it recognizes `@type{key,` headers and
// first-level `name = {value}` / `name = "value"` fields. Nested braces,
// cross-references, and multi-line values are not handled; fragments that do
// not match the expected shape round-trip unchanged.
package bib

import (
	"regexp"
	"strings"
)

// Entry is a parsed bibliography entry.
type Entry struct {
	Type   string            // Entry type (article, inproceedings, ...)
	Key    string            // Citation key as it appears in the source
	Fields map[string]string // Lowercased field name -> value
	Raw    string            // Full source text of the entry
}

var (
	// entrySplitRe marks positions immediately before an @type{ header.
	entrySplitRe = regexp.MustCompile(`@\w+\s*\{`)

	// entryHeaderRe matches the @type{key, header.
	entryHeaderRe = regexp.MustCompile(`^@(\w+)\s*\{\s*([^,]+)\s*,`)

	// fieldRe matches first-level name = {value} or name = "value" pairs.
	fieldRe = regexp.MustCompile(`(\w+)\s*=\s*[{"]([^}"]*)["}\s]*`)
)

// SplitEntries splits bibliography content into fragments, one per @type{
// header. Text before the first header (comments, preamble) becomes the
// first fragment.
func SplitEntries(content string) []string {
	locs := entrySplitRe.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return []string{content}
	}

	var fragments []string
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev || prev == 0 {
			fragments = append(fragments, content[prev:loc[0]])
		}
		prev = loc[0]
	}
	fragments = append(fragments, content[prev:])

	// The leading fragment is empty when content starts with an entry.
	if fragments[0] == "" {
		fragments = fragments[1:]
	}
	return fragments
}

// ParseEntry parses one bibliography fragment. It returns nil for fragments
// that do not match the @type{key, shape; callers pass those through
// verbatim.
func ParseEntry(fragment string) *Entry {
	m := entryHeaderRe.FindStringSubmatch(fragment)
	if m == nil {
		return nil
	}

	return &Entry{
		Type:   m[1],
		Key:    strings.TrimSpace(m[2]),
		Fields: ParseFields(fragment),
		Raw:    fragment,
	}
}

// ParseFields extracts first-level fields from an entry fragment. Shared by
// key generation and variant-table construction so both see identical field
// values.
func ParseFields(fragment string) map[string]string {
	fields := make(map[string]string)
	for _, m := range fieldRe.FindAllStringSubmatch(fragment, -1) {
		fields[strings.ToLower(m[1])] = m[2]
	}
	return fields
}

// FirstAuthorLastName extracts the last name of the first author from a
// BibTeX author field, with non-alphanumeric characters stripped. Returns ""
// when no name can be extracted.
func FirstAuthorLastName(authorField string) string {
	cleaned := strings.TrimSpace(strings.NewReplacer("{", "", "}", "").Replace(authorField))
	if cleaned == "" {
		return ""
	}

	first := strings.TrimSpace(andSplitRe.Split(cleaned, -1)[0])

	var last string
	if idx := strings.Index(first, ","); idx >= 0 {
		// "Last, First"
		last = strings.TrimSpace(first[:idx])
	} else {
		// "First Last"
		parts := strings.Fields(first)
		if len(parts) == 0 {
			return ""
		}
		last = parts[len(parts)-1]
	}

	return nonAlnumRe.ReplaceAllString(last, "")
}

var (
	andSplitRe = regexp.MustCompile(`(?i)\s+and\s+`)
	nonAlnumRe = regexp.MustCompile(`[^\p{L}\p{N}]`)
)
