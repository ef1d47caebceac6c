// Package cite maps free-text citation markers to bibliography keys.
//
// Bibliography entries are indexed under several lowercase "author year"
// surface forms, so markers like "(Smith et al., 2020)" and "smith2020"
// resolve to the same key.
package cite

import (
	"fmt"
	"regexp"
	"strings"

	"astraconv/internal/bib"
)

// Collision records a surface form claimed by more than one bibliography
// entry. The later entry wins the table slot; the collision is kept for
// diagnostics.
type Collision struct {
	Variant    string // Normalized surface form
	Previous   string // Key that was overwritten
	ReplacedBy string // Key now occupying the slot
}

// Table maps normalized citation surface forms to bibliography keys.
type Table struct {
	variants   map[string]string
	Collisions []Collision
}

var tableYearRe = regexp.MustCompile(`\d{4}`)

// BuildTable indexes a bibliography's entries under their author-year
// surface forms. Entries without an extractable author or 4-digit year are
// skipped. When two entries generate the same surface form, the later entry
// overwrites the earlier one.
func BuildTable(bibContent string) *Table {
	t := &Table{variants: make(map[string]string)}

	for _, fragment := range bib.SplitEntries(bibContent) {
		entry := bib.ParseEntry(strings.TrimSpace(fragment))
		if entry == nil {
			continue
		}

		author := bib.FirstAuthorLastName(entry.Fields["author"])
		year := tableYearRe.FindString(entry.Fields["year"])
		if author == "" || year == "" {
			continue
		}

		for _, variant := range surfaceForms(author, year) {
			normalized := strings.ToLower(strings.TrimSpace(variant))
			if prev, ok := t.variants[normalized]; ok && prev != entry.Key {
				t.Collisions = append(t.Collisions, Collision{
					Variant:    normalized,
					Previous:   prev,
					ReplacedBy: entry.Key,
				})
			}
			t.variants[normalized] = entry.Key
		}
	}

	return t
}

// surfaceForms lists the recognized ways an author-year citation appears in
// report text.
func surfaceForms(author, year string) []string {
	return []string{
		fmt.Sprintf("%s%s", author, year),
		fmt.Sprintf("%setal%s", author, year),
		fmt.Sprintf("(%s et al., %s)", author, year),
		fmt.Sprintf("(%s, %s)", author, year),
		fmt.Sprintf("%s et al., %s", author, year),
		fmt.Sprintf("%s, %s", author, year),
	}
}

// Len reports the number of indexed surface forms.
func (t *Table) Len() int {
	return len(t.variants)
}

// Keys reports the number of distinct bibliography keys in the table.
func (t *Table) Keys() int {
	distinct := make(map[string]bool)
	for _, key := range t.variants {
		distinct[key] = true
	}
	return len(distinct)
}
