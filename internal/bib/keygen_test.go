package bib

import (
	"strings"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{
			name: "comma author with stop words in title",
			fields: map[string]string{
				"author": "Yancosek, Amy",
				"year":   "2024",
				"title":  "A Beacon: Bayesian Evolutionary Study",
			},
			want: "Yancosek2024BeaconBayesianEvolutionary",
		},
		{
			name: "first-last author format",
			fields: map[string]string{
				"author": "Amy Yancosek",
				"year":   "2024",
				"title":  "A Beacon: Bayesian Evolutionary Study",
			},
			want: "Yancosek2024BeaconBayesianEvolutionary",
		},
		{
			name: "multiple authors take the first",
			fields: map[string]string{
				"author": "Smith, John and Doe, Jane and Brown, Alice",
				"year":   "2020",
				"title":  "Deep Learning Methods for Genomics",
			},
			want: "Smith2020DeepLearningMethods",
		},
		{
			name: "title with no substantial words falls back to raw tokens",
			fields: map[string]string{
				"author": "Smith, John",
				"year":   "2020",
				"title":  "To Be",
			},
			want: "Smith2020ToBe",
		},
		{
			name: "braced author and title",
			fields: map[string]string{
				"author": "{van der Berg}, Jan",
				"year":   "2019",
				"title":  "{Phylogenetic} Trees in Practice",
			},
			want: "VanderBerg2019PhylogeneticTreesPractice",
		},
		{
			name: "year buried in free text",
			fields: map[string]string{
				"author": "Smith, John",
				"year":   "circa 1998 (reprint)",
				"title":  "Old Results Revisited",
			},
			want: "Smith1998OldResultsRevisited",
		},
		{
			name:   "missing author",
			fields: map[string]string{"year": "2024", "title": "Beacon Study Results"},
			want:   "Unknown2024BeaconStudyResults",
		},
		{
			name:   "missing year",
			fields: map[string]string{"author": "Smith, John", "title": "Beacon Study Results"},
			want:   "SmithNoYearBeaconStudyResults",
		},
		{
			name:   "missing title",
			fields: map[string]string{"author": "Smith, John", "year": "2024"},
			want:   "Smith2024NoTitle",
		},
		{
			name:   "all fields missing",
			fields: map[string]string{},
			want:   "UnknownNoYearNoTitle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateKey(tt.fields)
			if got != tt.want {
				t.Errorf("GenerateKey() = %q, want %q", got, tt.want)
			}

			// Key generation is a pure function of its fields.
			if again := GenerateKey(tt.fields); again != got {
				t.Errorf("GenerateKey() not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestRegenerateKeys_UniqueSuffixes(t *testing.T) {
	entry := `@article{old%d,
  author = {Smith, John},
  title = {Deep Learning Methods},
  year = {2020},
}`
	content := strings.Replace(entry, "%d", "1", 1) + "\n\n" +
		strings.Replace(entry, "%d", "2", 1) + "\n\n" +
		strings.Replace(entry, "%d", "3", 1)

	newContent, mapping := RegenerateKeys(content)

	if len(mapping) != 3 {
		t.Fatalf("RegenerateKeys() produced %d mappings, want 3", len(mapping))
	}

	wantKeys := []string{
		"Smith2020DeepLearningMethods",
		"Smith2020DeepLearningMethods_1",
		"Smith2020DeepLearningMethods_2",
	}
	for i, want := range wantKeys {
		if mapping[i].New != want {
			t.Errorf("mapping[%d].New = %q, want %q", i, mapping[i].New, want)
		}
	}

	seen := make(map[string]bool)
	for _, pair := range mapping {
		if seen[pair.New] {
			t.Errorf("duplicate generated key %q", pair.New)
		}
		seen[pair.New] = true
	}

	for _, want := range wantKeys {
		if !strings.Contains(newContent, "@article{"+want+",") {
			t.Errorf("rewritten content missing header for %q:\n%s", want, newContent)
		}
	}
}

func TestRegenerateKeys_PreservesOrder(t *testing.T) {
	content := `@article{zzz,
  author = {Smith, John},
  title = {Deep Learning Methods},
  year = {2020},
}

@article{aaa,
  author = {Doe, Jane},
  title = {Genome Assembly Pipeline},
  year = {2021},
}`

	_, mapping := RegenerateKeys(content)

	if len(mapping) != 2 {
		t.Fatalf("RegenerateKeys() produced %d mappings, want 2", len(mapping))
	}
	if mapping[0].Old != "zzz" || mapping[1].Old != "aaa" {
		t.Errorf("mapping order = [%s, %s], want source order [zzz, aaa]",
			mapping[0].Old, mapping[1].Old)
	}
}

func TestRegenerateKeys_PassthroughUnparseable(t *testing.T) {
	content := `% Bibliography exported 2024-05-01

@article{good,
  author = {Smith, John},
  title = {Deep Learning Methods},
  year = {2020},
}

@misc{broken entry with no comma}`

	newContent, mapping := RegenerateKeys(content)

	if len(mapping) != 1 {
		t.Fatalf("RegenerateKeys() produced %d mappings, want 1", len(mapping))
	}

	if !strings.Contains(newContent, "% Bibliography exported 2024-05-01") {
		t.Errorf("preamble comment dropped:\n%s", newContent)
	}
	if !strings.Contains(newContent, "@misc{broken entry with no comma}") {
		t.Errorf("unparseable entry not passed through verbatim:\n%s", newContent)
	}
	if !strings.Contains(newContent, "@article{Smith2020DeepLearningMethods,") {
		t.Errorf("parseable entry not rewritten:\n%s", newContent)
	}
}

func TestRegenerateKeys_BodyUntouched(t *testing.T) {
	content := `@article{old1,
  author = {Smith, John},
  title = {Deep Learning Methods},
  year = {2020},
  note = {see old1 in the appendix},
}`

	newContent, _ := RegenerateKeys(content)

	// Only the header key changes; field values referencing the old key
	// stay as they are.
	if !strings.Contains(newContent, "note = {see old1 in the appendix}") {
		t.Errorf("entry body modified:\n%s", newContent)
	}
}

func TestKeyMapping(t *testing.T) {
	m := KeyMapping{
		{Old: "a", New: "Smith2020Deep"},
		{Old: "b", New: "b"},
	}

	if got, ok := m.Lookup("a"); !ok || got != "Smith2020Deep" {
		t.Errorf("Lookup(a) = %q, %v", got, ok)
	}
	if _, ok := m.Lookup("missing"); ok {
		t.Error("Lookup(missing) should not succeed")
	}
	if got := m.Changed(); got != 1 {
		t.Errorf("Changed() = %d, want 1", got)
	}
}
