package bib

import (
	"os"
	"path/filepath"
	"strings"
)

// FindSibling locates the bibliography file belonging to a report artifact.
// It tries, in order: the artifact path with a .bib extension, the same with
// the last hyphen replaced by an underscore (a common export naming
// mismatch), a lone .bib file in the artifact's directory, and finally any
// .bib file sharing the artifact's name prefix. Backup and regenerated
// files (.backup, .new.bib) are never candidates. Returns "" when nothing
// matches.
func FindSibling(jsonPath string) string {
	noExt := strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath))

	exact := noExt + ".bib"
	if fileExists(exact) {
		return exact
	}

	dir := filepath.Dir(jsonPath)
	name := filepath.Base(noExt)

	if idx := strings.LastIndex(name, "-"); idx >= 0 {
		alt := filepath.Join(dir, name[:idx]+"_"+name[idx+1:]+".bib")
		if fileExists(alt) {
			return alt
		}
	}

	candidates, err := filepath.Glob(filepath.Join(dir, "*.bib"))
	if err != nil {
		return ""
	}

	var bibs []string
	for _, c := range candidates {
		if strings.HasSuffix(c, ".backup") || strings.HasSuffix(c, ".new.bib") {
			continue
		}
		bibs = append(bibs, c)
	}

	if len(bibs) == 1 {
		return bibs[0]
	}

	if len(bibs) > 1 {
		prefix := strings.SplitN(strings.SplitN(name, "_", 2)[0], "-", 2)[0]
		for _, b := range bibs {
			if strings.Contains(filepath.Base(b), prefix) {
				return b
			}
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
