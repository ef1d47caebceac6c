package convert

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultCSLName is the filename used for the bundled citation style.
const DefaultCSLName = "apa.csl"

//go:embed data/apa.csl
var defaultCSL []byte

// CopyCSL places a citation style file in targetDir, next to the output
// document. customPath selects a caller-supplied style; otherwise the
// bundled APA style is used. An identical file already in place is left
// alone. Returns the style filename to declare in the front matter.
func CopyCSL(targetDir, customPath string) (string, error) {
	name := DefaultCSLName
	data := defaultCSL

	if customPath != "" {
		b, err := os.ReadFile(customPath)
		if err != nil {
			return "", fmt.Errorf("reading CSL file: %w", err)
		}
		name = filepath.Base(customPath)
		data = b
	}

	target := filepath.Join(targetDir, name)
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return name, nil
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("copying CSL file: %w", err)
	}

	return name, nil
}
