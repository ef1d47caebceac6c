// Package config handles optional tool configuration.
//
// Configuration is read from .astra.yaml in the working directory (then the
// home directory), with the ASTRA_CSL_FILE environment variable taking
// precedence. A missing config file is not an error; the zero value means
// "use defaults".
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the per-directory configuration filename.
const ConfigFile = ".astra.yaml"

// Config holds tool-level settings.
type Config struct {
	// CSLFile is the default citation style file for json-to-qmd.
	CSLFile string `yaml:"csl_file"`
	// SkipBibPrompt suppresses the interactive prompt when no bibliography
	// file is found.
	SkipBibPrompt bool `yaml:"skip_bib_prompt"`
}

// Load resolves the effective configuration. Lookup order: working
// directory, home directory, environment overrides.
func Load() (*Config, error) {
	var cfg Config

	for _, dir := range searchDirs() {
		path := filepath.Join(dir, ConfigFile)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		break
	}

	if csl := os.Getenv("ASTRA_CSL_FILE"); csl != "" {
		cfg.CSLFile = csl
	}

	return &cfg, nil
}

func searchDirs() []string {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}
