// Package config loads the optional `.minic.yaml` project config file:
// default output format, optimization level, and the directory Graphviz
// output is written to. Grounded on SPEC_FULL.md §11's ambient-stack
// entry for configuration, using gopkg.in/yaml.v3 — the YAML library the
// retrieval pack's raymyers-ralph-cc-go depends on.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OptLevel selects how much of the middle-end pipeline runs before the
// result is printed or interpreted.
type OptLevel string

const (
	// OptNone stops after the IR builder: no folding, no mem-to-reg.
	OptNone OptLevel = "none"
	// OptFold additionally runs immediate-operand folding.
	OptFold OptLevel = "fold"
	// OptSSA is the full pipeline: folding followed by mem-to-reg/SSA
	// promotion. This is the default.
	OptSSA OptLevel = "ssa"
)

// Format names a textual output mode. Load reads it from the config file,
// but no CLI subcommand consults it: `ir` always prints textual IR and
// `dot` always writes Graphviz.
type Format string

const (
	FormatIR  Format = "ir"
	FormatDot Format = "dot"
)

// Config is the shape of a `.minic.yaml` file. Every field is optional;
// zero values fall back to Default's.
type Config struct {
	Format      Format   `yaml:"format"`
	OptLevel    OptLevel `yaml:"opt_level"`
	GraphvizDir string   `yaml:"graphviz_dir"`
}

// Default returns the configuration used when no `.minic.yaml` is
// present or a field is left unset.
func Default() Config {
	return Config{
		Format:      FormatIR,
		OptLevel:    OptSSA,
		GraphvizDir: ".",
	}
}

// Load reads and parses path, overlaying any fields it sets onto
// Default(). A missing file is not an error — it just yields the
// defaults, since `.minic.yaml` is optional per SPEC_FULL.md §11.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}

	if overlay.Format != "" {
		cfg.Format = overlay.Format
	}
	if overlay.OptLevel != "" {
		cfg.OptLevel = overlay.OptLevel
	}
	if overlay.GraphvizDir != "" {
		cfg.GraphvizDir = overlay.GraphvizDir
	}
	return cfg, nil
}
