package lint

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Options is the project-level lint configuration: which rule sets are
// active and which specifiers the lint adapter should run against at all,
// loaded from a TOML file (tsdiag.toml's [lint] table) rather than the
// editor-supplied YAML workspace settings internal/settings owns.
type Options struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	Rules   []string `toml:"rules"`
}

// LoadOptions parses a tsdiag.toml file's [lint] table.
func LoadOptions(path string) (Options, error) {
	var cfg struct {
		Lint Options `toml:"lint"`
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Options{}, fmt.Errorf("%s: failed to parse lint options: %w", path, err)
	}
	return cfg.Lint, nil
}

// Patterns implements FilePatterns over an Options' Include/Exclude lists,
// matched as plain substrings: a specifier matches if it contains one of the
// Include entries (or Include is empty) and none of the Exclude entries.
type Patterns struct {
	opts Options
}

// NewPatterns returns a FilePatterns backed by opts.
func NewPatterns(opts Options) Patterns {
	return Patterns{opts: opts}
}

// Matches implements FilePatterns.
func (p Patterns) Matches(specifier string) bool {
	for _, exclude := range p.opts.Exclude {
		if strings.Contains(specifier, exclude) {
			return false
		}
	}
	if len(p.opts.Include) == 0 {
		return true
	}
	for _, include := range p.opts.Include {
		if strings.Contains(specifier, include) {
			return true
		}
	}
	return false
}
