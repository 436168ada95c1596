package lint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/webtools-dev/tsdiag/internal/lint"
)

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tsdiag.toml")
	const body = `
[lint]
include = ["src/"]
exclude = ["src/vendor/"]
rules = ["no-debugger", "no-unused-vars"]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := lint.LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	want := lint.Options{
		Include: []string{"src/"},
		Exclude: []string{"src/vendor/"},
		Rules:   []string{"no-debugger", "no-unused-vars"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadOptions mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOptionsMissingLintTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tsdiag.toml")
	if err := os.WriteFile(path, []byte("# no [lint] table\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := lint.LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if len(got.Include) != 0 || len(got.Exclude) != 0 || len(got.Rules) != 0 {
		t.Errorf("LoadOptions with no [lint] table = %+v, want zero value", got)
	}
}

func TestPatternsMatches(t *testing.T) {
	tests := []struct {
		name string
		opts lint.Options
		spec string
		want bool
	}{
		{"no filters matches everything", lint.Options{}, "src/app.ts", true},
		{"include filter excludes non-matching", lint.Options{Include: []string{"src/"}}, "test/app.ts", false},
		{"include filter allows matching", lint.Options{Include: []string{"src/"}}, "src/app.ts", true},
		{"exclude wins over include", lint.Options{Include: []string{"src/"}, Exclude: []string{"src/vendor/"}}, "src/vendor/lib.ts", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := lint.NewPatterns(tt.opts)
			if got := p.Matches(tt.spec); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}
