package lint_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/webtools-dev/tsdiag/internal/lint"
	"github.com/webtools-dev/tsdiag/internal/protocol"
)

type settings struct {
	lintEnabled, specifierEnabled bool
}

func (s settings) LintEnabled(string) bool      { return s.lintEnabled }
func (s settings) SpecifierEnabled(string) bool { return s.specifierEnabled }

type fixedPatterns struct{ matches bool }

func (p fixedPatterns) Matches(string) bool { return p.matches }

type stubLinter struct {
	diagnostics []protocol.Diagnostic
	err         error
	calls       int
}

func (l *stubLinter) Lint(specifier string, parsed any) ([]protocol.Diagnostic, error) {
	l.calls++
	return l.diagnostics, l.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestGenerateSkipsLintDisabledDocuments(t *testing.T) {
	docs := []lint.Document{{Specifier: "file:///a.ts", Parsed: &lint.ParsedSource{Source: []byte("debugger;")}}}
	linter := &stubLinter{diagnostics: []protocol.Diagnostic{{Message: "no-debugger"}}}

	got := lint.Generate(context.Background(), testLogger(), docs, settings{lintEnabled: false, specifierEnabled: true}, fixedPatterns{true}, linter)
	if len(got) != 0 {
		t.Errorf("got %d records for a lint-disabled document, want 0", len(got))
	}
	if linter.calls != 0 {
		t.Errorf("linter invoked %d times for a lint-disabled document, want 0", linter.calls)
	}
}

func TestGenerateSkipsNpmDocuments(t *testing.T) {
	docs := []lint.Document{{Specifier: "file:///node_modules/pkg/index.ts", InNpm: true, Parsed: &lint.ParsedSource{Source: []byte("x")}}}
	linter := &stubLinter{}

	got := lint.Generate(context.Background(), testLogger(), docs, settings{lintEnabled: true, specifierEnabled: true}, fixedPatterns{true}, linter)
	if len(got) != 0 {
		t.Errorf("got %d records for an npm-package document, want 0", len(got))
	}
}

func TestGenerateRunsLinterForEligibleDocument(t *testing.T) {
	docs := []lint.Document{{Specifier: "file:///a.ts", Parsed: &lint.ParsedSource{Source: []byte("debugger;")}}}
	linter := &stubLinter{diagnostics: []protocol.Diagnostic{{Code: "no-debugger"}}}

	got := lint.Generate(context.Background(), testLogger(), docs, settings{lintEnabled: true, specifierEnabled: true}, fixedPatterns{true}, linter)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if len(got[0].Versioned.Diagnostics) != 1 {
		t.Errorf("got %d diagnostics, want 1", len(got[0].Versioned.Diagnostics))
	}
	if linter.calls != 1 {
		t.Errorf("linter invoked %d times, want 1", linter.calls)
	}
}

func TestGenerateSkipsDocumentsOutsidePatterns(t *testing.T) {
	docs := []lint.Document{{Specifier: "file:///vendor/lib.ts", Parsed: &lint.ParsedSource{Source: []byte("x")}}}
	linter := &stubLinter{diagnostics: []protocol.Diagnostic{{Code: "no-debugger"}}}

	got := lint.Generate(context.Background(), testLogger(), docs, settings{lintEnabled: true, specifierEnabled: true}, fixedPatterns{false}, linter)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1 (still one record, just with no diagnostics)", len(got))
	}
	if len(got[0].Versioned.Diagnostics) != 0 {
		t.Errorf("got %d diagnostics for a pattern-excluded document, want 0", len(got[0].Versioned.Diagnostics))
	}
	if linter.calls != 0 {
		t.Errorf("linter invoked %d times for a pattern-excluded document, want 0", linter.calls)
	}
}

func TestGenerateSkipsUnparsedDocument(t *testing.T) {
	docs := []lint.Document{{Specifier: "file:///broken.ts", Parsed: &lint.ParsedSource{Err: context.DeadlineExceeded}}}
	linter := &stubLinter{diagnostics: []protocol.Diagnostic{{Code: "no-debugger"}}}

	got := lint.Generate(context.Background(), testLogger(), docs, settings{lintEnabled: true, specifierEnabled: true}, fixedPatterns{true}, linter)
	if len(got[0].Versioned.Diagnostics) != 0 {
		t.Errorf("got diagnostics for a document with a parse error, want none")
	}
	if linter.calls != 0 {
		t.Errorf("linter invoked %d times for a document with a parse error, want 0", linter.calls)
	}
}
