// Package lint implements the lint adapter: given the set of open
// diagnosable documents, it runs the configured lint rules against each
// document's parsed source and translates findings to diagnostics.
//
// Rule execution itself is an external collaborator (the lint-rule
// loader, out of scope per the engine's own boundary) — this package owns
// only the per-document eligibility checks and the fan-out, not the rules.
package lint

import (
	"context"
	"log/slog"

	"github.com/webtools-dev/tsdiag/internal/protocol"
	"github.com/webtools-dev/tsdiag/internal/store"
)

// ParsedSource is the result of parsing a document, as produced by
// whatever parser backs the editor session. A failed parse is represented
// by Err being non-nil; Source is nil in that case.
type ParsedSource struct {
	Source any
	Err    error
}

// Document is one open, lintable document.
type Document struct {
	Specifier string
	Version   *int32
	InNpm     bool
	Parsed    *ParsedSource // nil when content was unavailable entirely
}

// Linter runs the configured lint rules against a parsed source and
// returns one diagnostic per finding. Implementations adapt whatever rule
// engine is loaded; this package only decides whether and when to call it.
type Linter interface {
	Lint(specifier string, parsed any) ([]protocol.Diagnostic, error)
}

// FilePatterns reports whether a specifier falls within the configured
// lint file-pattern set.
type FilePatterns interface {
	Matches(specifier string) bool
}

// Settings exposes the per-document lint toggle and the global enabled
// check the adapter consults before running any rule.
type Settings interface {
	LintEnabled(specifier string) bool
	SpecifierEnabled(specifier string) bool
}

// Generate runs the lint adapter over every open diagnosable document,
// honoring cancellation at each document boundary.
func Generate(ctx context.Context, logger *slog.Logger, documents []Document, settings Settings, patterns FilePatterns, linter Linter) store.Vec {
	records := make(store.Vec, 0, len(documents))
	for _, doc := range documents {
		if !settings.LintEnabled(doc.Specifier) {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		if doc.InNpm {
			continue
		}
		records = append(records, store.Record{
			Specifier: doc.Specifier,
			Versioned: store.VersionedDiagnostics{
				Version:     doc.Version,
				Diagnostics: generateDocument(logger, doc, settings, patterns, linter),
			},
		})
	}
	return records
}

func generateDocument(logger *slog.Logger, doc Document, settings Settings, patterns FilePatterns, linter Linter) []protocol.Diagnostic {
	if !settings.SpecifierEnabled(doc.Specifier) {
		return nil
	}
	if patterns != nil && !patterns.Matches(doc.Specifier) {
		return nil
	}
	if doc.Parsed == nil {
		logger.Error("missing document contents", "specifier", doc.Specifier)
		return nil
	}
	if doc.Parsed.Err != nil {
		return nil
	}
	diagnostics, err := linter.Lint(doc.Specifier, doc.Parsed.Source)
	if err != nil {
		logger.Error("lint rule execution failed", "specifier", doc.Specifier, "error", err)
		return nil
	}
	return diagnostics
}
