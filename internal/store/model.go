// Package store holds the diagnostics engine's per-source state: the
// version-pinned type-check cache (TsDiagnosticsStore) and the
// no-cache-diagnostic summary exposed to the rest of the language server
// (DiagnosticsState).
package store

import "github.com/webtools-dev/tsdiag/internal/protocol"

// VersionedDiagnostics pairs a document version with the diagnostics
// produced for it. Every diagnostic-producing chain (module, lint,
// type-check) emits values of this shape.
type VersionedDiagnostics struct {
	Version     *int32
	Diagnostics []protocol.Diagnostic
}

// Record is one document's worth of diagnostics from a single source.
type Record struct {
	Specifier string
	Versioned VersionedDiagnostics
}

// Vec is a batch of records, the unit a chain's generator produces and the
// publisher consumes.
type Vec = []Record
