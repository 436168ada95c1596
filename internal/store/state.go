package store

import (
	"sync"

	"github.com/webtools-dev/tsdiag/internal/protocol"
)

type specifierState struct {
	version           *int32
	noCacheDiagnostics []protocol.Diagnostic
}

// DiagnosticsState is the version-monotonic summary the rest of the
// language server consults, independent of the merged diagnostic store the
// publisher maintains. It answers "what version did we last see for this
// document, and is it waiting on a cache download?".
type DiagnosticsState struct {
	mu         sync.RWMutex
	specifiers map[string]specifierState
}

// NewDiagnosticsState returns an empty state.
func NewDiagnosticsState() *DiagnosticsState {
	return &DiagnosticsState{specifiers: make(map[string]specifierState)}
}

// Update records diagnostics for specifier at version. A stored record for
// version V is not overwritten by an update tagged with version V′ < V.
func (s *DiagnosticsState) Update(specifier string, version *int32, diagnostics []protocol.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.specifiers[specifier]; ok && version != nil && current.version != nil && *version < *current.version {
		return
	}

	var noCache []protocol.Diagnostic
	for _, d := range diagnostics {
		if d.Code == "no-cache" || d.Code == "no-cache-npm" {
			noCache = append(noCache, d)
		}
	}
	s.specifiers[specifier] = specifierState{version: version, noCacheDiagnostics: noCache}
}

// Clear drops all state for specifier, e.g. on document close.
func (s *DiagnosticsState) Clear(specifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.specifiers, specifier)
}

// HasNoCacheDiagnostics reports whether specifier is currently waiting on a
// cache download.
func (s *DiagnosticsState) HasNoCacheDiagnostics(specifier string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.specifiers[specifier].noCacheDiagnostics) > 0
}

// NoCacheDiagnostics returns the no-cache/no-cache-npm diagnostics
// currently recorded for specifier.
func (s *DiagnosticsState) NoCacheDiagnostics(specifier string) []protocol.Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]protocol.Diagnostic(nil), s.specifiers[specifier].noCacheDiagnostics...)
}
