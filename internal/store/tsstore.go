package store

import (
	"sync"

	"github.com/webtools-dev/tsdiag/internal/protocol"
)

// TsDiagnosticsStore caches the most recent type-check batch, keyed by
// specifier, and only returns diagnostics for a specifier when the caller's
// requested document version matches the version the diagnostics were
// computed against — otherwise a caller reading mid-update sees nothing
// rather than stale diagnostics for the wrong version.
type TsDiagnosticsStore struct {
	mu          sync.Mutex
	diagnostics map[string]VersionedDiagnostics
}

// NewTsDiagnosticsStore returns an empty store.
func NewTsDiagnosticsStore() *TsDiagnosticsStore {
	return &TsDiagnosticsStore{diagnostics: make(map[string]VersionedDiagnostics)}
}

// Get returns the cached diagnostics for specifier if they were computed
// against documentVersion, else nil.
func (s *TsDiagnosticsStore) Get(specifier string, documentVersion *int32) []protocol.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()

	versioned, ok := s.diagnostics[specifier]
	if !ok || !sameVersion(documentVersion, versioned.Version) {
		return nil
	}
	return versioned.Diagnostics
}

// Invalidate removes the cached entries for the given specifiers.
func (s *TsDiagnosticsStore) Invalidate(specifiers []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, specifier := range specifiers {
		delete(s.diagnostics, specifier)
	}
}

// InvalidateAll clears the entire store, e.g. on a workspace-wide
// configuration change.
func (s *TsDiagnosticsStore) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagnostics = make(map[string]VersionedDiagnostics)
}

// Update replaces the store's contents with the results of a fresh
// type-check batch.
func (s *TsDiagnosticsStore) Update(batch Vec) {
	next := make(map[string]VersionedDiagnostics, len(batch))
	for _, record := range batch {
		next[record.Specifier] = record.Versioned
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagnostics = next
}

func sameVersion(a, b *int32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
