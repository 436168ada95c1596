// Package typecheck implements the type-check adapter: it batches open
// diagnosable documents into a single request to an external type-check
// service, enforces at most one request in flight, and translates the
// result via internal/diag.
package typecheck

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/webtools-dev/tsdiag/internal/diag"
	"github.com/webtools-dev/tsdiag/internal/store"
)

// Service is the external type-check process (or remote service) the
// adapter delegates to. It is expected to be expensive relative to lint
// and module resolution, which is why the scheduler debounces and
// serializes calls to it.
type Service interface {
	// GetDiagnostics requests diagnostics for the given specifiers, tagged
	// with batchID for the service's own logs/correlation. The result maps
	// specifier to that specifier's raw diagnostics.
	GetDiagnostics(ctx context.Context, batchID string, specifiers []string) (map[string][]diag.TypeCheckDiagnostic, error)
}

// Document is one open, diagnosable document.
type Document struct {
	Specifier string
	Version   *int32
}

// Enabled reports whether a specifier is in scope for diagnostics at all.
type Enabled interface {
	SpecifierEnabled(specifier string) bool
}

// Adapter serializes calls into Service: only one batch request may be in
// flight at a time, matching the external checker's own single-project
// session model.
type Adapter struct {
	service Service
	sema    *semaphore.Weighted
}

// New returns an Adapter that calls service, allowing at most one
// GetDiagnostics call to be in flight at a time.
func New(service Service) *Adapter {
	return &Adapter{service: service, sema: semaphore.NewWeighted(1)}
}

// Generate partitions documents into enabled/disabled, issues a single
// batch request for the enabled set (if non-empty), and returns one
// record per specifier in the service's response, with its translated
// diagnostics (re-checked against config at emit time, in case a
// specifier's enabled state changed between partition and response), plus
// an empty record for every disabled specifier so any prior type
// diagnostics are cleared. An enabled document absent from the response
// gets no record.
func (a *Adapter) Generate(ctx context.Context, documents []Document, config Enabled) (store.Vec, error) {
	if err := a.sema.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer a.sema.Release(1)

	var enabled, disabled []Document
	for _, doc := range documents {
		if config.SpecifierEnabled(doc.Specifier) {
			enabled = append(enabled, doc)
		} else {
			disabled = append(disabled, doc)
		}
	}

	raw := make(map[string][]diag.TypeCheckDiagnostic)
	if len(enabled) > 0 {
		specifiers := make([]string, len(enabled))
		for i, doc := range enabled {
			specifiers[i] = doc.Specifier
		}
		batchID := uuid.NewString()
		result, err := a.service.GetDiagnostics(ctx, batchID, specifiers)
		if err != nil {
			return nil, fmt.Errorf("generating type-check diagnostics: %w", err)
		}
		raw = result
	}

	versions := make(map[string]*int32, len(documents))
	for _, doc := range documents {
		versions[doc.Specifier] = doc.Version
	}

	records := make(store.Vec, 0, len(documents))
	for specifier, rawDiagnostics := range raw {
		var out store.VersionedDiagnostics
		out.Version = versions[specifier]
		if config.SpecifierEnabled(specifier) {
			out.Diagnostics = diag.TypeCheckDiagnosticsToLSP(rawDiagnostics)
		}
		records = append(records, store.Record{Specifier: specifier, Versioned: out})
	}
	for _, doc := range disabled {
		records = append(records, store.Record{
			Specifier: doc.Specifier,
			Versioned: store.VersionedDiagnostics{Version: doc.Version},
		})
	}

	return records, nil
}
