// Package publish implements the diagnostic publisher: it merges each
// source's latest batch into a per-specifier union across all sources and
// drives the editor-facing publishDiagnostics calls, including clearing
// publishes for specifiers that drop out of every source.
package publish

import (
	"context"
	"sync"

	"github.com/webtools-dev/tsdiag/internal/diag"
	"github.com/webtools-dev/tsdiag/internal/protocol"
	"github.com/webtools-dev/tsdiag/internal/store"
)

// Client is the editor-facing surface the publisher drives. An
// implementation normalizes the specifier (e.g. mapping a deno:// URL back
// to the editor's own scheme) however it sees fit.
type Client interface {
	PublishDiagnostics(ctx context.Context, specifier string, diagnostics []protocol.Diagnostic, version *int32)
}

// State is the version-pinned summary DiagnosticsState exposes; the
// publisher updates it on every publish, additions and clears alike.
type State interface {
	Update(specifier string, version *int32, diagnostics []protocol.Diagnostic)
}

type bySource map[diag.Source]store.VersionedDiagnostics

// Publisher merges per-source diagnostics per specifier and drives
// publication to the editor. It holds the only mutable state in the
// publish pipeline: the per-specifier union currently believed to be on
// the editor's screen.
type Publisher struct {
	client Client
	state  State

	mu                     sync.Mutex
	diagnosticsBySpecifier map[string]bySource
}

// New returns a Publisher that drives client and keeps state in sync.
func New(client Client, state State) *Publisher {
	return &Publisher{client: client, state: state, diagnosticsBySpecifier: make(map[string]bySource)}
}

// Publish merges batch into the source's slot for every specifier named,
// then cleans up any specifier previously tracked under source that didn't
// appear in this batch. It returns the number of publishDiagnostics calls
// made, and stops early (returning the count so far) if ctx is cancelled
// mid-batch — partial publication is permitted, since the next update will
// supersede it.
//
// Cross-source version pinning is intentionally not enforced: the union
// published for a specifier can mix diagnostics computed against different
// document versions from different sources, trading version correctness
// for no-flicker UX while the editor reconciles per-source versions on its
// own.
func (p *Publisher) Publish(ctx context.Context, source diag.Source, batch store.Vec) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	seen := make(map[string]bool, len(batch))
	messagesSent := 0

	for _, record := range batch {
		if ctx.Err() != nil {
			return messagesSent
		}
		seen[record.Specifier] = true

		bySpecifier, ok := p.diagnosticsBySpecifier[record.Specifier]
		if !ok {
			bySpecifier = make(bySource)
			p.diagnosticsBySpecifier[record.Specifier] = bySpecifier
		}
		bySpecifier[source] = record.Versioned

		union := unionOf(bySpecifier)
		p.state.Update(record.Specifier, record.Versioned.Version, union)
		p.client.PublishDiagnostics(ctx, record.Specifier, union, record.Versioned.Version)
		messagesSent++
	}

	var toRemove []string
	for specifier, bySpecifier := range p.diagnosticsBySpecifier {
		if seen[specifier] {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		removed, had := bySpecifier[source]
		delete(bySpecifier, source)
		if len(bySpecifier) == 0 {
			toRemove = append(toRemove, specifier)
			if had {
				p.state.Update(specifier, removed.Version, nil)
				p.client.PublishDiagnostics(ctx, specifier, nil, removed.Version)
				messagesSent++
			}
		} else if had {
			union := unionOf(bySpecifier)
			p.state.Update(specifier, removed.Version, union)
			p.client.PublishDiagnostics(ctx, specifier, union, removed.Version)
			messagesSent++
		}
	}
	for _, specifier := range toRemove {
		delete(p.diagnosticsBySpecifier, specifier)
	}

	return messagesSent
}

// Clear empties the merged store. Callers (the scheduler) are responsible
// for causing fresh state to reach the editor afterward.
func (p *Publisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.diagnosticsBySpecifier = make(map[string]bySource)
}

func unionOf(bySpecifier bySource) []protocol.Diagnostic {
	var union []protocol.Diagnostic
	for _, versioned := range bySpecifier {
		union = append(union, versioned.Diagnostics...)
	}
	return union
}
