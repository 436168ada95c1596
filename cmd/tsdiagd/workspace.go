package main

import (
	"context"
	"log/slog"

	"github.com/webtools-dev/tsdiag/internal/file"
	"github.com/webtools-dev/tsdiag/internal/importmap"
	"github.com/webtools-dev/tsdiag/internal/lint"
	"github.com/webtools-dev/tsdiag/internal/node"
	"github.com/webtools-dev/tsdiag/internal/npm"
	"github.com/webtools-dev/tsdiag/internal/resolve"
	"github.com/webtools-dev/tsdiag/internal/schedule"
	"github.com/webtools-dev/tsdiag/internal/settings"
	"github.com/webtools-dev/tsdiag/internal/store"
	"github.com/webtools-dev/tsdiag/internal/typecheck"
)

// workspace bundles every reference collaborator cmd/tsdiagd supplies so
// the engine packages can run against real (if minimal) implementations
// of the external interfaces they otherwise consume as abstractions.
type workspace struct {
	root   string
	logger *slog.Logger

	docStore  *file.DiskStore
	config    *settings.ConfigSnapshot
	lintOpts  lint.Options
	importMap *importmap.Map
	npmRes    *npm.Resolver
	nodeBi    node.Builtins

	typecheckAdapter *typecheck.Adapter
}

// snapshot is the schedule.Snapshot this workspace hands to every
// generator: the current set of open documents, scanned fresh for each
// scheduled pass.
type snapshot struct {
	documents []openDocument
}

func (w *workspace) currentSnapshot(ctx context.Context) (snapshot, error) {
	docs, err := discoverDocuments(ctx, w.docStore, w.root)
	if err != nil {
		return snapshot{}, err
	}
	return snapshot{documents: docs}, nil
}

// asSnapshot type-asserts the schedule.Snapshot back to this workspace's
// own snapshot type; the scheduler treats Snapshot as opaque.
func asSnapshot(s schedule.Snapshot) snapshot {
	ss, _ := s.(snapshot)
	return ss
}

func (w *workspace) generateTypeCheck(ctx context.Context, s schedule.Snapshot) (store.Vec, error) {
	docs := asSnapshot(s).documents
	return w.typecheckAdapter.Generate(ctx, typecheckDocuments(docs), w.config)
}

func (w *workspace) generateModule(ctx context.Context, s schedule.Snapshot) (store.Vec, error) {
	docs := asSnapshot(s).documents
	rs := resolve.Snapshot{
		Documents:     resolveDocuments(docs),
		Npm:           w.npmRes,
		Node:          w.nodeBi,
		DocumentStore: newKnownDocuments(docs),
		Sloppy:        fsSloppyResolver{},
	}
	if w.importMap != nil {
		rs.ImportMap = w.importMap
	}
	return resolve.Analyze(ctx, rs, w.config)
}

func (w *workspace) generateLint(ctx context.Context, s schedule.Snapshot) (store.Vec, error) {
	docs := asSnapshot(s).documents
	patterns := lint.NewPatterns(w.lintOpts)
	return lint.Generate(ctx, w.logger, lintDocuments(docs), w.config, patterns, demoLinter{}), nil
}
