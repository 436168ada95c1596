// Package file defines types used for working with documents tracked by
// the diagnostics engine: identity, content handles, and the kind
// taxonomy (TypeScript/JavaScript/JSON/declaration files) that source
// adapters use to decide whether a document is in scope.
package file

import (
	"context"
	"fmt"

	"github.com/webtools-dev/tsdiag/internal/protocol"
)

// An Identity identifies the specifier and contents of a document.
type Identity struct {
	Specifier protocol.DocumentURI
	Hash      Hash // digest of document contents
}

func (id Identity) String() string {
	return fmt.Sprintf("%s%s", id.Specifier, id.Hash)
}

// A Handle represents the specifier, content, hash, and optional version
// of a document tracked by the engine.
//
// Document content may come from the file system (for saved files) or an
// in-memory overlay, for open documents with unsaved edits. A Handle may
// record an attempt to read a non-existent document, in which case
// Content returns an error.
type Handle interface {
	// Specifier is the URI for this document handle.
	Specifier() protocol.DocumentURI
	// Identity returns an Identity for the document, even if there was an
	// error reading it.
	Identity() Identity
	// SameContentsOnDisk reports whether the document has the same content
	// on disk: it is false for documents open in an editor with unsaved
	// edits.
	SameContentsOnDisk() bool
	// Version returns the document version, as assigned by the editor. For
	// on-disk handles, Version returns 0.
	Version() int32
	// Kind reports what kind of document this is.
	Kind() Kind
	// Content returns the contents of the document. If the document isn't
	// available, Content returns a nil slice and an error.
	Content() ([]byte, error)
}

// A Store maps specifiers to Handles.
type Store interface {
	// ReadFile returns the Handle for a given specifier, either by reading
	// its content or by obtaining it from a cache.
	//
	// Invariant: ReadFile must only return an error in the case of context
	// cancellation. If ctx.Err() is nil, the resulting error must also be
	// nil.
	ReadFile(ctx context.Context, specifier protocol.DocumentURI) (Handle, error)
}
