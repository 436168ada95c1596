// Package resolve implements the module-resolution analyzer: given a
// snapshot of open documents and their declared dependencies, it produces
// the domain diagnostics defined in internal/diag (uncached remotes, bad
// node: specifiers, import-map remaps, redirects, JSON attribute-type
// checks).
package resolve

import (
	"github.com/webtools-dev/tsdiag/internal/protocol"
)

// ResolutionKind reports whether a dependency resolved successfully.
type ResolutionKind int

const (
	ResolutionNone ResolutionKind = iota
	ResolutionOk
	ResolutionErr
)

// Resolution is the outcome of resolving one side (code or type) of a
// dependency specifier.
type Resolution struct {
	Kind ResolutionKind

	// Populated when Kind == ResolutionOk.
	Specifier string
	Range     protocol.Range

	// Populated when Kind == ResolutionErr.
	Err *ResolutionError
}

// ResolutionError mirrors the module graph resolver's own error
// taxonomy, enough of it to drive diag.Kind selection.
type ResolutionError struct {
	Kind                 ResolveErrorKind
	BareNodeSpecifier    string // populated when Kind recognizes a missing "node:" prefix
	Message               string
	Range                 protocol.Range
}

type ResolveErrorKind int

const (
	ResolveErrorGeneric ResolveErrorKind = iota
	ResolveErrorInvalidDowngrade
	ResolveErrorInvalidLocalImport
	ResolveErrorImportPrefixMissing
	ResolveErrorInvalidURL
)

// Import is one textual occurrence of a dependency key within a document
// (e.g. a specific `import` statement), used to duplicate diagnostics
// across every occurrence of a repeated import.
type Import struct {
	Range protocol.Range
}

// Dependency is one declared import of a document, with separate code and
// type resolutions (a `@deno-types` comment gives a dependency a type
// resolution distinct from its code resolution).
type Dependency struct {
	Key           string
	Code          *Resolution // nil when no code-side resolution
	Type          *Resolution // nil when no type-side resolution
	IsDynamic     bool
	AttributeType string // import attribute "type", e.g. "json"
	Imports       []Import
}

// principal returns the resolution diagnoseResolution should run against:
// the code resolution if present, else the type resolution.
func (d Dependency) principal() *Resolution {
	if d.Code != nil {
		return d.Code
	}
	return d.Type
}

// CacheMetadata reports the X-Deno-Warning header recorded for a cached
// remote resource, if any.
type CacheMetadata interface {
	Warning(specifier string) (string, bool)
}

// DocumentLookup resolves a specifier to the canonical specifier and media
// type of a tracked document, mirroring the "documents" store's ability to
// redirect a requested URL to the one it was actually fetched from.
type DocumentLookup interface {
	// Lookup reports the canonical specifier and whether it is a JSON
	// module, for a document known to exist at specifier (after following
	// redirects). ok is false when no document is known for specifier.
	Lookup(specifier string) (canonical string, isJSON bool, ok bool)
}

// NpmResolver exposes just enough of the npm resolver to drive NoCacheNpm
// diagnostics.
type NpmResolver interface {
	// Managed reports whether a managed (as opposed to byo-node_modules)
	// npm resolver is in effect.
	Managed() bool
	// PackageReqCached reports whether the given package requirement
	// (e.g. "left-pad@^1.3.0") has already been downloaded.
	PackageReqCached(packageReq string) bool
}

// NodeBuiltins reports which module names are Node.js built-ins.
type NodeBuiltins interface {
	IsBuiltin(name string) bool
}

// SloppyResolver probes for a local module under relaxed extension/index
// rules when the exact specifier a document imported doesn't resolve,
// mirroring the sloppy-imports resolver's suggestion mode: the quick-fix
// data a NoLocal diagnostic carries.
type SloppyResolver interface {
	// Suggest returns the specifier sloppy resolution would use instead of
	// specifier, and a human-readable message describing the suggestion.
	// ok is false when no sloppy match exists.
	Suggest(specifier string) (to string, message string, ok bool)
}

// ImportMap resolves bare/relative specifiers through an active import
// map, and looks up the shortest import-map key for an already-resolved
// specifier (for the remap-suggestion diagnostic).
type ImportMap interface {
	// Resolve reports whether referrer can resolve specifier through the
	// map (used to suppress BareNodeSpecifier when a node: built-in has
	// been explicitly mapped).
	Resolve(specifier, referrer string) bool
	// Lookup returns the shortest import-map key that resolves to
	// resolvedSpecifier from referrer; ok is false when no key does. The
	// analyzer suggests the key whenever it differs from the one used.
	Lookup(resolvedSpecifier, referrer string) (key string, ok bool)
}

// Document is one open, diagnosable document together with its declared
// dependencies.
type Document struct {
	Specifier    string
	Version      *int32
	InNpmPackage bool
	Dependencies map[string]Dependency // keyed by the textual import specifier
}

// Snapshot is the read-only view over workspace state the analyzer needs.
type Snapshot struct {
	Documents     []Document
	CacheMetadata CacheMetadata
	DocumentStore DocumentLookup
	Npm           NpmResolver
	Node          NodeBuiltins
	ImportMap     ImportMap      // nil when no import map is configured
	Sloppy        SloppyResolver // nil disables NoLocal suggestion data
}

// Enabled reports whether diagnostics are enabled for a specifier, the one
// piece of ConfigSnapshot the analyzer consults directly.
type Enabled interface {
	SpecifierEnabled(specifier string) bool
}
