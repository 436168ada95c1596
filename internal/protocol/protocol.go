// Package protocol defines the LSP wire types the diagnostics engine
// produces and consumes: positions, ranges, diagnostics, code actions and
// workspace edits. It is a hand-picked subset of the full Language Server
// Protocol surface — only the shapes the diagnostics engine needs to
// publish and act on, not a complete protocol binding.
package protocol

import (
	"net/url"
	"path/filepath"
	"strings"
)

// DocumentURI identifies a text document, matching the LSP wire
// representation (a string, not a parsed URL) so it round-trips byte for
// byte through JSON.
type DocumentURI string

// URIFromPath converts an absolute filesystem path to a "file://" document
// URI.
func URIFromPath(path string) DocumentURI {
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return DocumentURI("file://" + (&url.URL{Path: path}).EscapedPath())
}

// Path returns the filesystem path for a "file://" URI, or "" if u isn't
// one.
func (u DocumentURI) Path() string {
	const scheme = "file://"
	if !strings.HasPrefix(string(u), scheme) {
		return ""
	}
	p, err := url.PathUnescape(strings.TrimPrefix(string(u), scheme))
	if err != nil {
		p = strings.TrimPrefix(string(u), scheme)
	}
	return filepath.FromSlash(p)
}

// Position is a zero-based line/character position, with character
// counted in UTF-16 code units as the protocol requires.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range is a half-open [Start, End) span within a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// DiagnosticSeverity mirrors the LSP DiagnosticSeverity enum.
type DiagnosticSeverity uint32

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	case SeverityInformation:
		return "Information"
	case SeverityHint:
		return "Hint"
	default:
		return "Unknown"
	}
}

// DiagnosticTag mirrors the LSP DiagnosticTag enum.
type DiagnosticTag uint32

const (
	Unnecessary DiagnosticTag = 1
	Deprecated  DiagnosticTag = 2
)

// CodeDescription points at documentation for a diagnostic code.
type CodeDescription struct {
	Href string `json:"href"`
}

// DiagnosticRelatedInformation links a diagnostic to other locations that
// explain it, e.g. the original declaration an "unused" diagnostic refers
// to.
type DiagnosticRelatedInformation struct {
	Location Location `json:"location"`
	Message  string   `json:"message"`
}

// Location is a range within a specific document.
type Location struct {
	URI   DocumentURI `json:"uri"`
	Range Range       `json:"range"`
}

// Diagnostic is a single problem reported against a range of a document.
//
// Data carries source-specific metadata (e.g. a redirected specifier, or
// the npm package name behind a "no-cache" diagnostic) that code actions
// read back out; it round-trips opaquely through JSON and is built as a
// map[string]any and read back field by field rather than unmarshaled into
// a fixed struct, since its shape varies per diagnostic code.
type Diagnostic struct {
	Range              Range                          `json:"range"`
	Severity           DiagnosticSeverity             `json:"severity,omitempty"`
	// Code is a string for domain diagnostics (e.g. "no-cache") and a
	// number for type-check diagnostics, matching the LSP wire union.
	Code               any                            `json:"code,omitempty"`
	CodeDescription    *CodeDescription               `json:"codeDescription,omitempty"`
	Source             string                         `json:"source,omitempty"`
	Message            string                         `json:"message"`
	Tags               []DiagnosticTag                `json:"tags,omitempty"`
	RelatedInformation []DiagnosticRelatedInformation `json:"relatedInformation,omitempty"`
	Data               any                            `json:"data,omitempty"`
}

// TextEdit replaces the text within Range with NewText.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// WorkspaceEdit describes a set of changes to apply across documents, keyed
// by document URI, in support of a code action's Edit.
type WorkspaceEdit struct {
	Changes map[DocumentURI][]TextEdit `json:"changes,omitempty"`
}

// Command is a reference to a command the client can execute, used by code
// actions whose fix isn't a plain text edit (e.g. triggering a cache
// download).
type Command struct {
	Title     string `json:"title"`
	Command   string `json:"command"`
	Arguments []any  `json:"arguments,omitempty"`
}

// CodeActionKind categorizes a CodeAction the way LSP clients group them in
// a quick-fix menu.
type CodeActionKind string

const (
	QuickFix CodeActionKind = "quickfix"
)

// CodeAction is a single fix offered for one or more diagnostics.
type CodeAction struct {
	Title       string         `json:"title"`
	Kind        CodeActionKind `json:"kind,omitempty"`
	Diagnostics []Diagnostic   `json:"diagnostics,omitempty"`
	Edit        *WorkspaceEdit `json:"edit,omitempty"`
	Command     *Command       `json:"command,omitempty"`
}

// PublishDiagnosticsParams is the payload of a textDocument/publishDiagnostics
// notification.
type PublishDiagnosticsParams struct {
	URI         DocumentURI  `json:"uri"`
	Version     *int32       `json:"version,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// DiagnosticBatchNotificationParams reports that a scheduled diagnostic
// pass has finished, so a test harness (or an editor with the internal
// sync flag enabled) can wait for a specific generation rather than
// polling.
type DiagnosticBatchNotificationParams struct {
	BatchIndex     int `json:"batchIndex"`
	MessagesLength int `json:"messagesLen"`
}
