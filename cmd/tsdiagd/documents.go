package main

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"unicode/utf8"

	"github.com/webtools-dev/tsdiag/internal/file"
	"github.com/webtools-dev/tsdiag/internal/lint"
	"github.com/webtools-dev/tsdiag/internal/protocol"
	"github.com/webtools-dev/tsdiag/internal/resolve"
	"github.com/webtools-dev/tsdiag/internal/typecheck"
)

// openDocument is one file tsdiagd treats as open/diagnosable, discovered
// by walking the workspace root rather than tracked via editor
// didOpen/didClose notifications.
type openDocument struct {
	specifier string
	path      string
	version   int32
	handle    file.Handle
}

// importSpecifier matches a quoted module specifier in an import/export/
// require statement. It is a scanner, not a parser: good enough to
// exercise internal/resolve end to end, not a substitute for a real
// TypeScript parser.
var importSpecifier = regexp.MustCompile(`(?:from|import|require\()\s*['"]([^'"]+)['"]`)

func discoverDocuments(ctx context.Context, store *file.DiskStore, root string) ([]openDocument, error) {
	var docs []openDocument
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case "node_modules", ".git":
				return filepath.SkipDir
			}
			return nil
		}
		if file.KindForPath(path) == file.UnknownKind {
			return nil
		}

		specifier := string(protocol.URIFromPath(path))
		handle, err := store.ReadFile(ctx, protocol.DocumentURI(specifier))
		if err != nil {
			return err
		}
		docs = append(docs, openDocument{specifier: specifier, path: path, handle: handle})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// extractDependencies scans source for import-like specifiers and resolves
// each one against the filesystem: a specifier that exists relative to doc
// resolves Ok to its own file:// URI, everything else is left for
// internal/resolve's own decision tree (npm:/node:/bare-node detection) to
// classify, by reporting ResolutionOk with the literal specifier for any
// recognized scheme and a generic error otherwise.
func extractDependencies(doc openDocument, content []byte) map[string]resolve.Dependency {
	matches := importSpecifier.FindAllSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}

	deps := make(map[string]resolve.Dependency, len(matches))
	for _, m := range matches {
		key := string(content[m[2]:m[3]])
		rng := rangeForOffsets(content, m[2], m[3])

		dep, ok := deps[key]
		if !ok {
			dep = resolve.Dependency{Key: key, Code: resolveCode(doc, key)}
		}
		dep.Imports = append(dep.Imports, resolve.Import{Range: rng})
		deps[key] = dep
	}
	return deps
}

func resolveCode(doc openDocument, key string) *resolve.Resolution {
	switch {
	case hasScheme(key):
		return &resolve.Resolution{Kind: resolve.ResolutionOk, Specifier: key}
	default:
		resolved := filepath.Join(filepath.Dir(doc.path), key)
		if _, err := os.Stat(resolved); err == nil {
			return &resolve.Resolution{Kind: resolve.ResolutionOk, Specifier: string(protocol.URIFromPath(resolved))}
		}
		return &resolve.Resolution{
			Kind: resolve.ResolutionErr,
			Err: &resolve.ResolutionError{
				Kind:    resolve.ResolveErrorGeneric,
				Message: "module not found: " + key,
			},
		}
	}
}

func hasScheme(specifier string) bool {
	for _, scheme := range []string{"npm:", "node:", "jsr:", "file:", "http:", "https:"} {
		if len(specifier) >= len(scheme) && specifier[:len(scheme)] == scheme {
			return true
		}
	}
	return false
}

// rangeForOffsets converts a byte-offset span within content to a UTF-16
// line/character range, by counting newlines and UTF-16 code units up to
// each offset.
func rangeForOffsets(content []byte, start, end int) protocol.Range {
	return protocol.Range{
		Start: positionForOffset(content, start),
		End:   positionForOffset(content, end),
	}
}

func positionForOffset(content []byte, offset int) protocol.Position {
	var line, char uint32
	for i := 0; i < offset && i < len(content); {
		r, size := decodeRune(content[i:])
		if r == '\n' {
			line++
			char = 0
		} else {
			char += utf16Len(r)
		}
		i += size
	}
	return protocol.Position{Line: line, Character: char}
}

func decodeRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	return utf8.DecodeRune(b)
}

func utf16Len(r rune) uint32 {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// typecheckDocuments/lintDocuments convert openDocuments into the adapter-
// specific Document shapes.
func typecheckDocuments(docs []openDocument) []typecheck.Document {
	out := make([]typecheck.Document, len(docs))
	for i, d := range docs {
		v := d.version
		out[i] = typecheck.Document{Specifier: d.specifier, Version: &v}
	}
	return out
}

func lintDocuments(docs []openDocument) []lint.Document {
	out := make([]lint.Document, len(docs))
	for i, d := range docs {
		v := d.version
		content, err := d.handle.Content()
		parsed := &lint.ParsedSource{Source: content, Err: err}
		out[i] = lint.Document{Specifier: d.specifier, Version: &v, Parsed: parsed}
	}
	return out
}

func resolveDocuments(docs []openDocument) []resolve.Document {
	out := make([]resolve.Document, len(docs))
	for i, d := range docs {
		v := d.version
		content, err := d.handle.Content()
		var deps map[string]resolve.Dependency
		if err == nil {
			deps = extractDependencies(d, content)
		}
		out[i] = resolve.Document{Specifier: d.specifier, Version: &v, Dependencies: deps}
	}
	return out
}
