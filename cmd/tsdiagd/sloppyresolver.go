package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/webtools-dev/tsdiag/internal/protocol"
)

// fsSloppyResolver implements resolve.SloppyResolver against the real
// filesystem: it retries a local import that failed to resolve exactly
// against the extensions and index files sloppy imports accepts, so a
// NoLocal diagnostic can offer a quick fix instead of a dead end.
type fsSloppyResolver struct{}

// sloppyExtensions is the order sloppy resolution tries a bare or
// extensionless local import in: TypeScript sources first, then their
// JavaScript counterparts, then ambient declarations.
var sloppyExtensions = []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs", ".d.ts"}

// sloppyJsToTs maps an exact .js-family extension to the TypeScript source
// extensions sloppy imports prefers when the file actually imported
// doesn't exist: authoring in TypeScript but importing with the eventual
// runtime ".js" extension is the common case this covers.
var sloppyJsToTs = map[string][]string{
	".js":  {".ts", ".tsx"},
	".mjs": {".mts"},
	".cjs": {".cts"},
}

func (fsSloppyResolver) Suggest(specifier string) (to string, message string, ok bool) {
	path := protocol.DocumentURI(specifier).Path()
	if path == "" {
		return "", "", false
	}

	for jsExt, tsExts := range sloppyJsToTs {
		if !strings.HasSuffix(path, jsExt) {
			continue
		}
		base := strings.TrimSuffix(path, jsExt)
		for _, tsExt := range tsExts {
			if candidate := base + tsExt; fileExists(candidate) {
				return suggestion(candidate)
			}
		}
	}

	for _, ext := range sloppyExtensions {
		if candidate := path + ext; fileExists(candidate) {
			return suggestion(candidate)
		}
	}

	if dirExists(path) {
		for _, ext := range sloppyExtensions {
			if candidate := filepath.Join(path, "index"+ext); fileExists(candidate) {
				return suggestion(candidate)
			}
		}
	}

	return "", "", false
}

func suggestion(candidate string) (string, string, bool) {
	to := string(protocol.URIFromPath(candidate))
	return to, fmt.Sprintf("Maybe you meant %q instead", filepath.Base(candidate)), true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
