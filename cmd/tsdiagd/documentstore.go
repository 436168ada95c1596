package main

import "github.com/webtools-dev/tsdiag/internal/file"

// knownDocuments implements resolve.DocumentLookup over the workspace's
// own discovered document list: every specifier the engine has actually
// read is, by definition, a canonical copy of itself — tsdiagd discovers
// documents by walking the workspace root rather than following redirects,
// so there is never a distinct "canonical" specifier to report.
type knownDocuments map[string]bool // specifier -> isJSON

func newKnownDocuments(docs []openDocument) knownDocuments {
	known := make(knownDocuments, len(docs))
	for _, d := range docs {
		known[d.specifier] = file.KindForPath(d.path) == file.JSON
	}
	return known
}

// Lookup reports whether specifier names one of the workspace's tracked
// documents, and whether it's a JSON module.
func (k knownDocuments) Lookup(specifier string) (canonical string, isJSON bool, ok bool) {
	isJSON, ok = k[specifier]
	if !ok {
		return "", false, false
	}
	return specifier, isJSON, true
}
