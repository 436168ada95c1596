package resolve

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/webtools-dev/tsdiag/internal/diag"
	"github.com/webtools-dev/tsdiag/internal/protocol"
	"github.com/webtools-dev/tsdiag/internal/store"
)

// Analyze runs the module-resolution analyzer over every open diagnosable
// document in snapshot, fanning the per-document work out across a bounded
// worker pool the way gopls's mod-diagnostics collector does.
//
// ctx cancellation is checked at each document boundary; a cancelled
// context yields whatever records were already computed plus the error.
func Analyze(ctx context.Context, snapshot Snapshot, config Enabled) (store.Vec, error) {
	records := make(store.Vec, len(snapshot.Documents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, doc := range snapshot.Documents {
		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var diagnostics []protocol.Diagnostic
			if config.SpecifierEnabled(doc.Specifier) {
				for key, dep := range doc.Dependencies {
					diagnostics = append(diagnostics, diagnoseDependency(snapshot, doc, key, dep)...)
				}
			}
			records[i] = store.Record{
				Specifier: doc.Specifier,
				Versioned: store.VersionedDiagnostics{Version: doc.Version, Diagnostics: diagnostics},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return records, err
	}
	return records, nil
}

// diagnoseDependency generates diagnostics related to a single dependency:
// an import-map remap suggestion, the principal resolution's diagnostics
// (attached to every textual import occurrence), and — when a distinct
// type dependency exists outside all import ranges — its own diagnostics
// attached to the type range alone.
func diagnoseDependency(snapshot Snapshot, doc Document, key string, dep Dependency) []protocol.Diagnostic {
	if doc.InNpmPackage {
		return nil // surface typescript errors instead
	}

	var out []protocol.Diagnostic

	if snapshot.ImportMap != nil && dep.Code != nil && dep.Code.Kind == ResolutionOk {
		if to, ok := snapshot.ImportMap.Lookup(dep.Code.Specifier, doc.Specifier); ok && key != to {
			out = append(out, diag.Diagnostic{Kind: diag.KindImportMapRemap, From: key, To: to}.ToDiagnostic(dep.Code.Range))
		}
	}

	importRanges := make([]protocol.Range, len(dep.Imports))
	for i, imp := range dep.Imports {
		importRanges[i] = imp.Range
	}

	principal := dep.principal()
	for _, d := range diagnoseResolution(snapshot, doc.Specifier, key, principal, dep.IsDynamic, dep.AttributeType) {
		for _, r := range importRanges {
			out = append(out, d.ToDiagnostic(r))
		}
	}

	// A @deno-types-style type dependency has its own specifier and range
	// distinct from the code import; when no import occurrence falls
	// inside the type resolution's range it needs its own diagnosis pass,
	// attached to the type range alone. This is a textual heuristic
	// (range-not-inside-imports), not a structural association — the
	// producer doesn't yet model type deps as a first-class dependency.
	if dep.Type != nil {
		typeRange := resolutionRange(dep.Type)
		coveredByImport := false
		for _, imp := range dep.Imports {
			if rangeContains(typeRange, imp.Range.Start) {
				coveredByImport = true
				break
			}
		}
		if !coveredByImport {
			for _, d := range diagnoseResolution(snapshot, doc.Specifier, key, dep.Type, dep.IsDynamic, dep.AttributeType) {
				out = append(out, d.ToDiagnostic(typeRange))
			}
		}
	}

	return out
}

func resolutionRange(r *Resolution) protocol.Range {
	if r == nil {
		return protocol.Range{}
	}
	if r.Kind == ResolutionErr && r.Err != nil {
		return r.Err.Range
	}
	return r.Range
}

func rangeContains(r protocol.Range, p protocol.Position) bool {
	after := p.Line > r.Start.Line || (p.Line == r.Start.Line && p.Character >= r.Start.Character)
	before := p.Line < r.End.Line || (p.Line == r.End.Line && p.Character <= r.End.Character)
	return after && before
}

// diagnoseResolution implements the decision tree for a single resolved
// (or failed) dependency side.
func diagnoseResolution(snapshot Snapshot, referrer, dependencyKey string, resolution *Resolution, isDynamic bool, attributeType string) []diag.Diagnostic {
	if resolution == nil {
		return nil
	}

	if resolution.Kind == ResolutionErr {
		d := diag.Diagnostic{Kind: diag.KindResolutionError, ResolutionErrorText: resolution.Err.Message}
		if resolution.Err.Kind == ResolveErrorGeneric && resolution.Err.BareNodeSpecifier != "" {
			d.ResolutionErrorKind = diag.ResolutionErrorBareNodeSpecifier
			d.Specifier = resolution.Err.BareNodeSpecifier
		} else {
			switch resolution.Err.Kind {
			case ResolveErrorInvalidDowngrade:
				d.ResolutionErrorKind = diag.ResolutionErrorInvalidDowngrade
			case ResolveErrorInvalidLocalImport:
				d.ResolutionErrorKind = diag.ResolutionErrorInvalidLocalImport
			case ResolveErrorImportPrefixMissing:
				d.ResolutionErrorKind = diag.ResolutionErrorImportPrefixMissing
			case ResolveErrorInvalidURL:
				d.ResolutionErrorKind = diag.ResolutionErrorInvalidURL
			default:
				d.ResolutionErrorKind = diag.ResolutionErrorResolver
			}
		}
		return []diag.Diagnostic{d}
	}

	if resolution.Kind != ResolutionOk {
		return nil
	}

	specifier := resolution.Specifier
	var out []diag.Diagnostic

	if snapshot.CacheMetadata != nil {
		if message, ok := snapshot.CacheMetadata.Warning(specifier); ok {
			out = append(out, diag.Diagnostic{Kind: diag.KindDenoWarn, Text: message})
		}
	}

	canonical, isJSON, docKnown := false, false, false
	var canonicalSpecifier string
	if snapshot.DocumentStore != nil {
		canonicalSpecifier, isJSON, docKnown = snapshot.DocumentStore.Lookup(specifier)
		canonical = docKnown
	}

	switch {
	case canonical:
		if canonicalSpecifier != specifier {
			out = append(out, diag.Diagnostic{Kind: diag.KindRedirect, From: specifier, To: canonicalSpecifier})
		}
		if isJSON {
			switch {
			case attributeType == "json":
				// no diagnostic
			case attributeType == "" && isDynamic:
				// cannot statically verify a dynamic import's attribute
			case attributeType == "":
				out = append(out, diag.Diagnostic{Kind: diag.KindNoAttributeType})
			default:
				out = append(out, diag.Diagnostic{Kind: diag.KindInvalidAttributeType, AttributeType: attributeType})
			}
		}

	case strings.HasPrefix(specifier, "jsr:"):
		// TODO: check if jsr specifiers are cached.

	case isNpmPackageRef(specifier):
		if snapshot.Npm != nil && snapshot.Npm.Managed() {
			req := npmPackageReq(specifier)
			if !snapshot.Npm.PackageReqCached(req) {
				out = append(out, diag.Diagnostic{Kind: diag.KindNoCacheNpm, PackageReq: req, Specifier: specifier})
			}
		}

	case strings.HasPrefix(specifier, "node:"):
		moduleName := strings.TrimPrefix(specifier, "node:")
		switch {
		case snapshot.Node == nil || !snapshot.Node.IsBuiltin(moduleName):
			out = append(out, diag.Diagnostic{Kind: diag.KindInvalidNodeSpecifier, Specifier: specifier})
		case moduleName == dependencyKey:
			mapped := false
			if snapshot.ImportMap != nil {
				mapped = snapshot.ImportMap.Resolve(moduleName, referrer)
			}
			if !mapped {
				out = append(out, diag.Diagnostic{Kind: diag.KindBareNodeSpecifier, BareNodeName: moduleName})
			}
		case snapshot.Npm != nil && snapshot.Npm.Managed():
			if !snapshot.Npm.PackageReqCached("@types/node") {
				out = append(out, diag.Diagnostic{Kind: diag.KindNoCacheNpm, PackageReq: "@types/node", Specifier: "npm:@types/node"})
			}
		}

	default:
		if strings.HasPrefix(specifier, "file:") {
			d := diag.Diagnostic{Kind: diag.KindNoLocal, Specifier: specifier}
			if snapshot.Sloppy != nil {
				if to, message, ok := snapshot.Sloppy.Suggest(specifier); ok {
					d.NoLocalTo, d.NoLocalMessage = to, message
				}
			}
			out = append(out, d)
		} else {
			out = append(out, diag.Diagnostic{Kind: diag.KindNoCache, Specifier: specifier})
		}
	}

	return out
}

func isNpmPackageRef(specifier string) bool {
	return strings.HasPrefix(specifier, "npm:")
}

func npmPackageReq(specifier string) string {
	return strings.TrimPrefix(specifier, "npm:")
}
