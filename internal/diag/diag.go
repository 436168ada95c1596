// Package diag implements the module-level diagnostic domain taxonomy: the
// set of problems the engine's own resolution logic can report (as
// opposed to ones relayed verbatim from the external type-checker), their
// LSP rendering, and the quick-fix code actions available for each.
package diag

import (
	"fmt"

	"github.com/webtools-dev/tsdiag/internal/protocol"
)

// Source identifies which diagnostic-producing chain a diagnostic came
// from. Each has a fixed string label used as the LSP diagnostic source.
type Source int

const (
	SourceModule Source = iota
	SourceLint
	SourceTypeCheck
)

// Label returns the fixed wire label for the source.
func (s Source) Label() string {
	switch s {
	case SourceModule:
		return "deno"
	case SourceLint:
		return "deno-lint"
	case SourceTypeCheck:
		return "deno-ts"
	default:
		return "unknown"
	}
}

// Kind enumerates the module-resolution diagnostics the engine itself can
// produce, distinct from diagnostics relayed from the external
// type-checker or the lint adapter.
type Kind int

const (
	KindDenoWarn Kind = iota
	KindImportMapRemap
	KindInvalidAttributeType
	KindNoAttributeType
	KindNoCache
	KindNoCacheNpm
	KindNoLocal
	KindRedirect
	KindResolutionError
	KindInvalidNodeSpecifier
	KindBareNodeSpecifier
)

// ResolutionErrorKind refines KindResolutionError into the module graph
// resolver's own error taxonomy.
type ResolutionErrorKind int

const (
	ResolutionErrorResolver ResolutionErrorKind = iota
	ResolutionErrorInvalidDowngrade
	ResolutionErrorInvalidLocalImport
	ResolutionErrorImportPrefixMissing
	ResolutionErrorInvalidURL
	ResolutionErrorBareNodeSpecifier
)

// Diagnostic is a module-level domain diagnostic prior to being attached
// to a range and rendered to LSP form.
type Diagnostic struct {
	Kind Kind

	// Populated depending on Kind.
	Text                string // DenoWarn message
	From, To            string // ImportMapRemap.from/to, Redirect.from/to
	AttributeType       string // InvalidAttributeType.got
	Specifier           string // NoCache/NoCacheNpm/NoLocal/InvalidNodeSpecifier.specifier
	PackageReq          string // NoCacheNpm.packageReq
	NoLocalTo           string // NoLocal sloppy-resolution suggestion target
	NoLocalMessage      string // NoLocal sloppy-resolution suggestion message
	BareNodeName        string // BareNodeSpecifier.name
	ResolutionErrorKind ResolutionErrorKind
	ResolutionErrorText string // rendered resolver error message
}

// Code returns the fixed wire code string for the diagnostic.
func (d Diagnostic) Code() string {
	switch d.Kind {
	case KindDenoWarn:
		return "deno-warn"
	case KindImportMapRemap:
		return "import-map-remap"
	case KindInvalidAttributeType:
		return "invalid-attribute-type"
	case KindNoAttributeType:
		return "no-attribute-type"
	case KindNoCache:
		return "no-cache"
	case KindNoCacheNpm:
		return "no-cache-npm"
	case KindNoLocal:
		return "no-local"
	case KindRedirect:
		return "redirect"
	case KindResolutionError:
		switch d.ResolutionErrorKind {
		case ResolutionErrorBareNodeSpecifier:
			return "import-node-prefix-missing"
		case ResolutionErrorInvalidDowngrade:
			return "invalid-downgrade"
		case ResolutionErrorInvalidLocalImport:
			return "invalid-local-import"
		case ResolutionErrorImportPrefixMissing:
			return "import-prefix-missing"
		case ResolutionErrorInvalidURL:
			return "invalid-url"
		default:
			return "resolver-error"
		}
	case KindInvalidNodeSpecifier:
		return "resolver-error"
	case KindBareNodeSpecifier:
		return "import-node-prefix-missing"
	default:
		return "unknown"
	}
}

// ToDiagnostic renders the domain diagnostic into LSP form, attached to
// range.
func (d Diagnostic) ToDiagnostic(r protocol.Range) protocol.Diagnostic {
	var severity protocol.DiagnosticSeverity
	var message string
	var data map[string]any

	switch d.Kind {
	case KindDenoWarn:
		severity, message = protocol.SeverityWarning, d.Text
	case KindImportMapRemap:
		severity = protocol.SeverityHint
		message = fmt.Sprintf("The import specifier can be remapped to %q which will resolve it via the active import map.", d.To)
		data = map[string]any{"from": d.From, "to": d.To}
	case KindInvalidAttributeType:
		severity = protocol.SeverityError
		message = fmt.Sprintf("The module is a JSON module and expected an attribute type of \"json\". Instead got %q.", d.AttributeType)
	case KindNoAttributeType:
		severity = protocol.SeverityError
		message = `The module is a JSON module and not being imported with an import attribute. Consider adding ` + "`with { type: \"json\" }`" + ` to the import statement.`
	case KindNoCache:
		severity = protocol.SeverityError
		message = fmt.Sprintf("Uncached or missing remote URL: %s", d.Specifier)
		data = map[string]any{"specifier": d.Specifier}
	case KindNoCacheNpm:
		severity = protocol.SeverityError
		message = fmt.Sprintf("Uncached or missing npm package: %s", d.PackageReq)
		data = map[string]any{"specifier": d.Specifier}
	case KindNoLocal:
		severity = protocol.SeverityError
		message = noLocalMessage(d.Specifier, d.NoLocalMessage)
		if d.NoLocalTo != "" {
			data = map[string]any{
				"specifier": d.Specifier,
				"to":        d.NoLocalTo,
				"message":   d.NoLocalMessage,
			}
		}
	case KindRedirect:
		severity = protocol.SeverityInformation
		message = fmt.Sprintf("The import of %q was redirected to %q.", d.From, d.To)
		data = map[string]any{"specifier": d.From, "redirect": d.To}
	case KindResolutionError:
		severity = protocol.SeverityError
		message = d.ResolutionErrorText
		if d.ResolutionErrorKind == ResolutionErrorBareNodeSpecifier {
			data = map[string]any{"specifier": d.Specifier}
		}
	case KindInvalidNodeSpecifier:
		severity = protocol.SeverityError
		message = fmt.Sprintf("Unknown Node built-in module: %s", d.Specifier)
	case KindBareNodeSpecifier:
		severity = protocol.SeverityWarning
		message = fmt.Sprintf("%q is resolved to \"node:%s\". If you want to use a built-in Node module, add a \"node:\" prefix.", d.BareNodeName, d.BareNodeName)
		data = map[string]any{"specifier": d.BareNodeName}
	}

	diagnostic := protocol.Diagnostic{
		Range:    r,
		Severity: severity,
		Code:     d.Code(),
		Source:   SourceModule.Label(),
		Message:  message,
	}
	if data != nil {
		diagnostic.Data = data
	}
	return diagnostic
}

func noLocalMessage(specifier, suggestion string) string {
	message := fmt.Sprintf("Unable to load a local module: %s\n", specifier)
	if suggestion != "" {
		return message + suggestion + "."
	}
	return message + "Please check the file path."
}

// IsFixable reports whether a (already-rendered) diagnostic has a quick
// fix available. Mirrors the code-driven rule set from GetCodeAction.
func IsFixable(d protocol.Diagnostic) bool {
	switch d.Code {
	case "import-map-remap", "no-cache", "no-cache-npm", "no-attribute-type",
		"redirect", "import-node-prefix-missing":
		return true
	case "no-local":
		return d.Data != nil
	default:
		return false
	}
}
