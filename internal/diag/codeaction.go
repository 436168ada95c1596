package diag

import (
	"fmt"
	"strings"

	"github.com/webtools-dev/tsdiag/internal/protocol"
)

// dataField pulls a string field out of a diagnostic's opaque data payload,
// which is a map[string]any whether it was constructed in this process (by
// ToDiagnostic) or decoded off the wire into the any-typed Data field. Any
// other shape, such as an undecoded json.RawMessage, reports the field as
// absent.
func dataField(data any, key string) (string, bool) {
	switch v := data.(type) {
	case map[string]any:
		s, ok := v[key].(string)
		return s, ok
	default:
		return "", false
	}
}

// GetCodeAction produces the quick-fix code action for a diagnostic
// previously emitted by this package, given the specifier of the document
// it was reported against.
func GetCodeAction(specifier protocol.DocumentURI, d protocol.Diagnostic) (protocol.CodeAction, error) {
	switch d.Code {
	case "import-map-remap":
		from, _ := dataField(d.Data, "from")
		to, ok := dataField(d.Data, "to")
		if !ok {
			return protocol.CodeAction{}, fmt.Errorf("diagnostic is missing data")
		}
		return protocol.CodeAction{
			Title:       fmt.Sprintf("Update %q to %q to use import map.", from, to),
			Kind:        protocol.QuickFix,
			Diagnostics: []protocol.Diagnostic{d},
			Edit: &protocol.WorkspaceEdit{Changes: map[protocol.DocumentURI][]protocol.TextEdit{
				specifier: {{Range: d.Range, NewText: fmt.Sprintf("%q", to)}},
			}},
		}, nil

	case "no-attribute-type":
		at := protocol.Range{Start: d.Range.End, End: d.Range.End}
		return protocol.CodeAction{
			Title:       "Insert import attribute.",
			Kind:        protocol.QuickFix,
			Diagnostics: []protocol.Diagnostic{d},
			Edit: &protocol.WorkspaceEdit{Changes: map[protocol.DocumentURI][]protocol.TextEdit{
				specifier: {{Range: at, NewText: ` with { type: "json" }`}},
			}},
		}, nil

	case "no-cache", "no-cache-npm":
		uncached, ok := dataField(d.Data, "specifier")
		if !ok {
			return protocol.CodeAction{}, fmt.Errorf("diagnostic is missing data")
		}
		return protocol.CodeAction{
			Title:       fmt.Sprintf("Cache %q and its dependencies.", uncached),
			Kind:        protocol.QuickFix,
			Diagnostics: []protocol.Diagnostic{d},
			Command: &protocol.Command{
				Command:   "deno.cache",
				Arguments: []any{[]string{uncached}, specifier},
			},
		}, nil

	case "no-local":
		to, ok := dataField(d.Data, "to")
		if !ok {
			return protocol.CodeAction{}, fmt.Errorf("diagnostic is missing data")
		}
		message, _ := dataField(d.Data, "message")
		return protocol.CodeAction{
			Title:       message,
			Kind:        protocol.QuickFix,
			Diagnostics: []protocol.Diagnostic{d},
			Edit: &protocol.WorkspaceEdit{Changes: map[protocol.DocumentURI][]protocol.TextEdit{
				specifier: {{Range: d.Range, NewText: fmt.Sprintf("%q", RelativeSpecifier(to, string(specifier)))}},
			}},
		}, nil

	case "redirect":
		redirect, ok := dataField(d.Data, "redirect")
		if !ok {
			return protocol.CodeAction{}, fmt.Errorf("diagnostic is missing data")
		}
		return protocol.CodeAction{
			Title:       "Update specifier to its redirected specifier.",
			Kind:        protocol.QuickFix,
			Diagnostics: []protocol.Diagnostic{d},
			Edit: &protocol.WorkspaceEdit{Changes: map[protocol.DocumentURI][]protocol.TextEdit{
				specifier: {{Range: d.Range, NewText: fmt.Sprintf("%q", SpecifierTextForRedirected(redirect, string(specifier)))}},
			}},
		}, nil

	case "import-node-prefix-missing":
		name, ok := dataField(d.Data, "specifier")
		if !ok {
			return protocol.CodeAction{}, fmt.Errorf("diagnostic is missing data")
		}
		return protocol.CodeAction{
			Title:       fmt.Sprintf("Update specifier to node:%s", name),
			Kind:        protocol.QuickFix,
			Diagnostics: []protocol.Diagnostic{d},
			Edit: &protocol.WorkspaceEdit{Changes: map[protocol.DocumentURI][]protocol.TextEdit{
				specifier: {{Range: d.Range, NewText: fmt.Sprintf("%q", "node:"+name)}},
			}},
		}, nil

	default:
		return protocol.CodeAction{}, fmt.Errorf("unsupported diagnostic code (%q) provided", d.Code)
	}
}

// SpecifierTextForRedirected chooses between a relative path and the raw
// redirect URL, preferring relative only when both specifiers are file:
// URLs.
func SpecifierTextForRedirected(redirect, referrer string) string {
	if strings.HasPrefix(redirect, "file://") && strings.HasPrefix(referrer, "file://") {
		return RelativeSpecifier(redirect, referrer)
	}
	return redirect
}

// RelativeSpecifier computes a relative path from referrer to specifier,
// prefixing "./" when the naive relative form wouldn't already start with
// "." or "..".
func RelativeSpecifier(specifier, referrer string) string {
	rel, ok := makeRelative(specifier, referrer)
	if !ok {
		return specifier
	}
	if strings.HasPrefix(rel, ".") {
		return rel
	}
	return "./" + rel
}

// makeRelative computes specifier relative to referrer's directory, both
// assumed to be file: URLs (or plain paths) sharing the "file" scheme.
// It mirrors the behavior of a browser URL's makeRelative: a path made of
// ".." segments up out of referrer's directory and back down into
// specifier's.
func makeRelative(specifier, referrer string) (string, bool) {
	sp := stripFileScheme(specifier)
	rp := stripFileScheme(referrer)
	if sp == "" || rp == "" {
		return "", false
	}
	specParts := strings.Split(strings.TrimPrefix(sp, "/"), "/")
	refParts := strings.Split(strings.TrimPrefix(rp, "/"), "/")
	refDir := refParts[:len(refParts)-1]

	common := 0
	for common < len(refDir) && common < len(specParts)-1 && refDir[common] == specParts[common] {
		common++
	}

	var out []string
	for range refDir[common:] {
		out = append(out, "..")
	}
	out = append(out, specParts[common:]...)
	if len(out) == 0 {
		return ".", true
	}
	return strings.Join(out, "/"), true
}

func stripFileScheme(s string) string {
	const prefix = "file://"
	if !strings.HasPrefix(s, prefix) {
		return ""
	}
	return s[len(prefix):]
}
