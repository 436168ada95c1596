package diag_test

import (
	"testing"

	"github.com/webtools-dev/tsdiag/internal/diag"
	"github.com/webtools-dev/tsdiag/internal/protocol"
)

func TestSourceLabel(t *testing.T) {
	tests := []struct {
		source diag.Source
		want   string
	}{
		{diag.SourceModule, "deno"},
		{diag.SourceLint, "deno-lint"},
		{diag.SourceTypeCheck, "deno-ts"},
	}
	for _, tt := range tests {
		if got := tt.source.Label(); got != tt.want {
			t.Errorf("Source(%d).Label() = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestImportMapRemapToDiagnostic(t *testing.T) {
	d := diag.Diagnostic{
		Kind: diag.KindImportMapRemap,
		From: "../std/assert/mod.ts",
		To:   "/~/std/assert/mod.ts",
	}
	rng := protocol.Range{Start: protocol.Position{Line: 0, Character: 23}, End: protocol.Position{Line: 0, Character: 45}}

	got := d.ToDiagnostic(rng)
	if got.Severity != protocol.SeverityHint {
		t.Errorf("Severity = %v, want SeverityHint", got.Severity)
	}
	if got.Code != "import-map-remap" {
		t.Errorf("Code = %q, want import-map-remap", got.Code)
	}
	if got.Source != "deno" {
		t.Errorf("Source = %q, want deno", got.Source)
	}
	data, ok := got.Data.(map[string]any)
	if !ok {
		t.Fatalf("Data has type %T, want map[string]any", got.Data)
	}
	if data["from"] != "../std/assert/mod.ts" || data["to"] != "/~/std/assert/mod.ts" {
		t.Errorf("Data = %+v, want the remap's from/to", data)
	}
}

// TestCodeActionForImportMapRemap covers the remap quick fix's exact title
// and edit.
func TestCodeActionForImportMapRemap(t *testing.T) {
	d := diag.Diagnostic{
		Kind: diag.KindImportMapRemap,
		From: "../std/assert/mod.ts",
		To:   "/~/std/assert/mod.ts",
	}
	rng := protocol.Range{Start: protocol.Position{Line: 0, Character: 23}, End: protocol.Position{Line: 0, Character: 50}}
	rendered := d.ToDiagnostic(rng)

	action, err := diag.GetCodeAction("file:///a/file.ts", rendered)
	if err != nil {
		t.Fatalf("GetCodeAction: %v", err)
	}
	wantTitle := `Update "../std/assert/mod.ts" to "/~/std/assert/mod.ts" to use import map.`
	if action.Title != wantTitle {
		t.Errorf("Title = %q, want %q", action.Title, wantTitle)
	}
	edits := action.Edit.Changes["file:///a/file.ts"]
	if len(edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(edits))
	}
	if edits[0].NewText != `"/~/std/assert/mod.ts"` {
		t.Errorf("NewText = %q, want %q", edits[0].NewText, `"/~/std/assert/mod.ts"`)
	}
	if edits[0].Range != rng {
		t.Errorf("edit Range = %+v, want %+v", edits[0].Range, rng)
	}
}

// TestIsFixableMatchesGetCodeAction covers the invariant that IsFixable(d)
// holds iff GetCodeAction(spec, d) succeeds.
func TestIsFixableMatchesGetCodeAction(t *testing.T) {
	diagnostics := []protocol.Diagnostic{
		diag.Diagnostic{Kind: diag.KindImportMapRemap, From: "a", To: "b"}.ToDiagnostic(protocol.Range{}),
		diag.Diagnostic{Kind: diag.KindNoCache, Specifier: "https://example.com/mod.ts"}.ToDiagnostic(protocol.Range{}),
		diag.Diagnostic{Kind: diag.KindNoCacheNpm, Specifier: "npm:left-pad", PackageReq: "left-pad@^1.3.0"}.ToDiagnostic(protocol.Range{}),
		diag.Diagnostic{Kind: diag.KindNoAttributeType}.ToDiagnostic(protocol.Range{}),
		diag.Diagnostic{Kind: diag.KindRedirect, From: "a", To: "b"}.ToDiagnostic(protocol.Range{}),
		diag.Diagnostic{Kind: diag.KindBareNodeSpecifier, BareNodeName: "fs"}.ToDiagnostic(protocol.Range{}),
		diag.Diagnostic{Kind: diag.KindNoLocal, Specifier: "./b.ts"}.ToDiagnostic(protocol.Range{}), // no suggestion data: not fixable
		diag.Diagnostic{Kind: diag.KindDenoWarn, Text: "deprecated"}.ToDiagnostic(protocol.Range{}),  // never fixable
	}

	for _, d := range diagnostics {
		wantFixable := diag.IsFixable(d)
		_, err := diag.GetCodeAction("file:///a.ts", d)
		gotFixable := err == nil
		if gotFixable != wantFixable {
			t.Errorf("code %q: IsFixable=%v but GetCodeAction success=%v", d.Code, wantFixable, gotFixable)
		}
	}
}

// TestSpecifierTextForRedirected covers its relative-vs-absolute choice
// across file:/https: referrer and redirect combinations.
func TestSpecifierTextForRedirected(t *testing.T) {
	tests := []struct {
		redirect, referrer, want string
	}{
		{"file:///a/a.ts", "file:///a/mod.ts", "./a.ts"},
		{"file:///a/a.ts", "file:///a/sub/mod.ts", "../a.ts"},
		{"file:///a/sub/a.ts", "file:///a/mod.ts", "./sub/a.ts"},
		{"https://ex/mod.ts", "file:///a/sub/a.ts", "https://ex/mod.ts"},
	}
	for _, tt := range tests {
		if got := diag.SpecifierTextForRedirected(tt.redirect, tt.referrer); got != tt.want {
			t.Errorf("SpecifierTextForRedirected(%q, %q) = %q, want %q", tt.redirect, tt.referrer, got, tt.want)
		}
	}
}
