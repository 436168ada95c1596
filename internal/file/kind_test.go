package file_test

import (
	"testing"

	"github.com/webtools-dev/tsdiag/internal/file"
)

func TestKindForPath(t *testing.T) {
	cases := map[string]file.Kind{
		"a.ts":       file.TypeScript,
		"a.mts":      file.TypeScript,
		"a.TS":       file.TypeScript,
		"a.tsx":      file.TSX,
		"a.d.ts":     file.Dts,
		"a.d.mts":    file.Dts,
		"a.js":       file.JavaScript,
		"a.cjs":      file.JavaScript,
		"a.jsx":      file.JSX,
		"a.json":     file.JSON,
		"a.txt":      file.UnknownKind,
		"noextension": file.UnknownKind,
	}
	for path, want := range cases {
		if got := file.KindForPath(path); got != want {
			t.Errorf("KindForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestKindForPathDtsTakesPrecedenceOverTs(t *testing.T) {
	if got := file.KindForPath("index.d.ts"); got != file.Dts {
		t.Errorf("KindForPath(index.d.ts) = %v, want Dts (not TypeScript)", got)
	}
}

func TestKindForLang(t *testing.T) {
	cases := map[string]file.Kind{
		"typescript":      file.TypeScript,
		"typescriptreact": file.TSX,
		"javascript":      file.JavaScript,
		"javascriptreact": file.JSX,
		"json":            file.JSON,
		"jsonc":           file.JSON,
		"plaintext":       file.UnknownKind,
	}
	for lang, want := range cases {
		if got := file.KindForLang(lang); got != want {
			t.Errorf("KindForLang(%q) = %v, want %v", lang, got, want)
		}
	}
}

func TestKindStringDtsReportsAsTypescript(t *testing.T) {
	if got := file.Dts.String(); got != "typescript" {
		t.Errorf("Dts.String() = %q, want typescript", got)
	}
}
