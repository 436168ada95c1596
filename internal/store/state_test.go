package store_test

import (
	"testing"

	"github.com/webtools-dev/tsdiag/internal/protocol"
	"github.com/webtools-dev/tsdiag/internal/store"
)

func int32p(v int32) *int32 { return &v }

func TestDiagnosticsStateUpdateFiltersNoCacheCodes(t *testing.T) {
	s := store.NewDiagnosticsState()
	s.Update("file:///app.ts", int32p(1), []protocol.Diagnostic{
		{Code: "no-cache", Message: "awaiting cache"},
		{Code: "no-cache-npm", Message: "awaiting npm cache"},
		{Code: "some-other-code", Message: "unrelated"},
	})

	if !s.HasNoCacheDiagnostics("file:///app.ts") {
		t.Fatal("HasNoCacheDiagnostics = false, want true")
	}
	got := s.NoCacheDiagnostics("file:///app.ts")
	if len(got) != 2 {
		t.Fatalf("NoCacheDiagnostics returned %d entries, want 2 (no-cache, no-cache-npm only)", len(got))
	}
}

func TestDiagnosticsStateIgnoresStaleVersion(t *testing.T) {
	s := store.NewDiagnosticsState()
	s.Update("file:///app.ts", int32p(5), []protocol.Diagnostic{{Code: "no-cache"}})
	s.Update("file:///app.ts", int32p(3), nil) // stale: should not clear the version-5 record

	if !s.HasNoCacheDiagnostics("file:///app.ts") {
		t.Error("a stale (older-version) Update cleared a newer record")
	}
}

func TestDiagnosticsStateNewerVersionReplaces(t *testing.T) {
	s := store.NewDiagnosticsState()
	s.Update("file:///app.ts", int32p(1), []protocol.Diagnostic{{Code: "no-cache"}})
	s.Update("file:///app.ts", int32p(2), nil)

	if s.HasNoCacheDiagnostics("file:///app.ts") {
		t.Error("a newer Update with no no-cache diagnostics did not clear the prior record")
	}
}

func TestDiagnosticsStateClear(t *testing.T) {
	s := store.NewDiagnosticsState()
	s.Update("file:///app.ts", int32p(1), []protocol.Diagnostic{{Code: "no-cache"}})
	s.Clear("file:///app.ts")

	if s.HasNoCacheDiagnostics("file:///app.ts") {
		t.Error("HasNoCacheDiagnostics = true after Clear")
	}
}
