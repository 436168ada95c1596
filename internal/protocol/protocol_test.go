package protocol_test

import (
	"runtime"
	"testing"

	"github.com/webtools-dev/tsdiag/internal/protocol"
)

func TestURIFromPathRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("path escaping assumptions are POSIX-specific")
	}
	uri := protocol.URIFromPath("/home/user/project/a.ts")
	if uri != "file:///home/user/project/a.ts" {
		t.Errorf("URIFromPath = %q, want file:///home/user/project/a.ts", uri)
	}
	if got := uri.Path(); got != "/home/user/project/a.ts" {
		t.Errorf("Path() = %q, want /home/user/project/a.ts", got)
	}
}

func TestURIFromPathEscapesSpaces(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("path escaping assumptions are POSIX-specific")
	}
	uri := protocol.URIFromPath("/a dir/b.ts")
	if uri != "file:///a%20dir/b.ts" {
		t.Errorf("URIFromPath = %q, want escaped space", uri)
	}
	if got := uri.Path(); got != "/a dir/b.ts" {
		t.Errorf("Path() = %q, want unescaped /a dir/b.ts", got)
	}
}

func TestPathOnNonFileURIIsEmpty(t *testing.T) {
	u := protocol.DocumentURI("npm:chalk")
	if got := u.Path(); got != "" {
		t.Errorf("Path() for a non-file URI = %q, want empty", got)
	}
}

func TestDiagnosticSeverityString(t *testing.T) {
	cases := map[protocol.DiagnosticSeverity]string{
		protocol.SeverityError:       "Error",
		protocol.SeverityWarning:     "Warning",
		protocol.SeverityInformation: "Information",
		protocol.SeverityHint:        "Hint",
		protocol.DiagnosticSeverity(99): "Unknown",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", sev, got, want)
		}
	}
}
