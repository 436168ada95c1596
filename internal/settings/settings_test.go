package settings_test

import (
	"testing"

	"github.com/webtools-dev/tsdiag/internal/settings"
)

func TestSpecifierEnabledDefaultsWhenNoWorkspaceMatches(t *testing.T) {
	snapshot := settings.NewConfigSnapshot(nil)
	if !snapshot.SpecifierEnabled("file:///a/b.ts") {
		t.Error("SpecifierEnabled = false with no configured workspaces, want the default (true)")
	}
}

func TestSpecifierEnabledRespectsDisabledWorkspace(t *testing.T) {
	snapshot := settings.NewConfigSnapshot(map[string]settings.WorkspaceSettings{
		"file:///a/": {Enable: false},
	})
	if snapshot.SpecifierEnabled("file:///a/b.ts") {
		t.Error("SpecifierEnabled = true for a workspace with Enable: false")
	}
}

func TestSpecifierEnabledLongestPrefixWins(t *testing.T) {
	snapshot := settings.NewConfigSnapshot(map[string]settings.WorkspaceSettings{
		"file:///a/":       {Enable: true},
		"file:///a/vendor/": {Enable: false},
	})
	if snapshot.SpecifierEnabled("file:///a/vendor/lib.ts") {
		t.Error("SpecifierEnabled = true under file:///a/vendor/, want the more specific (disabled) workspace to win")
	}
	if !snapshot.SpecifierEnabled("file:///a/src/main.ts") {
		t.Error("SpecifierEnabled = false under file:///a/src/, want the enabled outer workspace")
	}
}

func TestSpecifierEnabledNarrowedByEnablePaths(t *testing.T) {
	snapshot := settings.NewConfigSnapshot(map[string]settings.WorkspaceSettings{
		"file:///a/": {Enable: true, EnablePaths: []string{"/src/"}},
	})
	if !snapshot.SpecifierEnabled("file:///a/src/main.ts") {
		t.Error("SpecifierEnabled = false for a path matching EnablePaths")
	}
	if snapshot.SpecifierEnabled("file:///a/test/main.ts") {
		t.Error("SpecifierEnabled = true for a path outside EnablePaths")
	}
}

func TestLintEnabledIsIndependentOfEnable(t *testing.T) {
	snapshot := settings.NewConfigSnapshot(map[string]settings.WorkspaceSettings{
		"file:///a/": {Enable: true, Lint: false},
	})
	if snapshot.LintEnabled("file:///a/main.ts") {
		t.Error("LintEnabled = true for a workspace with Lint: false")
	}
}

func TestDefaultWorkspaceSettings(t *testing.T) {
	d := settings.DefaultWorkspaceSettings()
	if !d.Enable || !d.Lint {
		t.Errorf("DefaultWorkspaceSettings = %+v, want Enable and Lint both true", d)
	}
	if d.DiagnosticsTrigger != settings.DiagnosticsOnEdit {
		t.Errorf("DiagnosticsTrigger = %q, want %q", d.DiagnosticsTrigger, settings.DiagnosticsOnEdit)
	}
}
