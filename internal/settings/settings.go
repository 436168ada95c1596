// Package settings defines the engine's two configuration surfaces:
// per-workspace editor settings (enable/lint toggles, diagnostics
// trigger) and the snapshot view the diagnostic producers consult.
package settings

import "strings"

// DiagnosticsTrigger controls when the editor asks the engine to
// recompute diagnostics.
type DiagnosticsTrigger string

const (
	// DiagnosticsOnEdit runs diagnostics after every edit (subject to the
	// scheduler's debounce for the type-check source).
	DiagnosticsOnEdit DiagnosticsTrigger = "Edit"
	// DiagnosticsOnSave runs diagnostics only after a document is saved.
	DiagnosticsOnSave DiagnosticsTrigger = "Save"
)

// WorkspaceSettings is the editor-supplied configuration for one
// workspace folder, the direct equivalent of the "deno.json"/client
// settings pair consulted throughout the diagnostics engine.
type WorkspaceSettings struct {
	// Enable turns the engine on for this workspace at all. Disabling it
	// makes every producer emit empty diagnostics.
	Enable bool `yaml:"enable"`

	// EnablePaths restricts Enable to a subset of the workspace, given as
	// slash-separated path fragments (e.g. "/src/"); a specifier is covered
	// when it contains one of them. A nil or empty EnablePaths means the
	// whole workspace is covered.
	EnablePaths []string `yaml:"enablePaths,omitempty"`

	// Lint toggles the lint adapter independently of Enable.
	Lint bool `yaml:"lint"`

	// DiagnosticsTrigger controls when the scheduler is invoked at all;
	// the scheduler itself still debounces the type-check chain.
	DiagnosticsTrigger DiagnosticsTrigger `yaml:"diagnosticsTrigger"`

	// ImportMap is the path (relative to the workspace root) of the
	// active import map, or empty when none is configured.
	ImportMap string `yaml:"importMap,omitempty"`
}

// DefaultWorkspaceSettings returns the settings used when no
// configuration file is present.
func DefaultWorkspaceSettings() WorkspaceSettings {
	return WorkspaceSettings{
		Enable:             true,
		Lint:               true,
		DiagnosticsTrigger: DiagnosticsOnEdit,
	}
}

// ConfigSnapshot is the read-only view over configuration a diagnostics
// pass is run against: a consistent WorkspaceSettings per folder, keyed by
// the workspace-relative specifier prefix.
type ConfigSnapshot struct {
	workspaces map[string]WorkspaceSettings
}

// NewConfigSnapshot builds a snapshot from a set of workspace roots to
// their settings.
func NewConfigSnapshot(workspaces map[string]WorkspaceSettings) *ConfigSnapshot {
	return &ConfigSnapshot{workspaces: workspaces}
}

// workspaceSettingsFor returns the settings governing specifier: the
// longest workspace root prefix match, or the default settings if none
// match.
func (c *ConfigSnapshot) workspaceSettingsFor(specifier string) WorkspaceSettings {
	var best WorkspaceSettings
	bestLen := -1
	for root, settings := range c.workspaces {
		if strings.HasPrefix(specifier, root) && len(root) > bestLen {
			best, bestLen = settings, len(root)
		}
	}
	if bestLen < 0 {
		return DefaultWorkspaceSettings()
	}
	return best
}

// SpecifierEnabled reports whether diagnostics are enabled for specifier:
// the workspace's Enable flag, narrowed by EnablePaths when set.
func (c *ConfigSnapshot) SpecifierEnabled(specifier string) bool {
	settings := c.workspaceSettingsFor(specifier)
	if !settings.Enable {
		return false
	}
	if len(settings.EnablePaths) == 0 {
		return true
	}
	for _, p := range settings.EnablePaths {
		if strings.Contains(specifier, p) {
			return true
		}
	}
	return false
}

// LintEnabled reports whether the lint adapter should run at all for
// specifier's workspace, independent of the more granular per-document
// checks internal/lint performs itself.
func (c *ConfigSnapshot) LintEnabled(specifier string) bool {
	return c.workspaceSettingsFor(specifier).Lint
}
