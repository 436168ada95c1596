package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/webtools-dev/tsdiag/internal/lint"
	"github.com/webtools-dev/tsdiag/internal/settings"
)

// fileConfig is the on-disk shape of tsdiagd's YAML workspace config: one
// entry per workspace root, the same information an editor would normally
// send as LSP didChangeConfiguration/workspaceFolders.
type fileConfig struct {
	Workspaces map[string]settings.WorkspaceSettings `yaml:"workspaces"`
}

// loadSettings parses a YAML workspace config file into a ConfigSnapshot.
// An empty path, or a file that lists no workspaces, yields a single default
// workspace rooted at "/"; a file that cannot be read is an error.
func loadSettings(path string) (*settings.ConfigSnapshot, error) {
	if path == "" {
		return settings.NewConfigSnapshot(map[string]settings.WorkspaceSettings{
			"/": settings.DefaultWorkspaceSettings(),
		}), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workspace config %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing workspace config %s: %w", path, err)
	}
	if len(cfg.Workspaces) == 0 {
		cfg.Workspaces = map[string]settings.WorkspaceSettings{"/": settings.DefaultWorkspaceSettings()}
	}
	return settings.NewConfigSnapshot(cfg.Workspaces), nil
}

// loadLintOptions parses a tsdiag.toml lint config, or returns the zero
// Options (no include/exclude restriction, no configured rules) when path
// is empty.
func loadLintOptions(path string) (lint.Options, error) {
	if path == "" {
		return lint.Options{}, nil
	}
	return lint.LoadOptions(path)
}
