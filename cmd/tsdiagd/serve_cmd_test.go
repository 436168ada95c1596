package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWatchedConfigPaths(t *testing.T) {
	got := watchedConfigPaths("tsdiag.yaml", "", "import-map.json")
	want := []string{"tsdiag.yaml", "import-map.json"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("watchedConfigPaths mismatch (-want +got):\n%s", diff)
	}
}

func TestWatchedConfigPathsAllEmpty(t *testing.T) {
	if got := watchedConfigPaths("", "", ""); got != nil {
		t.Errorf("watchedConfigPaths(all empty) = %v, want nil", got)
	}
}
