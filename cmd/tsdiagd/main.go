// Command tsdiagd drives the diagnostics engine (internal/schedule and its
// producers) against a workspace on disk, wiring it to reference/demo
// implementations of the collaborators the engine otherwise treats as
// abstract: a file-backed document store, an fsnotify-watched import map,
// YAML/TOML configuration, and an HTTP type-check client. It stands in
// for the editor transport, which remains out of scope.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tsdiagd",
	Short: "Diagnostics engine for a JavaScript/TypeScript language server",
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
