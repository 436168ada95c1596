package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webtools-dev/tsdiag/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tsdiagd version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version.Version())
		return nil
	},
}
