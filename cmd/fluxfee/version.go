package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/fluxfee"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fluxfee",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fluxfee version %s\n", strings.TrimSpace(fluxfee.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
