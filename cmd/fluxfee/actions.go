package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/fluxfee"
	"github.com/spf13/cobra"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the available actions and their inputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		infos := fluxfee.New(nil).List()

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		}

		for i, info := range infos {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.Name)
			for _, line := range strings.Split(info.Description, "\n") {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", strings.TrimSpace(line))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(actionsCmd)
	actionsCmd.Flags().Bool("json", false, "Print the action metadata as JSON")
}
