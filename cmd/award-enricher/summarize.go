// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/award-enricher/internal/results"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <results-file>",
	Short: "Print a table summary of a results file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := results.Load(args[0])
		if err != nil {
			return err
		}
		results.FormatTable(items, cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}
