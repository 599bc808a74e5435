// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/award-enricher/internal/agency"
)

var agenciesCmd = &cobra.Command{
	Use:   "agencies",
	Short: "List the agency abbreviations accepted by --agencies",
	Run: func(cmd *cobra.Command, args []string) {
		for _, abbr := range agency.Known() {
			name, _ := agency.Name(abbr)
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", abbr, name)
		}
	},
}

func init() {
	rootCmd.AddCommand(agenciesCmd)
}
