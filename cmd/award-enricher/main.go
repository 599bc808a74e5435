// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the award-enricher CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/award-enricher/internal/secrets"
	"github.com/pdiddy/award-enricher/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the award-enricher CLI.
var rootCmd = &cobra.Command{
	Use:   "award-enricher",
	Short: "Enrich federal contract awards with registry and SBA profile data",
	Long: `award-enricher searches USAspending for contract awards matching a set of
keywords and agencies, looks up each recipient in the SAM.gov entity
registry, and optionally scrapes the recipient's SBA small-business
profile. The enriched awards are written as one JSON array.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.LoadEnvFile(".env"); err != nil {
			return err
		}
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if debug, _ := cmd.Flags().GetBool("debug"); debug && len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./award-enricher.yaml or ~/.config/award-enricher/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "print progress and per-award errors to stderr")
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("award-enricher")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "award-enricher"))
		}
	}

	viper.SetEnvPrefix("AWARD_ENRICHER")
	viper.AutomaticEnv()

	// Defaults make every key visible to Unmarshal so env overrides apply.
	viper.SetDefault("timeout", "0s")
	viper.SetDefault("user_agent", defaultUserAgent)
	viper.SetDefault("award_search_url", types.DefaultAwardSearchURL)
	viper.SetDefault("entity_search_url", types.DefaultEntitySearchURL)
	viper.SetDefault("profile_url", types.DefaultProfileURL)
	viper.SetDefault("sam_api_key", "")
	viper.SetDefault("template", "")
	viper.SetDefault("results_dir", "results")
	viper.SetDefault("sba", false)

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
