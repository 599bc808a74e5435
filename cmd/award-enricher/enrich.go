// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/award-enricher/internal/agency"
	"github.com/pdiddy/award-enricher/internal/awards"
	"github.com/pdiddy/award-enricher/internal/enrich"
	"github.com/pdiddy/award-enricher/internal/entity"
	"github.com/pdiddy/award-enricher/internal/httputil"
	"github.com/pdiddy/award-enricher/internal/logging"
	"github.com/pdiddy/award-enricher/internal/profile"
	"github.com/pdiddy/award-enricher/internal/results"
	"github.com/pdiddy/award-enricher/internal/secrets"
	"github.com/pdiddy/award-enricher/internal/template"
	"github.com/pdiddy/award-enricher/pkg/types"
)

const defaultUserAgent = "award-enricher/0.1"

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Search awards and enrich each recipient",
	Long: `Search USAspending for contract awards matching the given keywords and
agencies, then look up each recipient in the SAM.gov entity registry. With
--sba, also scrape the recipient's SBA small-business profile.

Agencies are given by abbreviation (run "award-enricher agencies" for the
list); unknown abbreviations are ignored. Awards whose recipient cannot be
found in the registry are skipped.

The enriched awards are written to <results-dir>/results_DD_MM_YYYY_HH_MM_SS.json
and printed to stdout.`,
	Example: `  award-enricher enrich --keywords "cloud migration" --keywords "research, development" --agencies DOE,DOD --max 25
  award-enricher enrich --keywords cybersecurity --sba --debug`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords, _ := cmd.Flags().GetStringArray("keywords")
		abbrs, _ := cmd.Flags().GetStringSlice("agencies")
		limit, _ := cmd.Flags().GetInt("max")
		apiKey, _ := cmd.Flags().GetString("api-key")

		var cfg types.EnrichConfig
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		cfg = cfg.WithDefaults()
		cfg.APIKey = secrets.First(apiKey, cfg.APIKey, loadedSecrets[secrets.SAMAPIKey])

		req, err := types.NewSearchRequest(keywords, agency.Resolve(abbrs), limit)
		if err != nil {
			return err
		}

		_, err = runEnrich(cmd.Context(), cfg, req, time.Now(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		return err
	},
}

func init() {
	enrichCmd.Flags().StringArray("keywords", nil, "search keyword; repeat the flag for more than one")
	enrichCmd.Flags().StringSlice("agencies", nil, "awarding agency abbreviations, comma-separated or repeated (e.g. DOE,DOD)")
	enrichCmd.Flags().Int("max", 10, "maximum number of awards to request")
	enrichCmd.Flags().Bool("sba", false, "scrape SBA small-business profiles")
	enrichCmd.Flags().String("template", "", "request template file (.json, .json5, .yaml); default is built in")
	enrichCmd.Flags().String("results-dir", "results", "directory for result files")
	enrichCmd.Flags().String("api-key", "", "SAM.gov API key (overrides config and .secrets/sam-api-key)")
	enrichCmd.Flags().Duration("timeout", 0, "HTTP request timeout (0 waits indefinitely)")
	enrichCmd.MarkFlagRequired("keywords")

	viper.BindPFlag("sba", enrichCmd.Flags().Lookup("sba"))
	viper.BindPFlag("template", enrichCmd.Flags().Lookup("template"))
	viper.BindPFlag("results_dir", enrichCmd.Flags().Lookup("results-dir"))
	viper.BindPFlag("timeout", enrichCmd.Flags().Lookup("timeout"))

	rootCmd.AddCommand(enrichCmd)
}

// runEnrich executes one run with cfg and writes the result file. It returns
// the path of the written file.
func runEnrich(ctx context.Context, cfg types.EnrichConfig, req types.SearchRequest, now time.Time, stdout, stderr io.Writer) (string, error) {
	if cfg.APIKey == "" {
		return "", fmt.Errorf("no SAM.gov API key: pass --api-key, set AWARD_ENRICHER_SAM_API_KEY, or create .secrets/%s", secrets.SAMAPIKey)
	}

	tmpl, err := template.Load(cfg.TemplatePath)
	if err != nil {
		return "", err
	}

	log := logging.New(stderr, cfg.Debug)
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	client := httputil.NewClient(cfg.HTTPConfig, log)

	p := &enrich.Pipeline{
		Awards:   awards.NewClient(client, cfg.AwardSearchURL, tmpl),
		Entities: entity.NewClient(client, cfg.EntitySearchURL, cfg.APIKey),
		Log:      log,
	}
	if cfg.ScrapeProfiles {
		p.Profiles = profile.NewClient(client, cfg.ProfileURL)
	}

	items, stats, err := p.Run(ctx, req)
	if err != nil {
		return "", err
	}
	log.Info().
		Int("awards", stats.Awards).
		Int("enriched", stats.Enriched).
		Int("skipped", stats.Skipped).
		Int("scraped", stats.Scraped).
		Msg("run complete")

	path, err := results.Write(cfg.ResultsDir, items, now, stdout)
	if err != nil {
		return "", err
	}
	if cfg.Debug {
		fmt.Fprintf(stderr, "Wrote %s\n", path)
	}
	return path, nil
}
