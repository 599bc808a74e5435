package types

import "time"

// Default upstream endpoints.
const (
	DefaultAwardSearchURL  = "https://api.usaspending.gov/api/v2/search/spending_by_award/"
	DefaultEntitySearchURL = "https://api.sam.gov/entity-information/v2/entities"
	DefaultProfileURL      = "https://web.sba.gov/pro-net/search/dsp_profile.cfm"
)

// HTTPConfig holds shared HTTP settings used by every upstream client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout, which is
	// the default: a stalled upstream blocks the run.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "award-enricher/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// EndpointConfig names the three upstream endpoints.
type EndpointConfig struct {
	// AwardSearchURL is the spending_by_award search endpoint (POST).
	AwardSearchURL string `json:"award_search_url" yaml:"award_search_url" mapstructure:"award_search_url"`

	// EntitySearchURL is the entity registry endpoint (GET).
	EntitySearchURL string `json:"entity_search_url" yaml:"entity_search_url" mapstructure:"entity_search_url"`

	// ProfileURL is the SBA profile page endpoint (GET).
	ProfileURL string `json:"profile_url" yaml:"profile_url" mapstructure:"profile_url"`
}

// EnrichConfig holds settings for one enrichment run.
type EnrichConfig struct {
	HTTPConfig     `yaml:",inline" mapstructure:",squash"`
	EndpointConfig `yaml:",inline" mapstructure:",squash"`

	// APIKey is the entity registry API key.
	APIKey string `json:"-" yaml:"-" mapstructure:"sam_api_key"`

	// TemplatePath is an optional request template file (.json, .json5,
	// .yaml). Empty selects the built-in template.
	TemplatePath string `json:"template" yaml:"template" mapstructure:"template"`

	// ResultsDir is where timestamped result files are written (default "results").
	ResultsDir string `json:"results_dir" yaml:"results_dir" mapstructure:"results_dir"`

	// ScrapeProfiles enables the SBA profile scrape stage.
	ScrapeProfiles bool `json:"sba" yaml:"sba" mapstructure:"sba"`

	// Debug enables progress and error logging on stderr.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// WithDefaults returns a copy of cfg with empty endpoints and directories
// filled in.
func (cfg EnrichConfig) WithDefaults() EnrichConfig {
	if cfg.AwardSearchURL == "" {
		cfg.AwardSearchURL = DefaultAwardSearchURL
	}
	if cfg.EntitySearchURL == "" {
		cfg.EntitySearchURL = DefaultEntitySearchURL
	}
	if cfg.ProfileURL == "" {
		cfg.ProfileURL = DefaultProfileURL
	}
	if cfg.ResultsDir == "" {
		cfg.ResultsDir = "results"
	}
	return cfg
}
