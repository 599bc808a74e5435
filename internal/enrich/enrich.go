// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich drives the enrichment pipeline: one award search, then an
// entity lookup and an optional profile scrape for each award, in order.
//
// Awards are processed one at a time. A failure while processing one award
// drops that award and moves on; only the award search itself is fatal.
package enrich

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/award-enricher/pkg/types"
)

// AwardSearcher returns the awards matching a search request.
type AwardSearcher interface {
	Search(ctx context.Context, req types.SearchRequest) ([]types.AwardRecord, error)
}

// EntityLooker returns the registry profile for a legal business name.
type EntityLooker interface {
	Lookup(ctx context.Context, legalBusinessName string) (types.EntityProfile, error)
}

// ProfileFetcher returns the SBA profile for a unique entity identifier. A
// nil profile with a nil error means the page was not available.
type ProfileFetcher interface {
	Fetch(ctx context.Context, uei string) (*types.SbaProfile, error)
}

// Stats counts what happened to each award in a run.
type Stats struct {
	Awards   int
	Enriched int
	Skipped  int
	Scraped  int
}

// Pipeline wires the three upstream stages together.
type Pipeline struct {
	Awards   AwardSearcher
	Entities EntityLooker
	// Profiles is nil when the scrape stage is disabled.
	Profiles ProfileFetcher
	Log      zerolog.Logger
}

// Run executes one enrichment run. The returned slice is never nil and
// holds one item per successfully processed award, in search-result order.
// An error is returned only when the award search fails or ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, req types.SearchRequest) ([]types.EnrichedItem, Stats, error) {
	awards, err := p.Awards.Search(ctx, req)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("searching awards: %w", err)
	}

	stats := Stats{Awards: len(awards)}
	p.Log.Debug().Int("results", len(awards)).Msg("number of results to process")

	items := make([]types.EnrichedItem, 0, len(awards))
	for i, award := range awards {
		log := p.Log.With().Int("result", i).Logger()
		log.Debug().Msg("processing result")

		item, scraped, err := p.enrichOne(ctx, award)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, stats, fmt.Errorf("run cancelled: %w", ctxErr)
		}
		if err != nil {
			stats.Skipped++
			log.Debug().Err(err).Msg("skipping award")
			continue
		}
		if scraped {
			stats.Scraped++
		}
		items = append(items, item)
	}
	stats.Enriched = len(items)

	p.Log.Debug().
		Int("enriched", stats.Enriched).
		Int("skipped", stats.Skipped).
		Int("scraped", stats.Scraped).
		Msg("run complete")
	return items, stats, nil
}

// enrichOne looks up and optionally scrapes the recipient of one award.
// Panics from malformed upstream data are converted to errors so they skip
// only this award.
func (p *Pipeline) enrichOne(ctx context.Context, award types.AwardRecord) (item types.EnrichedItem, scraped bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing award: %v", r)
		}
	}()

	name, err := award.RecipientName()
	if err != nil {
		return item, false, err
	}

	entity, err := p.Entities.Lookup(ctx, name)
	if err != nil {
		return item, false, fmt.Errorf("%s: %w", name, err)
	}

	item = types.EnrichedItem{
		Award:   award,
		Company: types.Company{EntityProfile: entity},
	}
	if p.Profiles == nil {
		return item, false, nil
	}

	profile, err := p.Profiles.Fetch(ctx, entity.UEISAM)
	if err != nil {
		return types.EnrichedItem{}, false, fmt.Errorf("%s: %w", name, err)
	}
	item.Company.Profile = profile
	return item, profile != nil, nil
}
