package picker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wppick/wppick/pkg/wporg"
	"go.opentelemetry.io/otel/trace"
)

const (
	searchPageSize  = 20
	browsePageSize  = 30
	browseDimension = "popular"
	browseMaxPages  = 2
)

// DefaultMaxPages is the number of pages walked per search term.
const DefaultMaxPages = 3

type registry interface {
	QueryPlugins(ctx context.Context, req wporg.SearchRequest) ([]wporg.Plugin, error)
	PluginInformation(ctx context.Context, slug string) (*wporg.Plugin, error)
}

// Picker selects the next plugin to write about.
type Picker struct {
	registry registry
	criteria Criteria
	maxPages int
	tracer   trace.Tracer
	now      func() time.Time
}

// New creates a Picker instance.
func New(reg registry, criteria Criteria, maxPages int, tracer trace.Tracer) *Picker {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	return &Picker{
		registry: reg,
		criteria: criteria,
		maxPages: maxPages,
		tracer:   tracer,
		now:      time.Now,
	}
}

// Pick walks the query plan page by page and returns the first candidate
// that survives exclusion and viability filtering, enriched with its detail
// record. It falls back to the popular browse listing when the whole plan is
// exhausted, and returns nil when that is empty too: a skipped cycle, not an
// error. Failed or empty pages are skipped silently, discovery never aborts
// on a single fetch.
func (p *Picker) Pick(ctx context.Context, topic string, exclusions Exclusions) (*wporg.Plugin, error) {
	ctx, span := p.tracer.Start(ctx, "picker_pick")
	defer span.End()

	now := p.now()

	for _, query := range buildQueryPlan(topic) {
		logger := log.Ctx(ctx).With().Str("query", query).Logger()

		for page := 1; page <= p.maxPages; page++ {
			plugins, err := p.registry.QueryPlugins(ctx, wporg.SearchRequest{
				Search:  query,
				Page:    page,
				PerPage: searchPageSize,
			})
			if err != nil {
				span.RecordError(err)
				logger.Debug().Err(err).Int("page", page).Msg("Search page failed, moving on")
				continue
			}

			survivors := p.survivors(plugins, exclusions, now)
			if len(survivors) == 0 {
				continue
			}

			return p.elect(logger.WithContext(ctx), survivors), nil
		}
	}

	return p.browsePopular(ctx, exclusions, now)
}

// browsePopular is the fallback path: the registry's popular listing with
// the same filtering and election as the search path.
func (p *Picker) browsePopular(ctx context.Context, exclusions Exclusions, now time.Time) (*wporg.Plugin, error) {
	ctx, span := p.tracer.Start(ctx, "picker_browse_popular")
	defer span.End()

	logger := log.Ctx(ctx).With().Str("browse", browseDimension).Logger()

	maxPages := browseMaxPages
	if p.maxPages < maxPages {
		maxPages = p.maxPages
	}

	for page := 1; page <= maxPages; page++ {
		plugins, err := p.registry.QueryPlugins(ctx, wporg.SearchRequest{
			Browse:  browseDimension,
			Page:    page,
			PerPage: browsePageSize,
		})
		if err != nil {
			span.RecordError(err)
			logger.Debug().Err(err).Int("page", page).Msg("Browse page failed, moving on")
			continue
		}

		survivors := p.survivors(plugins, exclusions, now)
		if len(survivors) == 0 {
			continue
		}

		return p.elect(logger.WithContext(ctx), survivors), nil
	}

	return nil, nil
}

func (p *Picker) survivors(plugins []wporg.Plugin, exclusions Exclusions, now time.Time) []wporg.Plugin {
	var survivors []wporg.Plugin

	for _, plugin := range plugins {
		if exclusions.Excludes(plugin) {
			continue
		}

		if !p.criteria.Match(plugin, now) {
			continue
		}

		survivors = append(survivors, plugin)
	}

	return survivors
}

// elect ranks the survivors and enriches the winner with its detail record.
// A failed detail call degrades to the summary fields instead of losing the
// candidate.
func (p *Picker) elect(ctx context.Context, survivors []wporg.Plugin) *wporg.Plugin {
	ctx, span := p.tracer.Start(ctx, "picker_elect")
	defer span.End()

	top := Rank(survivors)[0]

	detail, err := p.registry.PluginInformation(ctx, top.Slug)
	if err != nil {
		span.RecordError(err)
		log.Ctx(ctx).Warn().Err(err).Str("slug", top.Slug).Msg("Failed to fetch plugin detail, using summary fields")

		winner := top

		return &winner
	}

	winner := wporg.Merge(*detail, top)

	return &winner
}
