package run

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wppick/wppick/pkg/article"
	"github.com/wppick/wppick/pkg/picker"
	"github.com/wppick/wppick/pkg/search"
	"github.com/wppick/wppick/pkg/tracer"
	"github.com/wppick/wppick/pkg/wordpress"
	"github.com/wppick/wppick/pkg/wporg"
	"go.opentelemetry.io/otel"
)

func run(ctx context.Context, cfg Config) error {
	if cfg.Tracing.Endpoint != "" {
		provider, err := tracer.Setup(cfg.Tracing)
		if err != nil {
			log.Error().Err(err).Msg("Unable to configure the tracer provider.")
			return err
		}

		defer func() { _ = provider.Shutdown(ctx) }()
	}

	registry := wporg.New(cfg.WPOrgURL)
	site := wordpress.New(cfg.WPURL, cfg.WPUsername, cfg.WPPassword)

	posts, err := site.RecentPosts(ctx, time.Duration(cfg.LookbackDays)*24*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to collect recent posts: %w", err)
	}

	exclusions := wordpress.Exclusions(posts)

	log.Info().Int("posts", len(posts)).Int("lookback_days", cfg.LookbackDays).Msg("Collected exclusion sets")

	pick := picker.New(registry, cfg.Criteria(), cfg.MaxPages, otel.Tracer("wppick"))

	candidate, err := pick.Pick(ctx, cfg.Topic, exclusions)
	if err != nil {
		return err
	}

	if candidate == nil {
		log.Info().Str("topic", cfg.Topic).Msg("No viable candidate, skipping this cycle")
		return nil
	}

	logger := log.With().Str("slug", candidate.Slug).Logger()
	logger.Info().
		Str("name", candidate.Name).
		Int("active_installs", candidate.ActiveInstalls).
		Str("url", candidate.PageURL()).
		Msg("Candidate selected")

	var refs []search.Reference

	refs, err = search.NewDuckDuckGo().Search(ctx, candidate.Name+" WordPress plugin", 5)
	if err != nil {
		logger.Warn().Err(err).Msg("Reference search failed, continuing without references")
	}

	var generator article.Generator = article.TemplateGenerator{}
	if cfg.OpenAIAPIKey != "" {
		generator = article.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}

	draft, err := generator.Generate(ctx, article.Request{
		Topic:      cfg.Topic,
		Plugin:     *candidate,
		References: refs,
	})
	if err != nil {
		return fmt.Errorf("failed to generate draft: %w", err)
	}

	if err := article.Validate(draft, *candidate); err != nil {
		logger.Warn().Err(err).Msg("Draft failed validation, skipping this cycle")
		return nil
	}

	scheduledAt := time.Now().Add(time.Duration(cfg.ScheduleHours) * time.Hour)

	if cfg.DryRun {
		logger.Info().
			Str("title", draft.Title).
			Time("scheduled_at", scheduledAt).
			Msg("Dry run: skipping post creation")

		return nil
	}

	post, err := site.CreatePost(ctx, wordpress.NewPost{
		Title:   draft.Title,
		Content: draft.Content,
		Status:  wordpress.StatusFuture,
		Date:    scheduledAt.Format(wordpress.DateLayout),
	})
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	logger.Info().Int("post_id", post.ID).Str("link", post.Link).Msg("Scheduled post created")

	return nil
}
