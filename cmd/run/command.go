package run

import (
	"github.com/ettle/strcase"
	"github.com/urfave/cli/v2"
	"github.com/wppick/wppick/pkg/logger"
	"github.com/wppick/wppick/pkg/picker"
	"github.com/wppick/wppick/pkg/wporg"
)

const (
	flagLogLevel = "log-level"
	flagConfig   = "config"

	flagTopic    = "topic"
	flagWPOrgURL = "wporg-url"

	flagWPURL      = "wp-url"
	flagWPUsername = "wp-username"
	flagWPPassword = "wp-password"

	flagLookbackDays  = "lookback-days"
	flagScheduleHours = "schedule-hours"
	flagDryRun        = "dry-run"

	flagOpenAIAPIKey = "openai-api-key"
	flagOpenAIModel  = "openai-model"

	flagMinInstalls   = "min-installs"
	flagMaxDays       = "max-days"
	flagMinRating     = "min-rating"
	flagRequireTested = "require-tested"
	flagWPOrgMaxPages = "wporg-max-pages"

	flagTracingEndpoint    = "tracing-endpoint"
	flagTracingUsername    = "tracing-username"
	flagTracingPassword    = "tracing-password"
	flagTracingProbability = "tracing-probability"
)

// Command creates the run command.
func Command() *cli.Command {
	cmd := &cli.Command{
		Name:        "run",
		Usage:       "Run wppick",
		Description: "Run one publication cycle: pick a plugin, draft an article, schedule the post",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "Log level",
				EnvVars: []string{strcase.ToSNAKE(flagLogLevel)},
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    flagConfig,
				Usage:   "Configuration file (yaml, toml or json)",
				EnvVars: []string{strcase.ToSNAKE(flagConfig)},
			},
			&cli.StringFlag{
				Name:    flagTopic,
				Usage:   "Topic to search plugins for",
				EnvVars: []string{strcase.ToSNAKE(flagTopic)},
				Value:   "WordPress",
			},
			&cli.StringFlag{
				Name:    flagWPOrgURL,
				Usage:   "Plugin registry API URL",
				EnvVars: []string{strcase.ToSNAKE(flagWPOrgURL)},
				Value:   wporg.DefaultBaseURL,
			},
			&cli.StringFlag{
				Name:     flagWPURL,
				Usage:    "WordPress site URL",
				EnvVars:  []string{strcase.ToSNAKE(flagWPURL)},
				Required: true,
			},
			&cli.StringFlag{
				Name:    flagWPUsername,
				Usage:   "WordPress username",
				EnvVars: []string{strcase.ToSNAKE(flagWPUsername)},
			},
			&cli.StringFlag{
				Name:    flagWPPassword,
				Usage:   "WordPress application password",
				EnvVars: []string{strcase.ToSNAKE(flagWPPassword)},
			},
			&cli.IntFlag{
				Name:    flagLookbackDays,
				Usage:   "Days of recent posts used for the exclusion sets",
				EnvVars: []string{strcase.ToSNAKE(flagLookbackDays)},
				Value:   120,
			},
			&cli.IntFlag{
				Name:    flagScheduleHours,
				Usage:   "Hours from now to schedule the post",
				EnvVars: []string{strcase.ToSNAKE(flagScheduleHours)},
				Value:   24,
			},
			&cli.BoolFlag{
				Name:    flagDryRun,
				Usage:   "Dry run mode.",
				EnvVars: []string{strcase.ToSNAKE(flagDryRun)},
				Value:   true,
			},
			&cli.StringFlag{
				Name:    flagOpenAIAPIKey,
				Usage:   "API key for the article generator (template fallback when empty)",
				EnvVars: []string{strcase.ToSNAKE(flagOpenAIAPIKey)},
			},
			&cli.StringFlag{
				Name:    flagOpenAIModel,
				Usage:   "Model used by the article generator",
				EnvVars: []string{strcase.ToSNAKE(flagOpenAIModel)},
				Value:   "gpt-4o-mini",
			},
			&cli.IntFlag{
				Name:    flagMinInstalls,
				Usage:   "Minimum active installs for a candidate",
				EnvVars: []string{strcase.ToSNAKE(flagMinInstalls)},
				Value:   picker.DefaultCriteria().MinInstalls,
			},
			&cli.IntFlag{
				Name:    flagMaxDays,
				Usage:   "Maximum days since the candidate's last update",
				EnvVars: []string{strcase.ToSNAKE(flagMaxDays)},
				Value:   picker.DefaultCriteria().MaxDays,
			},
			&cli.IntFlag{
				Name:    flagMinRating,
				Usage:   "Minimum rating (0-100) for a candidate",
				EnvVars: []string{strcase.ToSNAKE(flagMinRating)},
				Value:   picker.DefaultCriteria().MinRating,
			},
			&cli.BoolFlag{
				Name:    flagRequireTested,
				Usage:   "Require the candidate to be tested against the current WordPress version",
				EnvVars: []string{strcase.ToSNAKE(flagRequireTested)},
			},
			&cli.IntFlag{
				Name:    flagWPOrgMaxPages,
				Usage:   "Search pages walked per query term",
				EnvVars: []string{strcase.ToSNAKE(flagWPOrgMaxPages)},
				Value:   picker.DefaultMaxPages,
			},
		},
		Action: func(cliCtx *cli.Context) error {
			logger.Setup(cliCtx.String(flagLogLevel))

			cfg, err := buildConfig(cliCtx)
			if err != nil {
				return err
			}

			return run(cliCtx.Context, cfg)
		},
	}

	cmd.Flags = append(cmd.Flags, getTracingFlags()...)

	return cmd
}

func getTracingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagTracingEndpoint,
			Usage:   "Endpoint to send traces (disabled when empty)",
			EnvVars: []string{strcase.ToSNAKE(flagTracingEndpoint)},
		},
		&cli.StringFlag{
			Name:    flagTracingUsername,
			Usage:   "Username to connect to Jaeger",
			EnvVars: []string{strcase.ToSNAKE(flagTracingUsername)},
			Value:   "jaeger",
		},
		&cli.StringFlag{
			Name:    flagTracingPassword,
			Usage:   "Password to connect to Jaeger",
			EnvVars: []string{strcase.ToSNAKE(flagTracingPassword)},
			Value:   "jaeger",
		},
		&cli.Float64Flag{
			Name:    flagTracingProbability,
			Usage:   "Probability to send traces",
			EnvVars: []string{strcase.ToSNAKE(flagTracingProbability)},
			Value:   0,
		},
	}
}
