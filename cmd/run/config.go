package run

import (
	"fmt"

	pfile "github.com/traefik/paerser/file"
	"github.com/urfave/cli/v2"
	"github.com/wppick/wppick/pkg/picker"
	"github.com/wppick/wppick/pkg/tracer"
	"github.com/wppick/wppick/pkg/wporg"
)

// Config represents the configuration for the run command.
type Config struct {
	Topic    string
	WPOrgURL string

	WPURL      string
	WPUsername string
	WPPassword string

	LookbackDays  int
	ScheduleHours int
	DryRun        bool

	OpenAIAPIKey string
	OpenAIModel  string

	MinInstalls   int
	MaxDays       int
	MinRating     int
	RequireTested bool
	MaxPages      int

	Tracing tracer.Config
}

func defaultConfig() Config {
	criteria := picker.DefaultCriteria()

	return Config{
		Topic:         "WordPress",
		WPOrgURL:      wporg.DefaultBaseURL,
		LookbackDays:  120,
		ScheduleHours: 24,
		DryRun:        true,
		OpenAIModel:   "gpt-4o-mini",
		MinInstalls:   criteria.MinInstalls,
		MaxDays:       criteria.MaxDays,
		MinRating:     criteria.MinRating,
		MaxPages:      picker.DefaultMaxPages,
		Tracing: tracer.Config{
			Username:    "jaeger",
			Password:    "jaeger",
			ServiceName: "wppick",
		},
	}
}

// buildConfig assembles the configuration: defaults, then the optional
// config file, then explicitly set flags.
func buildConfig(cliCtx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if path := cliCtx.String(flagConfig); path != "" {
		if err := pfile.Decode(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	overrideString(cliCtx, flagTopic, &cfg.Topic)
	overrideString(cliCtx, flagWPOrgURL, &cfg.WPOrgURL)
	overrideString(cliCtx, flagWPURL, &cfg.WPURL)
	overrideString(cliCtx, flagWPUsername, &cfg.WPUsername)
	overrideString(cliCtx, flagWPPassword, &cfg.WPPassword)
	overrideInt(cliCtx, flagLookbackDays, &cfg.LookbackDays)
	overrideInt(cliCtx, flagScheduleHours, &cfg.ScheduleHours)
	overrideBool(cliCtx, flagDryRun, &cfg.DryRun)
	overrideString(cliCtx, flagOpenAIAPIKey, &cfg.OpenAIAPIKey)
	overrideString(cliCtx, flagOpenAIModel, &cfg.OpenAIModel)
	overrideInt(cliCtx, flagMinInstalls, &cfg.MinInstalls)
	overrideInt(cliCtx, flagMaxDays, &cfg.MaxDays)
	overrideInt(cliCtx, flagMinRating, &cfg.MinRating)
	overrideBool(cliCtx, flagRequireTested, &cfg.RequireTested)
	overrideInt(cliCtx, flagWPOrgMaxPages, &cfg.MaxPages)
	overrideString(cliCtx, flagTracingEndpoint, &cfg.Tracing.Endpoint)
	overrideString(cliCtx, flagTracingUsername, &cfg.Tracing.Username)
	overrideString(cliCtx, flagTracingPassword, &cfg.Tracing.Password)

	if cliCtx.IsSet(flagTracingProbability) {
		cfg.Tracing.Probability = cliCtx.Float64(flagTracingProbability)
	}

	return cfg, nil
}

// Criteria builds the viability criteria from the configuration.
func (c Config) Criteria() picker.Criteria {
	criteria := picker.DefaultCriteria()
	criteria.MinInstalls = c.MinInstalls
	criteria.MaxDays = c.MaxDays
	criteria.MinRating = c.MinRating
	criteria.RequireTested = c.RequireTested

	return criteria
}

func overrideString(cliCtx *cli.Context, flag string, dst *string) {
	if cliCtx.IsSet(flag) || *dst == "" {
		*dst = cliCtx.String(flag)
	}
}

func overrideInt(cliCtx *cli.Context, flag string, dst *int) {
	if cliCtx.IsSet(flag) {
		*dst = cliCtx.Int(flag)
	}
}

func overrideBool(cliCtx *cli.Context, flag string, dst *bool) {
	if cliCtx.IsSet(flag) {
		*dst = cliCtx.Bool(flag)
	}
}
