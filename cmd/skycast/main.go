package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ehunter/skycast/internal/activities"
	"github.com/ehunter/skycast/internal/ai"
	"github.com/ehunter/skycast/internal/cli"
	"github.com/ehunter/skycast/internal/config"
	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/journal"
	"github.com/ehunter/skycast/internal/logger"
	"github.com/ehunter/skycast/internal/maps"
	"github.com/ehunter/skycast/internal/storage"
	"github.com/ehunter/skycast/internal/team"
	"github.com/ehunter/skycast/internal/weather"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path (TOML)." type:"path"`
	DB      string `help:"SQLite path or postgres:// connection string, overrides the config."`
	DataDir string `help:"Data directory, overrides the config." type:"path"`
	Units   string `help:"Display units for this run (metric|imperial)." enum:",metric,imperial" default:""`
	Offline bool   `help:"Serve deterministic sample weather instead of calling the API."`
	Debug   bool   `help:"Verbose logging."`

	Tui      cli.TuiCmd      `cmd:"" help:"Launch the weather dashboard." default:"1"`
	Init     cli.InitCmd     `cmd:"" help:"Write the config file and initialize storage."`
	Weather  cli.WeatherCmd  `cmd:"" help:"Show current conditions for a city."`
	Forecast cli.ForecastCmd `cmd:"" help:"Show the multi-day forecast."`
	History  cli.HistoryCmd  `cmd:"" help:"Show locally recorded weather history."`
	Journal  struct {
		Add    cli.JournalAddCmd    `cmd:"" help:"Add an entry."`
		List   cli.JournalListCmd   `cmd:"" help:"List entries, newest first." default:"1"`
		View   cli.JournalViewCmd   `cmd:"" help:"Show one entry in full."`
		Edit   cli.JournalEditCmd   `cmd:"" help:"Change an entry's title, body, or mood."`
		Delete cli.JournalDeleteCmd `cmd:"" help:"Delete an entry."`
		Search cli.JournalSearchCmd `cmd:"" help:"Search titles and bodies."`
		Mood   cli.JournalMoodCmd   `cmd:"" help:"Filter entries by mood."`
		Stats  cli.JournalStatsCmd  `cmd:"" help:"Totals and mood breakdown."`
		Export cli.JournalExportCmd `cmd:"" help:"Export the journal as JSON or CSV."`
	} `cmd:"" help:"Manage the weather journal."`
	Team struct {
		List    cli.TeamListCmd    `cmd:"" help:"Show team cities and their weather." default:"1"`
		Refresh cli.TeamRefreshCmd `cmd:"" help:"Force a sync of the shared CSV."`
		Feed    cli.TeamFeedCmd    `cmd:"" help:"Show the team activity feed."`
		Info    cli.TeamInfoCmd    `cmd:"" help:"Show cache freshness and source."`
	} `cmd:"" help:"Team weather commands."`
	Analyze struct {
		Clusters  cli.AnalyzeClustersCmd  `cmd:"" help:"Group team cities into weather patterns."`
		Compare   cli.AnalyzeCompareCmd   `cmd:"" help:"Score how similar two cities feel."`
		Recommend cli.AnalyzeRecommendCmd `cmd:"" help:"Pick the team city matching your preferences."`
		Predict   cli.AnalyzePredictCmd   `cmd:"" help:"Estimate coming temperatures from local history."`
		Radar     cli.AnalyzeRadarCmd     `cmd:"" help:"Show normalized condition scores for a city."`
	} `cmd:"" help:"Weather analytics over the team roster."`
	Poem    cli.PoemCmd    `cmd:"" help:"Generate a weather poem."`
	Insight cli.InsightCmd `cmd:"" help:"One AI observation about the conditions."`
	Suggest cli.SuggestCmd `cmd:"" help:"Suggest weather-appropriate activities."`
	Map     cli.MapCmd     `cmd:"" help:"Static map URL or image for a city."`
	Geocode cli.GeocodeCmd `cmd:"" help:"Resolve an address or coordinates."`
	Keys    struct {
		Set    cli.KeysSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Get    cli.KeysGetCmd    `cmd:"" help:"Read a stored secret."`
		Delete cli.KeysDeleteCmd `cmd:"" help:"Remove a stored secret."`
		List   cli.KeysListCmd   `cmd:"" help:"Show which secrets are stored." default:"1"`
	} `cmd:"" help:"Manage API keys in the OS keyring."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Migrate cli.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Verify  cli.VerifyCmd  `cmd:"" help:"Verify config, storage, keys, and endpoints end to end."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Terminal weather dashboard with a journal, team view, and analytics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	configPath = config.ExpandHome(configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Command-line flags win over both the file and the environment.
	if CLI.DataDir != "" {
		cfg.DataDir = config.ExpandHome(CLI.DataDir)
		if CLI.DB == "" {
			cfg.DB = filepath.Join(cfg.DataDir, constants.JournalDBFile)
		}
	}
	if CLI.DB != "" {
		cfg.DB = CLI.DB
	}
	if CLI.Units != "" {
		cfg.Units = CLI.Units
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	store := storage.New(cfg.DB)

	weatherClient := weather.New(weather.Config{
		APIKey:  cfg.ResolveSecret(config.SecretOpenWeather),
		Offline: CLI.Offline,
		Store:   store,
	})

	aiSvc := ai.New(context.Background(),
		cfg.ResolveSecret(config.SecretGemini),
		cfg.ResolveSecret(config.SecretOpenAI),
	)

	appCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: configPath,
		Store:      store,
		Journal:    journal.New(store),
		Weather:    weatherClient,
		Team:       team.New(cfg.TeamCSVURL, cfg.TeamCachePath()),
		AI:         aiSvc,
		Activities: activities.New(aiSvc),
		Maps:       maps.New(maps.Config{APIKey: cfg.ResolveSecret(config.SecretMaps)}),
		Units:      constants.Units(cfg.Units),
	}

	err = ctx.Run(appCtx)
	if cerr := aiSvc.Close(); cerr != nil {
		logger.Debug("ai client close failed", "error", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
