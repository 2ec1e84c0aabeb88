package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"dinner-daily/internal/app"
	"dinner-daily/internal/config"
	"dinner-daily/internal/database"
	"dinner-daily/internal/dinnerdaily"
	"dinner-daily/internal/extract"
	"dinner-daily/internal/ghost"
	"dinner-daily/internal/history"
	"dinner-daily/internal/loader"
	"dinner-daily/internal/logging"
	"dinner-daily/internal/schema"
	"dinner-daily/internal/trello"
	"dinner-daily/internal/week"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "dinner-daily",
	Short: "Convert, render and publish weekly dinner menus",
	Long: `dinner-daily converts weekly menus between the legacy menu format and the
structured week format, renders them as JSON, Markdown, HTML or PDF, archives
them in SQLite and publishes them to Trello and Ghost.

Settings come from a TOML file (--config or $DINNER_DAILY_CONFIG) and the
environment.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtime is what every command builds before doing its work.
type runtime struct {
	cfg    *config.Config
	logger *log.Logger
	db     *database.DB
}

func (r *runtime) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, logger: logger}, nil
}

// deps selects the collaborators a command needs.
type deps struct {
	ghost   bool
	trello  bool
	fetcher bool
	archive bool // opens the database for the week archive and publication log
}

func (r *runtime) app(d deps) (*app.App, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	ldr := loader.New(validator, extract.New())

	var ghostClient ghost.Client
	if d.ghost {
		if err := r.cfg.RequireGhost(); err != nil {
			return nil, err
		}
		ghostClient = ghost.NewClient(r.cfg)
	}

	var cards trello.CardService
	if d.trello {
		if err := r.cfg.RequireTrello(); err != nil {
			return nil, err
		}
		baseURL := r.cfg.TrelloBaseURL
		if baseURL == "" {
			baseURL = trello.DefaultBaseURL
		}
		cards = trello.NewClient(baseURL, trello.Credentials{Key: r.cfg.TrelloAPIKey, Token: r.cfg.TrelloAPIToken})
	}

	var fetcher app.WeekFetcher
	if d.fetcher {
		if err := r.cfg.RequireAPI(); err != nil {
			return nil, err
		}
		fetcher = dinnerdaily.NewClient(r.cfg, validator)
	}

	var weeks app.WeekStore
	var publications app.PublicationLog
	if d.archive {
		db, err := database.NewDB(r.cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		r.db = db
		r.logger.Debug("Database ready", "path", r.cfg.DBPath)
		weeks = week.NewRepository(db.SQL)
		publications = history.NewStore(db.SQL)
	}

	return app.NewApp(r.cfg, r.logger, ldr, ghostClient, cards, fetcher, weeks, publications), nil
}
