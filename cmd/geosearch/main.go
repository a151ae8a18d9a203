// Command geosearch searches a city catalog from the command line and serves
// it over HTTP or MCP.
//
// Usage:
//
//	geosearch search london
//	geosearch country GB lon
//	geosearch import cities.json.bz2 --sqlite cities.db
//	geosearch serve --sqlite cities.db
//
// Settings come from the environment (GEOSEARCH_DATASET, GEOSEARCH_SQLITE_PATH,
// DATABASE_URL, GEOSEARCH_LANGUAGE, API_HOST, API_PORT, LOG_LEVEL) and can be
// overridden with flags.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/andreiashu/geosearch"
	"github.com/andreiashu/geosearch/internal/config"
	"github.com/andreiashu/geosearch/internal/obs"
	"github.com/andreiashu/geosearch/internal/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// loadTimeout bounds reading the catalog from a database.
const loadTimeout = 2 * time.Minute

// app carries the resolved configuration to subcommands.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "geosearch",
		Short:        "Search a city catalog",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("dataset", "", "JSON dataset file, optionally .gz or .bz2 (env GEOSEARCH_DATASET)")
	flags.String("sqlite", "", "SQLite catalog created by import (env GEOSEARCH_SQLITE_PATH)")
	flags.String("database-url", "", "Postgres catalog connection string (env DATABASE_URL)")
	flags.String("language", "", "language for searchable country names (env GEOSEARCH_LANGUAGE)")
	flags.String("log-level", "", "log level (env LOG_LEVEL)")

	root.AddCommand(
		newSearchCmd(a),
		newCountryCmd(a),
		newLookupCmd(a),
		newCountriesCmd(a),
		newImportCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
	)
	return root
}

// init loads the environment configuration and applies flag overrides.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("dataset", &cfg.DatasetPath)
	override("sqlite", &cfg.SQLitePath)
	override("database-url", &cfg.DatabaseURL)
	override("log-level", &cfg.LogLevel)
	if flags.Changed("language") {
		lang, _ := flags.GetString("language")
		tag, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("invalid --language %q: %w", lang, err)
		}
		cfg.Language = tag
	}

	obs.InitLogger(cfg.LogLevel)
	a.cfg = cfg
	a.logger = obs.Logger("geosearch")
	return nil
}

// engineOptions are the options every subcommand builds its engine with.
func (a *app) engineOptions() []geosearch.Option {
	return []geosearch.Option{
		geosearch.WithLogger(a.logger),
		geosearch.WithLanguage(a.cfg.Language),
	}
}

// countryNamer names countries in the configured language for display.
func (a *app) countryNamer() geosearch.CountryNamer {
	return geosearch.NewLocalizedCountryNamer(a.cfg.Language)
}

// loadEngine builds the engine from the configured source: Postgres, then
// SQLite, then the JSON dataset. Like geosearch.Open it never fails; a
// source that cannot be read yields an empty engine.
func (a *app) loadEngine(ctx context.Context) *geosearch.Engine {
	var (
		src  store.Source
		err  error
		kind string
	)

	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	switch {
	case a.cfg.DatabaseURL != "":
		kind = "postgres"
		src, err = store.NewPostgresSource(ctx, a.cfg.DatabaseURL)
	case a.cfg.SQLitePath != "":
		kind = "sqlite"
		src, err = store.NewSQLiteStore(a.cfg.SQLitePath)
	default:
		a.logger.Debug().Str("path", a.cfg.DatasetPath).Msg("loading dataset file")
		return geosearch.Open(a.cfg.DatasetPath, a.engineOptions()...)
	}
	if err != nil {
		return geosearch.Empty(fmt.Errorf("open %s catalog: %w", kind, err), a.engineOptions()...)
	}
	defer func() { _ = src.Close() }()

	a.logger.Debug().Str("source", kind).Msg("loading catalog")
	ds, err := src.LoadDataset(ctx)
	if err != nil {
		return geosearch.Empty(fmt.Errorf("load %s catalog: %w", kind, err), a.engineOptions()...)
	}
	return geosearch.New(ds, a.engineOptions()...)
}
