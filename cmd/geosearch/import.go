package main

import (
	"errors"
	"fmt"

	"github.com/andreiashu/geosearch"
	"github.com/andreiashu/geosearch/internal/store"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a JSON dataset into the SQLite or Postgres catalog",
		Long: `Import reads a dataset file (plain, .gz or .bz2) and replaces the catalog
stored in the database named by --database-url or --sqlite. Services started
with the same flag then load the imported catalog instead of parsing JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ds, err := geosearch.LoadDatasetFile(args[0])
			if err != nil {
				return err
			}
			for _, s := range ds.Skipped {
				a.logger.Warn().Int("entry", s.Index).Err(s.Err).Msg("skipping undecodable city entry")
			}

			var (
				sink    store.Sink
				closeFn func() error
			)
			switch {
			case a.cfg.DatabaseURL != "":
				p, err := store.NewPostgresSource(ctx, a.cfg.DatabaseURL)
				if err != nil {
					return err
				}
				sink, closeFn = p, p.Close
			case a.cfg.SQLitePath != "":
				s, err := store.NewSQLiteStore(a.cfg.SQLitePath)
				if err != nil {
					return err
				}
				sink, closeFn = s, s.Close
			default:
				return errors.New("no catalog database: set --sqlite or --database-url")
			}
			defer func() { _ = closeFn() }()

			if err := sink.SaveDataset(ctx, ds); err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			a.logger.Info().
				Str("file", args[0]).
				Str("version", ds.Metadata.Version).
				Int("cities", len(ds.Cities)).
				Int("skipped", len(ds.Skipped)).
				Msg("dataset imported")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s cities from %s\n",
				humanize.Comma(int64(len(ds.Cities))), args[0])
			return nil
		},
	}
}
