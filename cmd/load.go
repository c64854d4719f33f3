package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cities-cli/internal/cities"
	"github.com/sells-group/cities-cli/internal/db"
)

var loadSkipMigrate bool

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load built records into Postgres",
	Long:  "Reads ./data/cities-data.json and replaces the contents of geonames.cities using COPY.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("load"); err != nil {
			return err
		}
		ctx := cmd.Context()

		records, err := cities.ReadRecords(layout())
		if err != nil {
			return err
		}

		pool, err := openPool(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		if !loadSkipMigrate {
			if err := db.Migrate(ctx, pool); err != nil {
				return eris.Wrap(err, "load: migrate")
			}
		}

		n, err := cities.LoadPostgres(ctx, pool, records, uuid.New().String(), cfg.Store.BatchSize)
		if err != nil {
			return err
		}

		printer.Fprintf(cmd.OutOrStdout(), "Loaded %d rows into geonames.cities\n", n)
		return nil
	},
}

// openPool connects to Postgres and verifies the connection.
func openPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, eris.Wrap(err, "load: create connection pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "load: ping database")
	}

	zap.L().Info("connected to database")
	return pool, nil
}

func init() {
	loadCmd.Flags().BoolVar(&loadSkipMigrate, "skip-migrate", false, "do not apply schema migrations before loading")
	rootCmd.AddCommand(loadCmd)
}
