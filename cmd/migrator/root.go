package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/lib/logger"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "migrator",
	Short: "Prepare the postgres backend of the employee store",
	Long: `migrator applies the database migrations of the postgres backend and
can import an existing employees.json document into it.

Connection settings are read the same way the API reads them: DB_HOST,
DB_PORT, DB_USERNAME, DB_PASSWORD and DB_NAME, a .env file or the YAML
file pointed to by CONFIG_PATH.`,
	SilenceUsage: true,
}

var errNoDatabase = errors.New("postgres host and db_name must be set")

// Execute adds all child commands to the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(importCmd)
}

// connect loads the configuration and opens a pool to the configured database.
func connect(ctx context.Context) (*pgxpool.Pool, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(cfg.Env, os.Stderr)

	if cfg.Postgres.Host == "" || cfg.Postgres.Dbname == "" {
		return nil, log, errNoDatabase
	}

	dbpool, err := repository.NewDatabase(ctx, cfg.Postgres.DSN())
	if err != nil {
		return nil, log, err
	}

	return dbpool, log, nil
}
